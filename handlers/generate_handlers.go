package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"ctcsite/sitebuilder/internal/sitegen"
	"ctcsite/sitebuilder/middleware"
	"ctcsite/sitebuilder/utils"
)

// GenerateSiteRequest defines the expected request body for direct site
// generation. The subdomain is mandatory; everything else degrades to the
// template defaults.
type GenerateSiteRequest struct {
	CompanyName         string `json:"companyName"`
	ActivityDescription string `json:"activityDescription"`
	SiteType            string `json:"siteType"`
	PrimaryColor        string `json:"primaryColor"`
	SelectedTemplateID  string `json:"selectedTemplateId"`
	Subdomain           string `json:"subdomain"`
	Plan                string `json:"plan"`
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	PhoneNumber         string `json:"phoneNumber"`
	FacebookLink        string `json:"facebookLink"`
	InstagramLink       string `json:"instagramLink"`
	TwitterLink         string `json:"twitterLink"`
	LinkedinLink        string `json:"linkedinLink"`
	LogoURL             string `json:"logoUrl"`
	CoverImageURL       string `json:"coverImageUrl"`
	AboutImageURL       string `json:"aboutImageUrl"`
}

// GenerateSite godoc
// @Summary Generate and publish a site
// @Description Renders the requested template with the submitted fields and publishes it under the subdomain.
// @Tags generation
// @Accept  json
// @Produce  json
// @Param   request body GenerateSiteRequest true "Site fields"
// @Success 200 {object} map[string]string "Site generated and published"
// @Failure 400 {object} map[string]string "Missing subdomain or malformed body"
// @Failure 401 {object} map[string]string "Missing or invalid bearer token"
// @Failure 500 {object} map[string]string "Storage or database failure"
// @Router /generate [post]
func (h *ApplicationHandler) GenerateSite(c *fiber.Ctx) error {
	payload := new(GenerateSiteRequest)
	if err := c.BodyParser(payload); err != nil {
		h.Logger.Errorf("Error parsing generate payload: %v", err)
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}

	req := sitegen.Request{
		UserID:     middleware.UserID(c),
		Subdomain:  payload.Subdomain,
		TemplateID: payload.SelectedTemplateID,
		Fields: sitegen.SiteFields{
			CompanyName:         payload.CompanyName,
			ActivityDescription: payload.ActivityDescription,
			PrimaryColor:        payload.PrimaryColor,
			FirstName:           payload.FirstName,
			LastName:            payload.LastName,
			PhoneNumber:         payload.PhoneNumber,
			FacebookLink:        payload.FacebookLink,
			InstagramLink:       payload.InstagramLink,
			TwitterLink:         payload.TwitterLink,
			LinkedinLink:        payload.LinkedinLink,
			LogoURL:             payload.LogoURL,
			CoverImageURL:       payload.CoverImageURL,
			AboutImageURL:       payload.AboutImageURL,
			Subdomain:           payload.Subdomain,
		},
	}

	result, err := h.Generator.Generate(req)
	if err != nil {
		if errors.Is(err, sitegen.ErrMissingSubdomain) || errors.Is(err, sitegen.ErrMissingUser) {
			return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
		}
		h.Logger.Errorf("Generation failed for subdomain %s: %v", payload.Subdomain, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Site generated and published successfully!",
		"url":     result.URL,
	})
}
