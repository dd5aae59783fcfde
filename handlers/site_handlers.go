package handlers

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"ctcsite/sitebuilder/internal/jobs"
	"ctcsite/sitebuilder/middleware"
	"ctcsite/sitebuilder/models"
	"ctcsite/sitebuilder/utils"
)

// CreateSiteRequest defines the expected request body for the wizard
// submission. The subdomain must be a valid DNS label; it becomes the
// site's permanent identity.
type CreateSiteRequest struct {
	CompanyName         string `json:"companyName" validate:"required,min=2"`
	ActivityDescription string `json:"activityDescription" validate:"required,min=10"`
	SiteType            string `json:"siteType" validate:"required,oneof=vitrine portfolio ecommerce blog landing_page restaurant"`
	PrimaryColor        string `json:"primaryColor" validate:"required,hexcolor"`
	SelectedTemplateID  string `json:"selectedTemplateId"`
	Subdomain           string `json:"subdomain" validate:"required,subdomain"`
	Plan                string `json:"plan"`
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	PhoneNumber         string `json:"phoneNumber"`
}

var validate = validator.New()

// dnsLabelRe matches a single lowercase DNS label, max 63 characters, no
// leading or trailing hyphen.
var dnsLabelRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

func init() {
	validate.RegisterValidation("subdomain", func(fl validator.FieldLevel) bool {
		return dnsLabelRe.MatchString(fl.Field().String())
	})
}

// CreateSite godoc
// @Summary Create a site from the wizard submission
// @Description Inserts a pending sites row for the caller and queues its first publish.
// @Tags sites
// @Accept  json
// @Produce  json
// @Param   site body CreateSiteRequest true "Wizard fields"
// @Success 201 {object} map[string]interface{} "Site created"
// @Failure 400 {object} map[string]string "Invalid fields or subdomain"
// @Failure 500 {object} map[string]string "Database failure"
// @Router /sites [post]
func (h *ApplicationHandler) CreateSite(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	payload := new(CreateSiteRequest)
	if err := c.BodyParser(payload); err != nil {
		h.Logger.Errorf("Error parsing site data: %v", err)
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse site JSON: %v", err))
	}

	if err := validate.Struct(payload); err != nil {
		h.Logger.Errorf("Validation error for site payload: %v", err)
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Validation failed: %v", utils.FormatValidationErrors(err)))
	}

	content, err := json.Marshal(models.SiteContent{
		SelectedTemplateID: payload.SelectedTemplateID,
		FirstName:          payload.FirstName,
		LastName:           payload.LastName,
		PhoneNumber:        payload.PhoneNumber,
	})
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not encode site content")
	}

	now := time.Now().UTC()
	siteDataToInsert := map[string]interface{}{
		"user_id":         userID,
		"subdomain":       payload.Subdomain,
		"title":           payload.CompanyName,
		"description":     payload.ActivityDescription,
		"primary_color":   payload.PrimaryColor,
		"site_type":       payload.SiteType,
		"plan":            payload.Plan,
		"status":          models.SiteStatusPending,
		"content":         json.RawMessage(content),
		"created_at":      now,
		"last_updated_at": now,
	}

	body, _, err := h.DB.From("sites").
		Insert(siteDataToInsert, false, "", "representation", "").
		Execute()
	if err != nil {
		h.Logger.Errorf("Error executing Supabase insert: %v", err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Could not create site: %v", err))
	}

	var results []models.Site
	if err := json.Unmarshal(body, &results); err != nil {
		h.Logger.Errorf("Error unmarshalling Supabase response: %v", err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Could not process site creation response: %v", err))
	}
	if len(results) == 0 {
		return utils.RespondWithError(c, fiber.StatusInternalServerError,
			"Failed to create site, no record returned")
	}

	site := results[0]
	h.Dispatcher.Submit(jobs.NewPublishSiteJob(site, h.Generator))

	h.Logger.Infof("Site %s created for user %s, publish queued", site.Subdomain, userID)
	return utils.RespondWithJSON(c, fiber.StatusCreated, site)
}

// GetSites lists the caller's sites.
func (h *ApplicationHandler) GetSites(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	body, _, err := h.DB.From("sites").
		Select("*", "", false).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		h.Logger.Errorf("Error fetching sites for user %s: %v", userID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Could not retrieve sites: %v", err))
	}

	var sites []models.Site
	if err := json.Unmarshal(body, &sites); err != nil {
		h.Logger.Errorf("Error unmarshalling sites data: %v", err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Could not process sites data: %v", err))
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, sites)
}

// GetSite retrieves one of the caller's sites by subdomain.
func (h *ApplicationHandler) GetSite(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	subdomain := c.Params("subdomain")

	body, _, err := h.DB.From("sites").
		Select("*", "", false).
		Eq("subdomain", subdomain).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		h.Logger.Errorf("Error fetching site %s: %v", subdomain, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Could not retrieve site %s: %v", subdomain, err))
	}

	var sites []models.Site
	if err := json.Unmarshal(body, &sites); err != nil {
		h.Logger.Errorf("Error unmarshalling site data for %s: %v", subdomain, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Could not process site data for %s: %v", subdomain, err))
	}
	if len(sites) == 0 {
		return utils.RespondWithError(c, fiber.StatusNotFound,
			fmt.Sprintf("Site %s not found", subdomain))
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, sites[0])
}

// UpdateSite handles partial dashboard edits on a site. The subdomain is
// immutable and silently ignored if submitted. A successful update queues a
// re-publish so the edited fields reach the published files.
func (h *ApplicationHandler) UpdateSite(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	siteID := c.Params("id")

	var payload map[string]interface{}
	if err := c.BodyParser(&payload); err != nil {
		h.Logger.Errorf("Error parsing update payload for site %s: %v", siteID, err)
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Invalid request body: %v", err))
	}

	dbUpdateData := make(map[string]interface{})

	for _, field := range []string{"title", "description", "primary_color", "site_type", "plan", "whatsapp_link", "facebook_link", "cover_image_url"} {
		if val, exists := payload[field]; exists {
			if val == nil {
				dbUpdateData[field] = nil
			} else if str, ok := val.(string); ok {
				dbUpdateData[field] = str
			} else {
				return utils.RespondWithError(c, fiber.StatusBadRequest,
					fmt.Sprintf("'%s' field must be a string or null", field))
			}
		}
	}

	if color, ok := dbUpdateData["primary_color"].(string); ok {
		if err := validate.Var(color, "hexcolor"); err != nil {
			return utils.RespondWithError(c, fiber.StatusBadRequest, "'primary_color' must be a hex color")
		}
	}

	dbUpdateData["last_updated_at"] = time.Now().UTC()

	body, _, err := h.DB.From("sites").
		Update(dbUpdateData, "representation", "").
		Eq("id", siteID).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		h.Logger.Errorf("Error updating site %s: %v", siteID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Could not update site %s: %v", siteID, err))
	}

	var results []models.Site
	if err := json.Unmarshal(body, &results); err != nil {
		h.Logger.Errorf("Error unmarshalling updated site data for %s: %v", siteID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Could not process site update response for %s: %v", siteID, err))
	}
	if len(results) == 0 {
		return utils.RespondWithError(c, fiber.StatusNotFound,
			fmt.Sprintf("Site %s not found", siteID))
	}

	site := results[0]
	h.Dispatcher.Submit(jobs.NewPublishSiteJob(site, h.Generator))

	h.Logger.Infof("Site %s updated, re-publish queued", site.Subdomain)
	return utils.RespondWithJSON(c, fiber.StatusOK, site)
}
