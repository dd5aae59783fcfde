package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ctcsite/sitebuilder/internal/jobs"
	"ctcsite/sitebuilder/models"
	"ctcsite/sitebuilder/utils"
)

// SiteCreatedPayload is the database-change notification delivered when a
// row is inserted into the sites table.
type SiteCreatedPayload struct {
	Type   string      `json:"type"`
	Table  string      `json:"table"`
	Record models.Site `json:"record"`
}

// OnSiteCreated handles the insert notification for the sites table: it
// validates the new record and enqueues a publish job for it. The response
// is 202 because publishing happens on the worker pool, not in this
// request.
func (h *ApplicationHandler) OnSiteCreated(c *fiber.Ctx) error {
	payload := new(SiteCreatedPayload)
	if err := c.BodyParser(payload); err != nil {
		h.Logger.Errorf("Error parsing site-created payload: %v", err)
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid site payload")
	}

	site := payload.Record
	if site.ID == uuid.Nil || site.UserID == uuid.Nil || site.Subdomain == "" {
		h.Logger.Error("Invalid site payload received from trigger")
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid site payload")
	}

	job := jobs.NewPublishSiteJob(site, h.Generator)
	if !h.Dispatcher.Submit(job) {
		// The row stays pending; the publisher drain will pick it up.
		return utils.RespondWithError(c, fiber.StatusServiceUnavailable, "Publish queue is full, site will be retried")
	}

	h.Logger.Infof("Queued publish for new site %s", site.Subdomain)
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "Site publish queued",
	})
}
