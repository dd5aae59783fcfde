package handlers

import (
	"github.com/gofiber/fiber/v2"

	"ctcsite/sitebuilder/models"
	"ctcsite/sitebuilder/utils"
)

// GetTemplates returns the template catalog for the template picker.
func (h *ApplicationHandler) GetTemplates(c *fiber.Ctx) error {
	return utils.RespondWithJSON(c, fiber.StatusOK, models.ListTemplates())
}
