package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/landmark-crm/landmark/internal/pkg/entitlements"
)

// EntitlementsController exposes the per-tier feature menus.
type EntitlementsController struct{}

// NewEntitlementsController creates the entitlements controller.
func NewEntitlementsController() *EntitlementsController {
	return &EntitlementsController{}
}

// HandleGetFeatures returns the ordered feature menu for a tier. Unknown
// tiers resolve to the base menu.
func (ec *EntitlementsController) HandleGetFeatures(c *fiber.Ctx) error {
	tier := c.Params("tier")
	return c.JSON(fiber.Map{
		"tier":       string(entitlements.NormalizeTier(tier)),
		"categories": entitlements.FeaturesForTier(tier),
	})
}
