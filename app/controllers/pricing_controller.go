package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/landmark-crm/landmark/internal/pkg/pricing"
)

// PricingController exposes display pricing quotes. Seat counts beyond the
// plan cap are computed here and rejected at the checkout boundary, which is
// outside this service.
type PricingController struct{}

// NewPricingController creates the pricing controller.
func NewPricingController() *PricingController {
	return &PricingController{}
}

type quoteRequest struct {
	Tier            string `json:"tier"`
	Yearly          bool   `json:"yearly"`
	AdditionalUsers int64  `json:"additional_users"`
}

// HandleQuote computes the displayed total for a plan configuration.
func (pc *PricingController) HandleQuote(c *fiber.Ctx) error {
	var req quoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_body"})
	}
	if req.AdditionalUsers < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_additional_users"})
	}

	plan := pricing.PlanForTier(req.Tier)
	seats := plan.Seats(req.AdditionalUsers)
	total := pricing.CalculateTotal(plan, req.Yearly, req.AdditionalUsers)

	return c.JSON(fiber.Map{
		"tier":             string(plan.Tier),
		"yearly":           req.Yearly,
		"additional_users": req.AdditionalUsers,
		"seats_within_cap": seats.WithinCap,
		"seats_over_cap":   seats.OverCap,
		"has_overage":      seats.HasOverage,
		"total":            total.StringFixed(2),
	})
}
