package router

import (
	"github.com/landmark-crm/landmark/app/controllers"
	"github.com/landmark-crm/landmark/internal/pkg/constants"

	"github.com/gofiber/fiber/v2"
)

type HttpRouter struct {
	billing *controllers.BillingController
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	app.Get(constants.PublicRoute, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"service": "landmark", "status": "ok"})
	})

	// Provider webhooks stay outside the rate-limited /api group; the
	// signature check is the gate here, not the limiter.
	app.Post(constants.StripeWebhookRoute, h.billing.HandleStripeWebhook)
}

func NewHttpRouter(billing *controllers.BillingController) *HttpRouter {
	return &HttpRouter{billing: billing}
}
