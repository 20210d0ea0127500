package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/landmark-crm/landmark/app/controllers"
	"github.com/landmark-crm/landmark/internal/pkg/middleware"
)

// APIServer bundles the controllers behind the public v1 surface.
type APIServer struct {
	profiles     *controllers.ProfileController
	entitlements *controllers.EntitlementsController
	pricing      *controllers.PricingController
	usage        *controllers.UsageController
}

// NewAPIServer creates a new API server instance.
func NewAPIServer(
	profiles *controllers.ProfileController,
	entitlementsCtrl *controllers.EntitlementsController,
	pricingCtrl *controllers.PricingController,
	usageCtrl *controllers.UsageController,
) *APIServer {
	return &APIServer{
		profiles:     profiles,
		entitlements: entitlementsCtrl,
		pricing:      pricingCtrl,
		usage:        usageCtrl,
	}
}

// Pong is the ping endpoint response.
type Pong struct {
	Ping string `json:"ping"`
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// RegisterHandlers attaches all v1 routes to the given router group.
func RegisterHandlers(r fiber.Router, s *APIServer) {
	r.Get("/ping", s.GetPing)

	r.Get("/profile/:userID", s.profiles.HandleGetProfile)
	r.Get("/profile/:userID/features/:featureKey", s.profiles.HandleCheckFeatureAccess)

	r.Get("/entitlements/:tier/features", s.entitlements.HandleGetFeatures)

	r.Post("/pricing/quote", s.pricing.HandleQuote)

	// Usage mutations come from trusted backend services only.
	serviceKey := middleware.ServiceKeyAuthMiddleware()
	r.Put("/usage", serviceKey, s.usage.HandleRecordUsage)
	r.Put("/usage/limits", serviceKey, s.usage.HandleSetLimit)
	r.Post("/usage/increment", serviceKey, s.usage.HandleIncrementUsage)
	r.Get("/usage/:subscriptionID/alerts", s.usage.HandleGetAlerts)
}
