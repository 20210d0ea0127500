package constants

// Static route constants
const (
	PublicRoute        = "/"
	APIRoute           = "/api"
	MetricsRoute       = "/metrics"
	StripeWebhookRoute = "/webhook/stripe"
)
