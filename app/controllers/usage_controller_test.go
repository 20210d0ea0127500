package controllers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landmark-crm/landmark/internal/pkg/metrics/counter"
)

func newIncrementTestApp(uc *UsageController) *fiber.App {
	app := fiber.New()
	app.Post("/usage/increment", uc.HandleIncrementUsage)
	return app
}

func TestHandleIncrementUsage_UnknownResourceType(t *testing.T) {
	// The counter drain only flushes tracked resource types, so anything
	// else must be rejected up front instead of buffered forever.
	uc := NewUsageController(nil, counter.New(nil, nil))
	app := newIncrementTestApp(uc)

	req := httptest.NewRequest(fiber.MethodPost, "/usage/increment",
		strings.NewReader(`{"subscription_id":"sub_1","resource_type":"widgets","delta":5}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleIncrementUsage_Validation(t *testing.T) {
	uc := NewUsageController(nil, counter.New(nil, nil))
	app := newIncrementTestApp(uc)

	tests := []struct {
		name string
		body string
	}{
		{"missing subscription", `{"resource_type":"contacts","delta":5}`},
		{"missing resource", `{"subscription_id":"sub_1","delta":5}`},
		{"zero delta", `{"subscription_id":"sub_1","resource_type":"contacts","delta":0}`},
		{"negative delta", `{"subscription_id":"sub_1","resource_type":"contacts","delta":-2}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodPost, "/usage/increment", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestHandleIncrementUsage_CounterUnavailable(t *testing.T) {
	uc := NewUsageController(nil, nil)
	app := newIncrementTestApp(uc)

	req := httptest.NewRequest(fiber.MethodPost, "/usage/increment",
		strings.NewReader(`{"subscription_id":"sub_1","resource_type":"contacts","delta":5}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
