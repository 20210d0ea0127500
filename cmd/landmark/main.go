package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/landmark-crm/landmark/app/controllers"
	"github.com/landmark-crm/landmark/app/repository"
	apiv1 "github.com/landmark-crm/landmark/internal/api/v1"
	"github.com/landmark-crm/landmark/internal/pkg/billing"
	"github.com/landmark-crm/landmark/internal/pkg/cache"
	"github.com/landmark-crm/landmark/internal/pkg/constants"
	"github.com/landmark-crm/landmark/internal/pkg/database"
	"github.com/landmark-crm/landmark/internal/pkg/entitlements"
	"github.com/landmark-crm/landmark/internal/pkg/env"
	"github.com/landmark-crm/landmark/internal/pkg/events"
	"github.com/landmark-crm/landmark/internal/pkg/metrics/counter"
	"github.com/landmark-crm/landmark/internal/pkg/router"
	"github.com/landmark-crm/landmark/internal/pkg/usage"
)

func main() {
	app, shutdown := NewApplication()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		_ = app.Shutdown()
	}()

	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	shutdown()
	if err != nil {
		log.Fatal(err)
	}
}

// NewApplication wires the full service. The returned shutdown func stops the
// event bus and the usage notifier after the HTTP listener has drained.
func NewApplication() (*fiber.App, func()) {
	env.SetupEnvFile()
	database.SetupDatabase()

	db := database.GetDB()
	cacheClient := cache.NewClientFromEnv()
	repos := repository.NewFactory(db).GetRepositories()

	// Startup fails fast on a missing or malformed price→tier map.
	tiers := entitlements.MustLoadPriceTierMap(env.GetEnv("BILLING_PRICE_TIER_MAP", ""))
	provider := billing.NewStripeProviderFromEnv()
	bus := events.NewBus(env.GetEnvInt("EVENTS_BUFFER_SIZE", 64))

	billingSvc := billing.NewServiceFromDB(db, provider, tiers, bus)
	tracker := usage.NewTracker(repos, bus, cacheClient)
	tracker.Start()

	usageCounter := counter.New(db, cacheClient)
	flushStop := startCounterFlusher(usageCounter)

	registry := entitlements.DefaultFeatureRegistry()

	billingCtrl := controllers.NewBillingController(billingSvc, provider)
	profileCtrl := controllers.NewProfileController(billingSvc, cacheClient, registry)
	profileCtrl.StartInvalidator(bus)
	entitlementsCtrl := controllers.NewEntitlementsController()
	pricingCtrl := controllers.NewPricingController()
	usageCtrl := controllers.NewUsageController(tracker, usageCounter)

	apiServer := apiv1.NewAPIServer(profileCtrl, entitlementsCtrl, pricingCtrl, usageCtrl)

	// init fiber app
	app := fiber.New(fiber.Config{
		AppName: "landmark",
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get(constants.MetricsRoute, monitor.New())

	// ROUTER
	router.InstallRouter(app, router.NewHttpRouter(billingCtrl), router.NewApiRouter(apiServer))

	shutdown := func() {
		close(flushStop)
		bus.Close()
		tracker.Stop()
		profileCtrl.StopInvalidator()
		_ = cacheClient.Close()
	}
	return app, shutdown
}

// startCounterFlusher drains buffered usage deltas periodically. Closing the
// returned channel triggers a final flush and stops the loop.
func startCounterFlusher(c *counter.Counter) chan struct{} {
	stop := make(chan struct{})
	interval := time.Duration(env.GetEnvInt("USAGE_FLUSH_INTERVAL_SECONDS", 30)) * time.Second
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := c.FlushAll(); err != nil {
					log.Printf("usage counter flush failed: %v", err)
				}
			case <-stop:
				if err := c.FlushAll(); err != nil {
					log.Printf("final usage counter flush failed: %v", err)
				}
				return
			}
		}
	}()
	return stop
}
