package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/landmark-crm/landmark/app/models"
	"github.com/landmark-crm/landmark/internal/pkg/billing"
	"github.com/landmark-crm/landmark/internal/pkg/entitlements"
	"github.com/landmark-crm/landmark/internal/pkg/events"
)

const profileCacheTTL = 60 * time.Second

// ProfileCache is the slice of the cache client the profile read side uses.
type ProfileCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ProfileController exposes the derived authorization projection to
// read-only callers.
type ProfileController struct {
	svc      *billing.Service
	cache    ProfileCache
	registry entitlements.FeatureRegistry
	wg       sync.WaitGroup
}

// NewProfileController creates the profile read controller. The cache is
// optional.
func NewProfileController(svc *billing.Service, cacheClient ProfileCache, registry entitlements.FeatureRegistry) *ProfileController {
	return &ProfileController{svc: svc, cache: cacheClient, registry: registry}
}

// StartInvalidator subscribes the controller to subscription change events
// and evicts the cached projection for the affected user, so a reconciled
// tier change is visible to authorization callers before the cache TTL runs
// out. Stop with StopInvalidator after closing the bus.
func (pc *ProfileController) StartInvalidator(bus *events.Bus) {
	if bus == nil || pc.cache == nil {
		return
	}
	ch := bus.Subscribe(events.KindSubscriptionChanged)

	pc.wg.Add(1)
	go func() {
		defer pc.wg.Done()
		for ev := range ch {
			if ev.UserID == 0 {
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := pc.cache.Delete(ctx, profileCacheKey(ev.UserID)); err != nil {
				log.Warnf("[Profile] Cache eviction for user %d failed: %v", ev.UserID, err)
			}
			cancel()
		}
	}()
}

// StopInvalidator waits for the eviction worker to finish. The event bus
// must be closed first; closing it ends the subscription channel.
func (pc *ProfileController) StopInvalidator() {
	pc.wg.Wait()
}

// HandleGetProfile returns the profile projection for a user.
func (pc *ProfileController) HandleGetProfile(c *fiber.Ctx) error {
	userID, err := parseUserID(c.Params("userID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_user_id"})
	}

	profile, err := pc.loadProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, billing.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "profile_not_found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "profile_load_failed"})
	}
	return c.JSON(profile)
}

// HandleCheckFeatureAccess reports whether a user's tier may use a feature.
// A missing profile or unmapped tier fails closed to the base tier; an
// unknown feature key is never granted.
func (pc *ProfileController) HandleCheckFeatureAccess(c *fiber.Ctx) error {
	featureKey := c.Params("featureKey")
	userID, err := parseUserID(c.Params("userID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_user_id"})
	}

	tier := string(entitlements.TierSingleUser)
	if profile, err := pc.loadProfile(c.Context(), userID); err == nil && profile.HasTier() {
		tier = profile.SubscriptionTier
	}

	return c.JSON(fiber.Map{
		"feature": featureKey,
		"tier":    tier,
		"allowed": entitlements.HasFeatureAccess(featureKey, tier, pc.registry),
	})
}

// loadProfile is a read-through cache over the profile projection.
func (pc *ProfileController) loadProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	key := profileCacheKey(userID)
	if pc.cache != nil {
		if raw, err := pc.cache.Get(ctx, key); err == nil {
			var cached models.Profile
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	profile, err := pc.svc.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pc.cache != nil {
		if raw, err := json.Marshal(profile); err == nil {
			_ = pc.cache.Set(ctx, key, string(raw), profileCacheTTL)
		}
	}
	return profile, nil
}

func profileCacheKey(userID uint) string {
	return "profile:" + strconv.FormatUint(uint64(userID), 10)
}

func parseUserID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid user id")
	}
	return uint(id), nil
}
