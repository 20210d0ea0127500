package billing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/landmark-crm/landmark/app/models"
	"github.com/landmark-crm/landmark/internal/pkg/entitlements"
	"github.com/landmark-crm/landmark/internal/pkg/events"
	"gorm.io/gorm"
)

// Service is the subscription and entitlement reconciliation engine. All
// collaborators are injected; the service holds no hidden global state.
type Service struct {
	repo     Repository
	provider Provider
	tiers    *entitlements.PriceTierMap
	bus      *events.Bus
	validate *validator.Validate
}

// NewService creates the engine from injected collaborators. The event bus
// is optional; a nil bus disables change-event publication.
func NewService(repo Repository, provider Provider, tiers *entitlements.PriceTierMap, bus *events.Bus) *Service {
	return &Service{
		repo:     repo,
		provider: provider,
		tiers:    tiers,
		bus:      bus,
		validate: validator.New(),
	}
}

// NewServiceFromDB creates the engine from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, provider Provider, tiers *entitlements.PriceTierMap, bus *events.Bus) *Service {
	return NewService(NewRepository(db), provider, tiers, bus)
}

// GetProfile returns the stored authorization projection for a user.
func (s *Service) GetProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	_ = ctx
	if userID == 0 {
		return nil, ValidationError("user_id is required")
	}
	p, err := s.repo.GetProfileByUserID(userID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, NotFoundError("profile for user", uintToString(userID))
		}
		return nil, err
	}
	return p, nil
}

// RecordWebhookEvent persists webhook payloads idempotently. Events without
// a provider id are keyed by a payload hash so redeliveries still dedupe.
func (s *Service) RecordWebhookEvent(ctx context.Context, in WebhookEventInput) (bool, *models.WebhookEvent, error) {
	_ = ctx
	eventID := strings.TrimSpace(in.ProviderEventID)
	if eventID == "" {
		sum := sha256.Sum256([]byte(in.PayloadJSON))
		eventID = "hash:" + hex.EncodeToString(sum[:])
	}

	event := &models.WebhookEvent{
		ProviderEventID: eventID,
		EventType:       strings.TrimSpace(in.EventType),
		PayloadJSON:     in.PayloadJSON,
		SignatureValid:  in.SignatureValid,
	}
	return s.repo.CreateWebhookEventIfNotExists(event)
}

// MarkWebhookProcessed marks an event as processed and stores an optional error.
func (s *Service) MarkWebhookProcessed(ctx context.Context, webhookEventID uint, processingErr error) error {
	_ = ctx
	if webhookEventID == 0 {
		return ValidationError("webhook_event_id is required")
	}
	errMsg := ""
	if processingErr != nil {
		errMsg = processingErr.Error()
	}
	return s.repo.MarkWebhookProcessed(webhookEventID, errMsg)
}

func (s *Service) publish(ev events.Event) {
	if s.bus != nil {
		s.bus.Publish(ev)
	}
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func uintToString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
