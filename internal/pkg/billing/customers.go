package billing

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/landmark-crm/landmark/app/models"
)

// metadata key linking a provider customer back to the local user.
const metadataAppUserIDKey = "app_user_id"

// ResolveCustomer returns the provider customer id bound to the user,
// creating the provider customer and the binding exactly once. Concurrent
// first-time calls are safe: the unique constraint on user_id makes the
// losing insert fail, and the loser re-reads and returns the winner's id.
func (s *Service) ResolveCustomer(ctx context.Context, userID uint, email string) (string, error) {
	email = strings.TrimSpace(email)
	if userID == 0 {
		return "", ValidationError("user_id is required")
	}
	if email == "" {
		return "", ValidationError("email is required")
	}

	existing, err := s.repo.GetCustomerByUserID(userID)
	if err == nil {
		return existing.ProviderCustomerID, nil
	}
	if !isRecordNotFound(err) {
		return "", err
	}

	// The binding is only written after provider creation succeeds, so a
	// provider failure leaves no partial state behind.
	created, err := s.provider.CreateCustomer(ctx, email, map[string]string{
		metadataAppUserIDKey: strconv.FormatUint(uint64(userID), 10),
	})
	if err != nil {
		return "", ExternalServiceError("create customer", err)
	}

	binding := newCustomerBinding(userID, created.ID)
	if err := s.repo.CreateCustomer(binding); err != nil {
		if errors.Is(err, ErrConflict) {
			// Lost the race: another resolver bound this user first.
			winner, readErr := s.repo.GetCustomerByUserID(userID)
			if readErr != nil {
				return "", readErr
			}
			return winner.ProviderCustomerID, nil
		}
		return "", err
	}
	return binding.ProviderCustomerID, nil
}

func newCustomerBinding(userID uint, providerCustomerID string) *models.Customer {
	return &models.Customer{
		UserID:             userID,
		ProviderCustomerID: providerCustomerID,
	}
}
