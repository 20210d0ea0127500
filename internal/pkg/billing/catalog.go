package billing

import (
	"context"
	"encoding/json"

	"github.com/landmark-crm/landmark/app/models"
)

// Catalog Mirror: pure upserts of provider products and prices keyed by the
// provider-assigned id. Re-applying the same payload is a no-op side-effect
// wise; concurrent mirrors of the same id converge last-writer-wins through
// the store's native upsert.

// UpsertProduct mirrors a provider product into the local catalog.
func (s *Service) UpsertProduct(ctx context.Context, in *ProviderProduct) error {
	_ = ctx
	if in == nil {
		return ValidationError("product payload is required")
	}

	product := &models.Product{
		ID:           in.ID,
		Active:       in.Active,
		Name:         in.Name,
		Description:  in.Description,
		ImageURL:     in.ImageURL,
		MetadataJSON: marshalMetadata(in.Metadata),
	}
	if err := s.validate.Struct(product); err != nil {
		return ValidationError("product %q: %v", in.ID, err)
	}
	return s.repo.UpsertProduct(product)
}

// UpsertPrice mirrors a provider price into the local catalog.
func (s *Service) UpsertPrice(ctx context.Context, in *ProviderPrice) error {
	_ = ctx
	if in == nil {
		return ValidationError("price payload is required")
	}

	price := &models.Price{
		ID:              in.ID,
		ProductID:       in.ProductID,
		Active:          in.Active,
		Currency:        in.Currency,
		UnitAmount:      in.UnitAmount,
		Interval:        normalizeInterval(in.Interval),
		IntervalCount:   in.IntervalCount,
		TrialPeriodDays: in.TrialPeriodDays,
		MetadataJSON:    marshalMetadata(in.Metadata),
	}
	if err := s.validate.Struct(price); err != nil {
		return ValidationError("price %q: %v", in.ID, err)
	}
	return s.repo.UpsertPrice(price)
}

func marshalMetadata(metadata map[string]string) string {
	if len(metadata) == 0 {
		return ""
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(raw)
}
