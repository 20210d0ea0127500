package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertProduct(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, newFakeProvider())
	ctx := context.Background()

	err := svc.UpsertProduct(ctx, &ProviderProduct{
		ID:       "prod_1",
		Active:   true,
		Name:     "Landmark Team",
		Metadata: map[string]string{"plan_type": "team"},
	})
	require.NoError(t, err)

	stored := repo.products["prod_1"]
	require.NotNil(t, stored)
	assert.Equal(t, "Landmark Team", stored.Name)
	assert.Contains(t, stored.MetadataJSON, "plan_type")

	// Re-applying the same payload converges to the same row.
	require.NoError(t, svc.UpsertProduct(ctx, &ProviderProduct{
		ID:     "prod_1",
		Active: false,
		Name:   "Landmark Team",
	}))
	assert.False(t, repo.products["prod_1"].Active)
}

func TestUpsertProduct_Validation(t *testing.T) {
	svc := newTestService(newFakeRepository(), newFakeProvider())
	ctx := context.Background()

	assert.ErrorIs(t, svc.UpsertProduct(ctx, nil), ErrValidation)
	assert.ErrorIs(t, svc.UpsertProduct(ctx, &ProviderProduct{Name: "no id"}), ErrValidation)
	assert.ErrorIs(t, svc.UpsertProduct(ctx, &ProviderProduct{ID: "prod_1"}), ErrValidation)
}

func TestUpsertPrice(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, newFakeProvider())
	ctx := context.Background()

	amount := int64(4900)
	err := svc.UpsertPrice(ctx, &ProviderPrice{
		ID:         "price_team",
		ProductID:  "prod_1",
		Active:     true,
		Currency:   "usd",
		UnitAmount: &amount,
		Interval:   "MONTH",
	})
	require.NoError(t, err)

	stored := repo.prices["price_team"]
	require.NotNil(t, stored)
	assert.Equal(t, "month", stored.Interval)
	require.NotNil(t, stored.UnitAmount)
	assert.EqualValues(t, 4900, *stored.UnitAmount)
}

func TestUpsertPrice_Validation(t *testing.T) {
	svc := newTestService(newFakeRepository(), newFakeProvider())
	ctx := context.Background()

	assert.ErrorIs(t, svc.UpsertPrice(ctx, nil), ErrValidation)
	assert.ErrorIs(t, svc.UpsertPrice(ctx, &ProviderPrice{ProductID: "prod_1", Currency: "usd"}), ErrValidation)
	assert.ErrorIs(t, svc.UpsertPrice(ctx, &ProviderPrice{ID: "price_1", Currency: "usd"}), ErrValidation)
	assert.ErrorIs(t, svc.UpsertPrice(ctx, &ProviderPrice{ID: "price_1", ProductID: "prod_1", Currency: "dollars"}), ErrValidation)
}

func TestMarshalMetadata(t *testing.T) {
	assert.Equal(t, "", marshalMetadata(nil))
	assert.Equal(t, "", marshalMetadata(map[string]string{}))
	assert.JSONEq(t, `{"a":"b"}`, marshalMetadata(map[string]string{"a": "b"}))
}
