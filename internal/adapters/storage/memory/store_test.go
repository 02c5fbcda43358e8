package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prmf/premium-api/internal/domain"
)

func seedRates(t *testing.T, store *RateStore, rates ...domain.RateRecord) {
	t.Helper()
	require.NoError(t, store.ReplaceAll(context.Background(), rates))
}

func TestRateStore_Find(t *testing.T) {
	store := NewRateStore()
	seedRates(t, store,
		domain.RateRecord{Age: 45, FamilySize: domain.FamilySizeM, Option1: 8000, Option2: 12500},
		domain.RateRecord{Age: 45, FamilySize: domain.FamilySizeMPlusOne, Option1: 15000},
	)

	t.Run("exact match", func(t *testing.T) {
		rate, err := store.Find(context.Background(), 45, domain.FamilySizeM)
		require.NoError(t, err)
		assert.Equal(t, 12500.0, rate.Option2)
	})

	t.Run("family size distinguishes rows", func(t *testing.T) {
		rate, err := store.Find(context.Background(), 45, domain.FamilySizeMPlusOne)
		require.NoError(t, err)
		assert.Equal(t, 15000.0, rate.Option1)
	})

	t.Run("no row for age", func(t *testing.T) {
		_, err := store.Find(context.Background(), 46, domain.FamilySizeM)
		assert.True(t, domain.IsRateNotFound(err))
	})
}

func TestRateStore_ReplaceAll_SwapsContents(t *testing.T) {
	store := NewRateStore()
	seedRates(t, store, domain.RateRecord{Age: 30, FamilySize: domain.FamilySizeM, Option1: 5000})

	seedRates(t, store, domain.RateRecord{Age: 31, FamilySize: domain.FamilySizeM, Option1: 5100})

	_, err := store.Find(context.Background(), 30, domain.FamilySizeM)
	assert.True(t, domain.IsRateNotFound(err), "replaced rows must be gone")

	rate, err := store.Find(context.Background(), 31, domain.FamilySizeM)
	require.NoError(t, err)
	assert.Equal(t, 5100.0, rate.Option1)
}

func TestRateStore_HealthCheck(t *testing.T) {
	store := NewRateStore()

	assert.Equal(t, "memory-rates", store.Name())
	assert.NoError(t, store.Check(context.Background()))
}

func TestHistoryStore_Append_AssignsIDAndTimestamp(t *testing.T) {
	store := NewHistoryStore()
	owner := "user-1"

	err := store.Append(context.Background(), &domain.HistoryRecord{
		OwnerID:       &owner,
		Age:           45,
		BenefitOption: domain.BenefitOption1,
		FamilySize:    domain.FamilySizeM,
		PremiumAmount: 8000,
		PaymentType:   domain.PaymentTypeAnnual,
		BenefitLabel:  "Option I",
	})
	require.NoError(t, err)

	records, err := store.ListByOwner(context.Background(), owner, domain.HistoryLimit)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.NotEmpty(t, records[0].ID)
	assert.False(t, records[0].CreatedAt.IsZero())
}

func TestHistoryStore_ListByOwner_NewestFirst(t *testing.T) {
	store := NewHistoryStore()
	owner := "user-1"
	base := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		err := store.Append(context.Background(), &domain.HistoryRecord{
			ID:        fmt.Sprintf("q-%d", i),
			OwnerID:   &owner,
			Age:       40 + i,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	records, err := store.ListByOwner(context.Background(), owner, domain.HistoryLimit)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "q-2", records[0].ID)
	assert.Equal(t, "q-1", records[1].ID)
	assert.Equal(t, "q-0", records[2].ID)
}

func TestHistoryStore_ListByOwner_CapsAtLimit(t *testing.T) {
	store := NewHistoryStore()
	owner := "user-1"
	base := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < domain.HistoryLimit+10; i++ {
		err := store.Append(context.Background(), &domain.HistoryRecord{
			ID:        fmt.Sprintf("q-%d", i),
			OwnerID:   &owner,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	records, err := store.ListByOwner(context.Background(), owner, domain.HistoryLimit)
	require.NoError(t, err)
	assert.Len(t, records, domain.HistoryLimit)
	// Newest records survive the cap.
	assert.Equal(t, fmt.Sprintf("q-%d", domain.HistoryLimit+9), records[0].ID)
}

func TestHistoryStore_ListByOwner_FiltersOtherOwners(t *testing.T) {
	store := NewHistoryStore()
	alice := "alice"
	bob := "bob"

	require.NoError(t, store.Append(context.Background(), &domain.HistoryRecord{ID: "a-1", OwnerID: &alice}))
	require.NoError(t, store.Append(context.Background(), &domain.HistoryRecord{ID: "b-1", OwnerID: &bob}))
	require.NoError(t, store.Append(context.Background(), &domain.HistoryRecord{ID: "anon"}))

	records, err := store.ListByOwner(context.Background(), alice, domain.HistoryLimit)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a-1", records[0].ID)
}
