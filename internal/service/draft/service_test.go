package draft

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ant0nk/Trimly-BookingService/internal/domain"
	"github.com/ant0nk/Trimly-BookingService/internal/infra/draftcache"
	directoryClient "github.com/ant0nk/Trimly-BookingService/internal/integrations/directory"
	"github.com/ant0nk/Trimly-BookingService/internal/service/draft/models"
)

type fakeStore struct {
	drafts map[int64]*domain.BookingDraft

	putErr error
	getErr error
}

func (s *fakeStore) Get(_ context.Context, customerID int64) (*domain.BookingDraft, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	d, ok := s.drafts[customerID]
	if !ok {
		return nil, draftcache.ErrDraftNotFound
	}
	return d, nil
}

func (s *fakeStore) Put(_ context.Context, draft *domain.BookingDraft) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.drafts[draft.CustomerID] = draft
	return nil
}

func (s *fakeStore) Delete(_ context.Context, customerID int64) error {
	delete(s.drafts, customerID)
	return nil
}

type fakeDirectory struct {
	variants map[int64]*directoryClient.Variant
	addOns   map[int64]directoryClient.AddOn

	err error
}

func (d *fakeDirectory) GetVariant(_ context.Context, _, variantID int64) (*directoryClient.Variant, error) {
	if d.err != nil {
		return nil, d.err
	}
	v, ok := d.variants[variantID]
	if !ok {
		return nil, directoryClient.ErrVariantNotFound
	}
	return v, nil
}

func (d *fakeDirectory) GetAddOns(_ context.Context, _ int64, addOnIDs []int64) ([]directoryClient.AddOn, error) {
	if d.err != nil {
		return nil, d.err
	}
	result := make([]directoryClient.AddOn, 0, len(addOnIDs))
	for _, id := range addOnIDs {
		a, ok := d.addOns[id]
		if !ok {
			return nil, directoryClient.ErrAddOnNotFound
		}
		result = append(result, a)
	}
	return result, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newEnv() (*Service, *fakeStore, *fakeDirectory) {
	store := &fakeStore{drafts: map[int64]*domain.BookingDraft{}}
	dir := &fakeDirectory{
		variants: map[int64]*directoryClient.Variant{
			10: {ID: 10, Name: "Стрижка классическая", Price: 1500, DurationMinutes: 60},
		},
		addOns: map[int64]directoryClient.AddOn{
			21: {ID: 21, Name: "Мытьё головы", Price: 300},
			22: {ID: 22, Name: "Укладка", Price: 500},
		},
	}
	return NewService(store, dir, nopLogger{}), store, dir
}

func TestUpsert_PricesComeFromCatalog(t *testing.T) {
	svc, store, _ := newEnv()

	start := time.Date(2026, 9, 14, 11, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	resp, err := svc.Upsert(context.Background(), &models.UpsertDraftRequest{
		CustomerID: 7,
		BusinessID: 1,
		LocationID: 2,
		ServiceID:  3,
		VariantID:  10,
		AddOnIDs:   []int64{21, 22},
		StartTime:  &start,
		EndTime:    &end,
	})
	require.NoError(t, err)

	assert.Equal(t, "Стрижка классическая", resp.VariantName)
	assert.Equal(t, 1500.0, resp.VariantPrice)
	assert.Equal(t, 2300.0, resp.TotalPrice)
	require.Len(t, resp.AddOns, 2)

	stored := store.drafts[7]
	require.NotNil(t, stored)
	assert.Equal(t, 2300.0, stored.TotalPrice)
	assert.NoError(t, stored.Validate())
}

func TestUpsert_PartialDraftWithoutVariant(t *testing.T) {
	svc, store, _ := newEnv()

	resp, err := svc.Upsert(context.Background(), &models.UpsertDraftRequest{
		CustomerID: 7,
		BusinessID: 1,
		LocationID: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, resp.TotalPrice)
	assert.Nil(t, resp.StartTime)

	// Частичный черновик сохраняется, но бронировать по нему ещё нельзя
	require.NotNil(t, store.drafts[7])
	assert.Error(t, store.drafts[7].Validate())
}

func TestUpsert_UnknownVariant(t *testing.T) {
	svc, _, _ := newEnv()

	_, err := svc.Upsert(context.Background(), &models.UpsertDraftRequest{
		CustomerID: 7,
		BusinessID: 1,
		LocationID: 2,
		VariantID:  999,
	})
	assert.ErrorIs(t, err, ErrVariantNotFound)
}

func TestUpsert_UnknownAddOn(t *testing.T) {
	svc, _, _ := newEnv()

	_, err := svc.Upsert(context.Background(), &models.UpsertDraftRequest{
		CustomerID: 7,
		BusinessID: 1,
		LocationID: 2,
		VariantID:  10,
		AddOnIDs:   []int64{999},
	})
	assert.ErrorIs(t, err, ErrAddOnNotFound)
}

func TestUpsert_ValidationErrors(t *testing.T) {
	svc, _, _ := newEnv()
	start := time.Date(2026, 9, 14, 11, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  models.UpsertDraftRequest
	}{
		{
			name: "non-positive customer id",
			req:  models.UpsertDraftRequest{CustomerID: 0, BusinessID: 1},
		},
		{
			name: "non-positive business id",
			req:  models.UpsertDraftRequest{CustomerID: 7, BusinessID: -1},
		},
		{
			name: "too many add-ons",
			req: models.UpsertDraftRequest{
				CustomerID: 7,
				BusinessID: 1,
				AddOnIDs:   make([]int64, domain.MaxAddOnsPerDraft+1),
			},
		},
		{
			name: "end time not after start time",
			req: models.UpsertDraftRequest{
				CustomerID: 7,
				BusinessID: 1,
				StartTime:  &start,
				EndTime:    &start,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upsert(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGet_NotFound(t *testing.T) {
	svc, _, _ := newEnv()

	_, err := svc.Get(context.Background(), 7)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestGet_CorruptedDraftTreatedAsMissing(t *testing.T) {
	svc, store, _ := newEnv()
	store.getErr = draftcache.ErrDecode

	_, err := svc.Get(context.Background(), 7)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestGet_StorageFailure(t *testing.T) {
	svc, store, _ := newEnv()
	store.getErr = errors.New("redis: connection refused")

	_, err := svc.Get(context.Background(), 7)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestReset_RemovesDraft(t *testing.T) {
	svc, store, _ := newEnv()
	store.drafts[7] = &domain.BookingDraft{CustomerID: 7}

	require.NoError(t, svc.Reset(context.Background(), 7))
	assert.NotContains(t, store.drafts, int64(7))

	// Повторный сброс не ошибка
	require.NoError(t, svc.Reset(context.Background(), 7))
}
