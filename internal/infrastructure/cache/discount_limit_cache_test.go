package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fieldsales/backend/internal/domain/partner"
	"github.com/fieldsales/backend/internal/domain/shared"
)

type MockAgencyRepository struct {
	mock.Mock
}

func (m *MockAgencyRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Agency, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Agency), args.Error(1)
}

func (m *MockAgencyRepository) FindByCode(ctx context.Context, code string) (*partner.Agency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Agency), args.Error(1)
}

func (m *MockAgencyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Agency, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Agency), args.Error(1)
}

func (m *MockAgencyRepository) Save(ctx context.Context, agency *partner.Agency) error {
	args := m.Called(ctx, agency)
	return args.Error(0)
}

func newTestAgency(t *testing.T, limit *decimal.Decimal) *partner.Agency {
	t.Helper()
	agency, err := partner.NewAgency("North Region", "NORTH")
	require.NoError(t, err)
	if limit != nil {
		require.NoError(t, agency.SetDiscountLimit(*limit))
	}
	return agency
}

func TestDiscountLimitCache_CachesRepositoryReads(t *testing.T) {
	limit := decimal.NewFromInt(30)
	agency := newTestAgency(t, &limit)

	repo := new(MockAgencyRepository)
	repo.On("FindByID", mock.Anything, agency.ID).Return(agency, nil).Once()

	cache := NewDiscountLimitCache(repo, time.Minute)

	got, err := cache.DiscountLimit(context.Background(), agency.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Equal(limit))

	// Second read must come from the cache
	got, err = cache.DiscountLimit(context.Background(), agency.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Equal(limit))

	repo.AssertExpectations(t)
}

func TestDiscountLimitCache_CachesNilLimit(t *testing.T) {
	agency := newTestAgency(t, nil)

	repo := new(MockAgencyRepository)
	repo.On("FindByID", mock.Anything, agency.ID).Return(agency, nil).Once()

	cache := NewDiscountLimitCache(repo, time.Minute)

	got, err := cache.DiscountLimit(context.Background(), agency.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = cache.DiscountLimit(context.Background(), agency.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	repo.AssertExpectations(t)
}

func TestDiscountLimitCache_InvalidateForcesReload(t *testing.T) {
	limit := decimal.NewFromInt(25)
	agency := newTestAgency(t, &limit)

	repo := new(MockAgencyRepository)
	repo.On("FindByID", mock.Anything, agency.ID).Return(agency, nil).Twice()

	cache := NewDiscountLimitCache(repo, time.Minute)

	_, err := cache.DiscountLimit(context.Background(), agency.ID)
	require.NoError(t, err)

	cache.Invalidate(agency.ID)

	_, err = cache.DiscountLimit(context.Background(), agency.ID)
	require.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestDiscountLimitCache_ExpiredEntryIsReloaded(t *testing.T) {
	limit := decimal.NewFromInt(15)
	agency := newTestAgency(t, &limit)

	repo := new(MockAgencyRepository)
	repo.On("FindByID", mock.Anything, agency.ID).Return(agency, nil).Twice()

	cache := NewDiscountLimitCache(repo, time.Nanosecond)

	_, err := cache.DiscountLimit(context.Background(), agency.ID)
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	_, err = cache.DiscountLimit(context.Background(), agency.ID)
	require.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestDiscountLimitCache_RepositoryErrorPropagates(t *testing.T) {
	repo := new(MockAgencyRepository)
	agencyID := uuid.New()
	repo.On("FindByID", mock.Anything, agencyID).Return(nil, shared.ErrNotFound)

	cache := NewDiscountLimitCache(repo, time.Minute)

	_, err := cache.DiscountLimit(context.Background(), agencyID)
	require.Error(t, err)
}

func TestDiscountLimitCache_ReturnsCopy(t *testing.T) {
	limit := decimal.NewFromInt(30)
	agency := newTestAgency(t, &limit)

	repo := new(MockAgencyRepository)
	repo.On("FindByID", mock.Anything, agency.ID).Return(agency, nil).Once()

	cache := NewDiscountLimitCache(repo, time.Minute)

	first, err := cache.DiscountLimit(context.Background(), agency.ID)
	require.NoError(t, err)

	// Mutating the returned value must not poison the cache
	*first = decimal.NewFromInt(99)

	second, err := cache.DiscountLimit(context.Background(), agency.ID)
	require.NoError(t, err)
	assert.True(t, second.Equal(decimal.NewFromInt(30)))
}
