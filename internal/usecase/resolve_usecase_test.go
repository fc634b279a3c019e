package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/restaurant-resolver/internal/domain"
	"github.com/restaurant-resolver/internal/pkg/errors"
	"github.com/restaurant-resolver/internal/usecase"
	"github.com/restaurant-resolver/internal/usecase/dto"
)

// MockRestaurantRepository is a mock of RestaurantRepository
type MockRestaurantRepository struct {
	mock.Mock
}

func (m *MockRestaurantRepository) GetByID(ctx context.Context, id string) (*domain.RestaurantPoint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RestaurantPoint), args.Error(1)
}

func (m *MockRestaurantRepository) QueryNear(ctx context.Context, lat, lon, radiusKm float64) ([]domain.RestaurantPoint, error) {
	args := m.Called(ctx, lat, lon, radiusKm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RestaurantPoint), args.Error(1)
}

func (m *MockRestaurantRepository) All(ctx context.Context) ([]domain.RestaurantPoint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RestaurantPoint), args.Error(1)
}

// MockVisitRepository is a mock of VisitRepository
type MockVisitRepository struct {
	mock.Mock
}

func (m *MockVisitRepository) GetVisitedIDs(ctx context.Context) (map[string]struct{}, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]struct{}), args.Error(1)
}

func (m *MockVisitRepository) MarkVisited(ctx context.Context, restaurantID string) error {
	args := m.Called(ctx, restaurantID)
	return args.Error(0)
}

// MockNearbySearchRepository is a mock of NearbySearchRepository
type MockNearbySearchRepository struct {
	mock.Mock
}

func (m *MockNearbySearchRepository) Search(ctx context.Context, lat, lon, radiusKm float64) ([]domain.RestaurantPoint, error) {
	args := m.Called(ctx, lat, lon, radiusKm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RestaurantPoint), args.Error(1)
}

func (m *MockNearbySearchRepository) IsAvailable(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

// MockPlacesRepository is a mock of PlacesRepository
type MockPlacesRepository struct {
	mock.Mock
}

func (m *MockPlacesRepository) Search(ctx context.Context, lat, lon, radiusKm float64) ([]domain.RestaurantPoint, error) {
	args := m.Called(ctx, lat, lon, radiusKm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RestaurantPoint), args.Error(1)
}

func (m *MockPlacesRepository) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func buildResolveUC(
	restaurantRepo *MockRestaurantRepository,
	nearbyRepo *MockNearbySearchRepository,
	placesRepo *MockPlacesRepository,
	visitRepo *MockVisitRepository,
	cacheRepo *MockCacheRepository,
) *usecase.ResolveUseCase {
	return usecase.NewResolveUseCase(
		restaurantRepo,
		nearbyRepo,
		placesRepo,
		visitRepo,
		cacheRepo,
		zap.NewNop(),
		usecase.SearchRadii{DatasetKm: 5, NearbyKm: 2, RemoteKm: 2},
		15*time.Minute,
	)
}

func TestResolveUseCase_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("ranks candidates by hint similarity", func(t *testing.T) {
		restaurantRepo := &MockRestaurantRepository{}
		nearbyRepo := &MockNearbySearchRepository{}
		placesRepo := &MockPlacesRepository{}
		visitRepo := &MockVisitRepository{}
		cacheRepo := &MockCacheRepository{}

		visitRepo.On("GetVisitedIDs", mock.Anything).Return(map[string]struct{}{}, nil)
		restaurantRepo.On("QueryNear", mock.Anything, 40.7614, -73.9819, 5.0).Return([]domain.RestaurantPoint{
			{ID: "r1", Name: "Le Bernardin", Lat: 40.7614, Lon: -73.9819, Source: domain.SourceDataset},
			{ID: "r2", Name: "Joe's Pizza", Lat: 40.7615, Lon: -73.982, Source: domain.SourceDataset},
		}, nil)
		nearbyRepo.On("IsAvailable", mock.Anything).Return(false)

		uc := buildResolveUC(restaurantRepo, nearbyRepo, placesRepo, visitRepo, cacheRepo)

		resp, err := uc.Resolve(ctx, dto.ResolveRequest{
			Lat:  40.7614,
			Lon:  -73.9819,
			Hint: "Bernardin",
		})
		require.NoError(t, err)
		require.Len(t, resp.Candidates, 2)
		assert.Equal(t, "Le Bernardin", resp.Candidates[0].Name)
		assert.True(t, resp.Candidates[0].IsLikelyMatch)
		assert.False(t, resp.Candidates[1].IsLikelyMatch)
	})

	t.Run("visited dataset id wins over nearby duplicate", func(t *testing.T) {
		restaurantRepo := &MockRestaurantRepository{}
		nearbyRepo := &MockNearbySearchRepository{}
		placesRepo := &MockPlacesRepository{}
		visitRepo := &MockVisitRepository{}
		cacheRepo := &MockCacheRepository{}

		visitRepo.On("GetVisitedIDs", mock.Anything).Return(map[string]struct{}{"r1": {}}, nil)
		restaurantRepo.On("QueryNear", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]domain.RestaurantPoint{
			{ID: "r1", Name: "Le Bernardin", Source: domain.SourceDataset},
		}, nil)
		nearbyRepo.On("IsAvailable", mock.Anything).Return(true)
		nearbyRepo.On("Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]domain.RestaurantPoint{
			// Гео-индекс переиспользует ID датасета
			{ID: "r1", Name: "Le Bernardin", Source: domain.SourceNearbyIndex},
			{ID: "r9", Name: "Aquavit", Source: domain.SourceNearbyIndex},
		}, nil)

		uc := buildResolveUC(restaurantRepo, nearbyRepo, placesRepo, visitRepo, cacheRepo)

		resp, err := uc.Resolve(ctx, dto.ResolveRequest{Lat: 40.76, Lon: -73.98})
		require.NoError(t, err)
		require.Len(t, resp.Candidates, 2)

		// Посещённая запись датасета вытеснила дубликат из гео-индекса
		assert.Equal(t, "r1", resp.Candidates[0].ID)
		assert.Equal(t, string(domain.SourceDataset), resp.Candidates[0].Source)
		assert.True(t, resp.Candidates[0].Visited)
		assert.Equal(t, "r9", resp.Candidates[1].ID)
	})

	t.Run("failed source dropped from merge", func(t *testing.T) {
		restaurantRepo := &MockRestaurantRepository{}
		nearbyRepo := &MockNearbySearchRepository{}
		placesRepo := &MockPlacesRepository{}
		visitRepo := &MockVisitRepository{}
		cacheRepo := &MockCacheRepository{}

		visitRepo.On("GetVisitedIDs", mock.Anything).Return(map[string]struct{}{}, nil)
		restaurantRepo.On("QueryNear", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]domain.RestaurantPoint{
			{ID: "r1", Name: "Le Bernardin", Source: domain.SourceDataset},
		}, nil)
		nearbyRepo.On("IsAvailable", mock.Anything).Return(true)
		nearbyRepo.On("Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.ErrSearchUnavailable)

		uc := buildResolveUC(restaurantRepo, nearbyRepo, placesRepo, visitRepo, cacheRepo)

		resp, err := uc.Resolve(ctx, dto.ResolveRequest{Lat: 40.76, Lon: -73.98})
		require.NoError(t, err)
		require.Len(t, resp.Candidates, 1)
		assert.Equal(t, "r1", resp.Candidates[0].ID)
	})

	t.Run("remote places requires opt-in and token", func(t *testing.T) {
		restaurantRepo := &MockRestaurantRepository{}
		nearbyRepo := &MockNearbySearchRepository{}
		placesRepo := &MockPlacesRepository{}
		visitRepo := &MockVisitRepository{}
		cacheRepo := &MockCacheRepository{}

		visitRepo.On("GetVisitedIDs", mock.Anything).Return(map[string]struct{}{}, nil)
		restaurantRepo.On("QueryNear", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return([]domain.RestaurantPoint{}, nil)
		nearbyRepo.On("IsAvailable", mock.Anything).Return(false)
		placesRepo.On("Enabled").Return(false)

		uc := buildResolveUC(restaurantRepo, nearbyRepo, placesRepo, visitRepo, cacheRepo)

		resp, err := uc.Resolve(ctx, dto.ResolveRequest{Lat: 40.76, Lon: -73.98, IncludeRemote: true})
		require.NoError(t, err)
		assert.Empty(t, resp.Candidates)
		placesRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("remote places responses cached", func(t *testing.T) {
		restaurantRepo := &MockRestaurantRepository{}
		nearbyRepo := &MockNearbySearchRepository{}
		placesRepo := &MockPlacesRepository{}
		visitRepo := &MockVisitRepository{}
		cacheRepo := &MockCacheRepository{}

		visitRepo.On("GetVisitedIDs", mock.Anything).Return(map[string]struct{}{}, nil)
		restaurantRepo.On("QueryNear", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return([]domain.RestaurantPoint{}, nil)
		nearbyRepo.On("IsAvailable", mock.Anything).Return(false)
		placesRepo.On("Enabled").Return(true)
		placesRepo.On("Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]domain.RestaurantPoint{
			{ID: "places:x1", Name: "Septime", Source: domain.SourceRemotePlaces},
		}, nil).Once()

		cacheRepo.On("Get", mock.Anything, mock.Anything).Return(nil, nil)
		cacheRepo.On("Set", mock.Anything, mock.Anything, mock.Anything, 15*time.Minute).Return(nil)

		uc := buildResolveUC(restaurantRepo, nearbyRepo, placesRepo, visitRepo, cacheRepo)

		resp, err := uc.Resolve(ctx, dto.ResolveRequest{Lat: 48.85, Lon: 2.38, IncludeRemote: true})
		require.NoError(t, err)
		require.Len(t, resp.Candidates, 1)
		assert.Equal(t, "places:x1", resp.Candidates[0].ID)

		cacheRepo.AssertCalled(t, "Set", mock.Anything, "places:48.8500:2.3800:2", mock.Anything, 15*time.Minute)
	})

	t.Run("invalid coordinates rejected", func(t *testing.T) {
		restaurantRepo := &MockRestaurantRepository{}
		nearbyRepo := &MockNearbySearchRepository{}
		placesRepo := &MockPlacesRepository{}
		visitRepo := &MockVisitRepository{}
		cacheRepo := &MockCacheRepository{}

		uc := buildResolveUC(restaurantRepo, nearbyRepo, placesRepo, visitRepo, cacheRepo)

		_, err := uc.Resolve(ctx, dto.ResolveRequest{Lat: 91, Lon: 0})
		assert.ErrorIs(t, err, errors.ErrInvalidCoordinates)
	})

	t.Run("request radius overrides dataset default", func(t *testing.T) {
		restaurantRepo := &MockRestaurantRepository{}
		nearbyRepo := &MockNearbySearchRepository{}
		placesRepo := &MockPlacesRepository{}
		visitRepo := &MockVisitRepository{}
		cacheRepo := &MockCacheRepository{}

		visitRepo.On("GetVisitedIDs", mock.Anything).Return(map[string]struct{}{}, nil)
		restaurantRepo.On("QueryNear", mock.Anything, 40.76, -73.98, 1.5).
			Return([]domain.RestaurantPoint{}, nil)
		nearbyRepo.On("IsAvailable", mock.Anything).Return(false)

		uc := buildResolveUC(restaurantRepo, nearbyRepo, placesRepo, visitRepo, cacheRepo)

		_, err := uc.Resolve(ctx, dto.ResolveRequest{Lat: 40.76, Lon: -73.98, RadiusKm: 1.5})
		require.NoError(t, err)
		restaurantRepo.AssertExpectations(t)
	})
}

func TestMergeCandidates(t *testing.T) {
	t.Run("unvisited dataset id does not shadow nearby", func(t *testing.T) {
		dataset := []domain.RestaurantPoint{{ID: "r1", Source: domain.SourceDataset}}
		nearby := []domain.RestaurantPoint{{ID: "r1", Source: domain.SourceNearbyIndex}}

		merged := usecase.MergeCandidates(dataset, nearby, nil, nil)
		// Без отметки посещения дубликат не выбрасывается
		assert.Len(t, merged, 2)
	})

	t.Run("visited flag propagates to all sources", func(t *testing.T) {
		nearby := []domain.RestaurantPoint{{ID: "r5", Source: domain.SourceNearbyIndex}}
		visited := map[string]struct{}{"r5": {}}

		merged := usecase.MergeCandidates(nil, nearby, nil, visited)
		require.Len(t, merged, 1)
		assert.True(t, merged[0].Visited)
	})

	t.Run("source order preserved", func(t *testing.T) {
		dataset := []domain.RestaurantPoint{{ID: "d1"}, {ID: "d2"}}
		nearby := []domain.RestaurantPoint{{ID: "n1"}}
		remote := []domain.RestaurantPoint{{ID: "p1"}}

		merged := usecase.MergeCandidates(dataset, nearby, remote, nil)
		require.Len(t, merged, 4)
		assert.Equal(t, "d1", merged[0].ID)
		assert.Equal(t, "d2", merged[1].ID)
		assert.Equal(t, "n1", merged[2].ID)
		assert.Equal(t, "p1", merged[3].ID)
	})
}
