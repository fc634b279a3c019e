package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/restaurant-resolver/internal/domain"
	"github.com/restaurant-resolver/internal/pkg/errors"
	redisRepo "github.com/restaurant-resolver/internal/repository/redis"
)

func getGeoTestClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1, // Use DB 1 for tests
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}

	return client
}

func cleanupGeoIndex(ctx context.Context, client *redis.Client, points []domain.RestaurantPoint) {
	keys := []string{redisRepo.GeoIndexKey}
	for _, p := range points {
		keys = append(keys, redisRepo.MetaKeyPrefix+p.ID)
	}
	client.Del(ctx, keys...)
}

// TestGeoSearchRepository_SeedAndSearch tests seeding the index and searching near a point
func TestGeoSearchRepository_SeedAndSearch(t *testing.T) {
	client := getGeoTestClient(t)
	defer client.Close()

	repo := redisRepo.NewGeoSearchRepository(client, zap.NewNop())
	ctx := context.Background()

	award := "3 Stars"
	cuisine := "French"
	points := []domain.RestaurantPoint{
		{ID: "r1", Name: "Le Bernardin", Lat: 40.7614, Lon: -73.9819, Award: &award, Cuisine: &cuisine},
		{ID: "r2", Name: "Joe's Pizza", Lat: 40.7306, Lon: -74.0021},
		{ID: "r3", Name: "Septime", Lat: 48.8531, Lon: 2.3839}, // Paris, far away
	}

	defer cleanupGeoIndex(ctx, client, points)

	err := repo.Seed(ctx, points)
	require.NoError(t, err)

	// Search near midtown Manhattan: r1 is ~1km away, r2 ~4km, r3 on another continent
	results, err := repo.Search(ctx, 40.7580, -73.9855, 5)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Sorted by distance ascending
	assert.Equal(t, "r1", results[0].ID)
	assert.Equal(t, "Le Bernardin", results[0].Name)
	require.NotNil(t, results[0].Award)
	assert.Equal(t, "3 Stars", *results[0].Award)
	require.NotNil(t, results[0].Cuisine)
	assert.Equal(t, "French", *results[0].Cuisine)
	assert.Equal(t, domain.SourceNearbyIndex, results[0].Source)
	assert.InDelta(t, 40.7614, results[0].Lat, 0.001)

	assert.Equal(t, "r2", results[1].ID)
	assert.Nil(t, results[1].Award)
}

// TestGeoSearchRepository_SearchEmptyIndex tests searching when no points are indexed
func TestGeoSearchRepository_SearchEmptyIndex(t *testing.T) {
	client := getGeoTestClient(t)
	defer client.Close()

	repo := redisRepo.NewGeoSearchRepository(client, zap.NewNop())
	ctx := context.Background()

	client.Del(ctx, redisRepo.GeoIndexKey)

	results, err := repo.Search(ctx, 40.7580, -73.9855, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

// TestGeoSearchRepository_SeedEmpty tests that seeding with no points is a no-op
func TestGeoSearchRepository_SeedEmpty(t *testing.T) {
	client := getGeoTestClient(t)
	defer client.Close()

	repo := redisRepo.NewGeoSearchRepository(client, zap.NewNop())

	err := repo.Seed(context.Background(), nil)
	assert.NoError(t, err)
}

// TestGeoSearchRepository_SearchUnavailable tests error mapping when Redis is down
func TestGeoSearchRepository_SearchUnavailable(t *testing.T) {
	// Point the client at a port nothing listens on
	client := redis.NewClient(&redis.Options{
		Addr:        "localhost:6390",
		DialTimeout: 200 * time.Millisecond,
	})
	defer client.Close()

	repo := redisRepo.NewGeoSearchRepository(client, zap.NewNop())
	ctx := context.Background()

	_, err := repo.Search(ctx, 40.7580, -73.9855, 5)
	assert.ErrorIs(t, err, errors.ErrSearchUnavailable)

	assert.False(t, repo.IsAvailable(ctx))
}
