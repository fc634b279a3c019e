package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/restaurant-resolver/internal/domain"
	"github.com/restaurant-resolver/internal/pkg/errors"
)

const (
	// GeoIndexKey - ключ гео-индекса ресторанов
	GeoIndexKey = "restaurants:geo"
	// MetaKeyPrefix - префикс хешей с метаданными ресторанов
	MetaKeyPrefix = "restaurants:meta:"
	// GeoSearchLimit - максимум результатов одного гео-поиска
	GeoSearchLimit = 100
)

type GeoSearchRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewGeoSearchRepository создает поисковый репозиторий поверх Redis GEO
// индекса. Индекс наполняется из датасета при старте, поэтому ID в нём
// совпадают с ID ресторанов в PostgreSQL.
func NewGeoSearchRepository(client *redis.Client, logger *zap.Logger) *GeoSearchRepository {
	return &GeoSearchRepository{
		client: client,
		logger: logger,
	}
}

func (r *GeoSearchRepository) Search(ctx context.Context, lat, lon, radiusKm float64) ([]domain.RestaurantPoint, error) {
	locations, err := r.client.GeoSearchLocation(ctx, GeoIndexKey, &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Longitude:  lon,
			Latitude:   lat,
			Radius:     radiusKm,
			RadiusUnit: "km",
			Sort:       "ASC",
			Count:      GeoSearchLimit,
		},
		WithCoord: true,
	}).Result()
	if err != nil {
		r.logger.Error("Geo search failed",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.Float64("radius_km", radiusKm),
			zap.Error(err))
		return nil, errors.ErrSearchUnavailable
	}

	points := make([]domain.RestaurantPoint, 0, len(locations))
	for _, loc := range locations {
		p := domain.RestaurantPoint{
			ID:     loc.Name,
			Lat:    loc.Latitude,
			Lon:    loc.Longitude,
			Source: domain.SourceNearbyIndex,
		}

		// Метаданные лежат отдельным хешем; его отсутствие не критично
		meta, err := r.client.HGetAll(ctx, MetaKeyPrefix+loc.Name).Result()
		if err != nil {
			r.logger.Warn("Failed to load restaurant metadata",
				zap.String("id", loc.Name),
				zap.Error(err))
		} else {
			p.Name = meta["name"]
			if award, ok := meta["award"]; ok && award != "" {
				p.Award = &award
			}
			if cuisine, ok := meta["cuisine"]; ok && cuisine != "" {
				p.Cuisine = &cuisine
			}
		}

		points = append(points, p)
	}

	return points, nil
}

func (r *GeoSearchRepository) IsAvailable(ctx context.Context) bool {
	return r.client.Ping(ctx).Err() == nil
}

// Seed наполняет гео-индекс точками датасета. Вызывается при старте
// сервиса после загрузки снимка из PostgreSQL.
func (r *GeoSearchRepository) Seed(ctx context.Context, points []domain.RestaurantPoint) error {
	if len(points) == 0 {
		return nil
	}

	pipe := r.client.Pipeline()
	for _, p := range points {
		pipe.GeoAdd(ctx, GeoIndexKey, &redis.GeoLocation{
			Name:      p.ID,
			Longitude: p.Lon,
			Latitude:  p.Lat,
		})

		meta := map[string]interface{}{"name": p.Name}
		if p.Award != nil {
			meta["award"] = *p.Award
		}
		if p.Cuisine != nil {
			meta["cuisine"] = *p.Cuisine
		}
		pipe.HSet(ctx, MetaKeyPrefix+p.ID, meta)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to seed geo index", zap.Int("points", len(points)), zap.Error(err))
		return fmt.Errorf("failed to seed geo index: %w", err)
	}

	r.logger.Info("Geo index seeded", zap.Int("points", len(points)))
	return nil
}
