package cache

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/restaurant-resolver/internal/domain"
	"github.com/restaurant-resolver/internal/domain/repository"
)

// SearchCache - кеширующая обёртка над поиском поблизости. Повторные
// запросы с теми же координатами отдаются из памяти, а конкурентные
// запросы по одному ключу схлопываются в один вызов через singleflight.
// Успешный результат хранится до конца жизни процесса, ошибка не
// кешируется: следующий вызов с тем же ключом повторит поиск.
type SearchCache struct {
	inner  repository.NearbySearchRepository
	logger *zap.Logger

	group   singleflight.Group
	mu      sync.RWMutex
	results map[string][]domain.RestaurantPoint
}

func NewSearchCache(inner repository.NearbySearchRepository, logger *zap.Logger) *SearchCache {
	return &SearchCache{
		inner:   inner,
		logger:  logger,
		results: make(map[string][]domain.RestaurantPoint),
	}
}

func (c *SearchCache) Search(ctx context.Context, lat, lon, radiusKm float64) ([]domain.RestaurantPoint, error) {
	key := searchKey(lat, lon, radiusKm)

	c.mu.RLock()
	cached, ok := c.results[key]
	c.mu.RUnlock()
	if ok {
		c.logger.Debug("Nearby search cache hit", zap.String("key", key))
		return cached, nil
	}

	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		points, err := c.inner.Search(ctx, lat, lon, radiusKm)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.results[key] = points
		c.mu.Unlock()

		return points, nil
	})
	if err != nil {
		return nil, err
	}

	if shared {
		c.logger.Debug("Nearby search call deduplicated", zap.String("key", key))
	}

	return v.([]domain.RestaurantPoint), nil
}

func (c *SearchCache) IsAvailable(ctx context.Context) bool {
	return c.inner.IsAvailable(ctx)
}

// searchKey строит ключ кеша: координаты округляются до четырёх знаков
// (~11 метров), поэтому близкие точки попадают в одну запись
func searchKey(lat, lon, radiusKm float64) string {
	return fmt.Sprintf("%.4f:%.4f:%g", lat, lon, radiusKm)
}
