package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/restaurant-resolver/internal/domain"
	"github.com/restaurant-resolver/internal/domain/repository"
	"github.com/restaurant-resolver/internal/pkg/errors"
	"github.com/restaurant-resolver/internal/pkg/utils"
	"github.com/restaurant-resolver/internal/usecase/dto"
)

// SearchRadii - радиусы поиска по источникам в километрах
type SearchRadii struct {
	DatasetKm float64
	NearbyKm  float64
	RemoteKm  float64
}

// ResolveUseCase - use case разрешения ресторана по точке: объединяет
// кандидатов из датасета, гео-индекса и внешнего Places API и ранжирует
// их по похожести к текстовой подсказке.
type ResolveUseCase struct {
	restaurantRepo repository.RestaurantRepository
	nearbyRepo     repository.NearbySearchRepository
	placesRepo     repository.PlacesRepository
	visitRepo      repository.VisitRepository
	cacheRepo      repository.CacheRepository
	logger         *zap.Logger
	radii          SearchRadii
	placesCacheTTL time.Duration
}

// NewResolveUseCase - создание нового ResolveUseCase
func NewResolveUseCase(
	restaurantRepo repository.RestaurantRepository,
	nearbyRepo repository.NearbySearchRepository,
	placesRepo repository.PlacesRepository,
	visitRepo repository.VisitRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	radii SearchRadii,
	placesCacheTTL time.Duration,
) *ResolveUseCase {
	return &ResolveUseCase{
		restaurantRepo: restaurantRepo,
		nearbyRepo:     nearbyRepo,
		placesRepo:     placesRepo,
		visitRepo:      visitRepo,
		cacheRepo:      cacheRepo,
		logger:         logger,
		radii:          radii,
		placesCacheTTL: placesCacheTTL,
	}
}

// Resolve возвращает отранжированный список кандидатов для точки.
// Отказавший источник выбрасывается из слияния без ошибки: частичный
// результат всегда полезнее пустого при выборе ресторана.
func (uc *ResolveUseCase) Resolve(ctx context.Context, req dto.ResolveRequest) (*dto.ResolveResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}
	if req.RadiusKm != 0 && !utils.ValidateRadius(req.RadiusKm) {
		return nil, errors.ErrInvalidRadius
	}

	datasetRadius := uc.radii.DatasetKm
	if req.RadiusKm > 0 {
		datasetRadius = req.RadiusKm
	}

	visited, err := uc.visitRepo.GetVisitedIDs(ctx)
	if err != nil {
		uc.logger.Warn("Failed to load visited ids", zap.Error(err))
		visited = nil
	}

	// 1. Статичный датасет
	dataset, err := uc.restaurantRepo.QueryNear(ctx, req.Lat, req.Lon, datasetRadius)
	if err != nil {
		uc.logger.Warn("Dataset source failed, dropped from merge", zap.Error(err))
		dataset = nil
	}

	// 2. Гео-индекс поблизости (через single-flight кеш)
	var nearby []domain.RestaurantPoint
	if uc.nearbyRepo.IsAvailable(ctx) {
		nearby, err = uc.nearbyRepo.Search(ctx, req.Lat, req.Lon, uc.radii.NearbyKm)
		if err != nil {
			uc.logger.Warn("Nearby search failed, dropped from merge", zap.Error(err))
			nearby = nil
		}
	} else {
		uc.logger.Debug("Nearby search unavailable, skipped")
	}

	// 3. Внешний Places API - только по явному запросу и при наличии ключа
	var remote []domain.RestaurantPoint
	if req.IncludeRemote && uc.placesRepo.Enabled() {
		remote, err = uc.searchPlacesCached(ctx, req.Lat, req.Lon, uc.radii.RemoteKm)
		if err != nil {
			uc.logger.Warn("Remote places search failed, dropped from merge", zap.Error(err))
			remote = nil
		}
	}

	merged := MergeCandidates(dataset, nearby, remote, visited)

	hint := strings.TrimSpace(req.Hint)
	candidates := make([]domain.MatchCandidate, len(merged))
	for i, p := range merged {
		sim := 0.0
		if hint != "" {
			sim = utils.NameSimilarity(p.Name, hint)
		}
		candidates[i] = domain.MatchCandidate{
			RestaurantPoint: p,
			Similarity:      sim,
			IsLikelyMatch:   sim > domain.LikelyMatchThreshold,
		}
	}

	// Без подсказки сохраняется порядок источников (обычно по расстоянию)
	if hint != "" {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Similarity > candidates[j].Similarity
		})
	}

	out := make([]dto.ResolveCandidate, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, dto.ConvertCandidate(c))
	}

	return &dto.ResolveResponse{Candidates: out, Total: len(out)}, nil
}

// searchPlacesCached кеширует ответы Places API в Redis: внешние вызовы
// тарифицируются, а POI меняются медленно
func (uc *ResolveUseCase) searchPlacesCached(ctx context.Context, lat, lon, radiusKm float64) ([]domain.RestaurantPoint, error) {
	cacheKey := fmt.Sprintf("places:%.4f:%.4f:%g", lat, lon, radiusKm)

	cached, err := uc.cacheRepo.Get(ctx, cacheKey)
	if err == nil && cached != nil {
		var points []domain.RestaurantPoint
		if err := json.Unmarshal(cached, &points); err == nil {
			return points, nil
		}
		uc.logger.Warn("Failed to unmarshal cached places", zap.String("key", cacheKey), zap.Error(err))
	}

	points, err := uc.placesRepo.Search(ctx, lat, lon, radiusKm)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(points); err == nil {
		if err := uc.cacheRepo.Set(ctx, cacheKey, data, uc.placesCacheTTL); err != nil {
			uc.logger.Warn("Failed to cache places response", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	return points, nil
}

// MergeCandidates объединяет кандидатов из трёх источников. Результат
// гео-индекса или Places с тем же ID, что и уже посещённый ресторан из
// датасета, выбрасывается: посещённая запись всегда побеждает дубликат
// из менее доверенного источника. Слияния по близости координат между
// независимыми источниками нет намеренно, чтобы не склеивать разные
// заведения.
func MergeCandidates(dataset, nearby, remote []domain.RestaurantPoint, visited map[string]struct{}) []domain.RestaurantPoint {
	merged := make([]domain.RestaurantPoint, 0, len(dataset)+len(nearby)+len(remote))
	visitedDataset := make(map[string]struct{})

	for _, p := range dataset {
		if _, ok := visited[p.ID]; ok {
			p.Visited = true
			visitedDataset[p.ID] = struct{}{}
		}
		merged = append(merged, p)
	}

	appendSource := func(points []domain.RestaurantPoint) {
		for _, p := range points {
			if _, ok := visitedDataset[p.ID]; ok {
				continue
			}
			if _, ok := visited[p.ID]; ok {
				p.Visited = true
			}
			merged = append(merged, p)
		}
	}
	appendSource(nearby)
	appendSource(remote)

	return merged
}
