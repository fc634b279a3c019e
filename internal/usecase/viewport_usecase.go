package usecase

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/restaurant-resolver/internal/domain"
	"github.com/restaurant-resolver/internal/domain/repository"
	"github.com/restaurant-resolver/internal/pkg/errors"
	"github.com/restaurant-resolver/internal/pkg/utils"
	"github.com/restaurant-resolver/internal/usecase/dto"
)

// MaxViewportResults - максимум точек, передаваемых рендереру за один запрос
const MaxViewportResults = 500

// RankPolicy определяет порядок сортировки точек в viewport.
// Политика задаётся вызывающей стороной, скрытого умолчания у движка нет.
type RankPolicy string

const (
	// RankNearest - от центра камеры к краям
	RankNearest RankPolicy = "nearest"
	// RankPriority - по значимости награды, затем посещённые, затем имя
	RankPriority RankPolicy = "priority"
)

// ViewportUseCase - use case отсечения и ранжирования точек датасета
// по видимой области карты. Держит в памяти полный снимок датасета.
type ViewportUseCase struct {
	restaurantRepo repository.RestaurantRepository
	visitRepo      repository.VisitRepository
	logger         *zap.Logger

	mu     sync.RWMutex
	points []domain.RestaurantPoint
}

// NewViewportUseCase - создание нового ViewportUseCase
func NewViewportUseCase(
	restaurantRepo repository.RestaurantRepository,
	visitRepo repository.VisitRepository,
	logger *zap.Logger,
) *ViewportUseCase {
	return &ViewportUseCase{
		restaurantRepo: restaurantRepo,
		visitRepo:      visitRepo,
		logger:         logger,
	}
}

// Refresh перечитывает полный снимок датасета
func (uc *ViewportUseCase) Refresh(ctx context.Context) error {
	points, err := uc.restaurantRepo.All(ctx)
	if err != nil {
		uc.logger.Error("Failed to load dataset snapshot", zap.Error(err))
		return err
	}

	uc.mu.Lock()
	uc.points = points
	uc.mu.Unlock()

	uc.logger.Info("Dataset snapshot refreshed", zap.Int("points", len(points)))
	return nil
}

// Snapshot возвращает текущий снимок датасета
func (uc *ViewportUseCase) Snapshot() []domain.RestaurantPoint {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.points
}

// Query возвращает отсечённый и отранжированный список точек для камеры
func (uc *ViewportUseCase) Query(ctx context.Context, req dto.ViewportQueryRequest) (*dto.ViewportQueryResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}
	if !utils.ValidateZoom(req.Zoom) {
		return nil, errors.ErrInvalidZoom
	}

	camera := domain.CameraSnapshot{Lat: req.Lat, Lon: req.Lon, Zoom: req.Zoom}
	bounds := ComputeViewportBounds(camera, req.Width, req.Height)

	visited, err := uc.visitRepo.GetVisitedIDs(ctx)
	if err != nil {
		// Отсутствие отметок посещения не блокирует выдачу
		uc.logger.Warn("Failed to load visited ids", zap.Error(err))
		visited = nil
	}

	policy := RankPolicy(req.Rank)
	if policy == "" {
		policy = RankPriority
	}

	result := QueryViewport(uc.Snapshot(), bounds, camera, visited, policy)

	points := make([]dto.ViewportPoint, 0, len(result.Points))
	for _, p := range result.Points {
		points = append(points, dto.ConvertViewportPoint(p))
	}

	return &dto.ViewportQueryResponse{
		Points: points,
		Total:  result.Total,
		Bounds: bounds,
	}, nil
}

// ViewportQueryResult - результат отсечения по viewport
type ViewportQueryResult struct {
	// Points - не больше MaxViewportResults точек в заданном порядке
	Points []domain.RestaurantPoint
	// Total - количество точек в области до усечения
	Total int
}

// QueryViewport - чистая функция отсечения и ранжирования точек.
// Детерминирована: повторный вызов с теми же аргументами даёт тот же
// порядок (стабильная сортировка, ничьи разрешаются по имени).
func QueryViewport(
	points []domain.RestaurantPoint,
	bounds *domain.ViewportBounds,
	camera domain.CameraSnapshot,
	visited map[string]struct{},
	policy RankPolicy,
) ViewportQueryResult {
	if bounds == nil {
		return ViewportQueryResult{Points: []domain.RestaurantPoint{}}
	}

	type rankedPoint struct {
		point    domain.RestaurantPoint
		distance float64
		priority int
	}

	inView := make([]rankedPoint, 0, 256)
	for _, p := range points {
		if !bounds.Contains(p.Lat, p.Lon) {
			continue
		}
		if _, ok := visited[p.ID]; ok {
			p.Visited = true
		}
		inView = append(inView, rankedPoint{
			point:    p,
			distance: centerDistanceScore(camera, p.Lat, p.Lon),
			priority: domain.AwardPriority(p.Award),
		})
	}

	switch policy {
	case RankNearest:
		sort.SliceStable(inView, func(i, j int) bool {
			if inView[i].distance != inView[j].distance {
				return inView[i].distance < inView[j].distance
			}
			return inView[i].point.Name < inView[j].point.Name
		})
	default:
		sort.SliceStable(inView, func(i, j int) bool {
			a, b := inView[i], inView[j]
			if a.priority != b.priority {
				return a.priority > b.priority
			}
			if a.point.Visited != b.point.Visited {
				return a.point.Visited
			}
			return a.point.Name < b.point.Name
		})
	}

	total := len(inView)
	if len(inView) > MaxViewportResults {
		inView = inView[:MaxViewportResults]
	}

	out := make([]domain.RestaurantPoint, len(inView))
	for i, rp := range inView {
		out[i] = rp.point
	}

	return ViewportQueryResult{Points: out, Total: total}
}
