package repository

import (
	"context"

	"github.com/restaurant-resolver/internal/domain"
)

// RestaurantRepository определяет методы для работы с датасетом ресторанов
type RestaurantRepository interface {
	// GetByID возвращает ресторан по ID
	GetByID(ctx context.Context, id string) (*domain.RestaurantPoint, error)

	// QueryNear возвращает рестораны в радиусе от точки
	QueryNear(ctx context.Context, lat, lon, radiusKm float64) ([]domain.RestaurantPoint, error)

	// All возвращает полный снимок датасета для отсечения по viewport
	All(ctx context.Context) ([]domain.RestaurantPoint, error)
}

// VisitRepository определяет доступ к отметкам посещённых ресторанов
type VisitRepository interface {
	// GetVisitedIDs возвращает снимок ID посещённых ресторанов
	GetVisitedIDs(ctx context.Context) (map[string]struct{}, error)

	// MarkVisited помечает ресторан как посещённый
	MarkVisited(ctx context.Context, restaurantID string) error
}
