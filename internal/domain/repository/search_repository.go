package repository

import (
	"context"

	"github.com/restaurant-resolver/internal/domain"
)

// NearbySearchRepository определяет быстрый гео-индекс поиска ресторанов
// поблизости. Индекс может быть недоступен в некоторых окружениях -
// вызывающая сторона обязана проверять IsAvailable и деградировать
// пропуском источника, а не ошибкой.
type NearbySearchRepository interface {
	// Search возвращает рестораны в радиусе от точки
	Search(ctx context.Context, lat, lon, radiusKm float64) ([]domain.RestaurantPoint, error)

	// IsAvailable сообщает, доступен ли индекс
	IsAvailable(ctx context.Context) bool
}

// PlacesRepository определяет методы для работы с внешним Places API
type PlacesRepository interface {
	// Search возвращает заведения в радиусе от точки
	Search(ctx context.Context, lat, lon, radiusKm float64) ([]domain.RestaurantPoint, error)

	// Enabled сообщает, настроен ли клиент. Отсутствие учётных данных -
	// валидное состояние "источник выключен", а не ошибка.
	Enabled() bool
}
