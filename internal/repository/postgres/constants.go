package postgres

// Константы для радиусов и лимитов запросов
const (
	// LimitRestaurants - лимит выборки ресторанов в радиусе от точки
	LimitRestaurants = 200
	// DefaultRadiusKm - радиус поиска по умолчанию в километрах
	DefaultRadiusKm = 5.0
	// MaxRadiusKm - максимальный радиус поиска в километрах
	MaxRadiusKm = 100.0
)

// Константы для геометрии
const (
	// SRID4326 - WGS84 coordinate system
	SRID4326 = 4326
	// SRID3857 - Web Mercator projection
	SRID3857 = 3857
)
