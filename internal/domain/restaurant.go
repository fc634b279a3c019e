package domain

// RestaurantSource определяет источник, из которого пришёл кандидат
type RestaurantSource string

const (
	// SourceDataset - статичный датасет ресторанов гида
	SourceDataset RestaurantSource = "dataset"
	// SourceNearbyIndex - быстрый гео-индекс поиска поблизости
	SourceNearbyIndex RestaurantSource = "nearby_index"
	// SourceRemotePlaces - внешний Places API
	SourceRemotePlaces RestaurantSource = "remote_places"
)

// RestaurantPoint представляет ресторан как точку на карте.
// ID уникален внутри источника; гео-индекс переиспользует ID датасета,
// поэтому точное совпадение ID между этими источниками осмысленно.
// Точки создаются заново на каждый запрос и после построения не изменяются.
type RestaurantPoint struct {
	ID      string           `json:"id" db:"id"`
	Name    string           `json:"name" db:"name"`
	Lat     float64          `json:"lat" db:"lat"`
	Lon     float64          `json:"lon" db:"lon"`
	Award   *string          `json:"award,omitempty" db:"award"`
	Cuisine *string          `json:"cuisine,omitempty" db:"cuisine"`
	Address *string          `json:"address,omitempty" db:"address"`
	Source  RestaurantSource `json:"source"`
	Visited bool             `json:"visited"`
}

// GeoPoint - нормализованная географическая точка
type GeoPoint struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}
