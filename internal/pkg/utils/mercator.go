package utils

import "math"

const (
	// TileSize - размер тайла Web Mercator в пикселях
	TileSize = 256.0

	// MaxMercatorLatitude - широта, на которой проекция вырождается
	MaxMercatorLatitude = 85.05112878
)

// MercatorScale возвращает ширину мировой карты в пикселях для зума
func MercatorScale(zoom float64) float64 {
	return TileSize * math.Pow(2, zoom)
}

// LonToX проецирует долготу в пиксельную координату X
func LonToX(lon, zoom float64) float64 {
	return (lon + 180.0) / 360.0 * MercatorScale(zoom)
}

// LatToY проецирует широту в пиксельную координату Y
func LatToY(lat, zoom float64) float64 {
	latRad := ClampLatitude(lat) * math.Pi / 180.0
	merc := math.Log(math.Tan(math.Pi/4 + latRad/2))
	return (0.5 - merc/(2*math.Pi)) * MercatorScale(zoom)
}

// XToLon - обратная проекция пиксельной координаты X в долготу
func XToLon(x, zoom float64) float64 {
	return NormalizeLongitude(x/MercatorScale(zoom)*360.0 - 180.0)
}

// YToLat - обратная проекция пиксельной координаты Y в широту
func YToLat(y, zoom float64) float64 {
	n := math.Pi * (1 - 2*y/MercatorScale(zoom))
	return math.Atan(math.Sinh(n)) * 180.0 / math.Pi
}

// ClampLatitude ограничивает широту рабочим диапазоном проекции
func ClampLatitude(lat float64) float64 {
	return math.Max(-MaxMercatorLatitude, math.Min(MaxMercatorLatitude, lat))
}

// NormalizeLongitude приводит долготу к каноническому диапазону (-180, 180].
// Граничное значение -180 отображается в 180, функция идемпотентна.
func NormalizeLongitude(lon float64) float64 {
	lon = math.Mod(lon+180.0, 360.0)
	if lon <= 0 {
		lon += 360.0
	}
	return lon - 180.0
}
