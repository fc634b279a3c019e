package domain

import "github.com/restaurant-resolver/internal/pkg/utils"

// CameraSnapshot - положение камеры карты. Принадлежит вызывающей
// стороне (карте), движок его не изменяет.
type CameraSnapshot struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Zoom float64 `json:"zoom"`
}

// ViewportBounds - географический прямоугольник видимой области.
// Производное значение: пересчитывается на каждое движение камеры и
// нигде не сохраняется. Порядок долгот осмыслен только вместе с
// WrapsDateLine.
type ViewportBounds struct {
	MinLat        float64 `json:"min_lat"`
	MaxLat        float64 `json:"max_lat"`
	MinLon        float64 `json:"min_lon"`
	MaxLon        float64 `json:"max_lon"`
	WrapsDateLine bool    `json:"wraps_date_line"`
}

// Contains проверяет попадание точки в границы с учётом антимеридиана.
// Широта точки приводится к рабочему диапазону проекции перед проверкой.
func (b ViewportBounds) Contains(lat, lon float64) bool {
	lat = utils.ClampLatitude(lat)
	if lat < b.MinLat || lat > b.MaxLat {
		return false
	}

	if b.WrapsDateLine {
		// Прямоугольник пересекает +-180: долгота попадает в одну из двух дуг
		return lon >= b.MinLon || lon <= b.MaxLon
	}
	return lon >= b.MinLon && lon <= b.MaxLon
}
