package usecase

import (
	"math"

	"github.com/restaurant-resolver/internal/domain"
	"github.com/restaurant-resolver/internal/pkg/utils"
)

// ComputeViewportBounds переводит камеру и пиксельный размер окна в
// географические границы видимой области. Нулевой размер окна означает
// "layout ещё не измерен" и даёт nil, а не ошибку.
func ComputeViewportBounds(camera domain.CameraSnapshot, width, height float64) *domain.ViewportBounds {
	if width <= 0 || height <= 0 {
		return nil
	}

	scale := utils.MercatorScale(camera.Zoom)
	centerX := utils.LonToX(utils.NormalizeLongitude(camera.Lon), camera.Zoom)
	centerY := utils.LatToY(camera.Lat, camera.Zoom)

	bounds := &domain.ViewportBounds{}

	if height >= scale {
		// Окно выше всей карты мира: широта покрыта целиком
		bounds.MinLat = -utils.MaxMercatorLatitude
		bounds.MaxLat = utils.MaxMercatorLatitude
	} else {
		top := math.Max(centerY-height/2, 0)
		bottom := math.Min(centerY+height/2, scale)
		bounds.MaxLat = utils.YToLat(top, camera.Zoom)
		bounds.MinLat = utils.YToLat(bottom, camera.Zoom)
	}

	if width >= scale {
		bounds.MinLon = -180
		bounds.MaxLon = 180
	} else {
		bounds.MinLon = utils.XToLon(wrapPixelX(centerX-width/2, scale), camera.Zoom)
		bounds.MaxLon = utils.XToLon(wrapPixelX(centerX+width/2, scale), camera.Zoom)
		// Прямоугольник пересекает антимеридиан, если левый край
		// оказался восточнее правого
		bounds.WrapsDateLine = bounds.MinLon > bounds.MaxLon
	}

	return bounds
}

// wrapPixelX заворачивает пиксельную координату X по ширине мира
func wrapPixelX(x, scale float64) float64 {
	x = math.Mod(x, scale)
	if x < 0 {
		x += scale
	}
	return x
}

// centerDistanceScore - квадрат пиксельного расстояния от точки до центра
// камеры на текущем зуме. Горизонтальная дельта берёт кратчайший из прямого
// и завёрнутого через антимеридиан путей.
func centerDistanceScore(camera domain.CameraSnapshot, lat, lon float64) float64 {
	scale := utils.MercatorScale(camera.Zoom)

	dx := math.Abs(utils.LonToX(utils.NormalizeLongitude(lon), camera.Zoom) -
		utils.LonToX(utils.NormalizeLongitude(camera.Lon), camera.Zoom))
	if wrapped := scale - dx; wrapped < dx {
		dx = wrapped
	}

	dy := utils.LatToY(lat, camera.Zoom) - utils.LatToY(camera.Lat, camera.Zoom)
	return dx*dx + dy*dy
}
