package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMercatorScale(t *testing.T) {
	assert.Equal(t, 256.0, MercatorScale(0))
	assert.Equal(t, 512.0, MercatorScale(1))
	assert.Equal(t, 256.0*1024, MercatorScale(10))
}

func TestLonToX(t *testing.T) {
	t.Run("world edges at zoom 0", func(t *testing.T) {
		assert.InDelta(t, 0.0, LonToX(-180, 0), 1e-9)
		assert.InDelta(t, 128.0, LonToX(0, 0), 1e-9)
		assert.InDelta(t, 256.0, LonToX(180, 0), 1e-9)
	})

	t.Run("scales with zoom", func(t *testing.T) {
		assert.InDelta(t, 2*LonToX(45, 3), LonToX(45, 4), 1e-9)
	})
}

func TestLatToY(t *testing.T) {
	t.Run("equator maps to middle", func(t *testing.T) {
		assert.InDelta(t, 128.0, LatToY(0, 0), 1e-9)
	})

	t.Run("north is up", func(t *testing.T) {
		assert.Less(t, LatToY(60, 0), LatToY(0, 0))
		assert.Greater(t, LatToY(-60, 0), LatToY(0, 0))
	})

	t.Run("poles clamp to working range", func(t *testing.T) {
		// За пределами рабочей широты проекция не уходит в бесконечность
		assert.Equal(t, LatToY(MaxMercatorLatitude, 5), LatToY(90, 5))
		assert.Equal(t, LatToY(-MaxMercatorLatitude, 5), LatToY(-90, 5))
	})
}

func TestProjectionRoundtrip(t *testing.T) {
	coords := []struct {
		lat, lon float64
	}{
		{0, 0},
		{48.8566, 2.3522},
		{40.7128, -74.0060},
		{-33.8688, 151.2093},
		{64.1466, -21.9426},
	}

	for _, c := range coords {
		for _, zoom := range []float64{0, 5, 12, 18} {
			lon := XToLon(LonToX(c.lon, zoom), zoom)
			lat := YToLat(LatToY(c.lat, zoom), zoom)
			assert.InDelta(t, c.lon, lon, 1e-6, "lon roundtrip at zoom %v", zoom)
			assert.InDelta(t, c.lat, lat, 1e-6, "lat roundtrip at zoom %v", zoom)
		}
	}
}

func TestClampLatitude(t *testing.T) {
	assert.Equal(t, MaxMercatorLatitude, ClampLatitude(90))
	assert.Equal(t, -MaxMercatorLatitude, ClampLatitude(-89.9))
	assert.Equal(t, 45.0, ClampLatitude(45))
}

func TestNormalizeLongitude(t *testing.T) {
	t.Run("wraps out of range values", func(t *testing.T) {
		assert.InDelta(t, -170.0, NormalizeLongitude(190), 1e-9)
		assert.InDelta(t, 170.0, NormalizeLongitude(-190), 1e-9)
		assert.InDelta(t, 0.0, NormalizeLongitude(360), 1e-9)
		assert.InDelta(t, 10.0, NormalizeLongitude(730), 1e-9)
	})

	t.Run("negative dateline maps to positive", func(t *testing.T) {
		assert.Equal(t, 180.0, NormalizeLongitude(-180))
		assert.Equal(t, 180.0, NormalizeLongitude(180))
	})

	t.Run("idempotent", func(t *testing.T) {
		for _, lon := range []float64{-180, -179.99, -90, 0, 90, 179.99, 180, 540, -540} {
			once := NormalizeLongitude(lon)
			assert.Equal(t, once, NormalizeLongitude(once), "lon=%v", lon)
			assert.Greater(t, once, -180.0)
			assert.LessOrEqual(t, once, 180.0)
		}
	})
}
