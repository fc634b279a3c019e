package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/restaurant-resolver/internal/config"
	"github.com/restaurant-resolver/internal/domain"
	"github.com/restaurant-resolver/internal/domain/repository"
)

// searchResponse - формат ответа Places API
type searchResponse struct {
	Code   string `json:"code"`
	Places []struct {
		ID      string  `json:"id"`
		Name    string  `json:"name"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
		Cuisine string  `json:"cuisine,omitempty"`
		Address string  `json:"address,omitempty"`
	} `json:"places"`
}

type client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	logger      *zap.Logger
}

// NewPlacesClient создает новый клиент внешнего Places API. Пустой
// access token означает, что источник выключен: Enabled вернёт false,
// и сервис продолжит работать на датасете и гео-индексе.
func NewPlacesClient(cfg *config.PlacesConfig, logger *zap.Logger) repository.PlacesRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		logger:      logger,
	}
}

func (c *client) Enabled() bool {
	return c.accessToken != ""
}

// Search возвращает рестораны из Places API в радиусе от точки
func (c *client) Search(ctx context.Context, lat, lon, radiusKm float64) ([]domain.RestaurantPoint, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("places API is not configured")
	}

	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))
	params.Set("radius_km", fmt.Sprintf("%g", radiusKm))
	params.Set("category", "restaurant")
	params.Set("access_token", c.accessToken)

	reqURL := fmt.Sprintf("%s/v1/search?%s", c.baseURL, params.Encode())

	c.logger.Debug("Calling Places API",
		zap.Float64("lat", lat),
		zap.Float64("lon", lon),
		zap.Float64("radius_km", radiusKm))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Places API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("places API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if searchResp.Code != "Ok" {
		c.logger.Error("Places API returned non-OK code",
			zap.String("code", searchResp.Code))
		return nil, fmt.Errorf("places API returned code: %s", searchResp.Code)
	}

	points := make([]domain.RestaurantPoint, 0, len(searchResp.Places))
	for _, place := range searchResp.Places {
		id := place.ID
		if id == "" {
			// Некоторые провайдеры не отдают стабильный ID
			id = uuid.NewString()
		}

		p := domain.RestaurantPoint{
			ID:     "places:" + id,
			Name:   place.Name,
			Lat:    place.Lat,
			Lon:    place.Lon,
			Source: domain.SourceRemotePlaces,
		}
		if place.Cuisine != "" {
			cuisine := place.Cuisine
			p.Cuisine = &cuisine
		}
		if place.Address != "" {
			address := place.Address
			p.Address = &address
		}

		points = append(points, p)
	}

	c.logger.Debug("Places API call successful", zap.Int("places", len(points)))
	return points, nil
}
