package dto

import "github.com/restaurant-resolver/internal/domain"

// ViewportPoint - точка для отрисовки на карте
type ViewportPoint struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Award    *string `json:"award,omitempty"`
	Cuisine  *string `json:"cuisine,omitempty"`
	Priority int     `json:"priority"`
	Visited  bool    `json:"visited"`
}

// ViewportQueryResponse - ответ с точками в видимой области.
// Total - количество точек до усечения (для "500 из 12300 показано").
type ViewportQueryResponse struct {
	Points []ViewportPoint        `json:"points"`
	Total  int                    `json:"total"`
	Bounds *domain.ViewportBounds `json:"bounds,omitempty"`
}

// ResolveCandidate - кандидат для выбора пользователем
type ResolveCandidate struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	Award         *string `json:"award,omitempty"`
	Cuisine       *string `json:"cuisine,omitempty"`
	Address       *string `json:"address,omitempty"`
	Source        string  `json:"source"`
	Visited       bool    `json:"visited"`
	Similarity    float64 `json:"similarity"`
	IsLikelyMatch bool    `json:"is_likely_match"`
}

// ResolveResponse - ответ со списком кандидатов разрешения
type ResolveResponse struct {
	Candidates []ResolveCandidate `json:"candidates"`
	Total      int                `json:"total"`
}

// ConvertCandidate преобразует доменного кандидата в DTO
func ConvertCandidate(c domain.MatchCandidate) ResolveCandidate {
	return ResolveCandidate{
		ID:            c.ID,
		Name:          c.Name,
		Lat:           c.Lat,
		Lon:           c.Lon,
		Award:         c.Award,
		Cuisine:       c.Cuisine,
		Address:       c.Address,
		Source:        string(c.Source),
		Visited:       c.Visited,
		Similarity:    c.Similarity,
		IsLikelyMatch: c.IsLikelyMatch,
	}
}

// ConvertViewportPoint преобразует доменную точку в DTO
func ConvertViewportPoint(p domain.RestaurantPoint) ViewportPoint {
	return ViewportPoint{
		ID:       p.ID,
		Name:     p.Name,
		Lat:      p.Lat,
		Lon:      p.Lon,
		Award:    p.Award,
		Cuisine:  p.Cuisine,
		Priority: domain.AwardPriority(p.Award),
		Visited:  p.Visited,
	}
}
