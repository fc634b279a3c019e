package domain

// Stream names (должны совпадать с мобильным шлюзом)
const (
	StreamCameraEvents    = "stream:viewport:camera"
	StreamViewportResults = "stream:viewport:results"
)

// CameraEvent - входящее событие перемещения камеры от клиентской сессии.
// Нулевые Width/Height означают, что layout клиента ещё не измерен.
type CameraEvent struct {
	SessionID string  `json:"session_id"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Zoom      float64 `json:"zoom"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Rank      string  `json:"rank,omitempty"`
}

// ViewportResult - опубликованный результат пересчёта viewport
type ViewportResult struct {
	SessionID string                `json:"session_id"`
	Points    []ViewportResultPoint `json:"points"`
	Total     int                   `json:"total"`
}

// ViewportResultPoint - точка результата в событии для шлюза
type ViewportResultPoint struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Award    *string `json:"award,omitempty"`
	Priority int     `json:"priority"`
	Visited  bool    `json:"visited"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
