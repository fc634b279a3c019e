package dto

// ViewportQueryRequest - запрос точек в видимой области карты.
// Нулевые width/height означают "layout ещё не измерен" и дают пустой
// результат, а не ошибку.
type ViewportQueryRequest struct {
	Lat    float64 `json:"lat" validate:"min=-90,max=90"`
	Lon    float64 `json:"lon" validate:"min=-180,max=180"`
	Zoom   float64 `json:"zoom" validate:"min=0,max=22"`
	Width  float64 `json:"width" validate:"min=0"`
	Height float64 `json:"height" validate:"min=0"`
	Rank   string  `json:"rank" validate:"omitempty,oneof=nearest priority"`
}

// ResolveRequest - запрос разрешения ресторана по точке и текстовой подсказке
type ResolveRequest struct {
	Lat           float64 `json:"lat" validate:"min=-90,max=90"`
	Lon           float64 `json:"lon" validate:"min=-180,max=180"`
	Hint          string  `json:"hint,omitempty"`
	RadiusKm      float64 `json:"radius_km" validate:"omitempty,min=0.1,max=100"`
	IncludeRemote bool    `json:"include_remote"`
}
