package domain

// LikelyMatchThreshold - порог похожести, выше которого кандидат
// подсвечивается как вероятное совпадение
const LikelyMatchThreshold = 0.5

// MatchCandidate - кандидат сопоставления с оценкой похожести к подсказке.
// Существует только на время одной операции разрешения.
type MatchCandidate struct {
	RestaurantPoint
	Similarity    float64 `json:"similarity"`
	IsLikelyMatch bool    `json:"is_likely_match"`
}
