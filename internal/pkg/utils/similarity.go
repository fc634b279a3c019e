package utils

import (
	"strings"
	"unicode/utf8"
)

// containmentBonus - надбавка за полное вхождение одной строки в другую
const containmentBonus = 0.3

// NameSimilarity вычисляет похожесть двух названий в диапазоне [0, 1].
// Для случая вхождения одной строки в другую результат может превышать 1 -
// вызывающие стороны используют его только для относительного ранжирования
// и фиксированного порога "вероятного совпадения".
func NameSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1.0
	}

	lenA := utf8.RuneCountInString(a)
	lenB := utf8.RuneCountInString(b)

	if strings.Contains(a, b) || strings.Contains(b, a) {
		shorter, longer := lenA, lenB
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		return float64(shorter)/float64(longer) + containmentBonus
	}

	return 1.0 - float64(editDistance(a, b))/float64(max(lenA, lenB))
}

// editDistance - расстояние Левенштейна на двух строках таблицы DP
func editDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
