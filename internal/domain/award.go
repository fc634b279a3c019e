package domain

import "strings"

// AwardTier - уровень отличия ресторанного гида
type AwardTier int

const (
	AwardNone AwardTier = iota
	AwardSelected
	AwardBibGourmand
	AwardOneStar
	AwardTwoStars
	AwardThreeStars
)

func (t AwardTier) String() string {
	switch t {
	case AwardThreeStars:
		return "three_stars"
	case AwardTwoStars:
		return "two_stars"
	case AwardOneStar:
		return "one_star"
	case AwardBibGourmand:
		return "bib_gourmand"
	case AwardSelected:
		return "selected"
	default:
		return "none"
	}
}

// Distinction - разобранное отличие ресторана. Сырая строка награды
// разбирается ровно один раз на этой границе; остальной код работает
// только с Distinction, чтобы скоринг и фильтрация были согласованы.
type Distinction struct {
	Tier      AwardTier
	GreenStar bool
}

// ParseDistinction разбирает свободный текст награды из датасета.
// Текст не нормализован, поэтому разбор терпимый: неизвестный или
// пустой текст даёт AwardNone, ошибок не бывает.
func ParseDistinction(raw string) Distinction {
	text := strings.ToLower(raw)

	var d Distinction
	switch {
	case strings.Contains(text, "3 star") || strings.Contains(text, "three star"):
		d.Tier = AwardThreeStars
	case strings.Contains(text, "2 star") || strings.Contains(text, "two star"):
		d.Tier = AwardTwoStars
	case strings.Contains(text, "1 star") || strings.Contains(text, "one star"):
		d.Tier = AwardOneStar
	case strings.Contains(text, "bib gourmand"):
		d.Tier = AwardBibGourmand
	case strings.Contains(text, "selected"):
		d.Tier = AwardSelected
	}

	d.GreenStar = strings.Contains(text, "green star")
	return d
}

// Priority возвращает числовой приоритет отличия для ранжирования
func (d Distinction) Priority() int {
	p := 0
	switch d.Tier {
	case AwardThreeStars:
		p = 300
	case AwardTwoStars:
		p = 200
	case AwardOneStar:
		p = 100
	case AwardBibGourmand:
		p = 60
	case AwardSelected:
		p = 30
	}
	if d.GreenStar {
		p += 10
	}
	return p
}

// AwardPriority - приоритет по сырой строке награды; nil означает "без награды"
func AwardPriority(raw *string) int {
	if raw == nil {
		return 0
	}
	return ParseDistinction(*raw).Priority()
}
