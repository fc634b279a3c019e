package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameSimilarity(t *testing.T) {
	t.Run("identical strings", func(t *testing.T) {
		assert.Equal(t, 1.0, NameSimilarity("Le Bernardin", "Le Bernardin"))
	})

	t.Run("case and whitespace insensitive", func(t *testing.T) {
		assert.Equal(t, 1.0, NameSimilarity("  LE BERNARDIN ", "le bernardin"))
	})

	t.Run("empty strings give zero", func(t *testing.T) {
		assert.Equal(t, 0.0, NameSimilarity("", "Le Bernardin"))
		assert.Equal(t, 0.0, NameSimilarity("Le Bernardin", ""))
		assert.Equal(t, 0.0, NameSimilarity("", ""))
		assert.Equal(t, 0.0, NameSimilarity("   ", "x"))
	})

	t.Run("containment gets bonus", func(t *testing.T) {
		// "bernardin" (9) внутри "le bernardin" (12): 9/12 + 0.3 = 1.05
		sim := NameSimilarity("Le Bernardin", "Bernardin")
		assert.InDelta(t, 9.0/12.0+0.3, sim, 1e-9)
		// Бонус может выводить результат за 1.0
		assert.Greater(t, sim, 1.0)
	})

	t.Run("containment is symmetric", func(t *testing.T) {
		assert.Equal(t,
			NameSimilarity("Le Bernardin", "Bernardin"),
			NameSimilarity("Bernardin", "Le Bernardin"))
	})

	t.Run("typos rank below containment", func(t *testing.T) {
		contained := NameSimilarity("Le Bernardin", "Bernardin")
		typo := NameSimilarity("Le Bernardin", "Le Bernadin")
		unrelated := NameSimilarity("Le Bernardin", "Burger Palace")

		assert.Greater(t, contained, typo)
		assert.Greater(t, typo, unrelated)
	})

	t.Run("single typo stays likely match", func(t *testing.T) {
		// Одна вставка на 12 символов: 1 - 1/12
		sim := NameSimilarity("Le Bernardin", "Le Bernadin")
		assert.InDelta(t, 1.0-1.0/12.0, sim, 1e-9)
		assert.Greater(t, sim, 0.5)
	})

	t.Run("unrelated names below threshold", func(t *testing.T) {
		assert.Less(t, NameSimilarity("Le Bernardin", "Joe's Pizza"), 0.5)
	})

	t.Run("unicode names measured in runes", func(t *testing.T) {
		// Одна замена на 11 рун, не байт
		sim := NameSimilarity("Кафе Пушкин", "Кафе Пушкен")
		assert.InDelta(t, 1.0-1.0/11.0, sim, 1e-9)
	})
}

func TestEditDistance(t *testing.T) {
	assert.Equal(t, 0, editDistance("abc", "abc"))
	assert.Equal(t, 3, editDistance("", "abc"))
	assert.Equal(t, 3, editDistance("kitten", "sitting"))
	assert.Equal(t, 1, editDistance("нож", "нош"))
}
