package places

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryFromTypes(t *testing.T) {
	t.Run("first matching type wins", func(t *testing.T) {
		info := CategoryFromTypes([]string{"point_of_interest", "university", "restaurant"})
		assert.Equal(t, "Education", info.Category)
		assert.Equal(t, "🎓", info.Icon)
		assert.Equal(t, "#3B82F6", info.Color)
	})

	t.Run("unmatched types fall back to generic location", func(t *testing.T) {
		info := CategoryFromTypes([]string{"point_of_interest", "premise"})
		assert.Equal(t, "Location", info.Category)
		assert.Equal(t, "📍", info.Icon)
		assert.Equal(t, "#6B7280", info.Color)
	})

	t.Run("empty types fall back too", func(t *testing.T) {
		info := CategoryFromTypes(nil)
		assert.Equal(t, defaultCategory, info)
	})
}

func TestIsPopularPlace(t *testing.T) {
	rating := func(v float64) *float64 { return &v }
	total := func(v int) *int { return &v }

	assert.True(t, IsPopularPlace(rating(4.0), total(100)))
	assert.True(t, IsPopularPlace(rating(4.8), total(5000)))
	assert.False(t, IsPopularPlace(rating(3.9), total(5000)))
	assert.False(t, IsPopularPlace(rating(4.8), total(99)))
	assert.False(t, IsPopularPlace(nil, total(5000)))
	assert.False(t, IsPopularPlace(rating(4.8), nil))
	assert.False(t, IsPopularPlace(nil, nil))
}
