package places

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogLookup(t *testing.T) {
	catalog := NewCatalog()

	t.Run("matches by name case-insensitively", func(t *testing.T) {
		matches := catalog.Lookup("ubc")
		require.NotEmpty(t, matches)
		assert.Equal(t, "ubc-main-mall", matches[0].ID)
		for _, m := range matches {
			assert.True(t, m.IsPopular)
		}
	})

	t.Run("matches by category", func(t *testing.T) {
		matches := catalog.Lookup("Shopping")
		ids := make([]string, 0, len(matches))
		for _, m := range matches {
			ids = append(ids, m.ID)
		}
		assert.Contains(t, ids, "robson-street")
		assert.Contains(t, ids, "metrotown")
		assert.Contains(t, ids, "richmond-centre")
	})

	t.Run("matches by address", func(t *testing.T) {
		matches := catalog.Lookup("kingsway")
		require.Len(t, matches, 1)
		assert.Equal(t, "metrotown", matches[0].ID)
	})

	t.Run("preserves catalog order", func(t *testing.T) {
		matches := catalog.Lookup("vancouver")
		require.True(t, len(matches) >= 2)
		// UBC entries are listed before downtown in the catalog.
		assert.Equal(t, "ubc-main-mall", matches[0].ID)
	})

	t.Run("empty and blank queries return nothing", func(t *testing.T) {
		assert.Nil(t, catalog.Lookup(""))
		assert.Nil(t, catalog.Lookup("   "))
	})

	t.Run("miss returns nothing", func(t *testing.T) {
		assert.Nil(t, catalog.Lookup("atlantis"))
	})
}
