package search_test

import (
	"testing"

	"github.com/inpredservice11-beep/instruments/internal/search"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "drill", search.Normalize("  DRILL "))
	assert.Equal(t, "дрель", search.Normalize("ДРЕЛЬ"))
	assert.Empty(t, search.Normalize("   "))
	assert.Equal(t, "перфоратор bosch", search.Normalize("Перфоратор BOSCH"))
}

func TestContains(t *testing.T) {
	t.Parallel()

	assert.True(t, search.Contains("ПЕРФОРАТОР Bosch GBH-2", search.Normalize("перфоратор")))
	assert.True(t, search.Contains("дрель", search.Normalize("ДРЕЛЬ")))
	assert.False(t, search.Contains("Grinder", search.Normalize("дрель")))
	assert.True(t, search.Contains("anything", ""))
}
