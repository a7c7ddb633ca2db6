package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Run("empty input yields empty sequence", func(t *testing.T) {
		assert.Empty(t, Normalize(""))
		assert.Empty(t, Normalize("   "))
	})

	t.Run("stopwords only yields empty sequence", func(t *testing.T) {
		assert.Empty(t, Normalize("what is the of a"))
	})

	t.Run("lowercases and drops punctuation", func(t *testing.T) {
		assert.Equal(t, []string{"quick", "brown", "fox"}, Normalize("The QUICK, brown fox!"))
	})

	t.Run("stems suffixed tokens", func(t *testing.T) {
		got := Normalize("running workers")
		assert.Equal(t, []string{"run", "worker"}, got)
	})

	t.Run("preserves order and duplicates", func(t *testing.T) {
		got := Normalize("reset reset password")
		assert.Equal(t, []string{"reset", "reset", "password"}, got)
	})

	t.Run("handles unseen words without error", func(t *testing.T) {
		got := Normalize("frobnicating the blarghs")
		assert.Len(t, got, 2)
	})
}

func TestExtractKeywords(t *testing.T) {
	t.Run("orders by frequency", func(t *testing.T) {
		got := ExtractKeywords("password reset password login password reset", 2)
		assert.Equal(t, []string{"password", "reset"}, got)
	})

	t.Run("caps at max", func(t *testing.T) {
		got := ExtractKeywords("alpha beta gamma delta epsilon zeta", 3)
		assert.Len(t, got, 3)
	})

	t.Run("empty text", func(t *testing.T) {
		assert.Empty(t, ExtractKeywords("", 5))
	})
}
