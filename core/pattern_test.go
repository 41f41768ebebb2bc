package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamePatterns(t *testing.T) {
	t.Run("two tokens reverse", func(t *testing.T) {
		p := NamePatterns("Bruce Nauman")
		assert.Equal(t, "%bruce nauman%", p.Forward)
		assert.Equal(t, "%nauman bruce%", p.Reversed)
	})

	t.Run("single token keeps both identical", func(t *testing.T) {
		p := NamePatterns("Ghirri")
		assert.Equal(t, "%ghirri%", p.Forward)
		assert.Equal(t, p.Forward, p.Reversed)
	})

	t.Run("three tokens reverse fully", func(t *testing.T) {
		p := NamePatterns("Henri Cartier Bresson")
		assert.Equal(t, "%henri cartier bresson%", p.Forward)
		assert.Equal(t, "%bresson cartier henri%", p.Reversed)
	})

	t.Run("whitespace and case are normalized", func(t *testing.T) {
		p := NamePatterns("  Luigi   GHIRRI ")
		assert.Equal(t, "%luigi   ghirri%", p.Forward)
		assert.Equal(t, "%ghirri luigi%", p.Reversed)
	})

	t.Run("multi-token patterns differ unless palindrome pair", func(t *testing.T) {
		assert.NotEqual(t, NamePatterns("Bruce Nauman").Forward, NamePatterns("Bruce Nauman").Reversed)
		// Palindrome pair: reversal yields the same pattern.
		p := NamePatterns("anna anna")
		assert.Equal(t, p.Forward, p.Reversed)
	})
}
