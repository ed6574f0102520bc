package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderSanitizer_Sanitize(t *testing.T) {
	s := NewProviderSanitizer()

	t.Run("brand pattern match", func(t *testing.T) {
		assert.Equal(t, "Amazon", s.Sanitize("AMZN MKTP US"))
		assert.Equal(t, "Netflix", s.Sanitize("NETFLIX.COM"))
		assert.Equal(t, "PayPal", s.Sanitize("PP *STEAM GAMES"))
		assert.Equal(t, "Uber Eats", s.Sanitize("UBER EATS LONDON"))
	})

	t.Run("match is case insensitive", func(t *testing.T) {
		assert.Equal(t, "Spotify", s.Sanitize("spotify p0123abc"))
	})

	t.Run("fuzzy fallback catches truncated labels", func(t *testing.T) {
		assert.Equal(t, "Netflix", s.Sanitize("NETFLX"))
		assert.Equal(t, "Spotify", s.Sanitize("SPOTFY"))
		assert.Equal(t, "Netflix", s.Sanitize("netflx"))
	})

	t.Run("unrecognized labels are title cased", func(t *testing.T) {
		assert.Equal(t, "Corner Bakery", s.Sanitize("CORNER BAKERY"))
	})

	t.Run("empty input passes through", func(t *testing.T) {
		assert.Equal(t, "", s.Sanitize(""))
		assert.Equal(t, "   ", s.Sanitize("   "))
	})
}

func TestProviderSanitizer_AddPattern(t *testing.T) {
	s := NewProviderSanitizer()

	require.NoError(t, s.AddPattern(`LOCAL\s*COFFEE`, "Local Coffee Co"))
	assert.Equal(t, "Local Coffee Co", s.Sanitize("LOCAL COFFEE #42"))

	assert.Error(t, s.AddPattern(`broken[`, "Broken"))
}
