package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultSeedNames(t *testing.T) {
	t.Run("fixed order", func(t *testing.T) {
		require.Equal(t, []string{"yes", "hi", "no", "wtf"}, DefaultSeedNames())
	})

	t.Run("returns a copy", func(t *testing.T) {
		names := DefaultSeedNames()
		names[0] = "changed"
		require.Equal(t, "yes", DefaultSeedNames()[0])
	})
}

func TestParseSeedNames(t *testing.T) {
	t.Run("custom list", func(t *testing.T) {
		require.Equal(t, []string{"a", "b", "c"}, ParseSeedNames(" a, b ,,c "))
	})

	t.Run("blank input falls back to default", func(t *testing.T) {
		for _, raw := range []string{"", " ", ",,", " , "} {
			require.Equal(t, DefaultSeedNames(), ParseSeedNames(raw), "input %q", raw)
		}
	})
}
