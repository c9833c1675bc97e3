package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaIsDeterministicForSeed(t *testing.T) {
	a, err := Arena(New(99), DefaultArenaOptions(20, 10))
	require.NoError(t, err)
	b, err := Arena(New(99), DefaultArenaOptions(20, 10))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestArenaShape(t *testing.T) {
	rng := New(3)
	for i := 0; i < 20; i++ {
		text, err := Arena(rng, DefaultArenaOptions(8, 5))
		require.NoError(t, err)

		rows := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
		require.Len(t, rows, 5)
		for y, row := range rows {
			require.Len(t, row, 8)
			assert.Equal(t, byte('#'), row[0])
			assert.Equal(t, byte('#'), row[7])
			if y == 0 || y == 4 {
				assert.Equal(t, strings.Repeat("#", 8), row)
			}
		}
		assert.Contains(t, text, "E")
		assert.Contains(t, text, "G")
	}
}

func TestArenaWithoutRandomActorsStillSeedsBothSides(t *testing.T) {
	text, err := Arena(New(1), ArenaOptions{Width: 5, Height: 3})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(text, "E"))
	assert.Equal(t, 1, strings.Count(text, "G"))
	assert.Equal(t, 1, strings.Count(text, "."))
}

func TestArenaTooSmall(t *testing.T) {
	_, err := Arena(New(1), DefaultArenaOptions(2, 9))
	assert.ErrorIs(t, err, ErrArenaSize)
}

func TestParseSize(t *testing.T) {
	w, h, err := ParseSize("32X16")
	require.NoError(t, err)
	assert.Equal(t, 32, w)
	assert.Equal(t, 16, h)

	for _, bad := range []string{"", "32", "ax3", "3xb"} {
		_, _, err := ParseSize(bad)
		assert.Error(t, err, bad)
	}
}
