package combat

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridbattle/internal/config"
	"gridbattle/internal/grid"
)

func TestParseAssignsIDsInScanOrder(t *testing.T) {
	s := mustParse(t, exampleSmall)

	actors := s.Actors()
	require.Len(t, actors, 6)
	want := []struct {
		sp  Species
		pos grid.Position
	}{
		{Goblin, grid.Position{X: 2, Y: 1}},
		{Elf, grid.Position{X: 4, Y: 2}},
		{Goblin, grid.Position{X: 5, Y: 2}},
		{Goblin, grid.Position{X: 5, Y: 3}},
		{Goblin, grid.Position{X: 3, Y: 4}},
		{Elf, grid.Position{X: 5, Y: 4}},
	}
	for i, w := range want {
		assert.Equal(t, grid.ActorID(i), actors[i].ID)
		assert.Equal(t, w.sp, actors[i].Species, "actor %d", i)
		assert.Equal(t, w.pos, actors[i].Pos, "actor %d", i)
		assert.Equal(t, 200, actors[i].HP)
		assert.Equal(t, 3, actors[i].Power)
	}
	assert.Equal(t, 2, s.Count(Elf))
	assert.Equal(t, 4, s.Count(Goblin))
	assert.Equal(t, 0, s.Ticks())
	requireConsistent(t, s)
}

func TestParseIsDeterministic(t *testing.T) {
	a := mustParse(t, exampleLarge)
	b := mustParse(t, exampleLarge)
	assert.Equal(t, a.Actors(), b.Actors())
	assert.Equal(t, a.String(), b.String())
}

func TestParseRoundTripsThroughString(t *testing.T) {
	s := mustParse(t, exampleLarge)
	assert.Equal(t, exampleLarge, s.String())
}

func TestParseAcceptsCRLFAndTrailingBlankLines(t *testing.T) {
	text := strings.ReplaceAll(duel, "\n", "\r\n") + "\r\n\r\n"
	s := mustParse(t, text)
	assert.Equal(t, duel, s.String())
}

func TestParseUsesRules(t *testing.T) {
	rules := config.DefaultRules()
	rules.HitPoints = 50
	rules.AttackPower = 7
	s, err := Parse(duel, rules)
	require.NoError(t, err)
	for _, a := range s.Actors() {
		assert.Equal(t, 50, a.HP)
		assert.Equal(t, 7, a.Power)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		target error
		line   int
		column int
	}{
		{"empty", "  \n\n", grid.ErrEmptyGrid, 0, 0},
		{"unknown character", "###\n#X#\n###", ErrUnknownTile, 2, 2},
		{"ragged rows", "####\n#..#\n###", grid.ErrNonRectangular, 3, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.text, config.DefaultRules())
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.target)

			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tc.line, fe.Line)
			assert.Equal(t, tc.column, fe.Column)
		})
	}
}

func TestFormatErrorMessage(t *testing.T) {
	_, err := Parse("#?#", config.DefaultRules())
	require.Error(t, err)
	assert.Equal(t, `line 1, column 2: '?': combat: unknown tile character`, err.Error())
}

func TestParseSpecies(t *testing.T) {
	sp, err := ParseSpecies(" Goblin ")
	require.NoError(t, err)
	assert.Equal(t, Goblin, sp)
	sp, err = ParseSpecies("e")
	require.NoError(t, err)
	assert.Equal(t, Elf, sp)
	_, err = ParseSpecies("orc")
	assert.Error(t, err)

	assert.Equal(t, Goblin, Elf.Enemy())
	assert.Equal(t, 'G', Goblin.Marker())
}
