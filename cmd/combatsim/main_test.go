package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridbattle/internal/combat"
	"gridbattle/internal/logger"
)

const smallBattle = `#######
#.G...#
#...EG#
#.#.#G#
#..G#E#
#.....#
#######
`

func TestMain(m *testing.M) {
	logger.InitWithOutput(io.Discard)
	os.Exit(m.Run())
}

func TestRunFromStdin(t *testing.T) {
	var stdout bytes.Buffer
	err := run(options{}, strings.NewReader(smallBattle), &stdout)
	require.NoError(t, err)
	assert.Equal(t, "Checksum: 27730\nChecksum(15): 4988\n", stdout.String())
}

func TestRunFromFileWithRules(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "battle.txt")
	rules := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(input, []byte(smallBattle), 0o644))
	require.NoError(t, os.WriteFile(rules, []byte("search:\n  start_power: 20\n"), 0o644))

	var stdout bytes.Buffer
	err := run(options{input: input, cfgPath: rules}, nil, &stdout)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Checksum: 27730", lines[0])
	var power, checksum int
	_, err = fmt.Sscanf(lines[1], "Checksum(%d): %d", &power, &checksum)
	require.NoError(t, err, lines[1])
	assert.GreaterOrEqual(t, power, 20, "search starts at the configured power")
	assert.Positive(t, checksum)
}

func TestRunWritesReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	var stdout bytes.Buffer
	err := run(options{out: path, saveLog: true}, strings.NewReader(smallBattle), &stdout)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var report combat.Report
	require.NoError(t, json.Unmarshal(b, &report))
	assert.Equal(t, smallBattle, report.Input)
	assert.Equal(t, 27730, report.Baseline.Checksum)
	assert.Equal(t, combat.Goblin, report.Baseline.Winner)
	assert.Equal(t, 15, report.Tuned.Power)
	assert.Equal(t, 4988, report.Tuned.Outcome.Checksum)
	assert.Equal(t, `#######
#G....#
#.G...#
#.#.#G#
#...#.#
#....G#
#######
`, report.Final)
	require.NotEmpty(t, report.Events)
	last := report.Events[len(report.Events)-1]
	assert.Equal(t, combat.EventTickEnd, last.Type)
	assert.Equal(t, 47, last.Tick)
}

func TestReportCarriesRulesNote(t *testing.T) {
	dir := t.TempDir()
	rules := filepath.Join(dir, "rules.yaml")
	path := filepath.Join(dir, "report.json")
	require.NoError(t, os.WriteFile(rules, []byte("note: baseline rules\n"), 0o644))

	err := run(options{cfgPath: rules, out: path}, strings.NewReader(smallBattle), &bytes.Buffer{})
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var report combat.Report
	require.NoError(t, json.Unmarshal(b, &report))
	assert.Equal(t, "baseline rules", report.Note)
	assert.Empty(t, report.Events, "events only with -log")
}

func TestRunRejectsBadInput(t *testing.T) {
	var stdout bytes.Buffer
	err := run(options{}, strings.NewReader("###\n#x#\n###\n"), &stdout)
	require.Error(t, err)
	assert.ErrorIs(t, err, combat.ErrUnknownTile)
	assert.Empty(t, stdout.String())
}

func TestRunRejectsBadRules(t *testing.T) {
	rules := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(rules, []byte("hit_points: -5\n"), 0o644))
	var stdout bytes.Buffer
	err := run(options{cfgPath: rules}, strings.NewReader(smallBattle), &stdout)
	assert.Error(t, err)
	assert.Empty(t, stdout.String())
}

func TestRunRandomArena(t *testing.T) {
	var stdout bytes.Buffer
	err := run(options{random: "10x7", seed: 11}, nil, &stdout)
	if errors.Is(err, combat.ErrStalemate) {
		t.Skip("seeded arena has walled-off sides")
	}
	require.NoError(t, err)
	assert.Regexp(t, `^Checksum: \d+\nChecksum\(\d+\): \d+\n$`, stdout.String())
}

func TestRunRandomArenaBadSize(t *testing.T) {
	err := run(options{random: "big"}, nil, &bytes.Buffer{})
	assert.Error(t, err)
}
