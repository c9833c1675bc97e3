package combat

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"gridbattle/internal/config"
	"gridbattle/internal/logger"
)

var (
	// ErrStalemate is returned when a completed tick changes nothing while
	// both species still stand, so the battle can never end.
	ErrStalemate = errors.New("combat: stalemate, no actor can reach an enemy")
	// ErrNoFlawlessPower is returned when the power search passes its bound.
	ErrNoFlawlessPower = errors.New("combat: no attack power within bound avoids casualties")
)

type Outcome struct {
	Winner     Species         `json:"winner"`
	Ticks      int             `json:"ticks"`
	HitPoints  int             `json:"hit_points"`
	Checksum   int             `json:"checksum"`
	Survivors  map[Species]int `json:"survivors"`
	Casualties map[Species]int `json:"casualties"`
}

func (s *System) outcome() Outcome {
	out := Outcome{
		Ticks:      s.tick,
		HitPoints:  s.HitPoints(),
		Checksum:   s.Checksum(),
		Survivors:  map[Species]int{},
		Casualties: map[Species]int{},
	}
	for _, sp := range AllSpecies {
		out.Survivors[sp] = s.alive[sp]
		out.Casualties[sp] = s.Casualties(sp)
		if s.alive[sp] > 0 {
			out.Winner = sp
		}
	}
	return out
}

// Run ticks until one species is wiped out and returns the final tally.
func (s *System) Run() (Outcome, error) {
	for !s.Over() {
		if s.Tick() && !s.changed {
			return s.outcome(), fmt.Errorf("%w (tick %d)", ErrStalemate, s.tick)
		}
	}
	out := s.outcome()
	if logger.Debugging() {
		logger.Log.WithFields(logrus.Fields{
			"component": "simulation",
			"winner":    out.Winner.String(),
			"ticks":     out.Ticks,
			"hp":        out.HitPoints,
			"checksum":  out.Checksum,
		}).Debug("Battle finished.")
	}
	return out, nil
}

type SearchOptions struct {
	Species Species
	Start   int
	// Max bounds the search; 0 leaves it unbounded.
	Max int
}

func DefaultSearchOptions() SearchOptions {
	return SearchOptions{Species: Elf, Start: 4}
}

func SearchOptionsFromRules(r config.Rules) (SearchOptions, error) {
	sp, err := ParseSpecies(r.Search.Species)
	if err != nil {
		return SearchOptions{}, err
	}
	return SearchOptions{Species: sp, Start: r.Search.StartPower, Max: r.Search.MaxPower}, nil
}

type PowerResult struct {
	Species Species `json:"species"`
	Power   int     `json:"power"`
	Outcome Outcome `json:"outcome"`
}

// SearchPower finds the lowest attack power, from opts.Start upward, at which
// opts.Species wins a battle from base's state without losing anyone. Each
// attempt runs on its own clone; base is left untouched.
func SearchPower(base *System, opts SearchOptions) (PowerResult, error) {
	if opts.Start <= 0 {
		opts.Start = DefaultSearchOptions().Start
	}
	searchLogger := logger.Log.WithFields(logrus.Fields{
		"component": "power_search",
		"species":   opts.Species.String(),
	})

	for power := opts.Start; ; power++ {
		if opts.Max > 0 && power > opts.Max {
			return PowerResult{}, fmt.Errorf("%w: tried %d..%d", ErrNoFlawlessPower, opts.Start, opts.Max)
		}
		sys := base.Clone()
		sys.SetPower(opts.Species, power)
		before := sys.Count(opts.Species)
		out, err := sys.Run()
		if err != nil {
			return PowerResult{}, fmt.Errorf("combat: power %d: %w", power, err)
		}
		if sys.Count(opts.Species) == before {
			searchLogger.WithFields(logrus.Fields{
				"power":    power,
				"ticks":    out.Ticks,
				"checksum": out.Checksum,
			}).Info("Flawless power found.")
			return PowerResult{Species: opts.Species, Power: power, Outcome: out}, nil
		}
		searchLogger.WithFields(logrus.Fields{
			"power":  power,
			"losses": before - sys.Count(opts.Species),
		}).Debug("Power rejected.")
	}
}

// Report is the full result of a run, written by the CLI's -out flag.
type Report struct {
	Input    string      `json:"input"`
	Note     string      `json:"note,omitempty"`
	Baseline Outcome     `json:"baseline"`
	Tuned    PowerResult `json:"tuned"`
	Final    string      `json:"final_map,omitempty"`
	Events   []Event     `json:"events,omitempty"`
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
