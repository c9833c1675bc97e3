package config

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidRules = errors.New("config: invalid rules")

// Rules holds the combat constants. Zero values in a loaded file mean
// "use the default".
type Rules struct {
	HitPoints   int          `yaml:"hit_points"`
	AttackPower int          `yaml:"attack_power"`
	Search      SearchConfig `yaml:"search"`
	// Note is copied into the JSON report to label the run.
	Note        string       `yaml:"note"`
}

type SearchConfig struct {
	Species    string `yaml:"species"`
	StartPower int    `yaml:"start_power"`
	// MaxPower bounds the search; 0 leaves it unbounded.
	MaxPower int `yaml:"max_power"`
}

func DefaultRules() Rules {
	return Rules{
		HitPoints:   200,
		AttackPower: 3,
		Search: SearchConfig{
			Species:    "elf",
			StartPower: 4,
		},
	}
}

// withDefaults fills unset fields from DefaultRules.
func (r Rules) withDefaults() Rules {
	def := DefaultRules()
	if r.HitPoints == 0 {
		r.HitPoints = def.HitPoints
	}
	if r.AttackPower == 0 {
		r.AttackPower = def.AttackPower
	}
	if r.Search.Species == "" {
		r.Search.Species = def.Search.Species
	}
	if r.Search.StartPower == 0 {
		r.Search.StartPower = def.Search.StartPower
	}
	r.Search.Species = strings.ToLower(strings.TrimSpace(r.Search.Species))
	return r
}

func (r Rules) Validate() error {
	switch {
	case r.HitPoints <= 0:
		return fmt.Errorf("%w: hit_points must be positive, got %d", ErrInvalidRules, r.HitPoints)
	case r.AttackPower <= 0:
		return fmt.Errorf("%w: attack_power must be positive, got %d", ErrInvalidRules, r.AttackPower)
	case r.Search.StartPower <= 0:
		return fmt.Errorf("%w: search.start_power must be positive, got %d", ErrInvalidRules, r.Search.StartPower)
	case r.Search.MaxPower < 0:
		return fmt.Errorf("%w: search.max_power cannot be negative, got %d", ErrInvalidRules, r.Search.MaxPower)
	case r.Search.MaxPower > 0 && r.Search.MaxPower < r.Search.StartPower:
		return fmt.Errorf("%w: search.max_power %d is below start_power %d", ErrInvalidRules, r.Search.MaxPower, r.Search.StartPower)
	case r.Search.Species != "elf" && r.Search.Species != "goblin":
		return fmt.Errorf("%w: search.species must be elf or goblin, got %q", ErrInvalidRules, r.Search.Species)
	}
	return nil
}
