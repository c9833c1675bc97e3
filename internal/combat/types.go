package combat

import (
	"fmt"
	"strings"

	"gridbattle/internal/grid"
)

const (
	EventMove    = "Move"
	EventAttack  = "Attack"
	EventDeath   = "Death"
	EventTickEnd = "TickEnd"
	EventAbort   = "Abort"
)

// Event records one state change. Tick is the 1-based tick in progress.
type Event struct {
	Tick    int            `json:"tick"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

type Species uint8

const (
	Elf Species = iota
	Goblin
	numSpecies
)

var AllSpecies = [numSpecies]Species{Elf, Goblin}

func (s Species) Marker() rune {
	if s == Elf {
		return 'E'
	}
	return 'G'
}

func (s Species) Enemy() Species {
	if s == Elf {
		return Goblin
	}
	return Elf
}

func (s Species) String() string {
	switch s {
	case Elf:
		return "elf"
	case Goblin:
		return "goblin"
	}
	return fmt.Sprintf("Species(%d)", uint8(s))
}

func (s Species) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Species) UnmarshalText(b []byte) error {
	v, err := ParseSpecies(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func ParseSpecies(name string) (Species, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "elf", "e":
		return Elf, nil
	case "goblin", "g":
		return Goblin, nil
	}
	return 0, fmt.Errorf("combat: unknown species %q", name)
}

// Actor is one combatant. Records are never removed; HP <= 0 means dead.
type Actor struct {
	ID      grid.ActorID
	Species Species
	HP      int
	Power   int
	Pos     grid.Position
}

func (a Actor) Alive() bool { return a.HP > 0 }

func (a Actor) String() string {
	return fmt.Sprintf("%c#%d%v hp=%d", a.Species.Marker(), a.ID, a.Pos, a.HP)
}
