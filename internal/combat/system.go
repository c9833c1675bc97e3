package combat

import (
	"strings"

	"gridbattle/internal/grid"
)

// System is one battle: the map, the actor arena indexed by ActorID, and the
// number of completed ticks.
type System struct {
	actors  []Actor
	field   *grid.Map
	tick    int
	alive   [numSpecies]int
	initial [numSpecies]int
	changed bool

	// OnEvent, when set, receives every state change as it happens.
	OnEvent func(Event)
}

func (s *System) emit(ev Event) {
	if s.OnEvent != nil {
		s.OnEvent(ev)
	}
}

func (s *System) Map() *grid.Map { return s.field }
func (s *System) Ticks() int     { return s.tick }

// Actor returns a copy of the record for id.
func (s *System) Actor(id grid.ActorID) (Actor, bool) {
	if id < 0 || int(id) >= len(s.actors) {
		return Actor{}, false
	}
	return s.actors[id], true
}

// Actors returns every record, dead ones included, in id order.
func (s *System) Actors() []Actor {
	return append([]Actor(nil), s.actors...)
}

// Living returns the living actors in row-major order of their positions.
func (s *System) Living() []Actor {
	occ := s.field.Occupants()
	out := make([]Actor, 0, len(occ))
	for _, o := range occ {
		out = append(out, s.actors[o.ID])
	}
	return out
}

func (s *System) Count(sp Species) int { return s.alive[sp] }

// Casualties is the number of sp actors that have died so far.
func (s *System) Casualties(sp Species) int { return s.initial[sp] - s.alive[sp] }

// SetPower assigns power to every actor of species sp.
func (s *System) SetPower(sp Species, power int) {
	for i := range s.actors {
		if s.actors[i].Species == sp {
			s.actors[i].Power = power
		}
	}
}

// HitPoints sums the hp of living actors.
func (s *System) HitPoints() int {
	total := 0
	for _, a := range s.actors {
		if a.Alive() {
			total += a.HP
		}
	}
	return total
}

// Checksum is HitPoints times the completed tick count.
func (s *System) Checksum() int { return s.HitPoints() * s.tick }

// Over reports whether either species has been wiped out.
func (s *System) Over() bool {
	return s.alive[Elf] == 0 || s.alive[Goblin] == 0
}

// Clone deep-copies the battle. The event hook is not carried over.
func (s *System) Clone() *System {
	return &System{
		actors:  append([]Actor(nil), s.actors...),
		field:   s.field.Clone(),
		tick:    s.tick,
		alive:   s.alive,
		initial: s.initial,
	}
}

// String draws the map with the same alphabet the parser accepts.
func (s *System) String() string {
	var sb strings.Builder
	for y := 0; y < s.field.Height(); y++ {
		for x := 0; x < s.field.Width(); x++ {
			sb.WriteRune(s.TileRune(grid.Position{X: x, Y: y}))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// TileRune is the character for the tile at p.
func (s *System) TileRune(p grid.Position) rune {
	t, ok := s.field.At(p)
	if !ok {
		return ' '
	}
	switch t.Kind {
	case grid.Wall:
		return '#'
	case grid.Occupied:
		return s.actors[t.Occupant].Species.Marker()
	}
	return '.'
}
