package combat

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"gridbattle/internal/grid"
	"gridbattle/internal/logger"
)

// Tick runs one round: every actor alive at the start takes a turn in
// row-major order. It returns false when a turn finds either species wiped
// out; such a tick is not counted. Moves and deaths are visible to every
// later turn of the same tick.
func (s *System) Tick() bool {
	s.changed = false
	round := s.tick + 1
	for _, o := range s.field.Occupants() {
		if !s.actors[o.ID].Alive() {
			continue
		}
		if s.Over() {
			s.emit(Event{Tick: round, Type: EventAbort, Payload: map[string]any{
				"next_actor": int(o.ID),
			}})
			return false
		}
		s.takeTurn(o.ID, round)
	}
	s.tick++
	s.emit(Event{Tick: round, Type: EventTickEnd, Payload: map[string]any{
		"elves": s.alive[Elf], "goblins": s.alive[Goblin], "hp": s.HitPoints(),
	}})
	return true
}

func (s *System) takeTurn(id grid.ActorID, round int) {
	s.move(id, round)
	s.attack(id, round)
}

func (s *System) enemyAdjacent(a *Actor) bool {
	for _, nb := range a.Pos.Neighbors() {
		if oid, ok := s.field.OccupantAt(nb); ok && s.actors[oid].Species != a.Species {
			return true
		}
	}
	return false
}

// walkTarget picks the nearest reachable open tile next to any living enemy,
// ties broken row-major.
func (s *System) walkTarget(a *Actor) (grid.Position, bool) {
	candidates := mapset.New[grid.Position]()
	for i := range s.actors {
		e := &s.actors[i]
		if !e.Alive() || e.Species == a.Species {
			continue
		}
		for _, nb := range e.Pos.Neighbors() {
			if s.field.IsOpen(nb) {
				candidates.Put(nb)
			}
		}
	}
	if candidates.Size() == 0 {
		return grid.Position{}, false
	}

	dist := s.field.Distances(a.Pos)
	var best grid.Position
	bestDist, found := 0, false
	candidates.Each(func(p grid.Position) {
		d, ok := dist[p]
		if !ok {
			return
		}
		if !found || d < bestDist || (d == bestDist && p.Less(best)) {
			best, bestDist, found = p, d, true
		}
	})
	return best, found
}

// stepToward returns the neighbour of from that lies on a shortest path to
// target. Neighbours are scanned in row-major order, so the first minimum
// wins ties.
func (s *System) stepToward(from, target grid.Position) (grid.Position, bool) {
	dist := s.field.Distances(target)
	var step grid.Position
	bestDist, found := 0, false
	for _, nb := range from.Neighbors() {
		d, ok := dist[nb]
		if !ok || !s.field.IsOpen(nb) {
			continue
		}
		if !found || d < bestDist {
			step, bestDist, found = nb, d, true
		}
	}
	return step, found
}

func (s *System) move(id grid.ActorID, round int) {
	a := &s.actors[id]
	if s.enemyAdjacent(a) {
		return
	}
	target, ok := s.walkTarget(a)
	if !ok {
		return
	}
	step, ok := s.stepToward(a.Pos, target)
	if !ok {
		return
	}
	from := a.Pos
	if err := s.field.Move(from, step, id); err != nil {
		// stepToward only returns open tiles and the arena tracks the map.
		panic(fmt.Sprintf("combat: map out of sync: %v", err))
	}
	a.Pos = step
	s.changed = true

	s.emit(Event{Tick: round, Type: EventMove, Payload: map[string]any{
		"id": int(id), "from": []int{from.X, from.Y}, "to": []int{step.X, step.Y},
	}})
	if logger.Debugging() {
		logger.Log.WithFields(logrus.Fields{
			"component": "turn_engine",
			"tick":      round,
			"actor_id":  id,
			"species":   a.Species.String(),
			"from":      from.String(),
			"to":        step.String(),
			"target":    target.String(),
		}).Debug("Actor moved.")
	}
}

func (s *System) attack(id grid.ActorID, round int) {
	a := &s.actors[id]
	var target *Actor
	for _, nb := range a.Pos.Neighbors() {
		oid, ok := s.field.OccupantAt(nb)
		if !ok {
			continue
		}
		o := &s.actors[oid]
		if o.Species == a.Species || !o.Alive() {
			continue
		}
		if target == nil || o.HP < target.HP {
			target = o
		}
	}
	if target == nil {
		return
	}

	hpBefore := target.HP
	target.HP -= a.Power
	s.changed = true
	died := !target.Alive()
	if died {
		s.field.Vacate(target.Pos)
		s.alive[target.Species]--
	}

	s.emit(Event{Tick: round, Type: EventAttack, Payload: map[string]any{
		"attacker": int(a.ID), "target": int(target.ID), "damage": a.Power, "hp": target.HP,
	}})
	if logger.Debugging() {
		logger.Log.WithFields(logrus.Fields{
			"component":   "turn_engine",
			"tick":        round,
			"attacker_id": a.ID,
			"target_id":   target.ID,
			"damage":      a.Power,
			"hp_before":   hpBefore,
			"hp_after":    target.HP,
			"target_died": died,
		}).Debug("Attack resolved.")
	}

	if died {
		s.emit(Event{Tick: round, Type: EventDeath, Payload: map[string]any{
			"id": int(target.ID), "species": target.Species.String(),
			"x": target.Pos.X, "y": target.Pos.Y, "hp": target.HP,
		}})
	}
}
