package grid

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// ActorID identifies a combatant. The map stores ids, never actor records.
type ActorID int

type TileKind uint8

const (
	Wall TileKind = iota
	Empty
	Occupied
)

func (k TileKind) String() string {
	switch k {
	case Wall:
		return "wall"
	case Empty:
		return "empty"
	case Occupied:
		return "occupied"
	}
	return fmt.Sprintf("TileKind(%d)", uint8(k))
}

// Tile is one cell of the map. Occupant is meaningful only for Occupied tiles.
type Tile struct {
	Kind     TileKind
	Occupant ActorID
}

func WallTile() Tile            { return Tile{Kind: Wall} }
func EmptyTile() Tile           { return Tile{Kind: Empty} }
func ActorTile(id ActorID) Tile { return Tile{Kind: Occupied, Occupant: id} }

// Occupant is a Position/ActorID pair as found by scanning the map.
type Occupant struct {
	Pos Position
	ID  ActorID
}

// Map is a fixed-size rectangular battlefield. Its shape never changes after
// construction; only tile contents do.
type Map struct {
	tiles  [][]Tile
	width  int
	height int
}

// New returns a width×height map with every tile Empty.
func New(width, height int) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyGrid
	}
	tiles := make([][]Tile, height)
	for y := range tiles {
		row := make([]Tile, width)
		for x := range row {
			row[x] = EmptyTile()
		}
		tiles[y] = row
	}
	return &Map{tiles: tiles, width: width, height: height}, nil
}

// FromTiles wraps rows of tiles. The rows are used directly, not copied.
func FromTiles(rows [][]Tile) (*Map, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	w := len(rows[0])
	for _, row := range rows[1:] {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	return &Map{tiles: rows, width: w, height: len(rows)}, nil
}

func (m *Map) Width() int  { return m.width }
func (m *Map) Height() int { return m.height }

func (m *Map) InBounds(p Position) bool {
	return p.X >= 0 && p.X < m.width && p.Y >= 0 && p.Y < m.height
}

// At returns the tile at p; ok is false outside the map.
func (m *Map) At(p Position) (Tile, bool) {
	if !m.InBounds(p) {
		return Tile{}, false
	}
	return m.tiles[p.Y][p.X], true
}

func (m *Map) Set(p Position, t Tile) error {
	if !m.InBounds(p) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	m.tiles[p.Y][p.X] = t
	return nil
}

// IsOpen reports whether p is inside the map and Empty.
func (m *Map) IsOpen(p Position) bool {
	t, ok := m.At(p)
	return ok && t.Kind == Empty
}

// OccupantAt returns the actor standing on p, if any.
func (m *Map) OccupantAt(p Position) (ActorID, bool) {
	t, ok := m.At(p)
	if !ok || t.Kind != Occupied {
		return 0, false
	}
	return t.Occupant, true
}

// Move relocates id from one tile to another in a single step.
func (m *Map) Move(from, to Position, id ActorID) error {
	if got, ok := m.OccupantAt(from); !ok || got != id {
		return fmt.Errorf("grid: actor %d is not at %v", id, from)
	}
	if !m.IsOpen(to) {
		return fmt.Errorf("%w: %v", ErrOccupied, to)
	}
	m.tiles[from.Y][from.X] = EmptyTile()
	m.tiles[to.Y][to.X] = ActorTile(id)
	return nil
}

// Vacate turns an occupied tile back into floor.
func (m *Map) Vacate(p Position) {
	if t, ok := m.At(p); ok && t.Kind == Occupied {
		m.tiles[p.Y][p.X] = EmptyTile()
	}
}

// Occupants scans the map in row-major order.
func (m *Map) Occupants() []Occupant {
	var out []Occupant
	for y, row := range m.tiles {
		for x, t := range row {
			if t.Kind == Occupied {
				out = append(out, Occupant{Pos: Position{X: x, Y: y}, ID: t.Occupant})
			}
		}
	}
	return out
}

// Distances runs a breadth-first search from origin across Empty tiles and
// returns the step count to every reachable tile. The origin is always
// present at distance 0 whatever it holds; walls, occupied tiles and
// unreachable floor are absent.
func (m *Map) Distances(origin Position) map[Position]int {
	dist := map[Position]int{origin: 0}
	seen := mapset.New[Position]()
	seen.Put(origin)

	queue := []Position{origin}
	for qi := 0; qi < len(queue); qi++ {
		cur := queue[qi]
		for _, nb := range cur.Neighbors() {
			if seen.Has(nb) {
				continue
			}
			seen.Put(nb)
			if !m.IsOpen(nb) {
				continue
			}
			dist[nb] = dist[cur] + 1
			queue = append(queue, nb)
		}
	}
	return dist
}

func (m *Map) Clone() *Map {
	tiles := make([][]Tile, m.height)
	for y, row := range m.tiles {
		tiles[y] = append([]Tile(nil), row...)
	}
	return &Map{tiles: tiles, width: m.width, height: m.height}
}
