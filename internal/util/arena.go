package util

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

var ErrArenaSize = errors.New("util: arena needs at least 3x3 tiles")

type ArenaOptions struct {
	Width, Height int
	// Walls, Elves and Goblins are per-tile probabilities for the interior.
	Walls   float64
	Elves   float64
	Goblins float64
}

func DefaultArenaOptions(width, height int) ArenaOptions {
	return ArenaOptions{Width: width, Height: height, Walls: 0.15, Elves: 0.03, Goblins: 0.05}
}

// ParseSize reads "WxH".
func ParseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("util: size %q is not WxH", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("util: size %q: %w", s, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("util: size %q: %w", s, err)
	}
	return w, h, nil
}

// Arena draws a walled battlefield in the parser's alphabet. The border is
// always wall; interior tiles are rolled independently. At least one elf and
// one goblin are placed when the interior has room for them.
func Arena(rng *rand.Rand, opts ArenaOptions) (string, error) {
	if opts.Width < 3 || opts.Height < 3 {
		return "", ErrArenaSize
	}
	rows := make([][]byte, opts.Height)
	var floor [][2]int
	elves, goblins := 0, 0
	for y := range rows {
		row := make([]byte, opts.Width)
		for x := range row {
			if x == 0 || y == 0 || x == opts.Width-1 || y == opts.Height-1 {
				row[x] = '#'
				continue
			}
			switch roll := rng.Float64(); {
			case roll < opts.Walls:
				row[x] = '#'
			case roll < opts.Walls+opts.Elves:
				row[x] = 'E'
				elves++
			case roll < opts.Walls+opts.Elves+opts.Goblins:
				row[x] = 'G'
				goblins++
			default:
				row[x] = '.'
				floor = append(floor, [2]int{x, y})
			}
		}
		rows[y] = row
	}

	rng.Shuffle(len(floor), func(i, j int) { floor[i], floor[j] = floor[j], floor[i] })
	if elves == 0 && len(floor) > 0 {
		rows[floor[0][1]][floor[0][0]] = 'E'
		floor = floor[1:]
	}
	if goblins == 0 && len(floor) > 0 {
		rows[floor[0][1]][floor[0][0]] = 'G'
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.Write(row)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
