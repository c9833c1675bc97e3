package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"gridbattle/internal/combat"
	"gridbattle/internal/grid"
)

var (
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFloor  = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	styleElf    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleGoblin = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// Viewer draws a battle onto a terminal screen, one frame per tick.
type Viewer struct {
	screen tcell.Screen
	delay  time.Duration
}

func NewViewer(screen tcell.Screen, delay time.Duration) *Viewer {
	return &Viewer{screen: screen, delay: delay}
}

// Draw renders the map at the top-left, each row followed by the hit points
// of the actors standing on it, and a status line below.
func (v *Viewer) Draw(sys *combat.System, status string) {
	v.screen.Clear()
	field := sys.Map()

	byRow := map[int][]string{}
	for _, a := range sys.Living() {
		byRow[a.Pos.Y] = append(byRow[a.Pos.Y], fmt.Sprintf("%c(%d)", a.Species.Marker(), a.HP))
	}

	for y := 0; y < field.Height(); y++ {
		for x := 0; x < field.Width(); x++ {
			p := grid.Position{X: x, Y: y}
			r := sys.TileRune(p)
			v.screen.SetContent(x, y, r, nil, tileStyle(r))
		}
		if hp := byRow[y]; len(hp) > 0 {
			v.putString(field.Width()+3, y, strings.Join(hp, ", "), styleText)
		}
	}

	line := fmt.Sprintf("tick %d  elves %d  goblins %d", sys.Ticks(), sys.Count(combat.Elf), sys.Count(combat.Goblin))
	if status != "" {
		line += "  " + status
	}
	v.putString(0, field.Height()+1, line, styleText)
	v.screen.Show()
}

// Watch runs sys to completion, redrawing after every completed tick.
func (v *Viewer) Watch(sys *combat.System) (combat.Outcome, error) {
	prev := sys.OnEvent
	defer func() { sys.OnEvent = prev }()

	v.Draw(sys, "")
	sys.OnEvent = func(ev combat.Event) {
		if prev != nil {
			prev(ev)
		}
		if ev.Type != combat.EventTickEnd {
			return
		}
		v.Draw(sys, "")
		if v.delay > 0 {
			time.Sleep(v.delay)
		}
	}

	out, err := sys.Run()
	status := fmt.Sprintf("%s win, checksum %d", out.Winner, out.Checksum)
	if err != nil {
		status = err.Error()
	}
	v.Draw(sys, status+"  (press any key)")
	return out, err
}

// WaitKey blocks until a key is pressed, keeping the frame intact on resize.
func (v *Viewer) WaitKey() {
	for {
		switch v.screen.PollEvent().(type) {
		case *tcell.EventKey:
			return
		case *tcell.EventResize:
			v.screen.Sync()
		case nil:
			return
		}
	}
}

func (v *Viewer) putString(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

func tileStyle(r rune) tcell.Style {
	switch r {
	case '#':
		return styleWall
	case 'E':
		return styleElf
	case 'G':
		return styleGoblin
	}
	return styleFloor
}
