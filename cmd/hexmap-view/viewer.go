package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/kamstrup/intmap"
	"github.com/plus3/hexmap/internal/discovery"
	"github.com/plus3/hexmap/spatial"
)

const (
	cellWidth = 4
	rowIndent = cellWidth / 2
	gridTop   = 2
)

var (
	styleEmpty   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePeer    = tcell.StyleDefault
	styleInRange = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleCenter  = tcell.StyleDefault.Reverse(true)
	styleDevice  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	styleHeader  = tcell.StyleDefault.Bold(true)
	styleHelp    = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Viewer renders a walker's map as an offset hex grid and highlights the
// peers within a radius of a movable center
type Viewer struct {
	screen tcell.Screen
	cfg    discovery.Config
	steps  int

	walker *discovery.Walker
	center spatial.Coord
	radius int

	// Packed coordinates of the peers within radius of center
	inRange *intmap.Set[uint64]
}

// NewViewer creates a viewer drawing to screen and runs the first walk
func NewViewer(screen tcell.Screen, cfg discovery.Config, steps, radius int) *Viewer {
	v := &Viewer{
		screen:  screen,
		cfg:     cfg,
		steps:   steps,
		radius:  radius,
		inRange: intmap.NewSet[uint64](64),
	}
	v.rerun()
	return v
}

// Run draws the map and handles input until the user quits
func (v *Viewer) Run() {
	for {
		v.draw()

		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return
			}
		case nil:
			return
		}
	}
}

// handleKey applies a key press and returns true if the viewer should exit
func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		v.moveCenter(spatial.Coord{X: -1})
	case tcell.KeyRight:
		v.moveCenter(spatial.Coord{X: 1})
	case tcell.KeyUp:
		v.moveCenter(spatial.Coord{Y: -1})
	case tcell.KeyDown:
		v.moveCenter(spatial.Coord{Y: 1})
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case '+', '=':
			v.setRadius(v.radius + 1)
		case '-':
			v.setRadius(v.radius - 1)
		case 'r':
			v.cfg.Seed++
			v.rerun()
		case 'n', ' ':
			v.walker.Walk(max(v.steps/10, 1))
			v.refresh()
		case 'c':
			v.center = v.walker.Position()
			v.refresh()
		}
	}
	return false
}

func (v *Viewer) moveCenter(d spatial.Coord) {
	v.center = v.center.Add(d)
	v.refresh()
}

func (v *Viewer) setRadius(r int) {
	v.radius = max(r, 0)
	v.refresh()
}

// rerun starts a new walk on an empty map
func (v *Viewer) rerun() {
	v.walker = discovery.NewWalker(spatial.New(v.cfg.Width, v.cfg.Height), v.cfg)
	v.walker.Walk(v.steps)
	v.center = v.walker.Position()
	v.refresh()
}

// refresh recomputes the peers within radius of the center
func (v *Viewer) refresh() {
	v.inRange.Clear()
	v.walker.Map().AllValidPositionsAround(v.center, v.radius, func(c spatial.Coord, _ *spatial.Value) bool {
		v.inRange.Add(c.Key())
		return true
	})
}

// screenPos returns the terminal cell where the value of c is drawn
func (v *Viewer) screenPos(c spatial.Coord) (int, int) {
	window := v.walker.Map().Window()
	row := c.Y - window.Min.Y
	col := c.X - window.Min.X
	return row*rowIndent + col*cellWidth, gridTop + row
}

func (v *Viewer) draw() {
	v.screen.Clear()
	m := v.walker.Map()
	stats := m.CollectStats()

	v.drawText(0, 0, styleHeader, fmt.Sprintf("hex map %dx%d  window %v  seed %d",
		stats.Width, stats.Height, stats.Window, v.cfg.Seed))

	for c, value := range m.All() {
		x, y := v.screenPos(c)
		style := stylePeer
		text := fmt.Sprintf("%02X", uint8(value))

		switch {
		case value == spatial.Empty:
			style, text = styleEmpty, " ."
		case v.inRange.Has(c.Key()):
			style = styleInRange
		}
		if c == v.walker.Position() {
			style = styleDevice
		}
		if c == v.center {
			style = styleCenter
		}
		v.drawText(x+cellWidth-len(text), y, style, text)
	}

	_, h := v.screen.Size()
	status := fmt.Sprintf(" center %v  radius %d  in range %d  peers %d  rebases %d  steps %d ",
		v.center, v.radius, v.inRange.Len(), v.walker.Peers(), stats.Rebases, v.walker.Steps())
	v.drawText(0, h-2, styleStatus, status)
	v.drawText(0, h-1, styleHelp, "arrows move  +/- radius  c recenter  n walk  r new walk  q quit")

	v.screen.Show()
}

func (v *Viewer) drawText(x, y int, style tcell.Style, text string) {
	for i, r := range text {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}
