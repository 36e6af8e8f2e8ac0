package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/hexmap/internal/discovery"
	"github.com/plus3/hexmap/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViewer(t *testing.T) (*Viewer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(100, 24)

	cfg := discovery.DefaultConfig()
	cfg.LossRate = 0
	return NewViewer(screen, cfg, 300, 1), screen
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func screenLine(screen tcell.SimulationScreen, y int) string {
	cells, w, _ := screen.GetContents()
	var b strings.Builder
	for _, c := range cells[y*w : (y+1)*w] {
		if len(c.Bytes) == 0 {
			b.WriteByte(' ')
			continue
		}
		b.Write(c.Bytes)
	}
	return b.String()
}

func countAround(m *spatial.Map, center spatial.Coord, radius int) int {
	n := 0
	for range m.Around(center, radius) {
		n++
	}
	return n
}

func TestViewerHighlightsPeersInRange(t *testing.T) {
	v, _ := newTestViewer(t)
	m := v.walker.Map()

	assert.Equal(t, v.walker.Position(), v.center)
	assert.Equal(t, countAround(m, v.center, 1), v.inRange.Len())
	assert.True(t, v.inRange.Has(v.center.Key()))

	v.handleKey(runeKey('+'))
	assert.Equal(t, 2, v.radius)
	assert.Equal(t, countAround(m, v.center, 2), v.inRange.Len())

	for i := 0; i < 3; i++ {
		v.handleKey(runeKey('-'))
	}
	assert.Equal(t, 0, v.radius)
	assert.Equal(t, 1, v.inRange.Len())
}

func TestViewerMovesCenter(t *testing.T) {
	v, _ := newTestViewer(t)
	start := v.center

	v.handleKey(key(tcell.KeyLeft))
	v.handleKey(key(tcell.KeyDown))
	v.handleKey(key(tcell.KeyDown))
	assert.Equal(t, start.Add(spatial.Coord{X: -1, Y: 2}), v.center)
	assert.Equal(t, countAround(v.walker.Map(), v.center, v.radius), v.inRange.Len())

	v.handleKey(key(tcell.KeyRight))
	v.handleKey(key(tcell.KeyUp))
	assert.Equal(t, start.Add(spatial.Coord{Y: 1}), v.center)

	v.handleKey(runeKey('c'))
	assert.Equal(t, v.walker.Position(), v.center)
}

func TestViewerWalkAndRerun(t *testing.T) {
	v, _ := newTestViewer(t)
	require.Equal(t, 300, v.walker.Steps())

	v.handleKey(runeKey('n'))
	assert.Equal(t, 330, v.walker.Steps())

	first := v.walker
	v.handleKey(runeKey('r'))
	assert.NotSame(t, first, v.walker)
	assert.Equal(t, uint64(2), v.cfg.Seed)
	assert.Equal(t, 300, v.walker.Steps())
	assert.Equal(t, v.walker.Position(), v.center)
	require.NoError(t, v.walker.Verify().Err())
}

func TestViewerQuitKeys(t *testing.T) {
	v, _ := newTestViewer(t)

	assert.True(t, v.handleKey(runeKey('q')))
	assert.True(t, v.handleKey(key(tcell.KeyEscape)))
	assert.True(t, v.handleKey(key(tcell.KeyCtrlC)))
	assert.False(t, v.handleKey(runeKey('x')))
}

func TestViewerDraw(t *testing.T) {
	v, screen := newTestViewer(t)
	v.draw()

	assert.Contains(t, screenLine(screen, 0), "hex map 16x16")

	pos := v.walker.Position()
	value := v.walker.Map().Get(pos.X, pos.Y)
	require.NotEqual(t, spatial.Empty, value)

	x, y := v.screenPos(pos)
	line := screenLine(screen, y)
	assert.Equal(t, fmt.Sprintf("%02X", uint8(value)), line[x+2:x+4])

	cells, w, _ := screen.GetContents()
	assert.Equal(t, styleCenter, cells[y*w+x+3].Style)

	_, h := screen.Size()
	status := screenLine(screen, h-2)
	assert.Contains(t, status, "radius 1")
	assert.Contains(t, status, fmt.Sprintf("peers %d", v.walker.Peers()))
	assert.Contains(t, screenLine(screen, h-1), "q quit")
}

func TestViewerScreenPosOffsetsRows(t *testing.T) {
	v, _ := newTestViewer(t)
	window := v.walker.Map().Window()

	x0, y0 := v.screenPos(window.Min)
	assert.Equal(t, 0, x0)
	assert.Equal(t, gridTop, y0)

	x1, y1 := v.screenPos(window.Min.Add(spatial.Coord{X: 1, Y: 1}))
	assert.Equal(t, cellWidth+rowIndent, x1)
	assert.Equal(t, gridTop+1, y1)
}

func TestParseOptions(t *testing.T) {
	opts, err := parseOptions([]string{"--steps", "50", "--radius", "3", "--seed", "9"})
	require.NoError(t, err)
	assert.Equal(t, 50, opts.Steps)
	assert.Equal(t, 3, opts.Radius)
	assert.Equal(t, uint64(9), opts.Walk.Seed)

	_, err = parseOptions([]string{"--radius=-1"})
	assert.Error(t, err)
	_, err = parseOptions([]string{"--width", "0"})
	assert.Error(t, err)
}
