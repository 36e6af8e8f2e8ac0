// Package spatial provides a fixed-capacity map keyed by axial hex coordinates.
//
// A Map remembers one byte per coordinate for a bounded neighborhood. Its cell
// store is allocated once, when the map is created, and never grows. Instead
// the map keeps a window of Width x Height coordinates anchored at the
// smallest x and y written so far. Writing a coordinate smaller than the
// current anchor re-bases the window: the stored cells are shifted so every
// live coordinate keeps its value while absolute coordinates are free to
// drift. Callers must keep the spread of live coordinates within the window.
//
// The map is not safe for concurrent use.
package spatial

import "fmt"

// Value is the payload stored for a coordinate
type Value uint8

// Empty marks a coordinate with no entry. It must not be used as a payload.
const Empty Value = 0

// Window dimensions used by NewDefault
const (
	DefaultWidth  = 16
	DefaultHeight = 16
)

// Map is a spatial key-value map over a fixed window of coordinates
type Map struct {
	width  int
	height int
	cells  []Value

	// Smallest representable coordinate; cells[0] holds (minX, minY)
	minX int
	minY int

	// Largest coordinates written, clipped to the window
	maxX int
	maxY int

	initialized bool

	// Bumped whenever the window moves or the map is reset
	generation uint32
	rebases    uint64
}

// New creates an empty map with a window of width x height cells
func New(width, height int) *Map {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("spatial: invalid map size %dx%d", width, height))
	}
	return &Map{
		width:  width,
		height: height,
		cells:  make([]Value, width*height),
	}
}

// NewDefault creates an empty map with the default window size
func NewDefault() *Map {
	return New(DefaultWidth, DefaultHeight)
}

// Width returns the number of columns in the window
func (m *Map) Width() int { return m.width }

// Height returns the number of rows in the window
func (m *Map) Height() int { return m.height }

// Set stores v at (x, y), re-basing the window first if x or y is smaller
// than any coordinate seen since the last Reset.
//
// The window is not grown: the caller must keep every live coordinate within
// Width columns and Height rows of the smallest one. Cells pushed past the far
// edge by a re-base are dropped. Writing a coordinate that does not fit the
// window even after re-basing is a programming error and panics.
func (m *Map) Set(x, y int, v Value) {
	if !m.initialized {
		m.minX, m.minY = x, y
		m.maxX, m.maxY = x, y
		m.initialized = true
		m.generation++
	} else {
		newMinX, newMinY := min(m.minX, x), min(m.minY, y)
		if x-newMinX >= m.width || y-newMinY >= m.height {
			panic(fmt.Sprintf("spatial: write to %v outside window %v", Coord{X: x, Y: y}, m.Window()))
		}

		dx, dy := m.minX-newMinX, m.minY-newMinY
		m.minX, m.minY = newMinX, newMinY
		m.maxX, m.maxY = max(m.maxX, x), max(m.maxY, y)

		if dx != 0 || dy != 0 {
			m.shift(dx, dy)
		}
	}

	m.cells[m.offset(x, y)] = v
}

// shift moves the stored cells dx columns right and dy rows down, then clears
// the vacated rows [0, dy) and columns [0, dx). Both deltas are non-negative.
//
// The store is row-major so the move is a single block copy of dy*width+dx
// cells. Cells that run off the end of a row wrap into columns [0, dx) of the
// next row, which the clearing pass empties; cells that run off the last row
// are dropped.
func (m *Map) shift(dx, dy int) {
	if delta := dy*m.width + dx; delta < len(m.cells) {
		copy(m.cells[delta:], m.cells[:len(m.cells)-delta])
	}

	for row := 0; row < m.height; row++ {
		line := m.cells[row*m.width : (row+1)*m.width]
		if row < dy {
			clear(line)
			continue
		}
		clear(line[:min(dx, m.width)])
	}

	m.maxX = min(m.maxX, m.minX+m.width-1)
	m.maxY = min(m.maxY, m.minY+m.height-1)
	m.generation++
	m.rebases++
}

// offset translates a coordinate to its index in the cell store without validation
func (m *Map) offset(x, y int) int {
	return (y-m.minY)*m.width + (x - m.minX)
}

// index translates a coordinate to its index in the cell store.
// Returns false if the coordinate lies outside the current window.
func (m *Map) index(x, y int) (int, bool) {
	col, row := x-m.minX, y-m.minY
	if col < 0 || row < 0 || col >= m.width || row >= m.height {
		return 0, false
	}
	return row*m.width + col, true
}

// Get returns the value stored at (x, y), or Empty if the coordinate was
// never written or lies outside the current window
func (m *Map) Get(x, y int) Value {
	idx, ok := m.index(x, y)
	if !ok {
		return Empty
	}
	return m.cells[idx]
}

// GetUnchecked returns the value at (x, y) without validating the window.
// A coordinate outside the window yields the value of an unrelated cell or
// panics; use Get unless the coordinate is known to be in range.
func (m *Map) GetUnchecked(x, y int) Value {
	return m.cells[m.offset(x, y)]
}

// Has reports whether (x, y) holds a non-empty value
func (m *Map) Has(x, y int) bool {
	return m.Get(x, y) != Empty
}

// Initialized returns true if Set has been called since the map was created
// or last Reset
func (m *Map) Initialized() bool {
	return m.initialized
}

// Reset empties the map. Outstanding cursors are invalidated.
func (m *Map) Reset() {
	clear(m.cells)
	m.minX, m.minY = 0, 0
	m.maxX, m.maxY = 0, 0
	m.initialized = false
	m.generation++
}

// Window returns the range of coordinates the map can currently hold
func (m *Map) Window() Rect {
	return Rect{
		Min: Coord{X: m.minX, Y: m.minY},
		Max: Coord{X: m.minX + m.width - 1, Y: m.minY + m.height - 1},
	}
}

// Bounds returns the bounding box of the coordinates written so far.
// Returns false if the map is empty.
func (m *Map) Bounds() (Rect, bool) {
	if !m.initialized {
		return Rect{}, false
	}
	return m.extent(), true
}

func (m *Map) extent() Rect {
	return Rect{
		Min: Coord{X: m.minX, Y: m.minY},
		Max: Coord{X: m.maxX, Y: m.maxY},
	}
}

// Generation returns a counter that changes whenever the window moves or the
// map is reset
func (m *Map) Generation() uint32 {
	return m.generation
}

// String returns a summary of the map
func (m *Map) String() string {
	return fmt.Sprintf("Map(%dx%d, window=%v, initialized=%t)", m.width, m.height, m.Window(), m.initialized)
}
