package spatial

import "fmt"

// CursorState is the scan state of a Cursor
type CursorState uint8

const (
	// CursorUninitialized is the state of a zero Cursor. Bounds are bound on first use.
	CursorUninitialized CursorState = iota
	// CursorScanning means the cursor has bounds and may yield more positions
	CursorScanning
	// CursorExhausted is terminal; the cursor only yields Empty from here on
	CursorExhausted
)

func (s CursorState) String() string {
	switch s {
	case CursorUninitialized:
		return "uninitialized"
	case CursorScanning:
		return "scanning"
	case CursorExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("CursorState(%d)", uint8(s))
	}
}

// Cursor is a resumable, single-pass scan over the non-empty cells of a Map.
// It yields one position per call to Map.NextValidPosition or
// Map.NextValidPositionAround, which lets a control loop spread a scan over
// several iterations.
//
// The zero value is ready to use. A cursor binds its bounds on the first call
// and never recomputes them; to scan again, call Reset. If the map's window
// moves or the map is reset while a scan is in progress, the cursor stops and
// reports Stale instead of yielding positions from the old window.
type Cursor struct {
	state CursorState
	stale bool

	// Half-open scan bounds: [start.X, end.X) x [start.Y, end.Y)
	start Coord
	end   Coord
	curr  Coord

	center     Coord
	distance   int // negative: no distance filter
	generation uint32
}

// State returns the cursor's scan state
func (c *Cursor) State() CursorState {
	return c.state
}

// Stale returns true if the scan stopped because the map was re-based or reset
func (c *Cursor) Stale() bool {
	return c.stale
}

// Reset returns the cursor to the uninitialized state
func (c *Cursor) Reset() {
	*c = Cursor{}
}

func (c *Cursor) bind(area Rect, center Coord, distance int, generation uint32) {
	c.state = CursorScanning
	c.stale = false
	c.start = area.Min
	c.end = Coord{X: area.Max.X + 1, Y: area.Max.Y + 1}
	c.curr = area.Min
	c.center = center
	c.distance = distance
	c.generation = generation
}

// NextValidPosition advances cur to the next non-empty cell in the window and
// returns its coordinate and value. Returns Empty once the scan is exhausted.
func (m *Map) NextValidPosition(cur *Cursor) (Coord, Value) {
	if cur.state == CursorUninitialized {
		cur.bind(m.Window(), Coord{}, -1, m.generation)
	}
	return m.next(cur)
}

// NextValidPositionAround advances cur to the next non-empty cell within
// distance of center and returns its coordinate and value. Returns Empty once
// the scan is exhausted. center and distance are only read when cur is
// uninitialized. The scan covers the part of the square around center that
// overlaps the window.
func (m *Map) NextValidPositionAround(center Coord, distance int, cur *Cursor) (Coord, Value) {
	if cur.state == CursorUninitialized {
		if distance < 0 {
			panic(fmt.Sprintf("spatial: negative distance %d", distance))
		}
		area := Square(center, distance).Intersect(m.Window())
		cur.bind(area, center, distance, m.generation)
		if area.Empty() {
			cur.state = CursorExhausted
		}
	}
	return m.next(cur)
}

func (m *Map) next(cur *Cursor) (Coord, Value) {
	if cur.state != CursorScanning {
		return Coord{}, Empty
	}
	if cur.generation != m.generation {
		cur.state = CursorExhausted
		cur.stale = true
		return Coord{}, Empty
	}

	for ; cur.curr.Y < cur.end.Y; cur.curr.Y++ {
		for ; cur.curr.X < cur.end.X; cur.curr.X++ {
			p := cur.curr
			if cur.distance >= 0 && !withinZ(cur.center, p, cur.distance) {
				continue
			}
			if v := m.Get(p.X, p.Y); v != Empty {
				// Resume just past this hit on the next call
				cur.curr.X++
				return p, v
			}
		}
		cur.curr.X = cur.start.X
	}

	cur.state = CursorExhausted
	return Coord{}, Empty
}
