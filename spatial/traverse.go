package spatial

import (
	"fmt"
	"iter"
)

// Visitor is called for each cell visited by a traversal. It receives the
// absolute coordinate and a pointer to the stored value, which may be
// overwritten in place. Returning false stops the traversal.
type Visitor func(c Coord, v *Value) bool

// AllPositions calls fn for every cell in the window, including empty ones, in
// row-major order. Returns true if every cell was visited.
func (m *Map) AllPositions(fn Visitor) bool {
	for row := 0; row < m.height; row++ {
		base := row * m.width
		for col := 0; col < m.width; col++ {
			c := Coord{X: m.minX + col, Y: m.minY + row}
			if !fn(c, &m.cells[base+col]) {
				return false
			}
		}
	}
	return true
}

// AllValidPositions calls fn for every non-empty cell in row-major order.
// Only the bounding box of written coordinates is scanned.
// Returns true if every cell was visited.
func (m *Map) AllValidPositions(fn Visitor) bool {
	if !m.initialized {
		return true
	}
	return m.visitValid(m.extent(), Coord{}, -1, fn)
}

// AllValidPositionsAround calls fn for every non-empty cell within distance
// of center on the hex grid. Returns true if every cell was visited.
func (m *Map) AllValidPositionsAround(center Coord, distance int, fn Visitor) bool {
	if distance < 0 {
		panic(fmt.Sprintf("spatial: negative distance %d", distance))
	}
	if !m.initialized {
		return true
	}
	return m.visitValid(Square(center, distance), center, distance, fn)
}

// visitValid scans area clipped to the written extent. A negative distance
// disables the z filter.
func (m *Map) visitValid(area Rect, center Coord, distance int, fn Visitor) bool {
	area = area.Intersect(m.extent())
	for y := area.Min.Y; y <= area.Max.Y; y++ {
		base := (y - m.minY) * m.width
		for x := area.Min.X; x <= area.Max.X; x++ {
			v := &m.cells[base+x-m.minX]
			if *v == Empty {
				continue
			}

			c := Coord{X: x, Y: y}
			if distance >= 0 && !withinZ(center, c, distance) {
				continue
			}

			if !fn(c, v) {
				return false
			}
		}
	}
	return true
}

// All returns an iterator over every cell in the window, including empty ones
func (m *Map) All() iter.Seq2[Coord, Value] {
	return func(yield func(Coord, Value) bool) {
		m.AllPositions(func(c Coord, v *Value) bool {
			return yield(c, *v)
		})
	}
}

// Valid returns an iterator over the non-empty cells
func (m *Map) Valid() iter.Seq2[Coord, Value] {
	return func(yield func(Coord, Value) bool) {
		m.AllValidPositions(func(c Coord, v *Value) bool {
			return yield(c, *v)
		})
	}
}

// Around returns an iterator over the non-empty cells within distance of center
func (m *Map) Around(center Coord, distance int) iter.Seq2[Coord, Value] {
	return func(yield func(Coord, Value) bool) {
		m.AllValidPositionsAround(center, distance, func(c Coord, v *Value) bool {
			return yield(c, *v)
		})
	}
}

// Coords returns an iterator over the coordinates of the non-empty cells
func (m *Map) Coords() iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for c := range m.Valid() {
			if !yield(c) {
				return
			}
		}
	}
}
