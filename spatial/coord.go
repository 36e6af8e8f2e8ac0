package spatial

import (
	"fmt"
	"math"
)

// Coord is a position on a hex grid in axial coordinates
// The third cube coordinate is implicit, see Z
type Coord struct {
	X int
	Y int
}

// Z returns the implicit third axial coordinate (x + y + z = 0)
func (c Coord) Z() int {
	return -c.X - c.Y
}

// Add returns the component-wise sum of two coordinates
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

// Key packs the coordinate into a single integer, X in the upper 32 bits and Y in the lower 32 bits
func (c Coord) Key() uint64 {
	return uint64(uint32(int32(c.X)))<<32 | uint64(uint32(int32(c.Y)))
}

// CoordFromKey unpacks a coordinate produced by Key
func CoordFromKey(key uint64) Coord {
	return Coord{X: int(int32(uint32(key >> 32))), Y: int(int32(uint32(key)))}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// NeighborDirections holds the six axial neighbor offsets, counter-clockwise starting east
var NeighborDirections = [6]Coord{
	{X: 1, Y: 0},
	{X: 1, Y: -1},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
	{X: -1, Y: 1},
	{X: 0, Y: 1},
}

// Neighbors returns the six adjacent coordinates
func (c Coord) Neighbors() [6]Coord {
	var result [6]Coord
	for i, dir := range NeighborDirections {
		result[i] = c.Add(dir)
	}
	return result
}

// Distance returns the hex distance between two coordinates
func Distance(a, b Coord) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y), abs(a.Z()-b.Z()))
}

// withinZ reports whether c lies within distance of center along the z axis.
// Combined with a square clip of the same radius this is exactly Distance <= distance.
func withinZ(center, c Coord, distance int) bool {
	return abs(center.Z()-c.Z()) <= distance
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Rect is an inclusive rectangle of coordinates
type Rect struct {
	Min Coord
	Max Coord
}

// Square returns the rectangle [center-radius, center+radius] on both axes
// Bounds saturate at the limits of int instead of wrapping.
func Square(center Coord, radius int) Rect {
	return Rect{
		Min: Coord{X: subClamped(center.X, radius), Y: subClamped(center.Y, radius)},
		Max: Coord{X: addClamped(center.X, radius), Y: addClamped(center.Y, radius)},
	}
}

func addClamped(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}

func subClamped(a, b int) int {
	switch {
	case b > 0 && a < math.MinInt+b:
		return math.MinInt
	case b < 0 && a > math.MaxInt+b:
		return math.MaxInt
	}
	return a - b
}

// Empty reports whether the rectangle contains no coordinates
func (r Rect) Empty() bool {
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y
}

// Contains reports whether c lies inside the rectangle
func (r Rect) Contains(c Coord) bool {
	return c.X >= r.Min.X && c.X <= r.Max.X && c.Y >= r.Min.Y && c.Y <= r.Max.Y
}

// Intersect returns the overlap of two rectangles, which may be empty
func (r Rect) Intersect(o Rect) Rect {
	return Rect{
		Min: Coord{X: max(r.Min.X, o.Min.X), Y: max(r.Min.Y, o.Min.Y)},
		Max: Coord{X: min(r.Max.X, o.Max.X), Y: min(r.Max.Y, o.Max.Y)},
	}
}

// Width returns the number of columns covered by the rectangle
func (r Rect) Width() int {
	if r.Empty() {
		return 0
	}
	return r.Max.X - r.Min.X + 1
}

// Height returns the number of rows covered by the rectangle
func (r Rect) Height() int {
	if r.Empty() {
		return 0
	}
	return r.Max.Y - r.Min.Y + 1
}

// Center returns the middle cell, rounding toward Min
func (r Rect) Center() Coord {
	return Coord{
		X: r.Min.X + (r.Max.X-r.Min.X)/2,
		Y: r.Min.Y + (r.Max.Y-r.Min.Y)/2,
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%v..%v]", r.Min, r.Max)
}
