package spatial_test

import (
	"testing"

	"github.com/plus3/hexmap/spatial"
)

func BenchmarkSet(b *testing.B) {
	m := spatial.NewDefault()
	m.Set(0, 0, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Set(i%spatial.DefaultWidth, (i/spatial.DefaultWidth)%spatial.DefaultHeight, 1)
	}
}

func BenchmarkSetRebase(b *testing.B) {
	m := spatial.NewDefault()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%spatial.DefaultWidth == 0 {
			m.Reset()
			m.Set(0, 0, 1)
		}
		// Every write moves the window one column west
		m.Set(-(i%spatial.DefaultWidth)-1, 0, 1)
	}
}

func BenchmarkGet(b *testing.B) {
	m := spatial.NewDefault()
	m.Set(0, 0, 1)
	m.Set(5, 5, 2)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Get(5, 5)
	}
}

func BenchmarkGetUnchecked(b *testing.B) {
	m := spatial.NewDefault()
	m.Set(0, 0, 1)
	m.Set(5, 5, 2)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.GetUnchecked(5, 5)
	}
}

func newBenchMap() *spatial.Map {
	m := spatial.NewDefault()
	for y := 0; y < spatial.DefaultHeight; y += 2 {
		for x := 0; x < spatial.DefaultWidth; x += 3 {
			m.Set(x, y, 1)
		}
	}
	return m
}

func BenchmarkAllValidPositions(b *testing.B) {
	m := newBenchMap()
	visit := func(c spatial.Coord, v *spatial.Value) bool { return true }

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.AllValidPositions(visit)
	}
}

func BenchmarkAllValidPositionsAround(b *testing.B) {
	m := newBenchMap()
	visit := func(c spatial.Coord, v *spatial.Value) bool { return true }
	center := spatial.Coord{X: 8, Y: 8}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.AllValidPositionsAround(center, 3, visit)
	}
}

func BenchmarkValidIterator(b *testing.B) {
	m := newBenchMap()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for range m.Valid() {
		}
	}
}

func BenchmarkCursorScan(b *testing.B) {
	m := newBenchMap()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var cur spatial.Cursor
		for {
			if _, v := m.NextValidPosition(&cur); v == spatial.Empty {
				break
			}
		}
	}
}
