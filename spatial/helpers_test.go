package spatial_test

import (
	"github.com/kamstrup/intmap"
	"github.com/plus3/hexmap/spatial"
)

// oracle mirrors every write to a Map in a plain integer-keyed table
type oracle struct {
	values *intmap.Map[uint64, spatial.Value]
}

func newOracle() *oracle {
	return &oracle{values: intmap.New[uint64, spatial.Value](64)}
}

func (o *oracle) Set(m *spatial.Map, c spatial.Coord, v spatial.Value) {
	m.Set(c.X, c.Y, v)
	if v == spatial.Empty {
		o.values.Del(c.Key())
		return
	}
	o.values.Put(c.Key(), v)
}

func (o *oracle) Coords() []spatial.Coord {
	coords := make([]spatial.Coord, 0, o.values.Len())
	for key := range o.values.Keys() {
		coords = append(coords, spatial.CoordFromKey(key))
	}
	return coords
}

// fill sets every coordinate in r to v
func fill(m *spatial.Map, r spatial.Rect, v spatial.Value) {
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		for x := r.Min.X; x <= r.Max.X; x++ {
			m.Set(x, y, v)
		}
	}
}

func collectValid(m *spatial.Map) []spatial.Coord {
	coords := make([]spatial.Coord, 0)
	m.AllValidPositions(func(c spatial.Coord, v *spatial.Value) bool {
		coords = append(coords, c)
		return true
	})
	return coords
}

func drainCursor(m *spatial.Map, cur *spatial.Cursor) []spatial.Coord {
	coords := make([]spatial.Coord, 0)
	for {
		c, v := m.NextValidPosition(cur)
		if v == spatial.Empty {
			return coords
		}
		coords = append(coords, c)
	}
}
