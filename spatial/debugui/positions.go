package debugui

import "github.com/plus3/hexmap/spatial"

type positionRow struct {
	Coord    spatial.Coord
	Value    spatial.Value
	Distance int
}

// positionTable scans a map incrementally with a cursor, a bounded number of
// positions per frame. The last complete scan stays visible while the next
// one is being built.
type positionTable struct {
	shown   []positionRow
	pending []positionRow
	cursor  spatial.Cursor

	center   spatial.Coord
	distance int
	scans    int
	restarts int
}

func newPositionTable(center spatial.Coord, distance int) *positionTable {
	return &positionTable{
		center:   center,
		distance: distance,
	}
}

// setFilter changes the scan area, discarding a scan in progress if it differs
func (t *positionTable) setFilter(center spatial.Coord, distance int) {
	if center == t.center && distance == t.distance {
		return
	}
	t.center = center
	t.distance = distance
	t.restart()
}

func (t *positionTable) restart() {
	t.pending = t.pending[:0]
	t.cursor.Reset()
}

// advance pulls up to budget positions from m
func (t *positionTable) advance(m *spatial.Map, budget int) {
	for i := 0; i < budget; i++ {
		c, v := m.NextValidPositionAround(t.center, t.distance, &t.cursor)
		if v != spatial.Empty {
			t.pending = append(t.pending, positionRow{
				Coord:    c,
				Value:    v,
				Distance: spatial.Distance(t.center, c),
			})
			continue
		}

		if t.cursor.Stale() {
			// The window moved under the scan; start over on the next frame
			t.restarts++
			t.restart()
			return
		}

		t.shown, t.pending = t.pending, t.shown[:0]
		t.cursor.Reset()
		t.scans++
		return
	}
}

// rows returns the positions of the last complete scan
func (t *positionTable) rows() []positionRow {
	return t.shown
}
