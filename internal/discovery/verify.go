package discovery

import (
	"fmt"

	"github.com/plus3/hexmap/spatial"
)

// Verification is the result of comparing the map with the peer table
type Verification struct {
	Peers      int // entries in the peer table
	Valid      int // positions visited by AllValidPositions
	Scanned    int // positions returned by a full cursor scan
	Mismatches int // coordinates whose map value differs from the peer table
}

// Err returns an error describing any disagreement between the map and the peer table
func (v Verification) Err() error {
	switch {
	case v.Mismatches > 0:
		return fmt.Errorf("%d of %d peers have the wrong value", v.Mismatches, v.Peers)
	case v.Valid != v.Peers:
		return fmt.Errorf("traversal visited %d positions, expected %d", v.Valid, v.Peers)
	case v.Scanned != v.Peers:
		return fmt.Errorf("cursor returned %d positions, expected %d", v.Scanned, v.Peers)
	}
	return nil
}

// Verify checks every known peer with Get, then walks the map with a
// traversal and a cursor and checks what they return against the peer table
func (w *Walker) Verify() Verification {
	res := Verification{Peers: w.peers.Len()}

	w.peers.ForEach(func(key uint64, v spatial.Value) bool {
		c := spatial.CoordFromKey(key)
		if w.m.Get(c.X, c.Y) != v {
			res.Mismatches++
		}
		return true
	})

	w.m.AllValidPositions(func(c spatial.Coord, v *spatial.Value) bool {
		res.Valid++
		if want, ok := w.peers.Get(c.Key()); !ok || want != *v {
			res.Mismatches++
		}
		return true
	})

	var cur spatial.Cursor
	for {
		c, v := w.m.NextValidPosition(&cur)
		if v == spatial.Empty {
			break
		}
		res.Scanned++
		if want, ok := w.peers.Get(c.Key()); !ok || want != v {
			res.Mismatches++
		}
	}

	return res
}
