package spatial

// MapStats is a snapshot of a map's occupancy and window state
type MapStats struct {
	Width       int
	Height      int
	Capacity    int
	Occupied    int
	Initialized bool
	Window      Rect
	Extent      Rect // zero when the map is empty
	Rebases     uint64
	Generation  uint32
}

// Load returns the fraction of cells holding a value
func (s MapStats) Load() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Occupied) / float64(s.Capacity)
}

// CollectStats gathers statistics about the map
func (m *Map) CollectStats() MapStats {
	stats := MapStats{
		Width:       m.width,
		Height:      m.height,
		Capacity:    len(m.cells),
		Initialized: m.initialized,
		Window:      m.Window(),
		Rebases:     m.rebases,
		Generation:  m.generation,
	}

	for _, v := range m.cells {
		if v != Empty {
			stats.Occupied++
		}
	}

	if extent, ok := m.Bounds(); ok {
		stats.Extent = extent
	}

	return stats
}
