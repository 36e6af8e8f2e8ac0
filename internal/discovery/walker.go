// Package discovery simulates a device discovering peers on a hex grid.
//
// A Walker wanders over axial coordinates one neighbor step at a time and
// records a payload for every position it visits in a spatial.Map, mirroring
// each write in a peer table so the map can be checked against it.
package discovery

import (
	"math/rand/v2"

	"github.com/kamstrup/intmap"
	"github.com/ojrac/opensimplex-go"
	"github.com/plus3/hexmap/spatial"
)

// Config controls a simulated walk
type Config struct {
	Width         int     `yaml:"width" long:"width" description:"Map window width in cells"`
	Height        int     `yaml:"height" long:"height" description:"Map window height in cells"`
	Seed          uint64  `yaml:"seed" long:"seed" description:"Seed for the walk and the payload field"`
	NoiseScale    float64 `yaml:"noiseScale" long:"noise-scale" description:"Spatial frequency of the payload field"`
	LossRate      float64 `yaml:"lossRate" long:"loss-rate" description:"Probability that a step loses the peer it lands on"`
	RelocateEvery int     `yaml:"relocateEvery" long:"relocate-every" description:"Steps between relocations to a new neighborhood, 0 disables"`
}

// DefaultConfig returns the configuration of a device with a default sized map
func DefaultConfig() Config {
	return Config{
		Width:      spatial.DefaultWidth,
		Height:     spatial.DefaultHeight,
		Seed:       1,
		NoiseScale: 0.15,
		LossRate:   0.05,
	}
}

// Walker performs a random walk and records discovered peers
type Walker struct {
	cfg   Config
	m     *spatial.Map
	peers *intmap.Map[uint64, spatial.Value]
	noise opensimplex.Noise
	rng   *rand.Rand

	// The walk is confined to a window sized area anchored at origin so the
	// spread of live coordinates always fits the map
	origin spatial.Coord
	pos    spatial.Coord

	steps       int
	lost        int
	relocations int
}

// NewWalker creates a walker that records into m
func NewWalker(m *spatial.Map, cfg Config) *Walker {
	w := &Walker{
		cfg:   cfg,
		m:     m,
		peers: intmap.New[uint64, spatial.Value](m.Width() * m.Height()),
		noise: opensimplex.NewNormalized(int64(cfg.Seed)),
		rng:   rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
	w.pos = w.area().Center()
	return w
}

// Map returns the map the walker records into
func (w *Walker) Map() *spatial.Map { return w.m }

// Position returns the current position of the device
func (w *Walker) Position() spatial.Coord { return w.pos }

// Steps returns the number of steps taken
func (w *Walker) Steps() int { return w.steps }

// Lost returns the number of peers dropped by the loss rate
func (w *Walker) Lost() int { return w.lost }

// Relocations returns how many times the walker moved to a new neighborhood
func (w *Walker) Relocations() int { return w.relocations }

// Peers returns the number of peers currently known
func (w *Walker) Peers() int { return w.peers.Len() }

// Peer returns the payload recorded for c
func (w *Walker) Peer(c spatial.Coord) (spatial.Value, bool) {
	return w.peers.Get(c.Key())
}

// Area returns the coordinates the walk is confined to
func (w *Walker) Area() spatial.Rect { return w.area() }

func (w *Walker) area() spatial.Rect {
	return spatial.Rect{
		Min: w.origin,
		Max: w.origin.Add(spatial.Coord{X: w.m.Width() - 1, Y: w.m.Height() - 1}),
	}
}

// Step moves the device to a random neighbor and records the peer found there
func (w *Walker) Step() {
	w.steps++
	if w.cfg.RelocateEvery > 0 && w.steps%w.cfg.RelocateEvery == 0 {
		w.relocate()
	}

	dir := spatial.NeighborDirections[w.rng.IntN(len(spatial.NeighborDirections))]
	if next := w.pos.Add(dir); w.area().Contains(next) {
		w.pos = next
	}

	if w.cfg.LossRate > 0 && w.rng.Float64() < w.cfg.LossRate {
		if _, ok := w.peers.Get(w.pos.Key()); ok {
			w.lost++
		}
		w.record(w.pos, spatial.Empty)
		return
	}
	w.record(w.pos, w.Payload(w.pos))
}

// Walk takes n steps
func (w *Walker) Walk(n int) {
	for i := 0; i < n; i++ {
		w.Step()
	}
}

// Payload returns the value a peer at c reports. It is never Empty.
func (w *Walker) Payload(c spatial.Coord) spatial.Value {
	n := w.noise.Eval2(float64(c.X)*w.cfg.NoiseScale, float64(c.Y)*w.cfg.NoiseScale)
	n = min(max(n, 0), 1)
	return spatial.Value(1 + int(n*253))
}

// Neighbors returns the number of known peers within distance of the device
func (w *Walker) Neighbors(distance int) int {
	n := 0
	for range w.m.Around(w.pos, distance) {
		n++
	}
	return n
}

func (w *Walker) record(c spatial.Coord, v spatial.Value) {
	w.m.Set(c.X, c.Y, v)
	if v == spatial.Empty {
		w.peers.Del(c.Key())
		return
	}
	w.peers.Put(c.Key(), v)
}

// relocate forgets every peer and continues the walk in a distant area
func (w *Walker) relocate() {
	jump := spatial.Coord{
		X: (w.rng.IntN(9) - 4) * w.m.Width(),
		Y: (w.rng.IntN(9) - 4) * w.m.Height(),
	}
	w.origin = w.origin.Add(jump)
	w.pos = w.area().Center()
	w.m.Reset()
	w.peers.Clear()
	w.relocations++
}
