package dryden

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// NoiseSource draws the white noise driving the three shaping filters.
// Each instance owns its generator; nothing is shared between sources.
type NoiseSource struct {
	dist *distmv.Normal
	buf  []float64
}

// NewNoiseSource returns a standard normal source over the three axes seeded with seed.
func NewNoiseSource(seed uint64) (*NoiseSource, error) {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	dist, ok := distmv.NewNormal(make([]float64, 3), mat.NewSymDense(3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}), src)
	if !ok {
		return nil, errNoiseCovariance
	}
	return &NoiseSource{dist: dist, buf: make([]float64, 3)}, nil
}

// Draw returns one independent sample per axis, each N(0, 1/dt).
// The 1/sqrt(dt) factor keeps the noise power spectral density at one whatever the step.
func (n *NoiseSource) Draw(dt float64) Vector {
	n.dist.Rand(n.buf)
	scale := 1 / math.Sqrt(dt)
	return Vector{n.buf[0] * scale, n.buf[1] * scale, n.buf[2] * scale}
}
