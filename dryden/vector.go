package dryden

import (
	"fmt"
	"math"
)

// Vector is a three axis velocity in m/s.
type Vector struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Slice returns the components as a new []float64.
func (v Vector) Slice() []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// IsFinite returns whether no component is NaN or infinite.
func (v Vector) IsFinite() bool {
	for _, c := range v.Slice() {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func (v Vector) String() string {
	return fmt.Sprintf("[%f %f %f]", v.X, v.Y, v.Z)
}
