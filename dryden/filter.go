package dryden

import (
	"fmt"
	"math"
)

// Kind is the form of a Dryden shaping filter.
type Kind uint8

const (
	// FirstOrder is the longitudinal form σ·sqrt(2a)/(s+a).
	FirstOrder Kind = iota + 1
	// SecondOrder is the lateral and vertical form σ·sqrt(3a)·(s+a/√3)/(s+a)².
	SecondOrder
)

func (k Kind) String() string {
	switch k {
	case FirstOrder:
		return "first-order"
	case SecondOrder:
		return "second-order"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// order returns the size of the state vector.
func (k Kind) order() int {
	if k == SecondOrder {
		return 2
	}
	return 1
}

// AxisFilter is the shaping filter of one axis, driven by unit intensity white noise.
// With a = V/L, the first order filter is
//
//	x1' = -a x1 + σ sqrt(2a) w,   y = x1
//
// and the second order filter, in controllable canonical form, is
//
//	x1' = x2
//	x2' = -a² x1 - 2a x2 + w,      y = σ sqrt(3a) (a/√3 x1 + x2)
//
// Both have a stationary output variance of σ².
type AxisFilter struct {
	Kind  Kind
	Sigma float64 // intensity, m/s
	a     float64 // pole, V/L
	a2    float64 // a²
	twoA  float64 // 2a
	gain  float64 // input gain (first order) or output gain (second order)
	zero  float64 // a/√3, second order only
	hMax  float64 // largest integration substep
	state [2]float64
}

// NewAxisFilter returns a filter at rest. The coefficients depend only on the configuration and
// are computed here once. sigma must be non negative and airspeed and length strictly positive.
func NewAxisFilter(kind Kind, sigma, airspeed, length float64) AxisFilter {
	f := AxisFilter{Kind: kind, Sigma: sigma}
	if f.Disabled() {
		return f
	}
	f.a = airspeed / length
	f.a2 = f.a * f.a
	f.twoA = 2 * f.a
	f.hMax = 0.5 / f.a
	switch kind {
	case FirstOrder:
		f.gain = sigma * math.Sqrt(2*f.a)
	case SecondOrder:
		f.gain = sigma * math.Sqrt(3*f.a)
		f.zero = f.a / math.Sqrt(3)
	default:
		panic(fmt.Errorf("unknown filter kind %s", kind))
	}
	return f
}

// Disabled returns whether this axis produces no turbulence at all.
func (f AxisFilter) Disabled() bool {
	return f.Sigma == 0
}

// State returns a copy of the filter memory.
func (f AxisFilter) State() []float64 {
	s := make([]float64, f.Kind.order())
	copy(s, f.state[:])
	return s
}

// Output returns the gust velocity for the current state.
func (f AxisFilter) Output() float64 {
	if f.Disabled() {
		return 0
	}
	if f.Kind == FirstOrder {
		return f.state[0]
	}
	return f.gain * (f.zero*f.state[0] + f.state[1])
}

// derivative stores in dst the state derivative for input u and returns it.
func (f AxisFilter) derivative(dst, s []float64, u float64) []float64 {
	if f.Kind == FirstOrder {
		dst[0] = -f.a*s[0] + f.gain*u
		return dst[:1]
	}
	dst[0] = s[1]
	dst[1] = -f.a2*s[0] - f.twoA*s[1] + u
	return dst[:2]
}

// equilibrium returns the state reached under a constant input u.
func (f AxisFilter) equilibrium(u float64) [2]float64 {
	if f.Kind == FirstOrder {
		return [2]float64{f.gain * u / f.a, 0}
	}
	return [2]float64{u / f.a2, 0}
}

// Step advances the filter by dt with the noise u held over the whole step, and returns the new
// filter with its output. The receiver is left untouched.
func (f AxisFilter) Step(u, dt float64) (AxisFilter, float64) {
	if f.Disabled() {
		return f, 0
	}
	next := f
	newStepper().advance(&next, u, dt)
	return next, next.Output()
}
