package dryden

import (
	"math"

	"github.com/goromal/wind-dynamics/integrator"
)

// settle is the number of time constants past which the initial filter state is forgotten.
const settle = 40.0

// stepper is an integrator.Integrable advancing one AxisFilter over a sample period.
// It keeps its RK4 and derivative buffer, so stepping the filters of a Model does not allocate.
type stepper struct {
	filter *AxisFilter
	u      float64 // noise, held for the whole period
	steps  uint64  // number of RK4 substeps
	dx     []float64
	rk4    *integrator.RK4
}

func newStepper() *stepper {
	s := &stepper{dx: make([]float64, 2)}
	s.rk4 = integrator.NewRK4(0, 1, s)
	return s
}

// substeps splits dt in steps no longer than hMax, so that a·h ≤ 0.5 whatever dt is.
func substeps(dt, hMax float64) (uint64, float64) {
	n := math.Ceil(dt / hMax)
	if n < 1 {
		n = 1
	}
	return uint64(n), dt / n
}

// advance moves f forward in place by dt under the input u.
func (s *stepper) advance(f *AxisFilter, u, dt float64) {
	if dt*f.a > settle {
		f.state = f.equilibrium(u)
		return
	}
	s.filter, s.u = f, u
	s.steps, s.rk4.StepSize = substeps(dt, f.hMax)
	s.rk4.Solve()
	s.filter = nil
}

// GetState implements the integrator.Integrable interface.
func (s *stepper) GetState() []float64 {
	return s.filter.state[:s.filter.Kind.order()]
}

// SetState implements the integrator.Integrable interface.
func (s *stepper) SetState(i uint64, state []float64) {
	copy(s.filter.state[:], state)
}

// Stop implements the integrator.Integrable interface.
func (s *stepper) Stop(i uint64) bool {
	return i >= s.steps
}

// Func implements the integrator.Integrable interface. The filters are time invariant.
func (s *stepper) Func(t float64, state []float64) []float64 {
	return s.filter.derivative(s.dx, state, s.u)
}
