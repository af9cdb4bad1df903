package dryden

import (
	"errors"
	"fmt"
	"math"
	"time"

	kitlog "github.com/go-kit/log"
)

const (
	// DefaultAirspeed is the airspeed in m/s used when none is configured.
	DefaultAirspeed = 1.0
	// DefaultLengthScale is the turbulence length scale in m used by LoadConfig when none is set.
	DefaultLengthScale = 100.0
)

var (
	// ErrInvalidConfiguration is returned for a negative intensity or a non positive scale.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrInvalidTimestep is returned when dt is not strictly positive and finite.
	ErrInvalidTimestep = errors.New("invalid timestep")
	// ErrNotInitialized is returned when sampling a model which was never initialized.
	ErrNotInitialized = errors.New("not initialized")

	errNoiseCovariance = errors.New("noise covariance is not positive definite")
)

// Config is the configuration of a Model.
type Config struct {
	Mean        Vector  // steady wind, m/s
	Sigma       Vector  // turbulence intensity per axis, m/s; zero disables the axis
	LengthScale float64 // turbulence length scale L, m
	Airspeed    float64 // vehicle airspeed V, m/s; zero means DefaultAirspeed
	Seed        *uint64 // noise seed; nil uses the model seed, or the clock
}

// Validate returns an error wrapping ErrInvalidConfiguration if the configuration cannot be used.
func (c Config) Validate() error {
	if !c.Mean.IsFinite() {
		return fmt.Errorf("%w: mean wind %s is not finite", ErrInvalidConfiguration, c.Mean)
	}
	for i, σ := range c.Sigma.Slice() {
		if math.IsNaN(σ) || math.IsInf(σ, 0) || σ < 0 {
			return fmt.Errorf("%w: intensity of axis %d is %f", ErrInvalidConfiguration, i, σ)
		}
	}
	if math.IsNaN(c.LengthScale) || math.IsInf(c.LengthScale, 0) || c.LengthScale <= 0 {
		return fmt.Errorf("%w: scale must be strictly positive, got %f", ErrInvalidConfiguration, c.LengthScale)
	}
	if math.IsNaN(c.Airspeed) || math.IsInf(c.Airspeed, 0) || c.Airspeed < 0 {
		return fmt.Errorf("%w: airspeed must not be negative, got %f", ErrInvalidConfiguration, c.Airspeed)
	}
	return nil
}

// airspeed returns the configured airspeed or the default one.
func (c Config) airspeed() float64 {
	if c.Airspeed == 0 {
		return DefaultAirspeed
	}
	return c.Airspeed
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger. Only configuration changes are logged, never samples.
func WithLogger(logger kitlog.Logger) Option {
	return func(m *Model) {
		m.logger = kitlog.With(logger, "subsys", "dryden")
	}
}

// WithSeed makes every Initialize reseed the noise with seed.
func WithSeed(seed uint64) Option {
	return func(m *Model) {
		m.seed = &seed
	}
}

// WithAirspeed sets the airspeed used by Initialize, which rejects it unless strictly positive.
func WithAirspeed(airspeed float64) Option {
	return func(m *Model) {
		m.airspeed = &airspeed
	}
}

// Model is a single point Dryden wind generator: steady mean wind plus three shaped gusts.
// The longitudinal (X) axis uses the first order filter, the lateral (Y) and vertical (Z) axes
// the second order one.
// A Model is not safe for concurrent use; distinct models share nothing.
type Model struct {
	conf     Config
	filters  [3]AxisFilter
	noise    *NoiseSource
	ready    bool
	steppers [3]*stepper
	seed     *uint64
	airspeed *float64
	logger   kitlog.Logger
}

// NewModel returns a model which must be initialized before sampling.
func NewModel(opts ...Option) *Model {
	m := &Model{logger: kitlog.NewNopLogger()}
	for i := range m.steppers {
		m.steppers[i] = newStepper()
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize (re)configures the model with a shared length scale and resets all filter memory.
func (m *Model) Initialize(meanX, meanY, meanZ, sigmaX, sigmaY, sigmaZ, scale float64) error {
	conf := Config{
		Mean:        Vector{meanX, meanY, meanZ},
		Sigma:       Vector{sigmaX, sigmaY, sigmaZ},
		LengthScale: scale,
	}
	if m.airspeed != nil {
		if !(*m.airspeed > 0) {
			err := fmt.Errorf("%w: airspeed must be strictly positive, got %f", ErrInvalidConfiguration, *m.airspeed)
			m.logger.Log("level", "warning", "message", "configuration rejected", "error", err)
			return err
		}
		conf.Airspeed = *m.airspeed
	}
	return m.Configure(conf)
}

// Configure is Initialize from a Config. On error the model is left exactly as it was.
func (m *Model) Configure(conf Config) error {
	if err := conf.Validate(); err != nil {
		m.logger.Log("level", "warning", "message", "configuration rejected", "error", err)
		return err
	}
	var seed uint64
	switch {
	case conf.Seed != nil:
		seed = *conf.Seed
	case m.seed != nil:
		seed = *m.seed
	default:
		seed = uint64(time.Now().UnixNano())
	}
	noise, err := NewNoiseSource(seed)
	if err != nil {
		return err
	}
	V := conf.airspeed()
	m.filters = [3]AxisFilter{
		NewAxisFilter(FirstOrder, conf.Sigma.X, V, conf.LengthScale),
		NewAxisFilter(SecondOrder, conf.Sigma.Y, V, conf.LengthScale),
		NewAxisFilter(SecondOrder, conf.Sigma.Z, V, conf.LengthScale),
	}
	conf.Airspeed = V
	conf.Seed = &seed
	m.conf = conf
	m.noise = noise
	m.ready = true
	m.logger.Log("level", "info", "mean(m/s)", conf.Mean, "sigma(m/s)", conf.Sigma, "L(m)", conf.LengthScale, "V(m/s)", V, "seed", seed)
	return nil
}

// Sample advances the turbulence by dt seconds and returns the total wind, mean plus gust.
func (m *Model) Sample(dt float64) (Vector, error) {
	if !m.ready {
		return Vector{}, ErrNotInitialized
	}
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt <= 0 {
		return Vector{}, fmt.Errorf("%w: dt = %f", ErrInvalidTimestep, dt)
	}
	w := m.noise.Draw(dt)
	u := [3]float64{w.X, w.Y, w.Z}
	var gust [3]float64
	for i := range m.filters {
		if m.filters[i].Disabled() {
			continue
		}
		m.steppers[i].advance(&m.filters[i], u[i], dt)
		gust[i] = m.filters[i].Output()
	}
	return m.conf.Mean.Add(Vector{gust[0], gust[1], gust[2]}), nil
}

// Config returns the active configuration, with the seed and airspeed which are in use, and
// whether the model is initialized.
func (m *Model) Config() (Config, bool) {
	conf := m.conf
	if conf.Seed != nil {
		seed := *conf.Seed
		conf.Seed = &seed
	}
	return conf, m.ready
}

// Initialized returns whether Sample may be called.
func (m *Model) Initialized() bool {
	return m.ready
}

// Filters returns a copy of the three axis filters, X, Y then Z.
func (m *Model) Filters() [3]AxisFilter {
	return m.filters
}
