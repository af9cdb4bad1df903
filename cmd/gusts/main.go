package main

import (
	"flag"
	"math"
	"os"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/goromal/wind-dynamics/dryden"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// This code runs a Dryden wind model for a given duration and reports the wind statistics.

const defaultConfig = "~~unset~~"

var (
	confDir  string
	duration time.Duration
	timeStep time.Duration
	verbose  bool
)

func init() {
	// Read flags
	flag.StringVar(&confDir, "config", defaultConfig, "directory holding wind.toml (defaults to $"+dryden.ConfigEnv+", then to the reference scenario)")
	flag.DurationVar(&duration, "duration", 100*time.Second, "simulated duration")
	flag.DurationVar(&timeStep, "step", 50*time.Millisecond, "sample period")
	flag.BoolVar(&verbose, "verbose", false, "log every sample")
}

func main() {
	flag.Parse()
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)

	// The reference scenario: 10 m/s longitudinal and 70 m/s vertical intensities, 1 m/s lateral mean wind.
	conf := dryden.Config{
		Mean:        dryden.Vector{X: 0, Y: 1, Z: 0},
		Sigma:       dryden.Vector{X: 10, Y: 0, Z: 70},
		LengthScale: 2,
	}
	if confDir != defaultConfig || os.Getenv(dryden.ConfigEnv) != "" {
		if confDir == defaultConfig {
			confDir = ""
		}
		var err error
		if conf, err = dryden.LoadConfig(confDir); err != nil {
			logger.Log("level", "critical", "subsys", "conf", "error", err)
			os.Exit(1)
		}
	}
	if timeStep <= 0 || duration < timeStep {
		logger.Log("level", "critical", "subsys", "conf", "step", timeStep, "duration", duration, "message", "step must be positive and no longer than the duration")
		os.Exit(1)
	}

	model := dryden.NewModel(dryden.WithLogger(logger))
	if err := model.Configure(conf); err != nil {
		os.Exit(1)
	}

	dt := timeStep.Seconds()
	n := int(math.Floor(duration.Seconds()/dt)) + 1
	axes := [3][]float64{make([]float64, n), make([]float64, n), make([]float64, n)}
	for i := 0; i < n; i++ {
		w, err := model.Sample(dt)
		if err != nil {
			logger.Log("level", "critical", "subsys", "wind", "sample", i, "error", err)
			os.Exit(1)
		}
		axes[0][i], axes[1][i], axes[2][i] = w.X, w.Y, w.Z
		if verbose {
			logger.Log("level", "debug", "subsys", "wind", "t(s)", float64(i)*dt, "wind(m/s)", w)
		}
	}

	for i, name := range []string{"x", "y", "z"} {
		mean, variance := stat.MeanVariance(axes[i], nil)
		logger.Log("level", "notice", "subsys", "wind", "axis", name, "samples", n, "mean(m/s)", mean, "σ(m/s)", math.Sqrt(variance),
			"min(m/s)", floats.Min(axes[i]), "max(m/s)", floats.Max(axes[i]))
	}
}

