package dryden

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	// ConfigEnv names the environment variable holding the configuration directory.
	ConfigEnv = "WIND_DYNAMICS_CONFIG"
	// ConfigName is the name of the configuration file, without extension, e.g. wind.toml.
	ConfigName = "wind"
)

// LoadConfig reads wind.toml from dir, or from the directory in WIND_DYNAMICS_CONFIG if dir is
// empty. Any key may be overridden from the environment with the WIND_ prefix, e.g.
// WIND_SIGMA_Z=70. The returned configuration is validated: a value which is not a number, a
// negative seed or an airspeed which is set but not strictly positive is rejected with
// ErrInvalidConfiguration. Only an unset airspeed falls back to DefaultAirspeed.
//
//	[mean]
//	x = 0.0
//	y = 1.0
//	z = 0.0
//	[sigma]
//	x = 10.0
//	y = 0.0
//	z = 70.0
//	[turbulence]
//	length_scale = 2.0
//	airspeed = 1.0
//	seed = 42 # optional
func LoadConfig(dir string) (Config, error) {
	if dir == "" {
		dir = os.Getenv(ConfigEnv)
	}
	if dir == "" {
		return Config{}, fmt.Errorf("no configuration directory given and environment variable `%s` is missing or empty", ConfigEnv)
	}
	v := viper.New()
	v.SetConfigName(ConfigName)
	v.SetConfigType("toml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("WIND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("turbulence.length_scale", DefaultLengthScale)
	for _, key := range []string{"mean.x", "mean.y", "mean.z", "sigma.x", "sigma.y", "sigma.z"} {
		v.SetDefault(key, 0.0)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("%s/%s.toml not found", dir, ConfigName)
		}
		return Config{}, fmt.Errorf("reading %s/%s.toml: %w", dir, ConfigName, err)
	}

	var conf Config
	for _, field := range []struct {
		key string
		dst *float64
	}{
		{"mean.x", &conf.Mean.X}, {"mean.y", &conf.Mean.Y}, {"mean.z", &conf.Mean.Z},
		{"sigma.x", &conf.Sigma.X}, {"sigma.y", &conf.Sigma.Y}, {"sigma.z", &conf.Sigma.Z},
		{"turbulence.length_scale", &conf.LengthScale},
	} {
		f, err := getFloat(v, field.key)
		if err != nil {
			return Config{}, err
		}
		*field.dst = f
	}
	conf.Airspeed = DefaultAirspeed
	if v.IsSet("turbulence.airspeed") {
		V, err := getFloat(v, "turbulence.airspeed")
		if err != nil {
			return Config{}, err
		}
		if !(V > 0) {
			return Config{}, fmt.Errorf("%w: turbulence.airspeed must be strictly positive, got %f", ErrInvalidConfiguration, V)
		}
		conf.Airspeed = V
	}
	if v.IsSet("turbulence.seed") {
		seed, err := cast.ToUint64E(v.Get("turbulence.seed"))
		if err != nil {
			return Config{}, fmt.Errorf("%w: turbulence.seed: %s", ErrInvalidConfiguration, err)
		}
		conf.Seed = &seed
	}
	if err := conf.Validate(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

// getFloat returns the value of key, failing instead of reading zero when it is not a number.
func getFloat(v *viper.Viper, key string) (float64, error) {
	f, err := cast.ToFloat64E(v.Get(key))
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %s", ErrInvalidConfiguration, key, err)
	}
	return f, nil
}
