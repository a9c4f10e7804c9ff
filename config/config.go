// Package config loads tuning and roster through viper, with defaults from parameter
package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/lixenwraith/constellation/entity"
	"github.com/lixenwraith/constellation/parameter"
	"github.com/lixenwraith/constellation/scene"
)

// EnvPrefix is prepended to environment overrides, e.g. CONSTELLATION_TUNING_FLIGHT_TAKEOFFFRAMES
const EnvPrefix = "CONSTELLATION"

// ErrNoRoster is returned when a config file declares an empty roster
var ErrNoRoster = errors.New("roster is empty")

// Config is the full runtime configuration
type Config struct {
	Seed     uint64        `mapstructure:"seed"`
	LogLevel string        `mapstructure:"logLevel"`
	LogFile  string        `mapstructure:"logFile"`
	Audio    bool          `mapstructure:"audio"`
	Volume   float64       `mapstructure:"volume"`
	Tuning   scene.Tuning  `mapstructure:"tuning"`
	Roster   []entity.Spec `mapstructure:"roster"`
}

// Entities builds the roster
func (c *Config) Entities() ([]entity.Entity, error) {
	if len(c.Roster) == 0 {
		return nil, ErrNoRoster
	}
	return entity.NewRoster(c.Roster)
}

// Loader wraps one viper instance and its optional config file
type Loader struct {
	v    *viper.Viper
	path string
}

// NewLoader prepares defaults and env binding; path may be empty
func NewLoader(path string) *Loader {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	}
	return &Loader{v: v, path: path}
}

// Viper exposes the instance for flag binding
func (l *Loader) Viper() *viper.Viper { return l.v }

// Load reads the file when one was given and decodes the result
func (l *Loader) Load() (*Config, error) {
	if l.path != "" {
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", l.path, err)
		}
	}
	return l.decode()
}

func (l *Loader) decode() (*Config, error) {
	var c Config
	if err := l.v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if !l.v.IsSet("roster") {
		c.Roster = DefaultRoster()
	}
	if len(c.Roster) == 0 {
		return nil, ErrNoRoster
	}
	if err := c.Tuning.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Watch delivers the tuning after each write to the config file
// Only the latest reload is kept when the consumer falls behind; roster edits need a restart
// Invalid tuning is logged and never delivered
// Cancelling ctx stops delivery only: viper offers no way to stop its fsnotify goroutine,
// so the watcher lives until the process exits; call Watch once per Loader
func (l *Loader) Watch(ctx context.Context, log zerolog.Logger) <-chan scene.Tuning {
	out := make(chan scene.Tuning, 1)
	if l.path == "" {
		return out
	}

	l.v.OnConfigChange(func(e fsnotify.Event) {
		if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}
		if ctx.Err() != nil {
			return
		}
		c, err := l.decode()
		if err != nil {
			log.Warn().Err(err).Str("file", e.Name).Msg("config reload rejected")
			return
		}
		log.Info().Str("file", e.Name).Msg("config reloaded")

		select {
		case <-out:
		default:
		}
		out <- c.Tuning
	})
	l.v.WatchConfig()
	return out
}

// Load is a one-shot NewLoader(path).Load()
func Load(path string) (*Config, error) {
	return NewLoader(path).Load()
}

// DefaultRoster is used when no roster is configured
func DefaultRoster() []entity.Spec {
	names := []string{"Ada", "Grace", "Linus", "Margaret", "Dennis", "Barbara", "Ken", "Frances"}
	out := make([]entity.Spec, len(names))
	for i, n := range names {
		out[i] = entity.Spec{Name: n}
	}
	return out
}

func setDefaults(v *viper.Viper) {
	d := scene.DefaultTuning()

	v.SetDefault("seed", parameter.DefaultSeed)
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", parameter.DefaultLogFile)
	v.SetDefault("audio", true)
	v.SetDefault("volume", parameter.AudioMasterVolume)

	f := d.Flight
	v.SetDefault("tuning.flight.takeoffPullBack", f.TakeoffPullBack)
	v.SetDefault("tuning.flight.takeoffFrames", f.TakeoffFrames)
	v.SetDefault("tuning.flight.takeoffLookHold", f.TakeoffLookHold)
	v.SetDefault("tuning.flight.arrivalOffset", f.ArrivalOffset)
	v.SetDefault("tuning.flight.firstFlightControlWeight", f.FirstFlightControlWeight)
	v.SetDefault("tuning.flight.speedFar", f.SpeedFar)
	v.SetDefault("tuning.flight.speedMid", f.SpeedMid)
	v.SetDefault("tuning.flight.speedNear", f.SpeedNear)
	v.SetDefault("tuning.flight.speedFinal", f.SpeedFinal)
	v.SetDefault("tuning.flight.tierFar", f.TierFar)
	v.SetDefault("tuning.flight.tierMid", f.TierMid)
	v.SetDefault("tuning.flight.tierNear", f.TierNear)
	v.SetDefault("tuning.flight.longDistance", f.LongDistance)
	v.SetDefault("tuning.flight.longSpeedMult", f.LongSpeedMult)
	v.SetDefault("tuning.flight.approachProgress", f.ApproachProgress)
	v.SetDefault("tuning.flight.approachDistance", f.ApproachDistance)
	v.SetDefault("tuning.flight.arriveProgress", f.ArriveProgress)
	v.SetDefault("tuning.flight.arriveDistance", f.ArriveDistance)
	v.SetDefault("tuning.flight.lookFrontLoad", f.LookFrontLoad)
	v.SetDefault("tuning.flight.lookDelayStart", f.LookDelayStart)
	v.SetDefault("tuning.flight.lookDelayEnd", f.LookDelayEnd)
	v.SetDefault("tuning.flight.correctionStart", f.CorrectionStart)
	v.SetDefault("tuning.flight.returnFrames", f.ReturnFrames)
	v.SetDefault("tuning.flight.returnSnapEpsilon", f.ReturnSnapEpsilon)

	o := d.Orbit
	v.SetDefault("tuning.orbit.rotateSpeed", o.RotateSpeed)
	v.SetDefault("tuning.orbit.zoomSpeed", o.ZoomSpeed)
	v.SetDefault("tuning.orbit.minRadius", o.MinRadius)
	v.SetDefault("tuning.orbit.maxRadius", o.MaxRadius)
	v.SetDefault("tuning.orbit.polarEpsilon", o.PolarEpsilon)
	v.SetDefault("tuning.orbit.damping", o.Damping)

	fr := d.Framing
	v.SetDefault("tuning.framing.fov", fr.FOV)
	v.SetDefault("tuning.framing.fill", fr.Fill)
	v.SetDefault("tuning.framing.minDistance", fr.MinDistance)
	v.SetDefault("tuning.framing.comfortDistance", fr.ComfortDistance)

	for name, b := range map[string]struct{ lo, hi, zlo, zhi float64 }{
		"uncharted": {d.Bands.Uncharted.MinRadius, d.Bands.Uncharted.MaxRadius, d.Bands.Uncharted.MinZ, d.Bands.Uncharted.MaxZ},
		"inner":     {d.Bands.Inner.MinRadius, d.Bands.Inner.MaxRadius, d.Bands.Inner.MinZ, d.Bands.Inner.MaxZ},
		"middle":    {d.Bands.Middle.MinRadius, d.Bands.Middle.MaxRadius, d.Bands.Middle.MinZ, d.Bands.Middle.MaxZ},
		"outer":     {d.Bands.Outer.MinRadius, d.Bands.Outer.MaxRadius, d.Bands.Outer.MinZ, d.Bands.Outer.MaxZ},
	} {
		key := "tuning.bands." + name
		v.SetDefault(key+".minRadius", b.lo)
		v.SetDefault(key+".maxRadius", b.hi)
		v.SetDefault(key+".minZ", b.zlo)
		v.SetDefault(key+".maxZ", b.zhi)
	}

	v.SetDefault("tuning.minSeparation", d.MinSeparation)
	v.SetDefault("tuning.attempts", d.Attempts)
}
