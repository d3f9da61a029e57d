// Package config loads efield settings through viper: defaults, an optional
// efield.toml, EFIELD_ environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/efield/audio"
	"github.com/lixenwraith/efield/charge"
	"github.com/lixenwraith/efield/constants"
	"github.com/lixenwraith/efield/physics"
	"github.com/lixenwraith/efield/render"
)

// Config is the complete application configuration
type Config struct {
	Physics PhysicsConfig    `mapstructure:"physics"`
	Bounds  BoundsConfig     `mapstructure:"bounds"`
	Spawn   BoundsConfig     `mapstructure:"spawn"`
	Store   StoreConfig      `mapstructure:"store"`
	View    ViewConfig       `mapstructure:"view"`
	Theme   render.ThemeSpec `mapstructure:"theme"`
	Audio   AudioConfig      `mapstructure:"audio"`
	Logger  LoggerConfig     `mapstructure:"logger"`
}

// PhysicsConfig holds the force model constants
type PhysicsConfig struct {
	K             float64 `mapstructure:"k"`
	Epsilon       float64 `mapstructure:"epsilon"`
	CentralCharge float64 `mapstructure:"central_charge"`
}

// BoundsConfig is a rectangle in world units
type BoundsConfig struct {
	MinX float64 `mapstructure:"min_x"`
	MaxX float64 `mapstructure:"max_x"`
	MinY float64 `mapstructure:"min_y"`
	MaxY float64 `mapstructure:"max_y"`
}

// StoreConfig limits and edit policy of the charge sequence
type StoreConfig struct {
	MaxCharges int    `mapstructure:"max_charges"`
	SignPolicy string `mapstructure:"sign_policy"`
	Seed       int64  `mapstructure:"seed"` // 0 seeds from the clock
}

// ViewConfig sets canvas sizes in pixels and the panel width in cells
type ViewConfig struct {
	HitRadius      float64 `mapstructure:"hit_radius"`
	HoverRadius    float64 `mapstructure:"hover_radius"`
	ChargeRadius   float64 `mapstructure:"charge_radius"`
	CentralRadius  float64 `mapstructure:"central_radius"`
	ArrowLength    float64 `mapstructure:"arrow_length"`
	NetArrowLength float64 `mapstructure:"net_arrow_length"`
	PanelWidth     int     `mapstructure:"panel_width"`
}

// AudioConfig toggles cue playback
type AudioConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	Volume     float64 `mapstructure:"volume"`
	SampleRate int     `mapstructure:"sample_rate"`
}

// LoggerConfig controls the rotated JSON log file
type LoggerConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Level      string `mapstructure:"level"`
	LogFile    string `mapstructure:"log_file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// SetDefaults registers every key with its default value
func SetDefaults(v *viper.Viper) {
	// -- Physics --
	v.SetDefault("physics.k", constants.CoulombK)
	v.SetDefault("physics.epsilon", constants.SeparationEpsilon)
	v.SetDefault("physics.central_charge", constants.CentralChargeQ)

	// -- Placement --
	v.SetDefault("bounds.min_x", constants.BoundsMinX)
	v.SetDefault("bounds.max_x", constants.BoundsMaxX)
	v.SetDefault("bounds.min_y", constants.BoundsMinY)
	v.SetDefault("bounds.max_y", constants.BoundsMaxY)
	v.SetDefault("spawn.min_x", constants.SpawnMinX)
	v.SetDefault("spawn.max_x", constants.SpawnMaxX)
	v.SetDefault("spawn.min_y", constants.SpawnMinY)
	v.SetDefault("spawn.max_y", constants.SpawnMaxY)

	// -- Store --
	v.SetDefault("store.max_charges", constants.MaxCharges)
	v.SetDefault("store.sign_policy", charge.PreserveSign.String())
	v.SetDefault("store.seed", 0)

	// -- View --
	v.SetDefault("view.hit_radius", constants.HitRadius)
	v.SetDefault("view.hover_radius", constants.HoverRadius)
	v.SetDefault("view.charge_radius", constants.ChargeRadius)
	v.SetDefault("view.central_radius", constants.CentralRadius)
	v.SetDefault("view.arrow_length", constants.ArrowLength)
	v.SetDefault("view.net_arrow_length", constants.NetArrowLength)
	v.SetDefault("view.panel_width", constants.PanelWidth)

	// -- Theme --
	th := render.DefaultThemeSpec()
	v.SetDefault("theme.background", th.Background)
	v.SetDefault("theme.frame", th.Frame)
	v.SetDefault("theme.guide", th.Guide)
	v.SetDefault("theme.positive", th.Positive)
	v.SetDefault("theme.negative", th.Negative)
	v.SetDefault("theme.repulsion", th.Repulsion)
	v.SetDefault("theme.attraction", th.Attraction)
	v.SetDefault("theme.net", th.Net)
	v.SetDefault("theme.text", th.Text)
	v.SetDefault("theme.dim", th.Dim)
	v.SetDefault("theme.accent", th.Accent)
	v.SetDefault("theme.error", th.Error)

	// -- Audio --
	v.SetDefault("audio.enabled", false)
	v.SetDefault("audio.volume", constants.AudioVolume)
	v.SetDefault("audio.sample_rate", constants.AudioSampleRate)

	// -- Logger --
	v.SetDefault("logger.enabled", false)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.log_file", "logs/efield.log")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.compress", true)
}

// Load unmarshals v and validates the result
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// NewDefaultConfig returns the configuration with every default applied
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := Load(v)
	if err != nil {
		// Defaults are constants; failing here is a programming error
		panic(err)
	}
	return cfg
}

// Validate checks ranges and parses the string-typed settings
func (c *Config) Validate() error {
	var errs []error
	if !positive(c.Physics.K) {
		errs = append(errs, errors.New("physics.k must be a positive number"))
	}
	if !finite(c.Physics.Epsilon) || c.Physics.Epsilon < 0 {
		errs = append(errs, errors.New("physics.epsilon must not be negative"))
	}
	if !finite(c.Physics.CentralCharge) {
		errs = append(errs, errors.New("physics.central_charge must be finite"))
	}
	if err := c.Bounds.Rect().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("bounds: %w", err))
	}
	if err := c.Spawn.Rect().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("spawn: %w", err))
	}
	if c.Store.MaxCharges < 0 {
		errs = append(errs, errors.New("store.max_charges must not be negative"))
	}
	if _, err := charge.ParseSignPolicy(c.Store.SignPolicy); err != nil {
		errs = append(errs, fmt.Errorf("store.sign_policy: %w", err))
	}
	if err := c.View.Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Theme.Parse(); err != nil {
		errs = append(errs, err)
	}
	if !finite(c.Audio.Volume) || c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, errors.New("audio.volume must be between 0.0 and 1.0"))
	}
	if c.Audio.SampleRate <= 0 {
		errs = append(errs, errors.New("audio.sample_rate must be a positive integer"))
	}
	if _, err := zapcore.ParseLevel(c.Logger.Level); err != nil {
		errs = append(errs, fmt.Errorf("logger.level: %w", err))
	}
	return errors.Join(errs...)
}

// Validate checks that every size is positive
func (v ViewConfig) Validate() error {
	sizes := []struct {
		name string
		val  float64
	}{
		{"view.hit_radius", v.HitRadius},
		{"view.hover_radius", v.HoverRadius},
		{"view.charge_radius", v.ChargeRadius},
		{"view.central_radius", v.CentralRadius},
		{"view.arrow_length", v.ArrowLength},
		{"view.net_arrow_length", v.NetArrowLength},
	}
	var errs []error
	for _, s := range sizes {
		if !positive(s.val) {
			errs = append(errs, fmt.Errorf("%s must be a positive number", s.name))
		}
	}
	if v.PanelWidth < constants.PanelMinWidth {
		errs = append(errs, fmt.Errorf("view.panel_width must be at least %d", constants.PanelMinWidth))
	}
	return errors.Join(errs...)
}

// Rect converts to the store's bounds type
func (b BoundsConfig) Rect() charge.Bounds {
	return charge.Bounds{MinX: b.MinX, MaxX: b.MaxX, MinY: b.MinY, MaxY: b.MaxY}
}

// StoreOptions builds the charge store options; call only on a validated config
func (c *Config) StoreOptions() charge.Options {
	policy, _ := charge.ParseSignPolicy(c.Store.SignPolicy)
	opts := charge.Options{
		Bounds:     c.Bounds.Rect(),
		Spawn:      c.Spawn.Rect(),
		MaxCharges: c.Store.MaxCharges,
		SignPolicy: policy,
	}
	if c.Store.Seed != 0 {
		opts.Rand = rand.New(rand.NewSource(c.Store.Seed))
	}
	return opts
}

// PhysicsParams returns the force model parameters
func (c *Config) PhysicsParams() physics.Params {
	return physics.Params{K: c.Physics.K, Epsilon: c.Physics.Epsilon}
}

// Central returns the fixed charge at the origin
func (c *Config) Central() charge.Central {
	return charge.Central{Q: c.Physics.CentralCharge}
}

// SceneStyle returns the canvas sizes
func (c *Config) SceneStyle() render.SceneStyle {
	st := render.DefaultSceneStyle()
	st.ChargeRadius = c.View.ChargeRadius
	st.CentralRadius = c.View.CentralRadius
	st.ArrowLength = c.View.ArrowLength
	st.NetArrowLength = c.View.NetArrowLength
	return st
}

// AudioSettings returns the cue player configuration
func (c *Config) AudioSettings() audio.Config {
	return audio.Config{
		Enabled:    c.Audio.Enabled,
		Volume:     c.Audio.Volume,
		SampleRate: c.Audio.SampleRate,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func positive(v float64) bool {
	return finite(v) && v > 0
}
