// Package config loads the game configuration from defaults, an optional
// config file and SLIME_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Garsondee/slime-rts/internal/sim"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// LogConfig controls the zap logger.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`        // rotated JSON log; empty disables file output
	MaxSize    int    `mapstructure:"max_size"`    // MB per file
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
	Dev        bool   `mapstructure:"dev"`
}

// Config is the full set of recognised options.
type Config struct {
	Width            int     `mapstructure:"width"`
	Height           int     `mapstructure:"height"`
	InitialResources int     `mapstructure:"initial_resources"`
	WallProbability  float64 `mapstructure:"wall_probability"`
	BorderWalls      int     `mapstructure:"border_walls"`

	Tick       time.Duration `mapstructure:"tick"`
	MaxBacklog time.Duration `mapstructure:"max_backlog"`

	BaseVisionRadius int `mapstructure:"base_vision_radius"`
	UnitVisionRadius int `mapstructure:"unit_vision_radius"`
	RecallRadius     int `mapstructure:"recall_radius"`

	SpawnBatch     int `mapstructure:"spawn_batch"`
	SpawnOffset    int `mapstructure:"spawn_offset"`
	SpawnMaxRadius int `mapstructure:"spawn_max_radius"`

	WildColonies   int `mapstructure:"wild_colonies"`
	WildColonySize int `mapstructure:"wild_colony_size"`

	Fog  bool  `mapstructure:"fog"`
	Seed int64 `mapstructure:"seed"`

	Scale       int    `mapstructure:"scale"` // window pixels per grid cell
	ExportScale int    `mapstructure:"export_scale"`
	ExportDir   string `mapstructure:"export_dir"`

	Log LogConfig `mapstructure:"log"`
}

// Default returns the reference configuration.
func Default() Config {
	p := sim.DefaultParams()
	return Config{
		Width:            p.Width,
		Height:           p.Height,
		InitialResources: p.InitialResources,
		WallProbability:  p.WallProbability,
		BorderWalls:      p.BorderWalls,
		Tick:             sim.DefaultStep,
		MaxBacklog:       sim.DefaultMaxBacklog,
		BaseVisionRadius: p.BaseVisionRadius,
		UnitVisionRadius: p.UnitVisionRadius,
		RecallRadius:     p.RecallRadius,
		SpawnBatch:       p.SpawnBatch,
		SpawnOffset:      p.SpawnOffset,
		SpawnMaxRadius:   p.SpawnMaxRadius,
		WildColonies:     p.WildColonies,
		WildColonySize:   p.WildColonySize,
		Fog:              true,
		Scale:            3,
		ExportScale:      4,
		ExportDir:        ".",
		Log: LogConfig{
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
		},
	}
}

// Load layers defaults, the file at path (skipped when path is empty) and
// SLIME_* environment variables, then validates the result.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix("slime")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, fmt.Errorf("config file %q: %w", path, err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %q: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that
// never appear in a file.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("width", d.Width)
	v.SetDefault("height", d.Height)
	v.SetDefault("initial_resources", d.InitialResources)
	v.SetDefault("wall_probability", d.WallProbability)
	v.SetDefault("border_walls", d.BorderWalls)
	v.SetDefault("tick", d.Tick)
	v.SetDefault("max_backlog", d.MaxBacklog)
	v.SetDefault("base_vision_radius", d.BaseVisionRadius)
	v.SetDefault("unit_vision_radius", d.UnitVisionRadius)
	v.SetDefault("recall_radius", d.RecallRadius)
	v.SetDefault("spawn_batch", d.SpawnBatch)
	v.SetDefault("spawn_offset", d.SpawnOffset)
	v.SetDefault("spawn_max_radius", d.SpawnMaxRadius)
	v.SetDefault("wild_colonies", d.WildColonies)
	v.SetDefault("wild_colony_size", d.WildColonySize)
	v.SetDefault("fog", d.Fog)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("scale", d.Scale)
	v.SetDefault("export_scale", d.ExportScale)
	v.SetDefault("export_dir", d.ExportDir)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size", d.Log.MaxSize)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age", d.Log.MaxAge)
	v.SetDefault("log.compress", d.Log.Compress)
	v.SetDefault("log.dev", d.Log.Dev)
}

// Validate rejects configurations the simulation cannot start with.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}
	check(c.Width > 0 && c.Height > 0, "grid %dx%d must be positive", c.Width, c.Height)
	check(c.WallProbability >= 0 && c.WallProbability <= 1, "wall_probability %.3f outside [0,1]", c.WallProbability)
	check(c.InitialResources >= 0, "initial_resources %d is negative", c.InitialResources)
	check(c.Tick > 0, "tick %s must be positive", c.Tick)
	check(c.MaxBacklog >= c.Tick, "max_backlog %s shorter than one tick", c.MaxBacklog)
	check(c.BorderWalls >= 0, "border_walls %d is negative", c.BorderWalls)
	check(c.BaseVisionRadius >= 0 && c.UnitVisionRadius >= 0, "vision radii must not be negative")
	check(c.RecallRadius >= 0, "recall_radius %d is negative", c.RecallRadius)
	check(c.SpawnBatch > 0, "spawn_batch %d must be positive", c.SpawnBatch)
	check(c.SpawnMaxRadius > 1, "spawn_max_radius %d must exceed 1", c.SpawnMaxRadius)
	check(c.WildColonies >= 0 && c.WildColonySize >= 0, "wild colony settings must not be negative")
	check(c.Scale > 0 && c.ExportScale > 0, "scales must be positive")
	return errors.Join(errs...)
}

// Params converts the configuration into simulation parameters.
func (c Config) Params() sim.Params {
	return sim.Params{
		Width:            c.Width,
		Height:           c.Height,
		InitialResources: c.InitialResources,
		WallProbability:  c.WallProbability,
		BorderWalls:      c.BorderWalls,
		BaseVisionRadius: c.BaseVisionRadius,
		UnitVisionRadius: c.UnitVisionRadius,
		RecallRadius:     c.RecallRadius,
		SpawnBatch:       c.SpawnBatch,
		SpawnOffset:      c.SpawnOffset,
		SpawnMaxRadius:   c.SpawnMaxRadius,
		WildColonies:     c.WildColonies,
		WildColonySize:   c.WildColonySize,
		Seed:             c.Seed,
	}
}
