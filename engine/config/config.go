// Package config loads the gallery settings from an optional config file
// and GALLERY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the config file base name; json, yaml and toml are accepted
const FileName = "gallery"

type WindowConfig struct {
	Width  int    `json:"width" mapstructure:"width"`
	Height int    `json:"height" mapstructure:"height"`
	Title  string `json:"title" mapstructure:"title"`
}

type SimConfig struct {
	TickRate float64 `json:"tickRate" mapstructure:"tickRate"`
	Seed     int64   `json:"seed" mapstructure:"seed"` // 0 seeds from the clock
}

type SceneConfig struct {
	Word          string  `json:"word" mapstructure:"word"`
	LetterSpacing float64 `json:"letterSpacing" mapstructure:"letterSpacing"`
	ShipCount     int     `json:"shipCount" mapstructure:"shipCount"`
	FragmentCount int     `json:"fragmentCount" mapstructure:"fragmentCount"`
	SparkCount    int     `json:"sparkCount" mapstructure:"sparkCount"`
	// Relocation is how ships come back: "edge" or "sphere"
	Relocation string `json:"relocation" mapstructure:"relocation"`
}

type AudioConfig struct {
	Enabled bool    `json:"enabled" mapstructure:"enabled"`
	Dir     string  `json:"dir" mapstructure:"dir"`
	Volume  float64 `json:"volume" mapstructure:"volume"`
}

type ScoreConfig struct {
	DBPath string `json:"dbPath" mapstructure:"dbPath"`
}

type LinkConfig struct {
	Label string `json:"label" mapstructure:"label"`
	URL   string `json:"url" mapstructure:"url"`
}

type LogConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"` // console or json
	File   string `json:"file" mapstructure:"file"`
}

type MetricsConfig struct {
	Addr string `json:"addr" mapstructure:"addr"` // empty disables the server
}

// Config is the whole program configuration
type Config struct {
	Window  WindowConfig  `json:"window" mapstructure:"window"`
	Sim     SimConfig     `json:"sim" mapstructure:"sim"`
	Scene   SceneConfig   `json:"scene" mapstructure:"scene"`
	Audio   AudioConfig   `json:"audio" mapstructure:"audio"`
	Score   ScoreConfig   `json:"score" mapstructure:"score"`
	Links   []LinkConfig  `json:"links" mapstructure:"links"`
	Log     LogConfig     `json:"log" mapstructure:"log"`
	Metrics MetricsConfig `json:"metrics" mapstructure:"metrics"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.title", "TZYNSKI")

	v.SetDefault("sim.tickRate", 60.0)
	v.SetDefault("sim.seed", 0)

	v.SetDefault("scene.word", "TZYNSKI")
	v.SetDefault("scene.letterSpacing", 2.5)
	v.SetDefault("scene.shipCount", 5)
	v.SetDefault("scene.fragmentCount", 30)
	v.SetDefault("scene.sparkCount", 50)
	v.SetDefault("scene.relocation", "edge")

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.dir", "./music")
	v.SetDefault("audio.volume", 0.8)

	v.SetDefault("score.dbPath", "./gallery.db")

	v.SetDefault("links", []map[string]string{
		{"label": "Instagram", "url": "https://www.instagram.com/tzynski"},
		{"label": "SoundCloud", "url": "https://soundcloud.com/tzynski"},
	})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")

	v.SetDefault("metrics.addr", "")
}

// Load reads configuration from dir and the environment. A missing config
// file is not an error; every key has a default.
func Load(dir string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(FileName)
	if dir != "" {
		v.AddConfigPath(dir)
	}
	v.SetEnvPrefix("GALLERY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings the scene cannot run with
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Sim.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("sim.tickRate must be positive, got %g", c.Sim.TickRate))
	}
	if strings.TrimSpace(c.Scene.Word) == "" {
		errs = append(errs, errors.New("scene.word must not be empty"))
	}
	if c.Scene.ShipCount < 0 {
		errs = append(errs, fmt.Errorf("scene.shipCount must not be negative, got %d", c.Scene.ShipCount))
	}
	if c.Scene.FragmentCount <= 0 {
		errs = append(errs, fmt.Errorf("scene.fragmentCount must be positive, got %d", c.Scene.FragmentCount))
	}
	if c.Scene.SparkCount <= 0 {
		errs = append(errs, fmt.Errorf("scene.sparkCount must be positive, got %d", c.Scene.SparkCount))
	}
	switch c.Scene.Relocation {
	case "edge", "sphere":
	default:
		errs = append(errs, fmt.Errorf("scene.relocation must be edge or sphere, got %q", c.Scene.Relocation))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume must be in [0,1], got %g", c.Audio.Volume))
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be console or json, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}
