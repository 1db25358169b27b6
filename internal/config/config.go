// Package config loads twisty settings from defaults, an optional config
// file and TWISTY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// TWISTY_ANIMATION_DURATION=250ms.
const EnvPrefix = "TWISTY"

// ErrInvalid is returned when a loaded value is out of range.
var ErrInvalid = errors.New("config: invalid value")

// AnimationConfig holds layer rotation settings.
type AnimationConfig struct {
	Duration time.Duration `mapstructure:"duration"`
}

// GestureConfig holds drag interpretation settings.
type GestureConfig struct {
	MinDrag float64 `mapstructure:"min_drag"`
}

// CameraConfig is the initial orbit camera. Angles are in degrees.
type CameraConfig struct {
	Yaw      float64 `mapstructure:"yaw"`
	Pitch    float64 `mapstructure:"pitch"`
	Distance float64 `mapstructure:"distance"`
	FOV      float64 `mapstructure:"fov"`
}

// RenderConfig holds terminal rendering settings. CellWidth and CellHeight
// are the assumed pixel size of one terminal cell.
type RenderConfig struct {
	FPS        int `mapstructure:"fps"`
	CellWidth  int `mapstructure:"cell_width"`
	CellHeight int `mapstructure:"cell_height"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type BLEConfig struct {
	ScanTimeout time.Duration `mapstructure:"scan_timeout"`
}

// MirrorConfig holds settings for mirroring a physical cube.
type MirrorConfig struct {
	Duration time.Duration `mapstructure:"duration"`
}

type SnapshotConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
	Views  int `mapstructure:"views"`
}

// Config is the full set of twisty settings.
type Config struct {
	Animation AnimationConfig `mapstructure:"animation"`
	Gesture   GestureConfig   `mapstructure:"gesture"`
	Camera    CameraConfig    `mapstructure:"camera"`
	Render    RenderConfig    `mapstructure:"render"`
	Log       LogConfig       `mapstructure:"log"`
	BLE       BLEConfig       `mapstructure:"ble"`
	Mirror    MirrorConfig    `mapstructure:"mirror"`
	Snapshot  SnapshotConfig  `mapstructure:"snapshot"`
}

// setDefaults registers the default value of every key on v.
func setDefaults(v *viper.Viper) {
	v.SetDefault("animation.duration", 500*time.Millisecond)
	v.SetDefault("gesture.min_drag", 10.0)

	v.SetDefault("camera.yaw", 35.0)
	v.SetDefault("camera.pitch", 25.0)
	v.SetDefault("camera.distance", 7.5)
	v.SetDefault("camera.fov", 40.0)

	v.SetDefault("render.fps", 30)
	v.SetDefault("render.cell_width", 8)
	v.SetDefault("render.cell_height", 16)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "~/.twisty/twisty.log")

	v.SetDefault("ble.scan_timeout", 5*time.Second)
	v.SetDefault("mirror.duration", 150*time.Millisecond)

	v.SetDefault("snapshot.width", 800)
	v.SetDefault("snapshot.height", 600)
	v.SetDefault("snapshot.views", 1)
}

// Load reads configuration and returns the typed result.
//
// If path is empty, config.{yaml,json,toml} is looked up in ~/.twisty and
// the current directory; a missing file is not an error there. An explicit
// path must exist.
func Load(path string) (*Config, error) {
	setDefaults(viper.GetViper())

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		viper.SetConfigName("config")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".twisty"))
		}
		viper.AddConfigPath(".")
		if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	cfg.Log.File = ExpandHome(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in settings without reading any file or the
// environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("config: defaults do not decode: %v", err))
	}
	cfg.Log.File = ExpandHome(cfg.Log.File)
	return &cfg
}

// Validate checks the values that would otherwise break rendering or
// scanning.
func (c *Config) Validate() error {
	switch {
	case c.Render.FPS <= 0:
		return fmt.Errorf("%w: render.fps must be positive, got %d", ErrInvalid, c.Render.FPS)
	case c.Render.CellWidth <= 0 || c.Render.CellHeight <= 0:
		return fmt.Errorf("%w: render cell size must be positive", ErrInvalid)
	case c.Camera.Distance <= 0:
		return fmt.Errorf("%w: camera.distance must be positive", ErrInvalid)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("%w: camera.fov must be in (0, 180), got %g", ErrInvalid, c.Camera.FOV)
	case c.Snapshot.Width <= 0 || c.Snapshot.Height <= 0:
		return fmt.Errorf("%w: snapshot size must be positive", ErrInvalid)
	case c.Snapshot.Views <= 0:
		return fmt.Errorf("%w: snapshot.views must be positive", ErrInvalid)
	case c.BLE.ScanTimeout <= 0:
		return fmt.Errorf("%w: ble.scan_timeout must be positive", ErrInvalid)
	}
	return nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// FrameInterval returns the time between two rendered frames.
func (r RenderConfig) FrameInterval() time.Duration {
	return time.Second / time.Duration(r.FPS)
}
