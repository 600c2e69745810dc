// Package config loads pedal's settings from defaults, an optional YAML
// file, PEDAL_ environment variables and command line flags, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"
)

const (
	DefaultFile   = "pedal.yaml"
	envPrefix     = "PEDAL_"
	minSecretSize = 32
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Addr    string        `koanf:"addr"`
	Log     LogConfig     `koanf:"log"`
	Session SessionConfig `koanf:"session"`
	Upload  UploadConfig  `koanf:"upload"`
	Sample  SampleConfig  `koanf:"sample"`
	Preview PreviewConfig `koanf:"preview"`
	Render  RenderConfig  `koanf:"render"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type SessionConfig struct {
	// Secret signs the session cookie. Empty means a random key per
	// process, so sessions do not survive a restart.
	Secret string        `koanf:"secret"`
	MaxAge time.Duration `koanf:"max_age"`
}

type UploadConfig struct {
	MaxBytes int64 `koanf:"max_bytes"`
}

type SampleConfig struct {
	Seed int64 `koanf:"seed"`
	Rows int   `koanf:"rows"`
}

type PreviewConfig struct {
	Limit int `koanf:"limit"`
}

type RenderConfig struct {
	Width  int `koanf:"width"`
	Height int `koanf:"height"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"addr":             ":8080",
		"log.level":        "info",
		"log.format":       "json",
		"session.secret":   "",
		"session.max_age":  24 * time.Hour,
		"upload.max_bytes": int64(32 << 20),
		"sample.seed":      int64(1),
		"sample.rows":      100,
		"preview.limit":    50,
		"render.width":     800,
		"render.height":    500,
	}
}

// RegisterFlags adds the flags Load understands to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("addr", ":8080", "listen address")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.String("log-format", "json", "log format (json, console)")
	fs.Duration("session-max-age", 24*time.Hour, "idle time before a session's upload is dropped")
	fs.Int64("upload-max-bytes", 32<<20, "largest accepted upload")
	fs.Int64("sample-seed", 1, "seed of the sample dataset")
	fs.Int("sample-rows", 100, "rows in the sample dataset")
	fs.Int("preview-limit", 50, "default page size of the row preview")
	fs.Int("render-width", 800, "svg width in pixels")
	fs.Int("render-height", 500, "svg height in pixels")
}

// Load reads the configuration. An empty path looks for pedal.yaml in the
// working directory and skips it if absent; flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// PEDAL_SESSION_MAX_AGE -> session.max_age
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		// --session-max-age -> session.max_age
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.Replace(f.Name, "-", ".", 1)
			return strings.ReplaceAll(key, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is empty"))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		errs = append(errs, fmt.Errorf("log.format %q, want json or console", c.Log.Format))
	}
	if c.Session.Secret != "" && len(c.Session.Secret) < minSecretSize {
		errs = append(errs, fmt.Errorf("session.secret must be at least %d bytes", minSecretSize))
	}
	if c.Session.MaxAge < 0 {
		errs = append(errs, errors.New("session.max_age is negative"))
	}
	if c.Upload.MaxBytes <= 0 {
		errs = append(errs, errors.New("upload.max_bytes must be positive"))
	}
	if c.Sample.Rows <= 0 {
		errs = append(errs, errors.New("sample.rows must be positive"))
	}
	if c.Preview.Limit <= 0 {
		errs = append(errs, errors.New("preview.limit must be positive"))
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, errors.New("render size must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}
