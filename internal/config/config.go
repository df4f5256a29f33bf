package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Cursor start positions for interactive mode.
const (
	CursorBottomLeft = "bottom-left"
	CursorTopLeft    = "top-left"
	CursorCenter     = "center"
)

var ErrInvalidConfig = errors.New("invalid config")

type Log struct {
	File  string `env:"FILE"`
	Level string `env:"LEVEL" envDefault:"info"`
	Dev   bool   `env:"DEV" envDefault:"false"`
}

type Config struct {
	Log         Log    `envPrefix:"LOG_"`
	MaxFields   int    `env:"MAX_FIELDS" envDefault:"1000000"`
	CursorStart string `env:"CURSOR_START" envDefault:"bottom-left"`
}

// Load reads GAMMA_* environment variables on top of the defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "GAMMA_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.MaxFields < 1 {
		return fmt.Errorf("%w: GAMMA_MAX_FIELDS must be positive, got %d", ErrInvalidConfig, c.MaxFields)
	}
	switch c.CursorStart {
	case CursorBottomLeft, CursorTopLeft, CursorCenter:
	default:
		return fmt.Errorf("%w: unknown GAMMA_CURSOR_START %q", ErrInvalidConfig, c.CursorStart)
	}
	return nil
}

// CursorOrigin is where the interactive cursor starts on a width x height
// board. Row 0 is the bottom row.
func (c Config) CursorOrigin(width, height int) (x, y int) {
	switch c.CursorStart {
	case CursorTopLeft:
		return 0, height - 1
	case CursorCenter:
		return width / 2, height / 2
	default:
		return 0, 0
	}
}
