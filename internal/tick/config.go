package tick

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config controls frame and step rates.
type Config struct {
	// FrameRate is the target presentation rate in frames per second.
	FrameRate float64 `env:"TICKINPUT_FRAME_RATE" envDefault:"60"`

	// SimRate is the fixed simulation rate in steps per second.
	SimRate float64 `env:"TICKINPUT_SIM_RATE" envDefault:"50"`

	// MaxCatchUp caps the simulation steps run in one frame.
	MaxCatchUp int `env:"TICKINPUT_MAX_CATCHUP" envDefault:"5"`
}

// DefaultConfig returns the rates used when nothing is configured.
func DefaultConfig() Config {
	return Config{FrameRate: 60, SimRate: 50, MaxCatchUp: 5}
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every rate is positive.
func (c Config) Validate() error {
	if c.FrameRate <= 0 {
		return fmt.Errorf("frame rate must be positive, got %v", c.FrameRate)
	}
	if c.SimRate <= 0 {
		return fmt.Errorf("simulation rate must be positive, got %v", c.SimRate)
	}
	if c.MaxCatchUp < 1 {
		return fmt.Errorf("max catch-up must be at least 1, got %d", c.MaxCatchUp)
	}
	return nil
}

// FrameInterval is the wall time between presentation frames.
func (c Config) FrameInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.FrameRate)
}

// StepInterval is the simulated time covered by one simulation step.
func (c Config) StepInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.SimRate)
}
