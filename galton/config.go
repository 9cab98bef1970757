package galton

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

var (
	// ErrCapacityExceeded is returned by Board.Spawn when the board already
	// holds MaxParticles particles. Callers are expected to drop the spawn.
	ErrCapacityExceeded = errors.New("particle capacity exceeded")

	ErrInvalidConfig = errors.New("invalid config")
)

// EnvPrefix is prepended to every environment variable read by LoadConfig.
const EnvPrefix = "GALTON_"

// Physics holds the per-frame constants. It is passed to every
// AdvanceFrame call, so frontends can toggle flags while running.
type Physics struct {
	Gravity    Vec2    `yaml:"gravity" envPrefix:"GRAVITY_"`
	EnergyLoss float64 `yaml:"energy_loss" env:"ENERGY_LOSS"`

	// PairCollisions enables the particle-particle pass.
	PairCollisions bool `yaml:"pair_collisions" env:"PAIR_COLLISIONS"`

	// Disappear lets particles sink through the floor; when false they are
	// held on it.
	Disappear bool `yaml:"disappear" env:"DISAPPEAR"`
}

// Config is the immutable startup configuration of a board.
type Config struct {
	Width          float64 `yaml:"width" env:"WIDTH"`
	Height         float64 `yaml:"height" env:"HEIGHT"`
	Rows           int     `yaml:"rows" env:"ROWS"`
	PinRadius      float64 `yaml:"pin_radius" env:"PIN_RADIUS"`
	ParticleRadius float64 `yaml:"particle_radius" env:"PARTICLE_RADIUS"`
	MaxParticles   int     `yaml:"max_particles" env:"MAX_PARTICLES"`

	// Seed for the symmetry-break sign. Zero seeds from the clock.
	Seed uint64 `yaml:"seed" env:"SEED"`

	Physics Physics `yaml:"physics" envPrefix:"PHYSICS_"`
}

// DefaultConfig is an 800x800 board with 12 rows of pins.
func DefaultConfig() Config {
	return Config{
		Width:          800,
		Height:         800,
		Rows:           12,
		PinRadius:      5,
		ParticleRadius: 8,
		MaxParticles:   2000,
		Physics: Physics{
			Gravity:    Vec2{X: 0, Y: 0.25},
			EnergyLoss: 0.2,
			Disappear:  true,
		},
	}
}

// Validate reports the first field that cannot produce a usable board.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: board size %gx%g must be positive", ErrInvalidConfig, c.Width, c.Height)
	case c.Rows < 1:
		return fmt.Errorf("%w: rows %d must be at least 1", ErrInvalidConfig, c.Rows)
	case c.PinRadius <= 0:
		return fmt.Errorf("%w: pin radius %g must be positive", ErrInvalidConfig, c.PinRadius)
	case c.ParticleRadius <= 0:
		return fmt.Errorf("%w: particle radius %g must be positive", ErrInvalidConfig, c.ParticleRadius)
	case c.MaxParticles < 0:
		return fmt.Errorf("%w: max particles %d is negative", ErrInvalidConfig, c.MaxParticles)
	}
	return c.Physics.Validate()
}

func (p Physics) Validate() error {
	if p.EnergyLoss < 0 || p.EnergyLoss > 1 {
		return fmt.Errorf("%w: energy loss %g outside [0, 1]", ErrInvalidConfig, p.EnergyLoss)
	}
	return nil
}

// LoadConfig layers the defaults, the YAML file at path (skipped when path
// is empty) and GALTON_* environment variables, then validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
