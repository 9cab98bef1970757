// Package galton simulates a bean machine: particles fall through a
// triangular lattice of pins and settle into bins whose counts approach a
// binomial distribution.
//
// A Board owns an ECS storage and a scheduler whose systems run in a fixed
// order every frame: GravitySystem, PinCollisionSystem, BorderSystem,
// BinSystem, PairCollisionSystem. Changing the order changes the result.
package galton

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"time"

	"github.com/plus3/galton/ecs"
)

// Board is one bean machine. It is not safe for concurrent use.
type Board struct {
	cfg       Config
	storage   *ecs.Storage
	scheduler *ecs.Scheduler

	settings  *ecs.Singleton[Settings]
	tally     *ecs.Singleton[Tally]
	particles *ecs.View[ParticleEntity]
	pins      *ecs.View[pinEntity]
	bins      *ecs.View[binEntity]

	rand  Rand
	frame int64
}

type Option func(*Board)

// WithRand replaces the seeded default randomness source.
func WithRand(r Rand) Option {
	return func(b *Board) {
		b.rand = r
	}
}

// NewBoard validates cfg, lays out pins and bins and wires the systems.
func NewBoard(cfg Config, opts ...Option) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	registry := ecs.NewComponentRegistry()
	registerComponents(registry)
	storage := ecs.NewStorage(registry)

	b := &Board{
		cfg:     cfg,
		storage: storage,
		settings: ecs.NewSingleton(storage, Settings{
			Width:   cfg.Width,
			Height:  cfg.Height,
			Physics: cfg.Physics,
		}),
		tally:     ecs.NewSingleton(storage, Tally{}),
		particles: ecs.NewView[ParticleEntity](storage),
		pins:      ecs.NewView[pinEntity](storage),
		bins:      ecs.NewView[binEntity](storage),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.rand == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		b.rand = rand.New(rand.NewPCG(seed, seed>>1|1))
	}

	pins, bins := BuildLayout(cfg)
	for _, pin := range pins {
		storage.Spawn(Position{pin.Center}, Body{Radius: pin.Radius, Color: PinColor}, Pin{})
	}
	for _, bin := range bins {
		storage.Spawn(bin)
	}

	b.scheduler = ecs.NewScheduler(storage)
	b.scheduler.Register(&GravitySystem{})
	b.scheduler.Register(&PinCollisionSystem{Rand: b.rand})
	b.scheduler.Register(&BorderSystem{})
	b.scheduler.Register(&BinSystem{})
	b.scheduler.Register(&PairCollisionSystem{})

	return b, nil
}

func (b *Board) Config() Config {
	return b.cfg
}

// Spawn drops a particle at rest at pos. It returns ErrCapacityExceeded,
// and changes nothing, once MaxParticles particles exist.
func (b *Board) Spawn(pos Vec2) (ecs.EntityId, error) {
	tally := b.tally.Get()
	if tally.Spawned >= b.cfg.MaxParticles {
		return 0, fmt.Errorf("spawn at (%.1f, %.1f): %w", pos.X, pos.Y, ErrCapacityExceeded)
	}

	id := b.storage.Spawn(
		Position{pos},
		Velocity{},
		Body{Radius: b.cfg.ParticleRadius, Color: ParticleColor},
		Particle{Bin: -1},
	)
	tally.Spawned++
	return id, nil
}

// AdvanceFrame runs one fixed step with the given physics.
func (b *Board) AdvanceFrame(physics Physics) {
	b.settings.Get().Physics = physics
	b.scheduler.Once(1)
	b.frame++
}

// Physics returns the physics used by the last frame, or the configured
// physics before the first one.
func (b *Board) Physics() Physics {
	return b.settings.Get().Physics
}

// Frame returns the number of frames advanced since creation or Reset.
func (b *Board) Frame() int64 {
	return b.frame
}

// Particle returns pointer access to a live particle, or nil.
func (b *Board) Particle(id ecs.EntityId) *ParticleEntity {
	return b.particles.Get(id)
}

// ParticleCount returns the number of live particles.
func (b *Board) ParticleCount() int {
	return b.tally.Get().Spawned
}

// Particles yields a copy of every live particle in spawn order.
func (b *Board) Particles() iter.Seq[ParticleView] {
	return func(yield func(ParticleView) bool) {
		for id, p := range b.particles.Iter() {
			view := ParticleView{
				ID:       id,
				Position: p.Position.Vec2,
				Velocity: p.Velocity.Vec2,
				Radius:   p.Body.Radius,
				Color:    p.Body.Color,
				Counted:  p.Particle.Counted,
				Bin:      p.Particle.Bin,
			}
			if !yield(view) {
				return
			}
		}
	}
}

func (b *Board) Pins() []Circle {
	pins := make([]Circle, 0, b.cfg.Rows*(b.cfg.Rows+1)/2)
	for p := range b.pins.Values() {
		pins = append(pins, Circle{Center: p.Position.Vec2, Radius: p.Body.Radius})
	}
	return pins
}

// Bins returns copies of the bins, left to right.
func (b *Board) Bins() []Bin {
	bins := make([]Bin, 0, b.cfg.Rows+1)
	for e := range b.bins.Values() {
		bins = append(bins, *e.Bin)
	}
	return bins
}

func (b *Board) Tally() Tally {
	return *b.tally.Get()
}

// Reset removes every particle and clears the bin statistics. Pins and
// bin geometry are kept.
func (b *Board) Reset() {
	var ids []ecs.EntityId
	for id := range b.particles.Iter() {
		ids = append(ids, id)
	}
	for _, id := range ids {
		b.storage.Delete(id)
	}

	for e := range b.bins.Values() {
		e.Bin.Counter = 0
		e.Bin.Probability = 0
	}
	*b.tally.Get() = Tally{}
	b.frame = 0
}

// Stats returns per-system timings.
func (b *Board) Stats() *ecs.SchedulerStats {
	return b.scheduler.GetStats()
}

// StorageStats summarises the entities held by the board.
func (b *Board) StorageStats() *ecs.StorageStats {
	return b.storage.CollectStats()
}
