package galton

import (
	"github.com/plus3/galton/ecs"
)

// Rand is the randomness source for the pin symmetry break.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// GravitySystem integrates every particle one frame: v += g, p += v.
// Particles touching the floor lose horizontal speed.
type GravitySystem struct {
	Particles ecs.Query[ParticleEntity]
	Settings  ecs.Singleton[Settings]
}

func (s *GravitySystem) Execute(frame *ecs.UpdateFrame) {
	settings := s.Settings.Get()
	physics := settings.Physics

	for p := range s.Particles.Values() {
		vel, pos := &p.Velocity.Vec2, &p.Position.Vec2
		*vel = vel.Add(physics.Gravity)
		*pos = pos.Add(*vel)

		if pos.Y+p.Body.Radius >= settings.Height {
			if !physics.Disappear {
				pos.Y = settings.Height - p.Body.Radius + 1
			}
			vel.X *= 1 - physics.EnergyLoss
		}
	}
}

// PinCollisionSystem turns pin interpenetration directly into velocity:
// v = (v + (p - pin)) * (loss, g.y). A particle overlapping several pins
// takes their corrections one after another.
type PinCollisionSystem struct {
	Particles ecs.Query[ParticleEntity]
	Pins      ecs.Query[pinEntity]
	Settings  ecs.Singleton[Settings]

	Rand Rand
}

func (s *PinCollisionSystem) Execute(frame *ecs.UpdateFrame) {
	physics := s.Settings.Get().Physics
	scale := Vec2{X: physics.EnergyLoss, Y: physics.Gravity.Y}

	for p := range s.Particles.Values() {
		pos, vel := &p.Position.Vec2, &p.Velocity.Vec2
		for pin := range s.Pins.Values() {
			pinPos := pin.Position.Vec2
			if !(Circle{*pos, p.Body.Radius}).Overlaps(Circle{pinPos, pin.Body.Radius}) {
				continue
			}

			// Dead centre on a pin would never fall off it.
			if pos.X == pinPos.X {
				if s.Rand.IntN(2) == 0 {
					pos.X--
				} else {
					pos.X++
				}
			}

			*vel = vel.Add(pos.Sub(pinPos)).Mul(scale)
		}
	}
}

// BorderSystem bounces particles off the board edges. Each axis is checked
// independently; a bounce flips and damps that velocity component and
// moves the particle once more this frame.
type BorderSystem struct {
	Particles ecs.Query[ParticleEntity]
	Settings  ecs.Singleton[Settings]
}

func (s *BorderSystem) Execute(frame *ecs.UpdateFrame) {
	settings := s.Settings.Get()
	bounce := -(1 - settings.Physics.EnergyLoss)

	for p := range s.Particles.Values() {
		pos, vel, r := &p.Position.Vec2, &p.Velocity.Vec2, p.Body.Radius

		if pos.X-r < 0 || pos.X+r >= settings.Width {
			vel.X *= bounce
			*pos = pos.Add(*vel)
		}
		if pos.Y-r < 0 || pos.Y+r >= settings.Height {
			vel.Y *= bounce
			*pos = pos.Add(*vel)
		}
	}
}

// BinSystem settles particles into the first bin they touch and keeps the
// bin statistics. Each particle is counted at most once.
type BinSystem struct {
	Bins      ecs.Query[binEntity]
	Particles ecs.Query[ParticleEntity]
	Tally     ecs.Singleton[Tally]
}

func (s *BinSystem) Execute(frame *ecs.UpdateFrame) {
	tally := s.Tally.Get()

	for b := range s.Bins.Values() {
		bin := b.Bin
		for p := range s.Particles.Values() {
			if p.Particle.Counted {
				continue
			}
			if !bin.Rect.OverlapsCircle(Circle{p.Position.Vec2, p.Body.Radius}) {
				continue
			}

			p.Particle.Counted = true
			p.Particle.Bin = bin.Index
			p.Velocity.X = 0
			bin.Counter++
			tally.Settled++
		}
	}

	// Every bin shares the current denominator, so the sum stays <= 100.
	for b := range s.Bins.Values() {
		b.Bin.Probability = probability(b.Bin.Counter, tally.Spawned)
	}
}

func probability(counter, spawned int) float64 {
	if spawned == 0 {
		return 0
	}
	return float64(counter) / float64(spawned) * 100
}

// PairCollisionSystem exchanges horizontal velocity between overlapping
// particles when Physics.PairCollisions is set. The faster particle gives
// up loss/3 of the other's speed and the slower one gains loss/3 of the
// difference.
type PairCollisionSystem struct {
	Particles ecs.Query[ParticleEntity]
	Settings  ecs.Singleton[Settings]
}

func (s *PairCollisionSystem) Execute(frame *ecs.UpdateFrame) {
	physics := s.Settings.Get().Physics
	if !physics.PairCollisions {
		return
	}
	k := physics.EnergyLoss / 3

	n := s.Particles.Len()
	for i := 0; i < n; i++ {
		_, a := s.Particles.At(i)
		for j := i + 1; j < n; j++ {
			_, b := s.Particles.At(j)
			if !(Circle{a.Position.Vec2, a.Body.Radius}).Overlaps(Circle{b.Position.Vec2, b.Body.Radius}) {
				continue
			}
			exchange(&a.Velocity.X, &b.Velocity.X, k)
		}
	}
}

// exchange applies the transfer to the pre-collision speeds va and vb.
func exchange(a, b *float64, k float64) {
	va, vb := *a, *b
	switch {
	case va > vb:
		transfer(a, b, va, vb, k)
	case vb > va:
		transfer(b, a, vb, va, k)
	}
}

func transfer(fast, slow *float64, vf, vs, k float64) {
	if vs < 0 {
		*fast += vs * k
	} else {
		*fast -= vs * k
	}
	*slow += (vf - vs) * k
}
