package galton_test

import (
	"math"
	"testing"

	"github.com/plus3/galton/galton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleRow(cfg *galton.Config) {
	cfg.Rows = 1
}

func TestGravityFreeFall(t *testing.T) {
	board := newTestBoard(t, singleRow)
	physics := board.Config().Physics
	id := spawn(t, board, 50, 20)

	const frames = 40
	for range frames {
		board.AdvanceFrame(physics)
	}

	p := board.Particle(id)
	assert.Equal(t, frames*physics.Gravity.Y, p.Velocity.Y)
	assert.Zero(t, p.Velocity.X)
	assert.InDelta(t, 20+physics.Gravity.Y*frames*(frames+1)/2, p.Position.Y, 1e-9)
	assert.Equal(t, 50.0, p.Position.X)
	assert.False(t, p.Particle.Counted)
}

func TestGravityFloorFriction(t *testing.T) {
	tests := []struct {
		name      string
		disappear bool
		wantY     float64
	}{
		{"sinks", true, 795},
		{"clamped", false, 800 - 8 + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := newTestBoard(t, singleRow)
			physics := board.Config().Physics
			physics.Gravity = galton.Vec2{}
			physics.Disappear = tt.disappear

			// The first frame settles it in a bin, which stops it horizontally.
			id := spawn(t, board, 300, 795)
			board.AdvanceFrame(physics)
			require.True(t, board.Particle(id).Particle.Counted)

			board.Particle(id).Velocity.X = 5
			board.AdvanceFrame(physics)

			p := board.Particle(id)
			vx := 5 * (1 - physics.EnergyLoss)
			assert.InDelta(t, vx, p.Velocity.X, 1e-9)
			// Still touching the floor, so the border rule steps it once more.
			assert.InDelta(t, 305+vx, p.Position.X, 1e-9)
			assert.InDelta(t, tt.wantY, p.Position.Y, 1e-9)
		})
	}
}

func TestBorderReflection(t *testing.T) {
	board := newTestBoard(t, singleRow)
	physics := board.Config().Physics
	physics.Gravity = galton.Vec2{}

	id := spawn(t, board, 790, 100)
	board.Particle(id).Velocity.X = 5
	board.AdvanceFrame(physics)

	p := board.Particle(id)
	v := -5 * (1 - physics.EnergyLoss)
	assert.InDelta(t, v, p.Velocity.X, 1e-9)
	// 790 + 5 crosses the wall, then one extra step with the new velocity.
	assert.InDelta(t, 795+v, p.Position.X, 1e-9)
	assert.Equal(t, 100.0, p.Position.Y)
}

func TestBorderCorner(t *testing.T) {
	board := newTestBoard(t, singleRow)
	physics := board.Config().Physics
	physics.Gravity = galton.Vec2{}

	id := spawn(t, board, 790, 10)
	board.Particle(id).Velocity.Vec2 = galton.Vec2{X: 5, Y: -5}
	board.AdvanceFrame(physics)

	p := board.Particle(id)
	bounce := 1 - physics.EnergyLoss
	assert.InDelta(t, -5*bounce, p.Velocity.X, 1e-9)
	assert.InDelta(t, 5*bounce, p.Velocity.Y, 1e-9)
	// Both axes bounce, so the position steps twice with the new velocity.
	assert.InDelta(t, 795-2*5*bounce, p.Position.X, 1e-9)
	assert.InDelta(t, 5, p.Position.Y, 1e-9)
}

func TestPinCollisionSymmetryBreak(t *testing.T) {
	tests := []struct {
		name  string
		roll  int
		wantX float64
	}{
		{"left", 0, 399},
		{"right", 1, 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rnd := &scriptedRand{values: []int{tt.roll}}
			board := newTestBoard(t, singleRow, galton.WithRand(rnd))
			physics := board.Config().Physics

			pin := board.Pins()[0]
			require.Equal(t, galton.Vec2{X: 400, Y: 80}, pin.Center)

			id := spawn(t, board, 400, 70)
			board.AdvanceFrame(physics)

			p := board.Particle(id)
			assert.Equal(t, 1, rnd.calls)
			assert.Equal(t, tt.wantX, p.Position.X)

			// v = (v + d) * (loss, g.y) with v = (0, 0.25), d = (±1, -9.75).
			assert.InDelta(t, (tt.wantX-400)*physics.EnergyLoss, p.Velocity.X, 1e-9)
			assert.InDelta(t, (0.25-9.75)*physics.Gravity.Y, p.Velocity.Y, 1e-9)
			assert.False(t, math.IsNaN(p.Velocity.X) || math.IsInf(p.Velocity.X, 0))
			assert.False(t, math.IsNaN(p.Velocity.Y) || math.IsInf(p.Velocity.Y, 0))
		})
	}
}

func TestPinCollisionOffCentre(t *testing.T) {
	rnd := &scriptedRand{values: []int{0}}
	board := newTestBoard(t, singleRow, galton.WithRand(rnd))
	physics := board.Config().Physics

	id := spawn(t, board, 405, 70)
	board.AdvanceFrame(physics)

	p := board.Particle(id)
	assert.Zero(t, rnd.calls)
	assert.Equal(t, 405.0, p.Position.X)
	assert.InDelta(t, 5*physics.EnergyLoss, p.Velocity.X, 1e-9)
	assert.Less(t, p.Velocity.Y, 0.0)
}

func TestPinCollisionNoOverlap(t *testing.T) {
	rnd := &scriptedRand{values: []int{0}}
	board := newTestBoard(t, singleRow, galton.WithRand(rnd))
	physics := board.Config().Physics

	// 13 px away after one step: touching, not overlapping.
	id := spawn(t, board, 400, 80-13-0.25)
	board.AdvanceFrame(physics)

	p := board.Particle(id)
	assert.Zero(t, rnd.calls)
	assert.Equal(t, galton.Vec2{X: 0, Y: 0.25}, p.Velocity.Vec2)
}

func TestBinSettles(t *testing.T) {
	board := newTestBoard(t, nil)
	physics := board.Config().Physics

	first := spawn(t, board, 30, 500)
	board.AdvanceFrame(physics)

	p := board.Particle(first)
	assert.True(t, p.Particle.Counted)
	assert.Equal(t, 0, p.Particle.Bin)
	assert.Zero(t, p.Velocity.X)
	assert.Equal(t, physics.Gravity.Y, p.Velocity.Y)

	bins := board.Bins()
	assert.Equal(t, 1, bins[0].Counter)
	assert.Equal(t, 100.0, bins[0].Probability)
	assert.Equal(t, galton.Tally{Spawned: 1, Settled: 1}, board.Tally())

	second := spawn(t, board, 30, 300)
	board.AdvanceFrame(physics)

	assert.False(t, board.Particle(second).Particle.Counted)
	bins = board.Bins()
	assert.Equal(t, 1, bins[0].Counter)
	assert.Equal(t, 50.0, bins[0].Probability)

	for range 60 {
		board.AdvanceFrame(physics)
	}
	assert.True(t, board.Particle(second).Particle.Counted)
	bins = board.Bins()
	assert.Equal(t, 2, bins[0].Counter)
	assert.Equal(t, 100.0, bins[0].Probability)
	for _, bin := range bins[1:] {
		assert.Zero(t, bin.Counter)
	}
}

func TestBinSettlesOnce(t *testing.T) {
	board := newTestBoard(t, nil)
	physics := board.Config().Physics
	physics.Gravity = galton.Vec2{}

	// Straddles bins 0 and 1; the first bin in order wins.
	width := board.Bins()[0].Rect.W
	id := spawn(t, board, width, 600)
	board.Particle(id).Velocity.X = 2
	for range 5 {
		board.AdvanceFrame(physics)
	}

	bins := board.Bins()
	assert.Equal(t, 1, bins[0].Counter)
	assert.Equal(t, 0, bins[1].Counter)
	assert.Equal(t, 0, board.Particle(id).Particle.Bin)
	assert.Zero(t, board.Particle(id).Velocity.X)
	assert.Equal(t, 1, board.Tally().Settled)
}

func TestPairCollision(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		wantA   float64
		wantB   float64
	}{
		{"disabled", false, 2, -1},
		{"enabled", true, 2 - 0.2/3, -1 + 3*0.2/3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := newTestBoard(t, singleRow)
			physics := board.Config().Physics
			physics.Gravity = galton.Vec2{}
			physics.PairCollisions = tt.enabled

			a := spawn(t, board, 100, 200)
			b := spawn(t, board, 104, 200)
			board.Particle(a).Velocity.X = 2
			board.Particle(b).Velocity.X = -1
			board.AdvanceFrame(physics)

			assert.InDelta(t, tt.wantA, board.Particle(a).Velocity.X, 1e-9)
			assert.InDelta(t, tt.wantB, board.Particle(b).Velocity.X, 1e-9)
			assert.Zero(t, board.Particle(a).Velocity.Y)
			assert.Zero(t, board.Particle(b).Velocity.Y)
		})
	}
}

func TestPairCollisionPositiveVelocities(t *testing.T) {
	board := newTestBoard(t, singleRow)
	physics := board.Config().Physics
	physics.Gravity = galton.Vec2{}
	physics.PairCollisions = true
	k := physics.EnergyLoss / 3

	a := spawn(t, board, 100, 200)
	b := spawn(t, board, 104, 200)
	board.Particle(a).Velocity.X = 1
	board.Particle(b).Velocity.X = 3
	board.AdvanceFrame(physics)

	// b is faster: it loses k of a's speed, a gains k of the difference.
	assert.InDelta(t, 1+2*k, board.Particle(a).Velocity.X, 1e-9)
	assert.InDelta(t, 3-1*k, board.Particle(b).Velocity.X, 1e-9)
}

func TestPairCollisionApart(t *testing.T) {
	board := newTestBoard(t, singleRow)
	physics := board.Config().Physics
	physics.Gravity = galton.Vec2{}
	physics.PairCollisions = true

	a := spawn(t, board, 100, 200)
	b := spawn(t, board, 200, 200)
	board.Particle(a).Velocity.X = 2
	board.Particle(b).Velocity.X = -1
	board.AdvanceFrame(physics)

	assert.Equal(t, 2.0, board.Particle(a).Velocity.X)
	assert.Equal(t, -1.0, board.Particle(b).Velocity.X)
}
