package galton

import (
	"image/color"

	"github.com/plus3/galton/ecs"
)

var (
	ParticleColor = color.RGBA{0, 228, 48, 255}
	PinColor      = color.RGBA{80, 80, 80, 255}
	CounterColor  = color.RGBA{0, 117, 44, 255}

	binColors = [2]color.RGBA{
		{130, 130, 130, 120},
		{80, 80, 80, 120},
	}
)

type Position struct{ Vec2 }

type Velocity struct{ Vec2 }

// Body is the collision disc radius and draw colour of a particle or pin.
type Body struct {
	Radius float64
	Color  color.RGBA
}

// Particle marks a falling bean. Counted flips to true exactly once, when
// the bean settles in the bin at index Bin.
type Particle struct {
	Counted bool
	Bin     int
}

// Pin tags static obstacles.
type Pin struct{}

// Bin is a counting cage at the bottom of the board.
type Bin struct {
	Index       int
	Rect        Rect
	Color       color.RGBA
	Counter     int
	Probability float64
}

// Settings is the singleton the systems read each frame.
type Settings struct {
	Width, Height float64
	Physics       Physics
}

// Tally counts particles over the run. Spawned is the denominator for
// every bin probability.
type Tally struct {
	Spawned int
	Settled int
}

// ParticleEntity gives pointer access to one particle's components.
// Writes through it mutate the board.
type ParticleEntity struct {
	*Position
	*Velocity
	*Body
	*Particle
}

type pinEntity struct {
	*Position
	*Body
	*Pin
}

type binEntity struct {
	*Bin
}

// ParticleView is a read-only copy of a particle for renderers.
type ParticleView struct {
	ID       ecs.EntityId
	Position Vec2
	Velocity Vec2
	Radius   float64
	Color    color.RGBA
	Counted  bool
	Bin      int
}

func registerComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Body](registry)
	ecs.RegisterComponent[Particle](registry)
	ecs.RegisterComponent[Pin](registry)
	ecs.RegisterComponent[Bin](registry)
}
