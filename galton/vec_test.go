package galton_test

import (
	"testing"

	"github.com/plus3/galton/galton"
	"github.com/stretchr/testify/assert"
)

func TestVec2(t *testing.T) {
	a := galton.Vec2{X: 1, Y: 2}
	b := galton.Vec2{X: 3, Y: -4}

	assert.Equal(t, galton.Vec2{X: 4, Y: -2}, a.Add(b))
	assert.Equal(t, galton.Vec2{X: -2, Y: 6}, a.Sub(b))
	assert.Equal(t, galton.Vec2{X: 3, Y: -8}, a.Mul(b))
	assert.Equal(t, 25.0, b.LenSqr())
}

func TestCircleOverlaps(t *testing.T) {
	c := galton.Circle{Center: galton.Vec2{X: 0, Y: 0}, Radius: 8}

	assert.True(t, c.Overlaps(galton.Circle{Center: galton.Vec2{X: 12, Y: 0}, Radius: 5}))
	assert.False(t, c.Overlaps(galton.Circle{Center: galton.Vec2{X: 13, Y: 0}, Radius: 5}), "touching")
	assert.False(t, c.Overlaps(galton.Circle{Center: galton.Vec2{X: 10, Y: 10}, Radius: 5}))
	assert.True(t, c.Overlaps(c))
}

func TestRectOverlapsCircle(t *testing.T) {
	r := galton.Rect{X: 0, Y: 0, W: 10, H: 10}
	circle := func(x, y float64) galton.Circle {
		return galton.Circle{Center: galton.Vec2{X: x, Y: y}, Radius: 2}
	}

	tests := []struct {
		name string
		c    galton.Circle
		want bool
	}{
		{"inside", circle(5, 5), true},
		{"edge overlap", circle(11, 5), true},
		{"edge touch", circle(12, 5), true},
		{"edge clear", circle(12.5, 5), false},
		{"corner overlap", circle(11, 11), true},
		{"corner clear", circle(11.8, 11.8), false},
		{"far", circle(50, 50), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.OverlapsCircle(tt.c))
		})
	}
}
