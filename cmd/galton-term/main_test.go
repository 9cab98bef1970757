package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/galton/galton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimTerm(t *testing.T) *Term {
	t.Helper()
	board, err := galton.NewBoard(galton.DefaultConfig())
	require.NoError(t, err)

	term, err := newTerm(tcell.NewSimulationScreen("UTF-8"), board, false)
	require.NoError(t, err)
	t.Cleanup(term.screen.Fini)
	return term
}

func TestLeftDragDropsOnce(t *testing.T) {
	term := newSimTerm(t)

	term.handle(tcell.NewEventMouse(40, 5, tcell.Button1, tcell.ModNone))
	term.handle(tcell.NewEventMouse(41, 5, tcell.Button1, tcell.ModNone))
	term.handle(tcell.NewEventMouse(42, 6, tcell.Button1, tcell.ModNone))
	assert.Equal(t, 1, term.board.ParticleCount())

	term.handle(tcell.NewEventMouse(42, 6, tcell.ButtonNone, tcell.ModNone))
	term.handle(tcell.NewEventMouse(30, 5, tcell.Button1, tcell.ModNone))
	assert.Equal(t, 2, term.board.ParticleCount())
}

func TestRightButtonPours(t *testing.T) {
	term := newSimTerm(t)

	term.handle(tcell.NewEventMouse(40, 5, tcell.Button2, tcell.ModNone))
	for range 3 {
		term.step()
	}
	assert.Equal(t, 3, term.board.ParticleCount())

	term.handle(tcell.NewEventMouse(40, 5, tcell.ButtonNone, tcell.ModNone))
	term.step()
	assert.Equal(t, 3, term.board.ParticleCount())
}

func TestKeys(t *testing.T) {
	term := newSimTerm(t)
	collisions := term.physics.PairCollisions

	assert.True(t, term.handle(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone)))
	assert.Equal(t, !collisions, term.physics.PairCollisions)

	term.handle(tcell.NewEventMouse(40, 5, tcell.Button1, tcell.ModNone))
	require.Equal(t, 1, term.board.ParticleCount())
	term.handle(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	assert.Zero(t, term.board.ParticleCount())

	assert.False(t, term.handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, term.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}
