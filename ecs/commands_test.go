package ecs_test

import (
	"testing"

	"github.com/plus3/galton/ecs"
	"github.com/stretchr/testify/assert"
)

type commandSystem struct {
	run func(frame *ecs.UpdateFrame)
}

func (s *commandSystem) Execute(frame *ecs.UpdateFrame) {
	s.run(frame)
}

func TestCommandsFlushOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	view := ecs.NewView[struct{ *Label }](storage)

	old := storage.Spawn(Label("old"))

	var seen []Label
	scheduler.Register(&commandSystem{run: func(frame *ecs.UpdateFrame) {
		frame.Commands.Defer(func() {
			for item := range view.Values() {
				seen = append(seen, *item.Label)
			}
		})
		frame.Commands.Spawn(Label("new"))
		frame.Commands.Delete(old)

		// Nothing is applied while systems run.
		assert.NotNil(t, ecs.ReadComponent[Label](storage, old))
	}})

	scheduler.Once(1)

	// The delete frees the slot that the spawn then reuses; the deferred
	// call observes both.
	assert.Equal(t, []Label{"new"}, seen)
}

func TestCommandsResetAfterFlush(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	frames := 0
	scheduler.Register(&commandSystem{run: func(frame *ecs.UpdateFrame) {
		if frames == 0 {
			frame.Commands.Spawn(Position{X: 1})
		}
		frames++
	}})

	scheduler.Once(1)
	scheduler.Once(1)
	scheduler.Once(1)

	assert.Equal(t, 1, storage.GetArchetype(Position{}).Len())
}

func TestSingletonAccessor(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var missing ecs.Singleton[Counter]
	missing.Init(storage)
	assert.False(t, missing.Exists())
	assert.Nil(t, missing.Get())

	counter := ecs.NewSingleton(storage, Counter{Hits: 1})
	assert.True(t, missing.Exists(), "resolved lazily once added")
	assert.Same(t, counter.Get(), missing.Get())

	// A second NewSingleton keeps the existing value.
	again := ecs.NewSingleton(storage, Counter{Hits: 100})
	assert.Equal(t, 1, again.Get().Hits)

	again.Get().Hits = 7
	assert.Equal(t, 7, counter.Get().Hits)

	zero := ecs.NewSingleton[Settled](storage)
	assert.Equal(t, Settled{}, *zero.Get())
}
