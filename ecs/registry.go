package ecs

import (
	"iter"
	"reflect"
)

// componentStorage is a type-erased column of components.
type componentStorage interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Len() int
	Iter() iter.Seq[int]
}

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage owns one, so several boards can coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentStorage),
	}
}

// RegisterComponent registers a component type with the given registry.
// This must be called for each component type before it can be spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() componentStorage {
		return &blockStorage[T]{}
	}
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() componentStorage {
	return r.factories[t]
}

const blockSize = 64

// blockStorage keeps components of type T in fixed-size blocks. Blocks are
// allocated individually so a pointer handed out by Get stays valid while
// the storage grows.
type blockStorage[T any] struct {
	blocks    []*[blockSize]T
	filled    []*[blockSize]bool
	freeSlots []int
	nextIndex int
	count     int
}

func (cs *blockStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
		if index/blockSize >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, new([blockSize]T))
			cs.filled = append(cs.filled, new([blockSize]bool))
		}
	}

	cs.blocks[index/blockSize][index%blockSize] = value
	cs.filled[index/blockSize][index%blockSize] = true
	cs.count++
	return index
}

// Get returns a pointer to the component at index, or nil if the slot is empty.
func (cs *blockStorage[T]) Get(index int) any {
	if !cs.has(index) {
		return nil
	}
	return &cs.blocks[index/blockSize][index%blockSize]
}

func (cs *blockStorage[T]) has(index int) bool {
	if index < 0 || index/blockSize >= len(cs.blocks) {
		return false
	}
	return cs.filled[index/blockSize][index%blockSize]
}

// Delete empties a slot. The index is recycled by a later Append. Once the
// column is empty it restarts at index 0, so entities appended afterwards
// iterate in append order again.
func (cs *blockStorage[T]) Delete(index int) {
	if !cs.has(index) {
		return
	}
	var zero T
	cs.blocks[index/blockSize][index%blockSize] = zero
	cs.filled[index/blockSize][index%blockSize] = false
	cs.freeSlots = append(cs.freeSlots, index)
	cs.count--
	if cs.count == 0 {
		cs.freeSlots = cs.freeSlots[:0]
		cs.nextIndex = 0
	}
}

func (cs *blockStorage[T]) Len() int {
	return cs.count
}

// Iter yields occupied indices in ascending order.
func (cs *blockStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			if !cs.filled[i/blockSize][i%blockSize] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
