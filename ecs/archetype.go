package ecs

import (
	"reflect"
	"slices"
	"sort"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype holds every entity that has exactly one particular set of
// component types. Each type gets its own column; an entity's index is
// the same in every column.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []componentStorage
}

// NewArchetype creates an archetype for the given sorted component types.
// It panics if a type was never registered.
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]componentStorage, len(types)),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

// Spawn appends one entity and returns its index.
func (a *Archetype) Spawn(components []any) uint32 {
	storagePos := -1
	for _, comp := range components {
		idx := a.columnOf(componentType(comp))
		if idx == -1 {
			continue
		}
		storagePos = a.storages[idx].Append(comp)
	}
	return uint32(storagePos)
}

func (a *Archetype) columnOf(t reflect.Type) int {
	for i, typ := range a.types {
		if typ == t {
			return i
		}
	}
	return -1
}

// GetComponent returns a pointer to the entity's component of type compType,
// or nil when the archetype has no such column or the slot is empty.
func (a *Archetype) GetComponent(entityIndex uint32, compType reflect.Type) any {
	idx := a.columnOf(compType)
	if idx == -1 {
		return nil
	}
	return a.storages[idx].Get(int(entityIndex))
}

// Delete empties the entity's slot in every column.
func (a *Archetype) Delete(entityIndex uint32) {
	for _, storage := range a.storages {
		storage.Delete(int(entityIndex))
	}
}

// HasComponent reports whether entities of this archetype carry compType.
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Len()
}

// Iter yields live entity IDs in index order.
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}
		for index := range a.storages[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}

func sortTypes(types []reflect.Type) {
	sort.Sort(byTypeName(types))
}
