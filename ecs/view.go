package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// View matches entities against a struct of component pointers.
// Every field of T must be a pointer to a registered component type.
// Named fields tagged `ecs:"optional"` may be nil; embedded fields are required.
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
}

// NewView creates a new view for the given struct type
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}

		isOptional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				isOptional = true
			default:
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
		}

		v.types = append(v.types, field.Type.Elem())
		v.fieldOffset = append(v.fieldOffset, field.Offset)
		v.optional = append(v.optional, isOptional)
	}

	return v
}

// Get returns a populated view struct for the given entity, or nil if the
// entity is gone or lacks a required component.
func (v *View[T]) Get(id EntityId) *T {
	archetype, ok := v.storage.archetypes.Get(id.ArchetypeId())
	if !ok || !v.matchesArchetype(archetype) {
		return nil
	}

	var result T
	if !v.populateResult(unsafe.Pointer(&result), archetype, int(id.Index()), v.buildStorageIndices(archetype)) {
		return nil
	}
	return &result
}

// matchesArchetype checks that every required type is present.
func (v *View[T]) matchesArchetype(archetype *Archetype) bool {
	for i, requiredType := range v.types {
		if v.optional[i] {
			continue
		}
		if !archetype.HasComponent(requiredType) {
			return false
		}
	}
	return true
}

func (v *View[T]) buildStorageIndices(archetype *Archetype) []int {
	storageIndices := make([]int, len(v.types))
	for i, componentType := range v.types {
		storageIndices[i] = archetype.columnOf(componentType)
	}
	return storageIndices
}

func (v *View[T]) populateResult(resultPtr unsafe.Pointer, archetype *Archetype, entityIndex int, storageIndices []int) bool {
	for i, storageIdx := range storageIndices {
		fieldPtr := unsafe.Pointer(uintptr(resultPtr) + v.fieldOffset[i])

		var component any
		if storageIdx != -1 {
			component = archetype.storages[storageIdx].Get(entityIndex)
		}
		if component == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
	}
	return true
}

func (v *View[T]) iterArchetype(archetype *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		if len(archetype.storages) == 0 {
			return
		}

		storageIndices := v.buildStorageIndices(archetype)

		var result T
		resultPtr := unsafe.Pointer(&result)
		for entityIndex := range archetype.storages[0].Iter() {
			if !v.populateResult(resultPtr, archetype, entityIndex, storageIndices) {
				continue
			}
			if !yield(NewEntityId(archetype.id, uint32(entityIndex)), result) {
				return
			}
		}
	}
}

// Iter yields every matching entity, archetypes in creation order and
// entities in index order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.order {
			if !v.matchesArchetype(archetype) {
				continue
			}
			for id, item := range v.iterArchetype(archetype) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Values is Iter without the entity IDs.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}
