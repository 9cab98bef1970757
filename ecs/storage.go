package ecs

import (
	"reflect"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage is the main ECS storage interface
type Storage struct {
	archetypes *intmap.Map[uint32, *Archetype]
	order      []*Archetype
	singletons *intmap.Map[int, *singletonEntry]
	singleList []*singletonEntry
	registry   *ComponentRegistry
}

type singletonEntry struct {
	typ     reflect.Type
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: intmap.New[uint32, *Archetype](16),
		singletons: intmap.New[int, *singletonEntry](16),
		registry:   registry,
	}
}

// GetArchetype returns the archetype holding exactly the given component
// types, or nil.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types := extractComponentTypes(components)
	a, _ := s.archetypes.Get(hashTypesToUint32(types))
	return a
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	archetype := s.archetypeFor(types)
	return NewEntityId(archetype.id, archetype.Spawn(components))
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	archetypeId := hashTypesToUint32(types)
	archetype, ok := s.archetypes.Get(archetypeId)
	if !ok {
		archetype = NewArchetype(archetypeId, types, s.registry)
		s.archetypes.Put(archetypeId, archetype)
		s.order = append(s.order, archetype)
	}
	return archetype
}

// Delete removes all data related to the entity ID
func (s *Storage) Delete(id EntityId) {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return
	}
	archetype.Delete(id.Index())
}

// GetComponent returns the component for the given entity ID and component type
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return false
	}
	return archetype.HasComponent(compType)
}

// Archetypes yields archetypes in creation order.
func (s *Storage) Archetypes() func(yield func(*Archetype) bool) {
	return func(yield func(*Archetype) bool) {
		for _, a := range s.order {
			if !yield(a) {
				return
			}
		}
	}
}

// AddSingleton stores value as the singleton of its type, replacing any
// previous value. Singletons do not need to be registered.
func (s *Storage) AddSingleton(value any) {
	typ := reflect.TypeOf(value)
	if typ == nil {
		panic("cannot add nil singleton")
	}

	if entry := s.getSingletonEntry(typ); entry != nil {
		entry.value.Elem().Set(reflect.ValueOf(value))
		return
	}

	ptr := reflect.New(typ)
	ptr.Elem().Set(reflect.ValueOf(value))
	entry := &singletonEntry{
		typ:     typ,
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
	s.singletons.Put(typeId(typ), entry)
	s.singleList = append(s.singleList, entry)
}

// ReadSingleton points *target at the stored singleton of type T.
// It returns false when no such singleton exists.
func (s *Storage) ReadSingleton(target any) bool {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton expects a pointer to a pointer")
	}

	entry := s.getSingletonEntry(rv.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	rv.Elem().Set(entry.value)
	return true
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	entry, ok := s.singletons.Get(typeId(t))
	if !ok || entry.typ != t {
		return nil
	}
	return entry
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := componentType(comp)

		// Components are values: structs or named primitives.
		switch compType.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}

		types = append(types, compType)
	}
	sortTypes(types)
	return types
}

func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// iface mirrors the runtime layout of an interface value.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

func typeId(t reflect.Type) int {
	ptr := (*iface)(unsafe.Pointer(&t)).data
	return int(uintptr(ptr))
}

// hashTypesToUint32 generates a uint32 hash for a sorted slice of types
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261     // FNV-1a 32-bit offset basis
	const prime uint32 = 16777619 // FNV-1a 32-bit prime

	for _, t := range types {
		ptr := uintptr(typeId(t))
		val := uint32(ptr)
		if unsafe.Sizeof(uintptr(0)) == 8 {
			val ^= uint32(uint64(ptr) >> 32)
		}

		h ^= val
		h *= prime
	}

	return h
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns a typed pointer to an entity's component, or nil.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
