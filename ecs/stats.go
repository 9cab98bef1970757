package ecs

// StorageStats is a point-in-time summary of a Storage.
type StorageStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	SingletonCount     int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []string
}

type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// CollectStats walks every archetype and singleton. It allocates, so
// callers rendering it every frame should cache the result.
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		ArchetypeCount:     len(s.order),
		SingletonCount:     len(s.singleList),
		ArchetypeBreakdown: make([]ArchetypeStats, 0, len(s.order)),
		SingletonTypes:     make([]string, 0, len(s.singleList)),
	}

	for _, a := range s.order {
		names := make([]string, len(a.types))
		for i, t := range a.types {
			names[i] = t.String()
		}
		count := a.Len()
		stats.TotalEntityCount += count
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             a.id,
			ComponentTypes: names,
			EntityCount:    count,
		})
	}

	for _, entry := range s.singleList {
		stats.SingletonTypes = append(stats.SingletonTypes, entry.typ.String())
	}

	return stats
}
