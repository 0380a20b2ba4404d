package ecs

import "sort"

// StorageStats summarizes the contents of a Storage.
type StorageStats struct {
	TotalEntityCount int
	KindCount        int
	KindBreakdown    []KindStats
	SingletonCount   int
	SingletonTypes   []string
}

// KindStats reports how many live entities hold one component kind.
type KindStats struct {
	Name        string
	EntityCount int
}

// CollectStats gathers entity, kind and singleton counts. Kinds are listed
// in registration order; singleton type names are sorted.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		TotalEntityCount: s.live,
		KindCount:        len(s.registry.order),
		KindBreakdown:    make([]KindStats, 0, len(s.registry.order)),
		SingletonCount:   len(s.singletons),
		SingletonTypes:   make([]string, 0, len(s.singletons)),
	}

	for _, info := range s.registry.order {
		count := 0
		if storage, ok := s.storages[info.typ]; ok {
			count = storage.Len()
		}
		stats.KindBreakdown = append(stats.KindBreakdown, KindStats{
			Name:        info.name,
			EntityCount: count,
		})
	}

	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	sort.Strings(stats.SingletonTypes)

	return stats
}
