package cache

// Stats holds operation counters for a cache.
//
// Counters are updated by the cache's own methods; Stats() returns a copy.
type Stats struct {
	Hits      uint64 // Get found the key
	Misses    uint64 // Get did not find the key
	Inserts   uint64 // Put created a new entry
	Updates   uint64 // Put replaced the value of an existing entry
	Evictions uint64 // entries removed to make room
}

// HitRatio returns Hits / (Hits + Misses), or 0 before the first Get.
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
