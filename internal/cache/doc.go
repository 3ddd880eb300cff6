// Package cache implements a fixed-capacity, in-memory LFU (least frequently
// used) key–value cache.
//
// Goals for this package:
//   - Make the core data structures explicit (map index + insertion-order list)
//   - Keep usage counts and insertion order independent: reads and updates bump
//     the count, only inserts decide the position in the list
//   - Evict exactly one minimum-count entry when a new key arrives at capacity,
//     breaking ties by insertion order (most recently inserted first by default)
//   - Keep eviction and insertion atomic from the caller's point of view
//
// LFU itself is not safe for concurrent use. Wrap it in Locked when more than
// one goroutine needs the same cache.
package cache
