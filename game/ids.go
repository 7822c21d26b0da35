// Package game implements the zoned simulation: players, resource
// nodes, combat, NPC AI, crafting, equipment, progression and quests.
// All state here is mutated exclusively by the server's tick loop.
package game

import "sync/atomic"

// IDAllocator hands out process-unique monotonic identifiers for one
// identifier space (connections, players, nodes, NPCs, projectiles,
// orders). It is the only process-wide mutable shared across the
// connection actors and the loop, and requires only atomic increment.
type IDAllocator struct {
	next int64
}

// NewIDAllocator returns an allocator whose first Next() call yields start.
func NewIDAllocator(start int64) *IDAllocator {
	return &IDAllocator{next: start - 1}
}

// Next returns the next id in the sequence.
func (a *IDAllocator) Next() int64 {
	return atomic.AddInt64(&a.next, 1)
}

// Peek returns the id that would be allocated without consuming it.
func (a *IDAllocator) Peek() int64 {
	return atomic.LoadInt64(&a.next) + 1
}
