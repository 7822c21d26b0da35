package game

import "math/rand"

// SpawnTableEntry configures one NPC type's population for a zone.
type SpawnTableEntry struct {
	Type          NPCType
	MaxConcurrent int
	RespawnMS     int64
}

type respawnEntry struct {
	Type    NPCType
	TimerMS int64
}

// ZoneSpawner maintains one zone's NPC population against its spawn
// table via a respawn queue.
type ZoneSpawner struct {
	ZoneID      string
	Table       []SpawnTableEntry
	initialized bool
	respawnQ    []respawnEntry
}

// NewZoneSpawner builds a spawner for a zone's static spawn table.
func NewZoneSpawner(zoneID string, table []SpawnTableEntry) *ZoneSpawner {
	return &ZoneSpawner{ZoneID: zoneID, Table: table}
}

func (s *ZoneSpawner) countOfType(npcs map[int64]*NPC, typ NPCType) int {
	n := 0
	for _, npc := range npcs {
		if npc.ZoneID == s.ZoneID && npc.Type == typ && !npc.Combat.Dead() {
			n++
		}
	}
	return n
}

// Initialize spawns the zone up to its table's MaxConcurrent, the
// first time the zone is observed. Spawn points are drawn randomly
// within bounds and handed to the caller's spawnAt.
func (s *ZoneSpawner) Initialize(ids *IDAllocator, bounds Bounds, rng *rand.Rand, spawnAt func(id int64, typ NPCType, x, y float64)) {
	if s.initialized {
		return
	}
	s.initialized = true
	for _, entry := range s.Table {
		for i := 0; i < entry.MaxConcurrent; i++ {
			x, y := bounds.RandomPoint(rng)
			spawnAt(ids.Next(), entry.Type, x, y)
		}
	}
}

// NotifyDeath enqueues a respawn entry for the dead NPC's type.
func (s *ZoneSpawner) NotifyDeath(typ NPCType) {
	for _, entry := range s.Table {
		if entry.Type == typ {
			s.respawnQ = append(s.respawnQ, respawnEntry{Type: typ, TimerMS: entry.RespawnMS})
			return
		}
	}
}

// Tick subtracts dtMS from every queued respawn timer and spawns a
// replacement for any entry that has reached zero and whose type is
// still under its population cap, via spawnAt.
func (s *ZoneSpawner) Tick(dtMS int64, ids *IDAllocator, bounds Bounds, rng *rand.Rand, npcs map[int64]*NPC, spawnAt func(id int64, typ NPCType, x, y float64)) {
	remaining := s.respawnQ[:0]
	for _, entry := range s.respawnQ {
		entry.TimerMS -= dtMS
		if entry.TimerMS > 0 {
			remaining = append(remaining, entry)
			continue
		}
		if s.countOfType(npcs, entry.Type) < s.capFor(entry.Type) {
			x, y := bounds.RandomPoint(rng)
			spawnAt(ids.Next(), entry.Type, x, y)
		} else {
			// still at cap; re-queue with a short recheck delay
			remaining = append(remaining, respawnEntry{Type: entry.Type, TimerMS: 1000})
		}
	}
	s.respawnQ = remaining
}

func (s *ZoneSpawner) capFor(typ NPCType) int {
	for _, entry := range s.Table {
		if entry.Type == typ {
			return entry.MaxConcurrent
		}
	}
	return 0
}
