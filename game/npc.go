package game

import "math/rand"

// NPCType is a closed enum over NPC behavior variants; each has its
// own per-tick FSM function, no runtime polymorphism is needed.
type NPCType int

const (
	NPCPirate NPCType = iota
	NPCBountyHunter
	NPCTrader
	NPCMiningDrone
	NPCStationGuard
)

// NPCState is one of the shared FSM states every NPC type transitions through.
type NPCState int

const (
	StateIdle NPCState = iota
	StatePatrol
	StateChase
	StateAttack
	StateFlee
	StateMine
	StateReturnToStation
)

// NPCConfig is the static per-type tuning table.
type NPCConfig struct {
	Type            NPCType
	MaxHP           int
	AggroRange      float64
	AttackRange     float64
	FleeThreshold   float64 // hp fraction
	AttackDamage    int
	AttackCooldown  int64 // ms
	MoveSpeed       float64
	OrbitRadius     float64 // StationGuard only
	MineDurationMS  int64   // MiningDrone only
	IdleDurationMS  int64
	Loot            []LootEntry
}

// LootEntry is one independently-rolled drop table row.
type LootEntry struct {
	ItemKey  string
	Chance   float64 // 0..1
	MinQty   int
	MaxQty   int
}

// NPCConfigs is the authoritative, closed per-type tuning table.
var NPCConfigs = map[NPCType]NPCConfig{
	NPCPirate: {
		Type: NPCPirate, MaxHP: 80, AggroRange: 800, AttackRange: 160,
		FleeThreshold: 0.2, AttackDamage: 10, AttackCooldown: 1000,
		MoveSpeed: 400, IdleDurationMS: 2000,
		Loot: []LootEntry{{ItemKey: "scrap_metal", Chance: 0.6, MinQty: 1, MaxQty: 5}},
	},
	NPCBountyHunter: {
		Type: NPCBountyHunter, MaxHP: 120, AggroRange: 900, AttackRange: 180,
		FleeThreshold: 0.15, AttackDamage: 14, AttackCooldown: 800,
		MoveSpeed: 450, IdleDurationMS: 2000,
		Loot: []LootEntry{{ItemKey: "bounty_chip", Chance: 0.4, MinQty: 1, MaxQty: 1}},
	},
	NPCTrader: {
		Type: NPCTrader, MaxHP: 60, AggroRange: 0, AttackRange: 0,
		FleeThreshold: 0.3, AttackDamage: 0, AttackCooldown: 0,
		MoveSpeed: 250, IdleDurationMS: 2000,
		Loot: []LootEntry{{ItemKey: "trade_goods", Chance: 0.8, MinQty: 2, MaxQty: 10}},
	},
	NPCMiningDrone: {
		Type: NPCMiningDrone, MaxHP: 40, AggroRange: 0, AttackRange: 0,
		FleeThreshold: 0, AttackDamage: 0, AttackCooldown: 0,
		MoveSpeed: 150, MineDurationMS: 8000,
		Loot: []LootEntry{{ItemKey: "drone_parts", Chance: 0.5, MinQty: 1, MaxQty: 3}},
	},
	NPCStationGuard: {
		Type: NPCStationGuard, MaxHP: 200, AggroRange: 1000, AttackRange: 200,
		FleeThreshold: 0, AttackDamage: 20, AttackCooldown: 1200,
		MoveSpeed: 300, OrbitRadius: 200,
		Loot: nil,
	},
}

// NPC is one spawned non-player entity.
type NPC struct {
	ID              int64
	Type            NPCType
	ZoneID          string
	State           NPCState
	PlayerState     PlayerState
	Combat          *CombatStats
	TargetID        *int64
	StateTimerMS    int64 // counts up while Idle or Mine, reset on leaving them
	CooldownTimerMS int64
	Waypoints       []struct{ X, Y float64 }
	WaypointIdx     int
	HomeX, HomeY    float64
}

// NewNPC spawns an NPC of the given type at (x,y), full health.
func NewNPC(id int64, typ NPCType, zoneID string, x, y float64) *NPC {
	cfg := NPCConfigs[typ]
	return &NPC{
		ID:     id,
		Type:   typ,
		ZoneID: zoneID,
		State:  StateIdle,
		PlayerState: PlayerState{X: x, Y: y},
		Combat: &CombatStats{MaxHP: cfg.MaxHP, HP: cfg.MaxHP, RegenRate: 0},
		HomeX:  x,
		HomeY:  y,
	}
}

// HPFraction returns the NPC's current hp/max_hp.
func (n *NPC) HPFraction() float64 {
	if n.Combat.MaxHP <= 0 {
		return 0
	}
	return float64(n.Combat.HP) / float64(n.Combat.MaxHP)
}

// RollLoot independently rolls each loot table entry and returns the
// items won, each a random quantity in [MinQty,MaxQty].
func RollLoot(entries []LootEntry, rng *rand.Rand) map[string]int {
	won := make(map[string]int)
	for _, e := range entries {
		if rng.Float64() > e.Chance {
			continue
		}
		qty := e.MinQty
		if e.MaxQty > e.MinQty {
			qty += rng.Intn(e.MaxQty - e.MinQty + 1)
		}
		if qty > 0 {
			won[e.ItemKey] += qty
		}
	}
	return won
}
