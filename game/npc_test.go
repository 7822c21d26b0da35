package game

import (
	"math/rand"
	"testing"
)

func npcWorld(players ...*Player) NPCWorld {
	return NPCWorld{
		Players: players,
		DtMS:    TickIntervalMS,
		Rng:     rand.New(rand.NewSource(1)),
	}
}

func TestPirateIdleToPatrolAfterTwoSeconds(t *testing.T) {
	n := NewNPC(1, NPCPirate, "zone-a", 0, 0)
	world := npcWorld()
	ticks := 2000 / TickIntervalMS
	for i := 0; i < ticks-1; i++ {
		TickNPC(n, world)
	}
	if n.State != StateIdle {
		t.Fatalf("left idle early, state = %v", n.State)
	}
	TickNPC(n, world)
	if n.State != StatePatrol {
		t.Fatalf("expected patrol after 2s, state = %v", n.State)
	}
}

func TestPiratePatrolToChaseOnAggro(t *testing.T) {
	n := NewNPC(1, NPCPirate, "zone-a", 0, 0)
	n.State = StatePatrol
	cfg := NPCConfigs[NPCPirate]

	far := NewPlayer(2, "far", "zone-a", cfg.AggroRange+1, 0)
	TickNPC(n, npcWorld(far))
	if n.State != StatePatrol {
		t.Fatalf("aggroed out of range, state = %v", n.State)
	}

	near := NewPlayer(3, "near", "zone-a", cfg.AggroRange-1, 0)
	TickNPC(n, npcWorld(near))
	if n.State != StateChase {
		t.Fatalf("expected chase, state = %v", n.State)
	}
	if n.TargetID == nil || *n.TargetID != 3 {
		t.Fatalf("target not recorded: %v", n.TargetID)
	}
}

func TestPirateChaseToAttackInRange(t *testing.T) {
	n := NewNPC(1, NPCPirate, "zone-a", 0, 0)
	cfg := NPCConfigs[NPCPirate]
	target := NewPlayer(2, "prey", "zone-a", cfg.AttackRange-10, 0)
	id := target.ID
	n.State = StateChase
	n.TargetID = &id

	TickNPC(n, npcWorld(target))
	if n.State != StateAttack {
		t.Fatalf("expected attack, state = %v", n.State)
	}
}

func TestPirateChaseDropsAtLeash(t *testing.T) {
	n := NewNPC(1, NPCPirate, "zone-a", 0, 0)
	cfg := NPCConfigs[NPCPirate]
	target := NewPlayer(2, "prey", "zone-a", cfg.AggroRange*1.5+1, 0)
	id := target.ID
	n.State = StateChase
	n.TargetID = &id

	TickNPC(n, npcWorld(target))
	if n.State != StatePatrol || n.TargetID != nil {
		t.Fatalf("expected leash back to patrol, state = %v target = %v", n.State, n.TargetID)
	}
}

func TestPirateFleesAtThreshold(t *testing.T) {
	n := NewNPC(1, NPCPirate, "zone-a", 0, 0)
	cfg := NPCConfigs[NPCPirate]
	n.State = StatePatrol
	n.Combat.HP = int(float64(n.Combat.MaxHP) * cfg.FleeThreshold)

	TickNPC(n, npcWorld())
	if n.State != StateFlee {
		t.Fatalf("expected flee at threshold, state = %v", n.State)
	}

	n.Combat.HP = int(float64(n.Combat.MaxHP)*cfg.FleeThreshold*2) + 1
	TickNPC(n, npcWorld())
	if n.State != StatePatrol {
		t.Fatalf("expected recovery to patrol, state = %v", n.State)
	}
}

func TestAttackEmitsEventAndResetsCooldown(t *testing.T) {
	n := NewNPC(1, NPCPirate, "zone-a", 0, 0)
	cfg := NPCConfigs[NPCPirate]
	target := NewPlayer(2, "prey", "zone-a", 50, 0)
	id := target.ID
	n.State = StateAttack
	n.TargetID = &id

	ev := TickNPC(n, npcWorld(target))
	if ev == nil {
		t.Fatal("expected attack event")
	}
	if ev.TargetID != 2 || ev.Damage != cfg.AttackDamage {
		t.Fatalf("bad attack event: %+v", ev)
	}
	if n.CooldownTimerMS != cfg.AttackCooldown {
		t.Fatalf("cooldown not reset: %d", n.CooldownTimerMS)
	}
	if ev2 := TickNPC(n, npcWorld(target)); ev2 != nil {
		t.Fatal("attack fired while on cooldown")
	}
}

func TestMiningDroneMinesOnArrival(t *testing.T) {
	n := NewNPC(1, NPCMiningDrone, "zone-a", 0, 0)
	n.Waypoints = []struct{ X, Y float64 }{{X: 1, Y: 1}, {X: 500, Y: 500}}
	world := npcWorld()

	TickNPC(n, world) // within arrival radius of the first waypoint
	if n.State != StateMine {
		t.Fatalf("expected mine on arrival, state = %v", n.State)
	}
	if n.PlayerState.VX != 0 || n.PlayerState.VY != 0 {
		t.Fatal("mining drone should hold still while mining")
	}

	cfg := NPCConfigs[NPCMiningDrone]
	for elapsed := int64(0); elapsed < cfg.MineDurationMS; elapsed += TickIntervalMS {
		TickNPC(n, world)
	}
	if n.State != StatePatrol {
		t.Fatalf("expected patrol after mine duration, state = %v", n.State)
	}
}

func TestRollLootRespectsChance(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	always := []LootEntry{{ItemKey: "scrap", Chance: 1.0, MinQty: 2, MaxQty: 4}}
	never := []LootEntry{{ItemKey: "relic", Chance: 0.0, MinQty: 1, MaxQty: 1}}

	for i := 0; i < 50; i++ {
		won := RollLoot(always, rng)
		if qty := won["scrap"]; qty < 2 || qty > 4 {
			t.Fatalf("guaranteed drop out of range: %d", qty)
		}
		if len(RollLoot(never, rng)) != 0 {
			t.Fatal("zero-chance entry dropped")
		}
	}
}

func TestSpawnerInitializesToCapAndRespawns(t *testing.T) {
	table := []SpawnTableEntry{{Type: NPCPirate, MaxConcurrent: 3, RespawnMS: 1000}}
	sp := NewZoneSpawner("zone-a", table)
	ids := NewIDAllocator(1)
	bounds := Bounds{XMin: -100, XMax: 100, YMin: -100, YMax: 100}
	rng := rand.New(rand.NewSource(7))
	npcs := make(map[int64]*NPC)
	spawn := func(id int64, typ NPCType, x, y float64) {
		npcs[id] = NewNPC(id, typ, "zone-a", x, y)
	}

	sp.Initialize(ids, bounds, rng, spawn)
	if len(npcs) != 3 {
		t.Fatalf("initialized %d, want 3", len(npcs))
	}
	sp.Initialize(ids, bounds, rng, spawn)
	if len(npcs) != 3 {
		t.Fatal("double initialize spawned extras")
	}

	// Kill one and run the respawn queue down.
	npcs[1].Combat.HP = 0
	delete(npcs, 1)
	sp.NotifyDeath(NPCPirate)

	for i := 0; i < 19; i++ { // 950ms of the 1000ms timer
		sp.Tick(TickIntervalMS, ids, bounds, rng, npcs, spawn)
	}
	if len(npcs) != 2 {
		t.Fatalf("respawned early: %d", len(npcs))
	}
	sp.Tick(TickIntervalMS, ids, bounds, rng, npcs, spawn)
	if len(npcs) != 3 {
		t.Fatalf("respawn did not fire: %d", len(npcs))
	}
}

func TestSpawnerHoldsAtCap(t *testing.T) {
	table := []SpawnTableEntry{{Type: NPCPirate, MaxConcurrent: 1, RespawnMS: 100}}
	sp := NewZoneSpawner("zone-a", table)
	ids := NewIDAllocator(1)
	bounds := Bounds{XMin: 0, XMax: 10, YMin: 0, YMax: 10}
	rng := rand.New(rand.NewSource(7))
	npcs := make(map[int64]*NPC)
	spawn := func(id int64, typ NPCType, x, y float64) {
		npcs[id] = NewNPC(id, typ, "zone-a", x, y)
	}

	sp.Initialize(ids, bounds, rng, spawn)
	sp.NotifyDeath(NPCPirate) // spurious: population still at cap
	for i := 0; i < 100; i++ {
		sp.Tick(TickIntervalMS, ids, bounds, rng, npcs, spawn)
	}
	if len(npcs) != 1 {
		t.Fatalf("spawner exceeded cap: %d", len(npcs))
	}
}
