package server

import (
	"github.com/odyssey-game/server/game"
	"github.com/odyssey-game/server/wire"
)

// npcFleeRecoverDelayMS is how long after its last damage a fleeing
// NPC starts recovering HP, which is what eventually takes it back
// over the 2x flee threshold and into Patrol.
const npcFleeRecoverDelayMS = 3000

var npcTypeNames = map[game.NPCType]string{
	game.NPCPirate:       "pirate",
	game.NPCBountyHunter: "bounty_hunter",
	game.NPCTrader:       "trader",
	game.NPCMiningDrone:  "mining_drone",
	game.NPCStationGuard: "station_guard",
}

// tickNPCs maintains each zone's population through its spawner and
// runs every live NPC's behavior FSM. Attack events
// flow through the same damage application as player projectiles, and
// are suppressed outside PvP zones the way firing is.
func (s *Server) tickNPCs(now int64) {
	for zoneID, spawner := range s.spawners {
		zone := s.zones[zoneID]
		if zone == nil {
			continue
		}
		spawn := func(id int64, typ game.NPCType, x, y float64) {
			s.spawnNPC(zone, id, typ, x, y)
		}
		spawner.Initialize(s.npcIDs, zone.Bounds, s.rng, spawn)
		spawner.Tick(game.TickIntervalMS, s.npcIDs, zone.Bounds, s.rng, s.npcs, spawn)
	}

	for _, npc := range s.npcs {
		zone := s.zones[npc.ZoneID]
		if zone == nil || npc.Combat.Dead() {
			continue
		}
		world := game.NPCWorld{
			Players: zone.ConnectedPlayers(),
			NowMS:   now,
			DtMS:    game.TickIntervalMS,
			Rng:     s.rng,
		}
		ev := game.TickNPC(npc, world)

		if npc.State == game.StateFlee &&
			npc.Combat.HP < npc.Combat.MaxHP &&
			now-npc.Combat.LastDamageTime >= npcFleeRecoverDelayMS {
			npc.Combat.HP++
		}

		if ev == nil || !zone.AllowsPvP() {
			continue
		}
		target, ok := zone.Players[ev.TargetID]
		if !ok || target.Disconnected || target.Combat.Dead() {
			continue
		}
		s.damagePlayer(zone, target, ev.Damage, 0, now)
	}
}

// spawnNPC registers a freshly spawned NPC, laying out patrol
// waypoints for the wandering types, and announces it to the zone.
func (s *Server) spawnNPC(zone *game.Zone, id int64, typ game.NPCType, x, y float64) {
	npc := game.NewNPC(id, typ, zone.ID, x, y)
	switch typ {
	case game.NPCTrader, game.NPCMiningDrone, game.NPCPirate, game.NPCBountyHunter:
		for i := 0; i < 4; i++ {
			wx, wy := zone.Bounds.RandomPoint(s.rng)
			npc.Waypoints = append(npc.Waypoints, struct{ X, Y float64 }{X: wx, Y: wy})
		}
	}
	s.npcs[id] = npc
	s.broadcastToZone(zone.ID, wire.TypeNPCSpawn, wire.NPCSpawnBody{
		ID: id, Type: npcTypeNames[typ], X: x, Y: y,
	}, 0)
}

// handleNPCKill resolves a player killing an NPC: loot rolls delivered
// to the killer (capacity permitting, overflow silently dropped), kill
// XP, quest credit, the zone-wide death frame, and a respawn entry on
// the zone's spawner.
func (s *Server) handleNPCKill(zone *game.Zone, npc *game.NPC, killerID int64, now int64) {
	s.broadcastToZone(zone.ID, wire.TypeNPCDeath, wire.NPCDeathBody{ID: npc.ID}, 0)

	if killer := s.findPlayer(killerID); killer != nil {
		cfg := game.NPCConfigs[npc.Type]
		for item, qty := range game.RollLoot(cfg.Loot, s.rng) {
			killer.Inventory.AddUpTo(item, qty)
		}
		s.awardXP(killer, game.XPForKill)
		s.emitQuestEvent(killer, game.WorldEvent{Type: "kill", Target: npcTypeNames[npc.Type], Amount: 1})
	}

	if spawner, ok := s.spawners[zone.ID]; ok {
		spawner.NotifyDeath(npc.Type)
	}
	delete(s.npcs, npc.ID)
}
