package server

import (
	"github.com/odyssey-game/server/game"
	"github.com/odyssey-game/server/wire"
)

// handleFireFrame validates a fire request and spawns the projectile:
// the firer must be alive, undocked, in a PvP zone, the slot index
// must resolve to an equipped weapon, and the slot's cooldown must
// have elapsed. Firing at exactly last_fire + cooldown
// succeeds.
func (s *Server) handleFireFrame(connID int64, raw []byte) {
	p := s.playerForConn(connID)
	if p == nil {
		return
	}
	var body wire.FireBody
	if _, err := wire.DecodeInto(raw, &body); err != nil {
		return
	}
	if p.Combat.Dead() || p.IsDocked {
		return
	}
	zone := s.zones[p.ZoneID]
	if zone == nil || !zone.AllowsPvP() {
		return
	}
	weapons := p.Equipment.WeaponSlots()
	if body.SlotIndex < 0 || body.SlotIndex >= len(weapons) {
		return
	}
	weaponType, ok := s.weaponByItem[weapons[body.SlotIndex].ItemKey]
	if !ok {
		return
	}

	now := s.nowMS()
	slots := s.lastFire[p.ID]
	if slots == nil {
		slots = make(map[int]int64)
		s.lastFire[p.ID] = slots
	}
	if last, fired := slots[body.SlotIndex]; fired && now-last < game.Weapons[weaponType].CooldownMS {
		return
	}
	slots[body.SlotIndex] = now

	proj := game.NewProjectile(s.projIDs.Next(), p.ID, weaponType,
		p.State.X, p.State.Y, body.AimX, body.AimY, p.State.Yaw)
	s.projectiles[zone.ID] = append(s.projectiles[zone.ID], proj)
}

// handleRespawnRequestFrame restores a dead player to full stats at a
// random in-bounds position, but only once the 5s death timer has
// elapsed; an early request produces no reply at all.
func (s *Server) handleRespawnRequestFrame(connID int64) {
	p := s.playerForConn(connID)
	if p == nil {
		return
	}
	now := s.nowMS()
	if !p.Combat.CanRespawn(now) {
		return
	}
	zone := s.zones[p.ZoneID]
	if zone == nil {
		return
	}
	p.Combat.Respawn(p.ShipStats())
	p.State.X, p.State.Y = zone.Bounds.RandomPoint(s.rng)
	p.State.VX, p.State.VY = 0, 0
	s.sendToConn(connID, wire.TypeRespawn, wire.RespawnBody{
		X: p.State.X, Y: p.State.Y, HP: p.Combat.HP, Shield: p.Combat.Shield,
	})
}

// tickCombat advances every projectile in the zone, resolves
// collisions against players and NPCs, and runs shield regeneration.
// Regen runs in every zone type; projectiles only ever exist in PvP
// zones since firing is refused elsewhere.
func (s *Server) tickCombat(zoneID string, now int64) {
	zone := s.zones[zoneID]
	if zone == nil {
		return
	}

	for _, p := range zone.Players {
		p.Combat.TickRegen(now)
	}

	projs := s.projectiles[zoneID]
	if len(projs) == 0 {
		return
	}
	alive := projs[:0]
	for _, proj := range projs {
		fromX, fromY := proj.X, proj.Y
		if !proj.Advance(game.TickIntervalSeconds) {
			continue
		}
		if s.collideProjectile(zone, proj, fromX, fromY, now) {
			continue
		}
		alive = append(alive, proj)
	}
	s.projectiles[zoneID] = alive
}

// collideProjectile resolves one projectile against every eligible
// target in the zone, applying direct and splash damage. Collision is
// tested against this tick's swept segment so a fast shot can't step
// past a target between samples. Returns true when a non-piercing
// projectile was consumed by a direct hit.
func (s *Server) collideProjectile(zone *game.Zone, proj *game.Projectile, fromX, fromY float64, now int64) (consumed bool) {
	spec := game.Weapons[proj.Weapon]

	for _, target := range zone.Players {
		if target.ID == proj.OwnerID || target.Disconnected || target.Combat.Dead() || proj.AlreadyHit(target.ID) {
			continue
		}
		d := game.SegmentPointDistance(target.State.X, target.State.Y, fromX, fromY, proj.X, proj.Y)
		dmg, direct, hit := game.ResolveHit(proj.Weapon, d)
		if !hit {
			continue
		}
		proj.HitIDs[target.ID] = struct{}{}
		s.sendTo(proj.OwnerID, wire.TypeHitConfirm, wire.HitConfirmBody{ProjectileID: proj.ID, TargetID: target.ID})
		s.damagePlayer(zone, target, dmg, proj.OwnerID, now)
		if direct && !spec.Piercing {
			return true
		}
	}

	for _, npc := range s.npcs {
		if npc.ZoneID != zone.ID || npc.Combat.Dead() || proj.AlreadyHit(npc.ID) {
			continue
		}
		d := game.SegmentPointDistance(npc.PlayerState.X, npc.PlayerState.Y, fromX, fromY, proj.X, proj.Y)
		dmg, direct, hit := game.ResolveHit(proj.Weapon, d)
		if !hit {
			continue
		}
		proj.HitIDs[npc.ID] = struct{}{}
		s.sendTo(proj.OwnerID, wire.TypeHitConfirm, wire.HitConfirmBody{ProjectileID: proj.ID, TargetID: npc.ID})
		if npc.Combat.ApplyDamage(dmg, now) {
			s.handleNPCKill(zone, npc, proj.OwnerID, now)
		} else {
			s.broadcastToZone(zone.ID, wire.TypeDamaged, wire.DamagedBody{
				TargetID: npc.ID, Damage: dmg, HP: npc.Combat.HP, Shield: npc.Combat.Shield,
			}, 0)
		}
		if direct && !spec.Piercing {
			return true
		}
	}
	return false
}

// damagePlayer applies damage to a player, broadcasting the DAMAGED
// frame and, on a kill, the death payload. killerID is 0 for NPC
// attackers.
func (s *Server) damagePlayer(zone *game.Zone, target *game.Player, dmg int, killerID int64, now int64) {
	killed := target.Combat.ApplyDamage(dmg, now)
	s.broadcastToZone(zone.ID, wire.TypeDamaged, wire.DamagedBody{
		TargetID: target.ID, Damage: dmg, HP: target.Combat.HP, Shield: target.Combat.Shield,
	}, 0)
	if !killed {
		return
	}
	target.StopMining()
	s.broadcastToZone(zone.ID, wire.TypeDeath, wire.DeathBody{PlayerID: target.ID, KillerID: killerID}, 0)
	if killerID != 0 {
		if killer := s.findPlayer(killerID); killer != nil {
			s.awardXP(killer, game.XPForKill)
			s.emitQuestEvent(killer, game.WorldEvent{Type: "kill", Target: "player", Amount: 1})
		}
	}
}
