package server

import (
	"github.com/odyssey-game/server/wire"
)

// broadcastWorldState emits one WORLD_STATE frame per zone to every
// connected player in it. The tick field is monotonically
// non-decreasing per connection, and disconnected players are excluded
// from the snapshot while their record lingers through the grace
// window.
func (s *Server) broadcastWorldState() {
	for zoneID, zone := range s.zones {
		connected := zone.ConnectedPlayers()
		if len(connected) == 0 {
			continue
		}

		body := wire.WorldStateBody{Tick: s.tick}
		for _, p := range connected {
			body.Players = append(body.Players, snapshotOf(p))
		}
		for _, npc := range s.npcs {
			if npc.ZoneID != zoneID || npc.Combat.Dead() {
				continue
			}
			body.Npcs = append(body.Npcs, wire.NPCSnapshot{
				ID: npc.ID, Type: npcTypeNames[npc.Type],
				X: npc.PlayerState.X, Y: npc.PlayerState.Y, HP: npc.Combat.HP,
			})
		}
		for _, proj := range s.projectiles[zoneID] {
			body.Projectiles = append(body.Projectiles, wire.ProjectileSnapshot{ID: proj.ID, X: proj.X, Y: proj.Y})
		}

		s.broadcastToZone(zoneID, wire.TypeWorldState, body, 0)
	}
}
