package server

import (
	"context"

	"github.com/odyssey-game/server/game"
	"github.com/odyssey-game/server/wire"
)

func (s *Server) handleInputFrame(connID int64, raw []byte) {
	p := s.playerForConn(connID)
	if p == nil || p.IsDocked {
		return
	}
	var body wire.InputBody
	if _, err := wire.DecodeInto(raw, &body); err != nil {
		return
	}
	p.Inputs.Push(game.Input{Seq: body.Seq, Forward: body.Forward, Right: body.Right})
	p.LastActivity = s.nowMS()
}

// handleZoneTransferFrame honors an explicit transfer request to a
// connected neighbor zone, used for station docking corridors and any
// client-initiated hop; boundary-crossing transfers happen
// automatically in tickMovementAndTransfers.
func (s *Server) handleZoneTransferFrame(connID int64, raw []byte) {
	p := s.playerForConn(connID)
	if p == nil {
		return
	}
	var body wire.ZoneTransferRequestBody
	if _, err := wire.DecodeInto(raw, &body); err != nil {
		return
	}
	from := s.zones[p.ZoneID]
	if from == nil || !from.HasConnection(body.TargetZoneID) {
		return
	}
	s.transferPlayer(p, body.TargetZoneID)
}

// tickMovementAndTransfers advances every non-docked player one step
// and bounces anyone who has left the zone's bounds to its default
// connected neighbor.
func (s *Server) tickMovementAndTransfers(zoneID string) {
	zone := s.zones[zoneID]
	if zone == nil {
		return
	}
	for _, p := range zone.Players {
		if p.Disconnected || p.IsDocked || p.Combat.Dead() {
			continue
		}
		game.StepPlayer(p)
		if !zone.Bounds.Contains(p.State.X, p.State.Y) {
			if target, ok := zone.DefaultTransferTarget(); ok {
				s.transferPlayer(p, target)
			}
		}
	}
}

// transferPlayer moves a player from its current zone to target: LEFT
// broadcast in the source zone, insertion at a random in-bounds
// destination position with zeroed velocity, ZONE_INFO plus one JOIN
// per existing destination player to the mover, and a JOIN broadcast
// for the mover to destination clients.
func (s *Server) transferPlayer(p *game.Player, targetZoneID string) {
	target := s.zones[targetZoneID]
	if target == nil {
		return
	}
	oldZoneID := p.ZoneID
	if old := s.zones[oldZoneID]; old != nil {
		old.RemovePlayer(p.ID)
		s.broadcastToZone(oldZoneID, wire.TypeLeft, wire.LeftBody{PlayerID: p.ID}, p.ID)
	}

	p.StopMining()
	p.State.X, p.State.Y = target.Bounds.RandomPoint(s.rng)
	p.State.VX, p.State.VY = 0, 0
	target.AddPlayer(p)
	s.playerZone[p.ID] = target.ID

	if connID, ok := s.playerConn[p.ID]; ok {
		s.sendToConn(connID, wire.TypeZoneInfo, zoneInfoBody(target))
		for _, existing := range target.ConnectedPlayers() {
			if existing.ID != p.ID {
				s.sendToConn(connID, wire.TypeJoin, wire.JoinBody{Player: snapshotOf(existing)})
			}
		}
	}
	s.broadcastToZone(target.ID, wire.TypeJoin, wire.JoinBody{Player: snapshotOf(p)}, p.ID)
}

// tickDisconnectTimeouts removes any player whose disconnect grace
// period has elapsed.
func (s *Server) tickDisconnectTimeouts(now int64) {
	for playerID, zoneID := range s.playerZone {
		zone := s.zones[zoneID]
		if zone == nil {
			continue
		}
		p, ok := zone.Players[playerID]
		if !ok || !p.Disconnected {
			continue
		}
		if now-p.DisconnectTime < DisconnectGraceMS {
			continue
		}
		s.savePlayer(context.Background(), p)
		zone.RemovePlayer(playerID)
		delete(s.playerZone, playerID)
		delete(s.playerAccount, playerID)
		delete(s.lastFire, playerID)
		s.broadcastToZone(zoneID, wire.TypeLeft, wire.LeftBody{PlayerID: playerID}, 0)
	}
}
