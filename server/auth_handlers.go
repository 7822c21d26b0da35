package server

import (
	"context"
	"time"

	"github.com/odyssey-game/server/game"
	"github.com/odyssey-game/server/wire"
)

func (s *Server) handleLoginFrame(connID int64, raw []byte) {
	var body wire.LoginBody
	if _, err := wire.DecodeInto(raw, &body); err != nil {
		s.log.Warnw("malformed login frame", "conn", connID, "err", err)
		return
	}
	acc, err := s.authSvc.Login(context.Background(), body.Username, body.Password)
	if err != nil {
		s.sendToConn(connID, wire.TypeAuthFailed, wire.AuthFailedBody{Error: "invalid credentials"})
		return
	}
	s.pendingAccount[connID] = acc.ID
	s.sendToConn(connID, wire.TypeAuthSuccess, wire.AuthSuccessBody{AccountID: acc.ID})
}

func (s *Server) handleRegisterFrame(connID int64, raw []byte) {
	var body wire.RegisterBody
	if _, err := wire.DecodeInto(raw, &body); err != nil {
		s.log.Warnw("malformed register frame", "conn", connID, "err", err)
		return
	}
	acc, err := s.authSvc.Register(context.Background(), body.Username, body.Password, time.Now().Unix())
	if err != nil {
		s.sendToConn(connID, wire.TypeAuthFailed, wire.AuthFailedBody{Error: err.Error()})
		return
	}
	s.pendingAccount[connID] = acc.ID
	s.sendToConn(connID, wire.TypeAuthSuccess, wire.AuthSuccessBody{AccountID: acc.ID})
}

// handleHelloFrame joins a connection's authenticated account into the
// world: reattaching to an in-memory player if one is still within its
// disconnect grace window, loading a persisted character otherwise, or
// creating a fresh level-1 character as a last resort.
func (s *Server) handleHelloFrame(connID int64, raw []byte) {
	if _, mapped := s.connPlayer[connID]; mapped {
		// Duplicate HELLO on an already-joined connection is a no-op.
		return
	}
	var body wire.HelloBody
	if _, err := wire.DecodeInto(raw, &body); err != nil {
		s.log.Warnw("malformed hello frame", "conn", connID, "err", err)
		return
	}
	accountID, ok := s.pendingAccount[connID]
	if !ok {
		s.sendToConn(connID, wire.TypeAuthFailed, wire.AuthFailedBody{Error: "not authenticated"})
		return
	}
	delete(s.pendingAccount, connID)

	var p *game.Player
	if playerID, ok := s.accountPlayer[accountID]; ok {
		if existing := s.findPlayer(playerID); existing != nil {
			p = existing
			p.Disconnected = false
		}
	}
	if p == nil {
		p = s.loadOrCreatePlayer(accountID, body.Name)
	}

	s.playerAccount[p.ID] = accountID
	s.accountPlayer[accountID] = p.ID
	s.connPlayer[connID] = p.ID
	s.playerConn[p.ID] = connID
	s.playerZone[p.ID] = p.ZoneID

	zone := s.zones[p.ZoneID]
	if zone == nil {
		zone = s.zones[s.defaultZoneID]
		p.ZoneID = zone.ID
		s.playerZone[p.ID] = zone.ID
	}
	if _, already := zone.Players[p.ID]; !already {
		zone.AddPlayer(p)
	}

	s.sendToConn(connID, wire.TypeWelcome, wire.WelcomeBody{PlayerID: p.ID, ZoneID: zone.ID, X: p.State.X, Y: p.State.Y})
	s.sendToConn(connID, wire.TypeZoneInfo, zoneInfoBody(zone))
	s.sendToConn(connID, wire.TypeEquipUpdate, equipUpdateBody(p))
	ship := p.ShipStats()
	s.sendToConn(connID, wire.TypeShipStats, wire.ShipStatsBody{
		MaxHP: ship.MaxHP, MaxShield: ship.MaxShield, MoveSpeed: ship.MoveSpeed,
		MiningSpeed: ship.MiningSpeed, Cargo: ship.Cargo, Damage: ship.Damage,
	})
	s.broadcastToZone(zone.ID, wire.TypeJoin, wire.JoinBody{Player: snapshotOf(p)}, p.ID)
	for _, existing := range zone.ConnectedPlayers() {
		if existing.ID != p.ID {
			s.sendToConn(connID, wire.TypeJoin, wire.JoinBody{Player: snapshotOf(existing)})
		}
	}
}

func equipUpdateBody(p *game.Player) wire.EquipUpdateBody {
	slots := make(map[string]string, len(p.Equipment.Slots))
	for slot, item := range p.Equipment.Slots {
		if item != nil {
			slots[slotToString(slot)] = item.ItemKey
		}
	}
	return wire.EquipUpdateBody{Slots: slots}
}

func zoneInfoBody(z *game.Zone) wire.ZoneInfoBody {
	typeName := "space"
	switch z.Type {
	case game.ZoneStation:
		typeName = "station"
	case game.ZonePlanet:
		typeName = "planet"
	}
	return wire.ZoneInfoBody{ZoneID: z.ID, Name: z.Name, Type: typeName, Connections: z.Connections}
}

func snapshotOf(p *game.Player) wire.PlayerSnapshot {
	return wire.PlayerSnapshot{
		ID: p.ID, Name: p.Name,
		X: p.State.X, Y: p.State.Y, VX: p.State.VX, VY: p.State.VY, Yaw: p.State.Yaw,
		HP: p.Combat.HP, Shield: p.Combat.Shield,
	}
}

// loadOrCreatePlayer restores a persisted character for accountID, or
// builds a fresh one if none exists yet.
func (s *Server) loadOrCreatePlayer(accountID int64, name string) *game.Player {
	if s.store != nil {
		if snap, err := s.store.LoadByAccount(context.Background(), accountID); err != nil {
			s.log.Warnw("load player failed", "account", accountID, "err", err)
		} else if snap != nil {
			return s.playerFromSnapshot(snap)
		}
	}

	zone := s.zones[s.defaultZoneID]
	x, y := zone.Bounds.RandomPoint(s.rng)
	p := game.NewPlayer(s.playerIDs.Next(), name, zone.ID, x, y)
	return p
}
