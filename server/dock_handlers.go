package server

import (
	"github.com/odyssey-game/server/game"
	"github.com/odyssey-game/server/wire"
)

// DockRange is how close to a station's dock point a player must be to
// attach.
const DockRange = 600.0

// handleDockRequestFrame attaches a player to a station: the player
// must be alive, undocked, in the requested station zone, and within
// DockRange of its dock point. Docking zeroes velocity and blocks
// movement, mining and firing until UNDOCK.
func (s *Server) handleDockRequestFrame(connID int64, raw []byte) {
	p := s.playerForConn(connID)
	if p == nil {
		return
	}
	var body wire.DockRequestBody
	if _, err := wire.DecodeInto(raw, &body); err != nil {
		return
	}
	if p.IsDocked {
		s.sendToConn(connID, wire.TypeDockFail, wire.DockFailBody{Reason: "already docked"})
		return
	}
	if p.Combat.Dead() {
		s.sendToConn(connID, wire.TypeDockFail, wire.DockFailBody{Reason: "dead"})
		return
	}
	station := s.zones[body.StationZoneID]
	if station == nil || station.Type != game.ZoneStation || station.DockPoint == nil {
		s.sendToConn(connID, wire.TypeDockFail, wire.DockFailBody{Reason: "no such station"})
		return
	}
	if p.ZoneID != station.ID {
		s.sendToConn(connID, wire.TypeDockFail, wire.DockFailBody{Reason: "not at station"})
		return
	}
	if game.EuclideanDistance(p.State.X, p.State.Y, station.DockPoint.X, station.DockPoint.Y) > DockRange {
		s.sendToConn(connID, wire.TypeDockFail, wire.DockFailBody{Reason: "out of range"})
		return
	}
	p.StopMining()
	p.Dock(station.ID)
	s.sendToConn(connID, wire.TypeDockOK, nil)
}

func (s *Server) handleUndockRequestFrame(connID int64) {
	p := s.playerForConn(connID)
	if p == nil || !p.IsDocked {
		return
	}
	p.Undock()
	s.sendToConn(connID, wire.TypeUndockOK, nil)
}
