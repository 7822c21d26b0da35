package server

import (
	"github.com/odyssey-game/server/game"
	"github.com/odyssey-game/server/wire"
)

// awardXP grants xp to p, applying any level-ups and notifying its
// connection.
func (s *Server) awardXP(p *game.Player, xp float64) {
	newLevel, newXP, ups := game.AwardXP(p.Level, p.XP, xp)
	p.Level = newLevel
	p.XP = newXP
	if len(ups) == 0 {
		return
	}
	p.Combat.Respawn(p.ShipStats())
	connID, ok := s.playerConn[p.ID]
	if !ok {
		return
	}
	for _, up := range ups {
		s.sendToConn(connID, wire.TypeLevelUp, wire.LevelUpBody{NewLevel: up.NewLevel, SkillPoints: up.SkillPoints})
	}
	ship := p.ShipStats()
	s.sendToConn(connID, wire.TypeShipStats, wire.ShipStatsBody{
		MaxHP: ship.MaxHP, MaxShield: ship.MaxShield, MoveSpeed: ship.MoveSpeed,
		MiningSpeed: ship.MiningSpeed, Cargo: ship.Cargo, Damage: ship.Damage,
	})
}

func (s *Server) handleEquipFrame(connID int64, raw []byte) {
	p := s.playerForConn(connID)
	if p == nil {
		return
	}
	var body wire.EquipBody
	if _, err := wire.DecodeInto(raw, &body); err != nil {
		return
	}
	item, ok := s.equipCatalog[body.ItemKey]
	if !ok || slotToString(item.Slot) != body.Slot {
		return
	}
	if !p.Inventory.Has(body.ItemKey, 1) {
		return
	}
	if err := p.Inventory.Remove(body.ItemKey, 1); err != nil {
		return
	}
	prev := p.Equipment.Equip(&item)
	if prev != nil {
		p.Inventory.AddUpTo(prev.ItemKey, 1)
	}
	s.sendToConn(connID, wire.TypeEquipUpdate, equipUpdateBody(p))
	s.sendShipStats(p)
}

func (s *Server) handleUnequipFrame(connID int64, raw []byte) {
	p := s.playerForConn(connID)
	if p == nil {
		return
	}
	var body wire.UnequipBody
	if _, err := wire.DecodeInto(raw, &body); err != nil {
		return
	}
	slot, ok := slotFromString(body.Slot)
	if !ok {
		return
	}
	item := p.Equipment.Unequip(slot)
	if item == nil {
		return
	}
	p.Inventory.AddUpTo(item.ItemKey, 1)
	s.sendToConn(connID, wire.TypeEquipUpdate, equipUpdateBody(p))
	s.sendShipStats(p)
}

func (s *Server) sendShipStats(p *game.Player) {
	connID, ok := s.playerConn[p.ID]
	if !ok {
		return
	}
	ship := p.ShipStats()
	s.sendToConn(connID, wire.TypeShipStats, wire.ShipStatsBody{
		MaxHP: ship.MaxHP, MaxShield: ship.MaxShield, MoveSpeed: ship.MoveSpeed,
		MiningSpeed: ship.MiningSpeed, Cargo: ship.Cargo, Damage: ship.Damage,
	})
}
