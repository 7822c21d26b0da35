package server

import (
	"context"

	"github.com/odyssey-game/server/game"
	"github.com/odyssey-game/server/store"
)

// playerFromSnapshot rebuilds an in-memory Player from a loaded
// persistence row, restoring inventory, equipment and quest progress.
func (s *Server) playerFromSnapshot(snap *store.PlayerSnapshot) *game.Player {
	p := game.NewPlayer(snap.ID, snap.Name, snap.ZoneID, snap.X, snap.Y)
	p.Level = snap.Level
	p.XP = snap.XP
	p.Inventory.OmenBalance = snap.OmenBalance
	for item, qty := range snap.Inventory {
		p.Inventory.Counts[item] = qty
	}
	for slotName, itemKey := range snap.Equipment {
		slot, ok := slotFromString(slotName)
		if !ok {
			continue
		}
		item, ok := s.equipCatalog[itemKey]
		if !ok {
			continue
		}
		item.Slot = slot
		p.Equipment.Equip(&item)
	}
	for _, q := range snap.Quests {
		switch q.Status {
		case "completed":
			p.Quests.Completed[q.QuestID] = struct{}{}
		case "active":
			objectives, _ := store.DecodeObjectives(q.ObjectivesJSON)
			p.Quests.Active[q.QuestID] = &game.Progress{QuestID: q.QuestID, Current: objectives}
		}
	}
	p.Combat = game.NewCombatStats(p.ShipStats())
	// Persisted values predate whatever equipment is restored above, so
	// clamp to the maxima the restored loadout actually supports.
	p.Combat.HP = snap.HP
	if p.Combat.HP > p.Combat.MaxHP {
		p.Combat.HP = p.Combat.MaxHP
	}
	p.Combat.Shield = snap.Shield
	if p.Combat.Shield > p.Combat.MaxShield {
		p.Combat.Shield = p.Combat.MaxShield
	}
	return p
}

// snapshotFromPlayer flattens a live Player into the persistence row
// shape store.Save expects.
func snapshotFromPlayer(p *game.Player) *store.PlayerSnapshot {
	inv := make(map[string]int, len(p.Inventory.Counts))
	for item, qty := range p.Inventory.Counts {
		inv[item] = qty
	}
	equip := make(map[string]string, len(p.Equipment.Slots))
	for slot, item := range p.Equipment.Slots {
		if item != nil {
			equip[slotToString(slot)] = item.ItemKey
		}
	}
	var quests []store.QuestProgressRow
	for questID, prog := range p.Quests.Active {
		objectives, err := store.EncodeObjectives(prog.Current)
		if err != nil {
			continue
		}
		quests = append(quests, store.QuestProgressRow{QuestID: questID, Status: "active", ObjectivesJSON: objectives})
	}
	for questID := range p.Quests.Completed {
		quests = append(quests, store.QuestProgressRow{QuestID: questID, Status: "completed", ObjectivesJSON: "{}"})
	}
	return &store.PlayerSnapshot{
		ID: p.ID, AccountID: p.AccountID, Name: p.Name,
		Level: p.Level, XP: p.XP, OmenBalance: p.Inventory.OmenBalance,
		ZoneID: p.ZoneID, X: p.State.X, Y: p.State.Y,
		HP: p.Combat.HP, Shield: p.Combat.Shield,
		Inventory: inv, Equipment: equip, Quests: quests,
	}
}

// savePlayer persists one player's current state. accountID 0 (a
// player that never authenticated) is never persisted.
func (s *Server) savePlayer(ctx context.Context, p *game.Player) {
	if s.store == nil {
		return
	}
	accountID, ok := s.playerAccount[p.ID]
	if !ok || accountID == 0 {
		return
	}
	p.AccountID = accountID
	snap := snapshotFromPlayer(p)
	if err := s.store.Save(ctx, snap); err != nil {
		s.log.Errorw("save player failed", "player", p.ID, "err", err)
	}
}

// saveAllConnected persists every currently connected player, called
// periodically from the tick loop and once more on shutdown.
func (s *Server) saveAllConnected(ctx context.Context) {
	for playerID := range s.playerConn {
		if p := s.findPlayer(playerID); p != nil {
			s.savePlayer(ctx, p)
		}
	}
}
