package server

import (
	"github.com/odyssey-game/server/game"
	"github.com/odyssey-game/server/wire"
)

func (s *Server) handleQuestAcceptFrame(connID int64, raw []byte) {
	p := s.playerForConn(connID)
	if p == nil {
		return
	}
	var body wire.QuestAcceptBody
	if _, err := wire.DecodeInto(raw, &body); err != nil {
		return
	}
	def, ok := s.questDB[body.QuestID]
	if !ok {
		return
	}
	if err := p.Quests.CanAccept(def, p.Level); err != nil {
		return
	}
	p.Quests.Accept(def)
	s.sendToConn(connID, wire.TypeQuestProgress, wire.QuestProgressBody{
		QuestID: def.ID, Objectives: make([]int, len(def.Objectives)),
	})
}

func (s *Server) handleQuestAbandonFrame(connID int64, raw []byte) {
	p := s.playerForConn(connID)
	if p == nil {
		return
	}
	var body wire.QuestAbandonBody
	if _, err := wire.DecodeInto(raw, &body); err != nil {
		return
	}
	p.Quests.Abandon(body.QuestID)
}

// handleQuestListFrame replies with every active quest's progress.
func (s *Server) handleQuestListFrame(connID int64) {
	p := s.playerForConn(connID)
	if p == nil {
		return
	}
	var entries []wire.QuestProgressBody
	for questID, prog := range p.Quests.Active {
		def, ok := s.questDB[questID]
		if !ok {
			continue
		}
		objectives := make([]int, len(def.Objectives))
		for i := range def.Objectives {
			objectives[i] = prog.Current[i]
		}
		entries = append(entries, wire.QuestProgressBody{QuestID: questID, Objectives: objectives})
	}
	s.sendToConn(connID, wire.TypeQuestList, wire.QuestListBody{Quests: entries})
}

// handleQuestAvailableFrame replies with every quest the player could
// accept right now.
func (s *Server) handleQuestAvailableFrame(connID int64) {
	p := s.playerForConn(connID)
	if p == nil {
		return
	}
	var ids []string
	for questID, def := range s.questDB {
		if p.Quests.CanAccept(def, p.Level) == nil {
			ids = append(ids, questID)
		}
	}
	s.sendToConn(connID, wire.TypeQuestAvailable, wire.QuestAvailableBody{QuestIDs: ids})
}

// emitQuestEvent feeds a world event to p's active quest objectives,
// notifying progress and completion, and granting rewards.
func (s *Server) emitQuestEvent(p *game.Player, ev game.WorldEvent) {
	completions := p.Quests.OnEvent(ev, s.questDB)
	connID, ok := s.playerConn[p.ID]
	if !ok {
		return
	}
	for questID, prog := range p.Quests.Active {
		def := s.questDB[questID]
		objectives := make([]int, len(def.Objectives))
		for i := range def.Objectives {
			objectives[i] = prog.Current[i]
		}
		s.sendToConn(connID, wire.TypeQuestProgress, wire.QuestProgressBody{QuestID: questID, Objectives: objectives})
	}
	for _, c := range completions {
		s.sendToConn(connID, wire.TypeQuestComplete, wire.QuestCompleteBody{QuestID: c.QuestID, Rewards: c.Rewards})
		s.applyQuestRewards(p, c.Rewards)
	}
}

func (s *Server) applyQuestRewards(p *game.Player, rewards map[string]int) {
	for key, amount := range rewards {
		switch key {
		case "omen":
			p.Inventory.CreditOmen(float64(amount))
		case "xp":
			s.awardXP(p, float64(amount))
		default:
			p.Inventory.AddUpTo(key, amount)
		}
	}
}
