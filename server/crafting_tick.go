package server

import (
	"github.com/odyssey-game/server/game"
	"github.com/odyssey-game/server/wire"
)

func (s *Server) handleCraftStartFrame(connID int64, raw []byte) {
	p := s.playerForConn(connID)
	if p == nil {
		return
	}
	var body wire.CraftStartBody
	if _, err := wire.DecodeInto(raw, &body); err != nil {
		return
	}
	recipe, ok := s.recipes[body.RecipeID]
	if !ok {
		s.sendToConn(connID, wire.TypeCraftFailed, wire.CraftFailedBody{RecipeID: body.RecipeID, Reason: "unknown recipe"})
		return
	}
	job, err := p.Crafting.TryStart(recipe, p.Inventory, s.nowMS())
	if err != nil {
		s.sendToConn(connID, wire.TypeCraftFailed, wire.CraftFailedBody{RecipeID: body.RecipeID, Reason: err.Error()})
		return
	}
	s.sendToConn(connID, wire.TypeCraftStatus, wire.CraftStatusBody{RecipeID: job.RecipeID, EndMS: job.EndMS})
}

// tickCrafting advances every connected player's crafting queue,
// notifying completions/failures and awarding XP and quest credit on
// success. Consumed inputs are never refunded on failure.
func (s *Server) tickCrafting(now int64) {
	for playerID := range s.playerConn {
		p := s.findPlayer(playerID)
		if p == nil {
			continue
		}
		results := p.Crafting.Tick(now, s.recipes, p.Inventory)
		if len(results) == 0 {
			continue
		}
		connID := s.playerConn[playerID]
		for _, r := range results {
			recipe := s.recipes[r.Job.RecipeID]
			if r.Failed {
				s.sendToConn(connID, wire.TypeCraftFailed, wire.CraftFailedBody{RecipeID: r.Job.RecipeID, Reason: "inventory full"})
				continue
			}
			s.sendToConn(connID, wire.TypeCraftComplete, wire.CraftCompleteBody{
				RecipeID: r.Job.RecipeID, ItemKey: recipe.OutputItem, Qty: recipe.OutputQty,
			})
			s.awardXP(p, game.XPPerCraftJob)
			s.emitQuestEvent(p, game.WorldEvent{Type: "craft", Target: recipe.OutputItem, Amount: 1})
		}
	}
}
