package server

import (
	"github.com/odyssey-game/server/game"
	"github.com/odyssey-game/server/wire"
)

func (s *Server) handleStartMiningFrame(connID int64, raw []byte) {
	p := s.playerForConn(connID)
	if p == nil {
		return
	}
	var body wire.StartMiningBody
	if _, err := wire.DecodeInto(raw, &body); err != nil {
		return
	}
	zone := s.zones[p.ZoneID]
	if zone == nil {
		return
	}
	node, ok := zone.Nodes[body.NodeID]
	if !ok || !game.CanMine(p, node) {
		return
	}
	p.StartMining(body.NodeID)
}

func (s *Server) handleStopMiningFrame(connID int64) {
	if p := s.playerForConn(connID); p != nil {
		p.StopMining()
	}
}

// tickMining advances mining for every player attached to a node and
// respawns depleted nodes whose timer has elapsed.
func (s *Server) tickMining(zoneID string, now int64) {
	zone := s.zones[zoneID]
	if zone == nil {
		return
	}
	for _, p := range zone.Players {
		if p.Disconnected || p.MiningNodeID == nil {
			continue
		}
		node, ok := zone.Nodes[*p.MiningNodeID]
		if !ok {
			p.StopMining()
			continue
		}
		result := game.TickMining(p, node, now)
		if result.Extracted <= 0 && !game.CanMine(p, node) {
			p.StopMining()
			continue
		}
		if connID, ok := s.playerConn[p.ID]; ok {
			s.sendToConn(connID, wire.TypeMiningUpdate, wire.MiningUpdateBody{
				NodeID: node.ID, Extracted: result.Extracted, Remaining: node.CurrentAmount,
			})
		}
		if result.Depleted {
			p.StopMining()
			s.broadcastToZone(zone.ID, wire.TypeNodeDepleted, wire.NodeDepletedBody{NodeID: node.ID}, 0)
		}
		if result.Extracted > 0 {
			s.awardXP(p, game.XPPerMiningUnit*result.Extracted)
			s.emitQuestEvent(p, game.WorldEvent{Type: "mine", Target: node.ResourceType, Amount: int(result.Extracted)})
		}
	}
	for _, node := range zone.Nodes {
		node.TickRespawn(now)
	}
}
