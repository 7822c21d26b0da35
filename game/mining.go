package game

import "math"

// MiningRange is the maximum Chebyshev distance from which mining may
// be started or continued.
const MiningRange = 100.0

// CanMine re-validates every predicate required to start or continue
// mining node n for player p: the node must exist (checked by the
// caller passing non-nil), have remaining amount, be in range, the
// player must not be docked, and must have inventory head-room.
func CanMine(p *Player, n *ResourceNode) bool {
	if p.IsDocked || n == nil || n.Depleted() {
		return false
	}
	if ChebyshevDistance(p.State.X, p.State.Y, n.X, n.Y) > MiningRange {
		return false
	}
	if p.Inventory.HeadRoom() <= 0 {
		return false
	}
	return true
}

// MiningTickResult reports what happened to one miner on one tick.
type MiningTickResult struct {
	Extracted float64
	Depleted  bool
}

// TickMining re-validates CanMine, then extracts min(extraction rate,
// node remaining, inventory head-room) from the node; only its whole
// units are added to the player's inventory, and a fractional remainder
// leaves the node without being credited. Any predicate failure stops mining silently (caller must call
// p.StopMining()) and returns a zero result.
func TickMining(p *Player, n *ResourceNode, nowMS int64) MiningTickResult {
	if !CanMine(p, n) {
		return MiningTickResult{}
	}
	rate := n.ExtractionRate()
	headroom := float64(p.Inventory.HeadRoom())
	want := math.Min(rate, math.Min(n.CurrentAmount, headroom))
	if want <= 0 {
		return MiningTickResult{}
	}
	extracted := n.Extract(want, nowMS)
	whole := int(math.Floor(extracted))
	if whole > 0 {
		p.Inventory.AddUpTo(n.ResourceType, whole)
	}
	return MiningTickResult{Extracted: extracted, Depleted: n.Depleted()}
}
