package game

import "testing"

func miningPair(nodeAmount float64, quality int) (*Player, *ResourceNode) {
	p := NewPlayer(1, "miner", "zone-a", 0, 0)
	n := NewResourceNode(1, "iron", 0, 0, nodeAmount, quality, 30000)
	return p, n
}

func TestCanMineRangeIsChebyshev(t *testing.T) {
	p, n := miningPair(100, 1)
	p.State.X, p.State.Y = MiningRange, MiningRange
	if !CanMine(p, n) {
		t.Fatal("corner of the mining square should be in range")
	}
	p.State.X = MiningRange + 1
	if CanMine(p, n) {
		t.Fatal("outside the square should be out of range")
	}
}

func TestCanMineRefusalPredicates(t *testing.T) {
	p, n := miningPair(100, 1)
	p.Dock("station-a")
	if CanMine(p, n) {
		t.Fatal("docked player allowed to mine")
	}
	p.Undock()

	n.CurrentAmount = 0
	if CanMine(p, n) {
		t.Fatal("depleted node allowed")
	}
	n.CurrentAmount = 100

	p.Inventory.Counts["rock"] = p.Inventory.Capacity
	if CanMine(p, n) {
		t.Fatal("full inventory allowed")
	}
}

func TestTickMiningExtractionRate(t *testing.T) {
	p, n := miningPair(100, 3)
	result := TickMining(p, n, 0)
	if result.Extracted != 30 {
		t.Fatalf("extracted %f, want 30 (10 x quality)", result.Extracted)
	}
	if p.Inventory.Counts["iron"] != 30 {
		t.Fatalf("inventory iron = %d, want 30", p.Inventory.Counts["iron"])
	}
	if n.CurrentAmount != 70 {
		t.Fatalf("node remaining = %f, want 70", n.CurrentAmount)
	}
}

func TestTickMiningFractionalRemainderDepletes(t *testing.T) {
	p, n := miningPair(0.5, 1)
	result := TickMining(p, n, 1234)
	if result.Extracted != 0.5 {
		t.Fatalf("extracted %f, want exactly 0.5", result.Extracted)
	}
	if !result.Depleted {
		t.Fatal("node should deplete on the extracting tick")
	}
	if n.DepletedAt == nil || *n.DepletedAt != 1234 {
		t.Fatal("depletion timestamp not set")
	}
}

func TestTickMiningCapsAtInventoryHeadRoom(t *testing.T) {
	p, n := miningPair(100, 5)
	p.Inventory.Counts["rock"] = p.Inventory.Capacity - 10
	result := TickMining(p, n, 0)
	if result.Extracted != 10 {
		t.Fatalf("extracted %f, want 10 (head-room bound)", result.Extracted)
	}
}

func TestNodeRespawnAfterTimer(t *testing.T) {
	_, n := miningPair(100, 1)
	n.Extract(100, 1000)
	if !n.Depleted() {
		t.Fatal("node should be depleted")
	}
	if n.TickRespawn(1000 + n.RespawnMS - 1) {
		t.Fatal("respawned early")
	}
	if !n.TickRespawn(1000 + n.RespawnMS) {
		t.Fatal("did not respawn at timer expiry")
	}
	if n.CurrentAmount != n.TotalAmount || n.DepletedAt != nil {
		t.Fatalf("respawn incomplete: current=%f depletedAt=%v", n.CurrentAmount, n.DepletedAt)
	}
}
