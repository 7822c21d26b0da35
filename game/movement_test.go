package game

import (
	"math"
	"testing"
)

func TestWorldDirectionDiagonalNotFaster(t *testing.T) {
	dx, dy := WorldDirection(1, 1)
	mag := math.Hypot(dx, dy)
	if mag > 1.0+1e-9 {
		t.Fatalf("diagonal input produced magnitude %f > 1", mag)
	}
}

func TestApplyMovementSpeedCap(t *testing.T) {
	state := &PlayerState{}
	dx, dy := WorldDirection(1, 1)
	ApplyMovement(state, dx, dy, BaseMoveSpeed)
	speed := math.Hypot(state.VX, state.VY)
	if speed > BaseMoveSpeed+1e-6 {
		t.Fatalf("speed %f exceeds %f", speed, BaseMoveSpeed)
	}
	if speed < BaseMoveSpeed-1e-6 {
		t.Fatalf("speed %f below %f", speed, BaseMoveSpeed)
	}
}

func TestStepPlayerDockedForcesZeroVelocity(t *testing.T) {
	p := NewPlayer(1, "test", "zone-a", 0, 0)
	p.Dock("station-a")
	p.Inputs.Push(Input{Seq: 1, Forward: 1, Right: 0})
	StepPlayer(p)
	if p.State.VX != 0 || p.State.VY != 0 {
		t.Fatalf("docked player has nonzero velocity: %+v", p.State)
	}
}

func TestStepPlayerUsesLatestInputOnly(t *testing.T) {
	p := NewPlayer(1, "test", "zone-a", 0, 0)
	for seq := int64(1); seq <= 3; seq++ {
		p.Inputs.Push(Input{Seq: seq, Forward: 1, Right: 0})
	}
	StepPlayer(p)
	if p.LastProcessedSeq != 3 {
		t.Fatalf("expected last processed seq 3, got %d", p.LastProcessedSeq)
	}
}

func TestInputBufferDropsOldestWhenFull(t *testing.T) {
	var b InputBuffer
	for seq := int64(1); seq <= int64(MaxInputBuffer+5); seq++ {
		b.Push(Input{Seq: seq})
	}
	if len(b.items) != MaxInputBuffer {
		t.Fatalf("buffer grew past cap: %d", len(b.items))
	}
	latest, ok := b.DrainLatest()
	if !ok || latest.Seq != MaxInputBuffer+5 {
		t.Fatalf("expected latest seq %d, got %+v", MaxInputBuffer+5, latest)
	}
}
