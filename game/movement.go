package game

import "math"

// TickIntervalMS is the fixed simulation step, 20 Hz.
const TickIntervalMS = 50
const TickIntervalSeconds = TickIntervalMS / 1000.0

// BaseMoveSpeed is the units/second a full-magnitude input vector
// produces. Ship-stat MoveSpeed generalizes this for
// progression but the raw constant is used for NPCs without a ShipStats.
const BaseMoveSpeed = 600.0

// isometric basis vectors.
var (
	forwardBasisX = 1 / math.Sqrt2
	forwardBasisY = 1 / math.Sqrt2
	rightBasisX   = 1 / math.Sqrt2
	rightBasisY   = -1 / math.Sqrt2
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WorldDirection rotates a clamped (forward,right) input pair through
// the fixed isometric basis and normalizes it only if its magnitude
// exceeds 1, so diagonal input is not faster than axis-aligned input.
func WorldDirection(forward, right float64) (dx, dy float64) {
	forward = clamp(forward, -1, 1)
	right = clamp(right, -1, 1)
	dx = forward*forwardBasisX + right*rightBasisX
	dy = forward*forwardBasisY + right*rightBasisY
	mag := math.Hypot(dx, dy)
	if mag > 1 {
		dx /= mag
		dy /= mag
	}
	return dx, dy
}

// ApplyMovement advances a player's state by one tick given the
// world-direction vector and the player's current move speed. Yaw is
// recomputed from velocity when |v| exceeds 0.01, otherwise preserved.
// Docked players must not be passed to this function; the caller skips
// the whole movement phase for them and forces velocity to zero.
func ApplyMovement(state *PlayerState, dx, dy float64, moveSpeed float64) {
	state.VX = dx * moveSpeed
	state.VY = dy * moveSpeed
	state.X += state.VX * TickIntervalSeconds
	state.Y += state.VY * TickIntervalSeconds
	speed := math.Hypot(state.VX, state.VY)
	if speed > 0.01 {
		state.Yaw = math.Atan2(state.VY, state.VX) * 180 / math.Pi
	}
}

// StepPlayer applies one tick of movement to a non-docked player from
// its most recently buffered input, generalizing ApplyMovement with
// the input-buffer draining and sequence-ack rules.
func StepPlayer(p *Player) {
	if p.IsDocked {
		p.State.VX = 0
		p.State.VY = 0
		return
	}
	in, ok := p.Inputs.DrainLatest()
	if !ok {
		p.State.VX = 0
		p.State.VY = 0
		return
	}
	p.LastProcessedSeq = in.Seq
	dx, dy := WorldDirection(in.Forward, in.Right)
	ApplyMovement(&p.State, dx, dy, float64(p.ShipStats().MoveSpeed))
}

// ChebyshevDistance is max(|dx|,|dy|), used by the mining range check.
func ChebyshevDistance(x1, y1, x2, y2 float64) float64 {
	dx := math.Abs(x1 - x2)
	dy := math.Abs(y1 - y2)
	if dx > dy {
		return dx
	}
	return dy
}

// EuclideanDistance is the straight-line distance between two points,
// used by combat range/collision checks.
func EuclideanDistance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x1-x2, y1-y2)
}

// SegmentPointDistance is the closest approach of point (px,py) to the
// segment (x1,y1)-(x2,y2). Projectile collision uses it so a fast shot
// can't step over a small hitbox between ticks.
func SegmentPointDistance(px, py, x1, y1, x2, y2 float64) float64 {
	dx, dy := x2-x1, y2-y1
	lenSq := dx*dx + dy*dy
	if lenSq < 1e-12 {
		return math.Hypot(px-x1, py-y1)
	}
	t := ((px-x1)*dx + (py-y1)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return math.Hypot(px-(x1+t*dx), py-(y1+t*dy))
}
