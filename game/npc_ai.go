package game

import (
	"math"
	"math/rand"
)

// MoveToward steers (x,y) toward (tx,ty) at speed*dt, jittered by
// randomness (0..1 fraction of a perpendicular wobble).
func MoveToward(x, y, tx, ty, speed, dt, randomness float64, rng *rand.Rand) (nx, ny, vx, vy float64) {
	dx, dy := tx-x, ty-y
	dist := math.Hypot(dx, dy)
	if dist < 1e-6 {
		return x, y, 0, 0
	}
	dirX, dirY := dx/dist, dy/dist
	if randomness > 0 {
		wobble := (rng.Float64()*2 - 1) * randomness
		dirX += -dirY * wobble
		dirY += dirX * wobble
		norm := math.Hypot(dirX, dirY)
		if norm > 1e-6 {
			dirX /= norm
			dirY /= norm
		}
	}
	vx, vy = dirX*speed, dirY*speed
	return x + vx*dt, y + vy*dt, vx, vy
}

// MoveAway steers away from (tx,ty), the mirror of MoveToward.
func MoveAway(x, y, tx, ty, speed, dt float64) (nx, ny, vx, vy float64) {
	dx, dy := x-tx, y-ty
	dist := math.Hypot(dx, dy)
	if dist < 1e-6 {
		dx, dy, dist = 1, 0, 1
	}
	dirX, dirY := dx/dist, dy/dist
	vx, vy = dirX*speed, dirY*speed
	return x + vx*dt, y + vy*dt, vx, vy
}

// StrafePerpendicular circles a target at fraction*speed, used during Attack.
func StrafePerpendicular(x, y, tx, ty, speed, dt, fraction float64) (nx, ny, vx, vy float64) {
	dx, dy := tx-x, ty-y
	dist := math.Hypot(dx, dy)
	if dist < 1e-6 {
		return x, y, 0, 0
	}
	// perpendicular to the line toward the target
	perpX, perpY := -dy/dist, dx/dist
	vx, vy = perpX*speed*fraction, perpY*speed*fraction
	return x + vx*dt, y + vy*dt, vx, vy
}

// NPCWorld is the minimal view of the zone an NPC FSM tick needs: the
// list of candidate player targets and a lookup by id.
type NPCWorld struct {
	Players []*Player
	NowMS   int64
	DtMS    int64
	Rng     *rand.Rand
}

func nearestPlayer(n *NPC, players []*Player, within float64) (*Player, float64) {
	var best *Player
	bestDist := math.MaxFloat64
	for _, p := range players {
		if p.Disconnected || p.Combat.Dead() {
			continue
		}
		d := EuclideanDistance(n.PlayerState.X, n.PlayerState.Y, p.State.X, p.State.Y)
		if d <= within && d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, bestDist
}

func findTarget(n *NPC, players []*Player) *Player {
	if n.TargetID == nil {
		return nil
	}
	for _, p := range players {
		if p.ID == *n.TargetID {
			return p
		}
	}
	return nil
}

// AttackEvent is emitted when an NPC's attack tick fires.
type AttackEvent struct {
	NPCID    int64
	TargetID int64
	Damage   int
}

// TickNPC runs one FSM step for n against world, mutating its state,
// position and timers, and returns an AttackEvent when Attack fires.
func TickNPC(n *NPC, world NPCWorld) *AttackEvent {
	cfg := NPCConfigs[n.Type]
	dt := float64(world.DtMS) / 1000.0

	switch n.Type {
	case NPCPirate, NPCBountyHunter:
		return tickAggro(n, cfg, world, dt)
	case NPCTrader:
		tickTrader(n, cfg, world, dt)
	case NPCMiningDrone:
		tickMiningDrone(n, cfg, world)
	case NPCStationGuard:
		return tickStationGuard(n, cfg, world, dt)
	}
	return nil
}

func tickAggro(n *NPC, cfg NPCConfig, world NPCWorld, dt float64) *AttackEvent {
	hpFrac := n.HPFraction()
	if n.State != StateFlee && hpFrac <= cfg.FleeThreshold {
		n.State = StateFlee
	}

	switch n.State {
	case StateIdle:
		n.StateTimerMS += world.DtMS
		if n.StateTimerMS >= 2000 {
			n.State = StatePatrol
			n.StateTimerMS = 0
		}
	case StatePatrol:
		if target, _ := nearestPlayer(n, world.Players, cfg.AggroRange); target != nil {
			id := target.ID
			n.TargetID = &id
			n.State = StateChase
		}
	case StateChase:
		target := findTarget(n, world.Players)
		if target == nil {
			n.State = StatePatrol
			n.TargetID = nil
			break
		}
		d := EuclideanDistance(n.PlayerState.X, n.PlayerState.Y, target.State.X, target.State.Y)
		if d > cfg.AggroRange*1.5 {
			n.State = StatePatrol
			n.TargetID = nil
			break
		}
		if d <= cfg.AttackRange {
			n.State = StateAttack
			break
		}
		n.PlayerState.X, n.PlayerState.Y, n.PlayerState.VX, n.PlayerState.VY =
			MoveToward(n.PlayerState.X, n.PlayerState.Y, target.State.X, target.State.Y, cfg.MoveSpeed, dt, 0.05, world.Rng)
	case StateAttack:
		target := findTarget(n, world.Players)
		if target == nil {
			n.State = StatePatrol
			n.TargetID = nil
			break
		}
		d := EuclideanDistance(n.PlayerState.X, n.PlayerState.Y, target.State.X, target.State.Y)
		if d > cfg.AttackRange {
			n.State = StateChase
			break
		}
		n.PlayerState.X, n.PlayerState.Y, n.PlayerState.VX, n.PlayerState.VY =
			StrafePerpendicular(n.PlayerState.X, n.PlayerState.Y, target.State.X, target.State.Y, cfg.MoveSpeed, dt, 0.3)
		return tickAttackCooldown(n, cfg, world, target.ID)
	case StateFlee:
		if hpFrac > cfg.FleeThreshold*2 {
			n.State = StatePatrol
			n.TargetID = nil
			break
		}
		if target := findTarget(n, world.Players); target != nil {
			n.PlayerState.X, n.PlayerState.Y, n.PlayerState.VX, n.PlayerState.VY =
				MoveAway(n.PlayerState.X, n.PlayerState.Y, target.State.X, target.State.Y, cfg.MoveSpeed, dt)
		}
	}
	if n.CooldownTimerMS > 0 {
		n.CooldownTimerMS -= world.DtMS
	}
	return nil
}

func tickAttackCooldown(n *NPC, cfg NPCConfig, world NPCWorld, targetID int64) *AttackEvent {
	if n.CooldownTimerMS > 0 {
		n.CooldownTimerMS -= world.DtMS
		return nil
	}
	if cfg.AttackDamage <= 0 {
		return nil
	}
	n.CooldownTimerMS = cfg.AttackCooldown
	return &AttackEvent{NPCID: n.ID, TargetID: targetID, Damage: cfg.AttackDamage}
}

func tickTrader(n *NPC, cfg NPCConfig, world NPCWorld, dt float64) {
	hpFrac := n.HPFraction()
	switch n.State {
	case StateFlee:
		if _, d := nearestPlayer(n, world.Players, cfg.AggroRange); d == math.MaxFloat64 {
			n.State = StatePatrol
		}
	default:
		if hpFrac < cfg.FleeThreshold {
			n.State = StateFlee
			return
		}
		n.State = StatePatrol
		advanceWaypoint(n, cfg, dt)
	}
}

func tickMiningDrone(n *NPC, cfg NPCConfig, world NPCWorld) {
	switch n.State {
	case StateMine:
		n.StateTimerMS += world.DtMS
		if n.StateTimerMS >= cfg.MineDurationMS {
			n.State = StatePatrol
			n.StateTimerMS = 0
			n.WaypointIdx = (n.WaypointIdx + 1) % maxInt(1, len(n.Waypoints))
		}
	default:
		n.State = StatePatrol
		dt := float64(world.DtMS) / 1000.0
		if arrived := advanceWaypoint(n, cfg, dt); arrived {
			n.State = StateMine
			n.StateTimerMS = 0
			n.PlayerState.VX, n.PlayerState.VY = 0, 0
		}
	}
}

func tickStationGuard(n *NPC, cfg NPCConfig, world NPCWorld, dt float64) *AttackEvent {
	// Orbits its home point at OrbitRadius while in any state other than
	// Chase or Attack. Nothing in the server moves a guard into Chase or
	// Attack, so in play a guard only orbits and never engages anything;
	// the Chase/Attack branch below looks for its TargetID among
	// world.Players and does not consider other NPCs.
	if n.State != StateChase && n.State != StateAttack {
		angle := math.Atan2(n.PlayerState.Y-n.HomeY, n.PlayerState.X-n.HomeX) + dt*0.2
		n.PlayerState.X = n.HomeX + cfg.OrbitRadius*math.Cos(angle)
		n.PlayerState.Y = n.HomeY + cfg.OrbitRadius*math.Sin(angle)
		return nil
	}
	target := findTarget(n, world.Players)
	if target == nil {
		n.State = StateIdle
		return nil
	}
	d := EuclideanDistance(n.PlayerState.X, n.PlayerState.Y, target.State.X, target.State.Y)
	if d > cfg.AttackRange {
		n.State = StateChase
		n.PlayerState.X, n.PlayerState.Y, n.PlayerState.VX, n.PlayerState.VY =
			MoveToward(n.PlayerState.X, n.PlayerState.Y, target.State.X, target.State.Y, cfg.MoveSpeed, dt, 0, world.Rng)
		return nil
	}
	n.State = StateAttack
	return tickAttackCooldown(n, cfg, world, target.ID)
}

func advanceWaypoint(n *NPC, cfg NPCConfig, dt float64) (arrived bool) {
	if len(n.Waypoints) == 0 {
		return false
	}
	wp := n.Waypoints[n.WaypointIdx]
	d := EuclideanDistance(n.PlayerState.X, n.PlayerState.Y, wp.X, wp.Y)
	if d < 5 {
		n.WaypointIdx = (n.WaypointIdx + 1) % len(n.Waypoints)
		n.PlayerState.VX, n.PlayerState.VY = 0, 0
		return true
	}
	n.PlayerState.X, n.PlayerState.Y, n.PlayerState.VX, n.PlayerState.VY =
		MoveToward(n.PlayerState.X, n.PlayerState.Y, wp.X, wp.Y, cfg.MoveSpeed, dt, 0, nil)
	return false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
