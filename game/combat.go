package game

import "math"

// ShieldRegenRate and ShieldRegenDelayMS back the shield regen rule:
// 2 points/tick (40/s at 20Hz) once 5s have passed without taking
// damage.
const (
	ShieldRegenRate    = 2.0
	ShieldRegenDelayMS = 5000
	RespawnDelayMS     = 5000
)

// CombatStats tracks HP/shield for any damageable entity (player or NPC).
type CombatStats struct {
	MaxHP          int
	HP             int
	MaxShield      int
	Shield         int
	RegenRate      float64
	RegenDelayMS   int64
	LastDamageTime int64 // server-time ms
	DeathTime      int64 // server-time ms, valid iff HP == 0
}

// NewCombatStats builds full-health stats from derived ship stats.
func NewCombatStats(ship ShipStats) *CombatStats {
	return &CombatStats{
		MaxHP:        ship.MaxHP,
		HP:           ship.MaxHP,
		MaxShield:    ship.MaxShield,
		Shield:       ship.MaxShield,
		RegenRate:    ShieldRegenRate,
		RegenDelayMS: ShieldRegenDelayMS,
	}
}

// Dead reports whether HP has reached zero.
func (c *CombatStats) Dead() bool {
	return c.HP <= 0
}

// ApplyDamage absorbs dmg into shield first, HP second, stamping
// LastDamageTime and, on a kill, DeathTime. Returns true if this call
// killed the target (HP transitioned to 0).
func (c *CombatStats) ApplyDamage(dmg int, nowMS int64) (killed bool) {
	if dmg <= 0 || c.Dead() {
		return false
	}
	c.LastDamageTime = nowMS
	remaining := dmg
	if c.Shield > 0 {
		absorbed := remaining
		if absorbed > c.Shield {
			absorbed = c.Shield
		}
		c.Shield -= absorbed
		remaining -= absorbed
	}
	if remaining > 0 {
		c.HP -= remaining
		if c.HP <= 0 {
			c.HP = 0
			c.DeathTime = nowMS
			return true
		}
	}
	return false
}

// TickRegen advances shield regeneration by one tick if the entity is
// alive and has taken no damage for RegenDelayMS.
func (c *CombatStats) TickRegen(nowMS int64) {
	if c.Dead() || c.Shield >= c.MaxShield {
		return
	}
	if nowMS-c.LastDamageTime < c.RegenDelayMS {
		return
	}
	c.Shield += int(c.RegenRate)
	if c.Shield > c.MaxShield {
		c.Shield = c.MaxShield
	}
}

// CanRespawn reports whether enough time has passed since death.
func (c *CombatStats) CanRespawn(nowMS int64) bool {
	return c.Dead() && nowMS-c.DeathTime >= RespawnDelayMS
}

// Respawn restores full stats derived from the given ship stats.
func (c *CombatStats) Respawn(ship ShipStats) {
	c.MaxHP = ship.MaxHP
	c.HP = ship.MaxHP
	c.MaxShield = ship.MaxShield
	c.Shield = ship.MaxShield
	c.DeathTime = 0
	c.LastDamageTime = 0
}

// WeaponType is a closed enum over the static weapon configuration table.
type WeaponType int

const (
	WeaponLaser WeaponType = iota
	WeaponMissile
	WeaponRailgun
)

// WeaponSpec is one row of the authoritative weapon table.
type WeaponSpec struct {
	Name         string
	Damage       int
	Range        float64
	CooldownMS   int64
	ProjSpeed    float64
	Splash       float64
	Piercing     bool
}

// Weapons is the authoritative, closed weapon configuration table.
var Weapons = map[WeaponType]WeaponSpec{
	WeaponLaser:   {Name: "laser", Damage: 8, Range: 150, CooldownMS: 500, ProjSpeed: 800, Splash: 0, Piercing: false},
	WeaponMissile: {Name: "missile", Damage: 25, Range: 300, CooldownMS: 2000, ProjSpeed: 400, Splash: 30, Piercing: false},
	WeaponRailgun: {Name: "railgun", Damage: 40, Range: 400, CooldownMS: 4000, ProjSpeed: 1200, Splash: 0, Piercing: true},
}

// HitboxRadius is the direct-hit collision radius shared by all weapons.
const HitboxRadius = 2.0

// Projectile is a live shot advancing through a zone each tick.
type Projectile struct {
	ID                int64
	OwnerID           int64
	Weapon            WeaponType
	X, Y              float64
	VX, VY            float64
	MaxRange          float64
	DistanceTraveled  float64
	HitIDs            map[int64]struct{}
}

// NewProjectile spawns a projectile at (x,y) heading toward (aimX,aimY).
// If the aim point coincides with the origin (degenerate aim), it
// falls back to headingDeg (the firer's yaw), in degrees.
func NewProjectile(id, ownerID int64, weapon WeaponType, x, y, aimX, aimY, headingDeg float64) *Projectile {
	spec := Weapons[weapon]
	dx := aimX - x
	dy := aimY - y
	dist := math.Hypot(dx, dy)
	var dirX, dirY float64
	if dist > 1e-6 {
		dirX, dirY = dx/dist, dy/dist
	} else {
		rad := headingDeg * math.Pi / 180
		dirX, dirY = math.Cos(rad), math.Sin(rad)
	}
	return &Projectile{
		ID:       id,
		OwnerID:  ownerID,
		Weapon:   weapon,
		X:        x,
		Y:        y,
		VX:       dirX * spec.ProjSpeed,
		VY:       dirY * spec.ProjSpeed,
		MaxRange: spec.Range,
		HitIDs:   make(map[int64]struct{}),
	}
}

// Advance moves the projectile by its velocity for dtSeconds and
// accumulates distance traveled. Returns false once max range is reached.
func (p *Projectile) Advance(dtSeconds float64) (alive bool) {
	p.X += p.VX * dtSeconds
	p.Y += p.VY * dtSeconds
	p.DistanceTraveled += math.Hypot(p.VX*dtSeconds, p.VY*dtSeconds)
	return p.DistanceTraveled < p.MaxRange
}

// AlreadyHit reports whether targetID has already been struck by this projectile.
func (p *Projectile) AlreadyHit(targetID int64) bool {
	_, ok := p.HitIDs[targetID]
	return ok
}

// HitResult describes the damage resolution for one target in one tick.
type HitResult struct {
	TargetID   int64
	Damage     int
	DirectHit  bool
	Consume    bool
}

// ResolveHit computes the damage a projectile deals to a target at
// distance d from the projectile, given the projectile's weapon spec.
// ok is false if the target is out of both the direct-hit and splash radii.
func ResolveHit(weapon WeaponType, d float64) (dmg int, directHit bool, ok bool) {
	spec := Weapons[weapon]
	if d <= HitboxRadius {
		return spec.Damage, true, true
	}
	if spec.Splash > 0 {
		splashRadius := spec.Splash + HitboxRadius
		if d <= splashRadius {
			falloff := 1 - d/splashRadius
			dmg := int(math.Floor(float64(spec.Damage) * falloff))
			if dmg < 1 {
				dmg = 1
			}
			return dmg, false, true
		}
	}
	return 0, false, false
}
