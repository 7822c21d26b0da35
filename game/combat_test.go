package game

import (
	"math"
	"testing"
)

func defaultStats() *CombatStats {
	return NewCombatStats(DeriveShipStats(1, StatModifiers{}))
}

func TestApplyDamageShieldAbsorbsFirst(t *testing.T) {
	c := defaultStats()
	killed := c.ApplyDamage(8, 1000)
	if killed {
		t.Fatal("8 damage should not kill a full-health target")
	}
	if c.Shield != 42 {
		t.Fatalf("expected shield 42, got %d", c.Shield)
	}
	if c.HP != 100 {
		t.Fatalf("HP should be untouched while shield holds, got %d", c.HP)
	}
}

func TestApplyDamageSpillsIntoHP(t *testing.T) {
	c := defaultStats()
	c.Shield = 5
	c.ApplyDamage(25, 1000)
	if c.Shield != 0 {
		t.Fatalf("expected shield 0, got %d", c.Shield)
	}
	if c.HP != 80 {
		t.Fatalf("expected hp 80, got %d", c.HP)
	}
}

func TestApplyDamageKillStampsDeathTime(t *testing.T) {
	c := defaultStats()
	c.Shield = 0
	c.HP = 1
	killed := c.ApplyDamage(100, 7777)
	if !killed {
		t.Fatal("expected kill")
	}
	if c.HP != 0 {
		t.Fatalf("hp should clamp to 0, got %d", c.HP)
	}
	if c.DeathTime != 7777 {
		t.Fatalf("death time not stamped: %d", c.DeathTime)
	}
}

func TestRegenWaitsForDelay(t *testing.T) {
	c := defaultStats()
	c.Shield = 10
	c.LastDamageTime = 1000

	c.TickRegen(1000 + ShieldRegenDelayMS - 1)
	if c.Shield != 10 {
		t.Fatalf("regen fired before delay elapsed, shield %d", c.Shield)
	}
	c.TickRegen(1000 + ShieldRegenDelayMS)
	if c.Shield != 12 {
		t.Fatalf("expected shield 12 after one regen tick, got %d", c.Shield)
	}
}

func TestRegenClampsToMax(t *testing.T) {
	c := defaultStats()
	c.Shield = c.MaxShield - 1
	c.TickRegen(ShieldRegenDelayMS * 2)
	if c.Shield != c.MaxShield {
		t.Fatalf("expected shield clamped to %d, got %d", c.MaxShield, c.Shield)
	}
}

func TestRespawnTimerBoundary(t *testing.T) {
	c := defaultStats()
	c.Shield = 0
	c.HP = 1
	c.ApplyDamage(100, 0)

	if c.CanRespawn(RespawnDelayMS - 1) {
		t.Fatal("respawn allowed one ms early")
	}
	if !c.CanRespawn(RespawnDelayMS) {
		t.Fatal("respawn refused at exactly the delay")
	}
	c.Respawn(DeriveShipStats(1, StatModifiers{}))
	if c.HP != 100 || c.Shield != 50 {
		t.Fatalf("respawn did not restore stats: hp=%d shield=%d", c.HP, c.Shield)
	}
}

func TestResolveHitTable(t *testing.T) {
	tests := []struct {
		name       string
		weapon     WeaponType
		distance   float64
		wantDmg    int
		wantDirect bool
		wantHit    bool
	}{
		{"laser direct", WeaponLaser, 1.0, 8, true, true},
		{"laser at hitbox edge", WeaponLaser, HitboxRadius, 8, true, true},
		{"laser just outside, no splash", WeaponLaser, HitboxRadius + 0.1, 0, false, false},
		{"railgun direct", WeaponRailgun, 0, 40, true, true},
		{"missile direct", WeaponMissile, 1.5, 25, true, true},
		{"missile splash midway", WeaponMissile, 18, 25 - int(math.Ceil(25*18/32.0)), false, true},
		{"missile splash floor of one", WeaponMissile, 31.9, 1, false, true},
		{"missile beyond splash", WeaponMissile, 32.1, 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dmg, direct, hit := ResolveHit(tt.weapon, tt.distance)
			if hit != tt.wantHit || direct != tt.wantDirect {
				t.Fatalf("hit=%v direct=%v, want hit=%v direct=%v", hit, direct, tt.wantHit, tt.wantDirect)
			}
			if hit && dmg != tt.wantDmg {
				t.Fatalf("dmg=%d, want %d", dmg, tt.wantDmg)
			}
		})
	}
}

func TestMissileSplashFalloffFormula(t *testing.T) {
	// damage = floor(base * (1 - d/(splash+hitbox))), floored at 1
	spec := Weapons[WeaponMissile]
	radius := spec.Splash + HitboxRadius
	d := 16.0
	want := int(math.Floor(float64(spec.Damage) * (1 - d/radius)))
	dmg, _, hit := ResolveHit(WeaponMissile, d)
	if !hit || dmg != want {
		t.Fatalf("dmg=%d hit=%v, want %d", dmg, hit, want)
	}
}

func TestProjectileExpiresAtMaxRange(t *testing.T) {
	p := NewProjectile(1, 1, WeaponLaser, 0, 0, 100, 0, 0)
	ticks := 0
	for p.Advance(TickIntervalSeconds) {
		ticks++
		if ticks > 1000 {
			t.Fatal("projectile never expired")
		}
	}
	spec := Weapons[WeaponLaser]
	expected := int(math.Ceil(spec.Range/(spec.ProjSpeed*TickIntervalSeconds))) - 1
	if ticks != expected {
		t.Fatalf("expired after %d live ticks, expected %d", ticks, expected)
	}
}

func TestProjectileDegenerateAimFallsBackToYaw(t *testing.T) {
	p := NewProjectile(1, 1, WeaponLaser, 10, 10, 10, 10, 90)
	if math.Abs(p.VX) > 1e-6 || p.VY <= 0 {
		t.Fatalf("expected projectile heading +Y from 90 deg yaw, got (%f,%f)", p.VX, p.VY)
	}
}

func TestProjectileTracksHitTargets(t *testing.T) {
	p := NewProjectile(1, 1, WeaponRailgun, 0, 0, 100, 0, 0)
	if p.AlreadyHit(2) {
		t.Fatal("fresh projectile reports a hit")
	}
	p.HitIDs[2] = struct{}{}
	if !p.AlreadyHit(2) {
		t.Fatal("hit not recorded")
	}
}

func TestWeaponTableAuthoritativeValues(t *testing.T) {
	laser := Weapons[WeaponLaser]
	if laser.Damage != 8 || laser.Range != 150 || laser.CooldownMS != 500 || laser.ProjSpeed != 800 || laser.Piercing {
		t.Fatalf("laser row drifted: %+v", laser)
	}
	railgun := Weapons[WeaponRailgun]
	if !railgun.Piercing || railgun.Damage != 40 {
		t.Fatalf("railgun row drifted: %+v", railgun)
	}
	missile := Weapons[WeaponMissile]
	if missile.Splash != 30 || missile.CooldownMS != 2000 {
		t.Fatalf("missile row drifted: %+v", missile)
	}
}
