package game

import "testing"

func TestXPToNextCurve(t *testing.T) {
	tests := []struct {
		level int
		want  float64
	}{
		{1, 150},
		{2, 400},
		{5, 1750},
		{10, 6000},
	}
	for _, tt := range tests {
		if got := XPToNext(tt.level); got != tt.want {
			t.Fatalf("XPToNext(%d) = %f, want %f", tt.level, got, tt.want)
		}
	}
}

func TestAwardXPSingleLevelUp(t *testing.T) {
	level, xp, ups := AwardXP(1, 100, 60)
	if level != 2 {
		t.Fatalf("expected level 2, got %d", level)
	}
	if xp != 10 {
		t.Fatalf("leftover xp should carry: got %f", xp)
	}
	if len(ups) != 1 || ups[0].NewLevel != 2 || ups[0].SkillPoints != 1 {
		t.Fatalf("unexpected level-up results: %+v", ups)
	}
}

func TestAwardXPMultipleLevelUps(t *testing.T) {
	// 150 (1->2) + 400 (2->3) = 550; award 600 from zero.
	level, xp, ups := AwardXP(1, 0, 600)
	if level != 3 {
		t.Fatalf("expected level 3, got %d", level)
	}
	if xp != 50 {
		t.Fatalf("expected 50 leftover, got %f", xp)
	}
	if len(ups) != 2 {
		t.Fatalf("expected 2 level-up notifications, got %d", len(ups))
	}
}

func TestAwardXPAtMaxLevelZeroesXP(t *testing.T) {
	level, xp, ups := AwardXP(MaxLevel, 123, 1000)
	if level != MaxLevel || xp != 0 || ups != nil {
		t.Fatalf("max level award mishandled: level=%d xp=%f ups=%v", level, xp, ups)
	}
}

func TestDeriveShipStatsBaseline(t *testing.T) {
	stats := DeriveShipStats(1, StatModifiers{})
	if stats.MaxHP != 100 || stats.MaxShield != 50 || stats.MoveSpeed != 600 {
		t.Fatalf("level-1 baseline drifted: %+v", stats)
	}
	if stats.MiningSpeed != 10 || stats.Cargo != 200 || stats.Damage != 10 {
		t.Fatalf("level-1 baseline drifted: %+v", stats)
	}
}

func TestDeriveShipStatsWithModifiers(t *testing.T) {
	mods := StatModifiers{ArmorBonus: 25, ShieldBonus: 0.2, SpeedBonus: 0.1}
	stats := DeriveShipStats(2, mods)
	// lvl_mul = 1.02
	if stats.MaxHP != 127 { // round(102 + 25)
		t.Fatalf("MaxHP = %d, want 127", stats.MaxHP)
	}
	if stats.MaxShield != 61 { // round(51 * 1.2) = round(61.2)
		t.Fatalf("MaxShield = %d, want 61", stats.MaxShield)
	}
	if stats.MoveSpeed != 673 { // round(612 * 1.1) = round(673.2)
		t.Fatalf("MoveSpeed = %d, want 673", stats.MoveSpeed)
	}
}
