package game

import "math"

// MaxLevel caps character progression; XP is zeroed once reached.
const MaxLevel = 50

// XPForKill, XPPerMiningUnit and XPPerCraftJob are the flat per-event
// XP awards for mining, crafting and kills.
const (
	XPPerMiningUnit = 1.0
	XPPerCraftJob   = 10.0
	XPForKill       = 50.0
)

// XPToNext returns the XP required to advance from level to level+1.
func XPToNext(level int) float64 {
	l := float64(level)
	return 100*l + 50*l*l
}

// ShipStats are the derived combat/movement capabilities for a level
// and an aggregate equipment modifier set.
type ShipStats struct {
	MaxHP        int
	MaxShield    int
	MoveSpeed    int
	MiningSpeed  float64
	Cargo        int
	Damage       float64
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// DeriveShipStats computes ShipStats from character level and the sum
// of currently equipped modifiers.
func DeriveShipStats(level int, mods StatModifiers) ShipStats {
	lvlMul := 1 + (float64(level)-1)*0.02
	return ShipStats{
		MaxHP:       int(math.Round(100*lvlMul + mods.ArmorBonus)),
		MaxShield:   int(math.Round(50 * lvlMul * (1 + mods.ShieldBonus))),
		MoveSpeed:   int(math.Round(600 * lvlMul * (1 + mods.SpeedBonus))),
		MiningSpeed: round2(10 * lvlMul * (1 + mods.MiningBonus)),
		Cargo:       int(math.Round(200 * lvlMul * (1 + mods.CargoBonus))),
		Damage:      round2(10 * lvlMul * (1 + mods.DamageBonus)),
	}
}

// LevelUpResult reports one level crossing, emitted once per crossing
// when an XP award causes multiple level-ups at once.
type LevelUpResult struct {
	NewLevel    int
	SkillPoints int
}

// AwardXP adds xp to the running total, applying as many level-ups as
// the award covers. Returns one LevelUpResult per crossing, in order.
// At MaxLevel, XP is zeroed and no further level-ups occur.
func AwardXP(level int, xp, award float64) (newLevel int, newXP float64, ups []LevelUpResult) {
	newLevel = level
	newXP = xp + award
	if newLevel >= MaxLevel {
		return newLevel, 0, nil
	}
	for newLevel < MaxLevel {
		need := XPToNext(newLevel)
		if newXP < need {
			break
		}
		newXP -= need
		newLevel++
		ups = append(ups, LevelUpResult{NewLevel: newLevel, SkillPoints: 1})
		if newLevel >= MaxLevel {
			newXP = 0
			break
		}
	}
	return newLevel, newXP, ups
}
