package server

import "github.com/odyssey-game/server/game"

// defaultQuestDB is the authoritative quest table. A real deployment
// would load this from configuration; unlike the NPC spawn tables,
// which come from the zone configuration, it is inlined here since
// quest content doesn't vary by zone.
func defaultQuestDB() map[string]game.QuestDefinition {
	defs := []game.QuestDefinition{
		{
			ID:            "first_ore",
			LevelRequired: 1,
			Objectives: []game.QuestObjective{
				{Type: "mine", Target: "iron", Required: 20},
			},
			Rewards: map[string]int{"omen": 50, "xp": 25},
		},
		{
			ID:            "clear_the_belt",
			LevelRequired: 2,
			Prerequisites: []string{"first_ore"},
			Objectives: []game.QuestObjective{
				{Type: "kill", Target: game.TargetPirateAny, Required: 5},
			},
			Rewards: map[string]int{"omen": 150, "xp": 100},
		},
		{
			ID:            "station_contract",
			LevelRequired: 3,
			Prerequisites: []string{"clear_the_belt"},
			Objectives: []game.QuestObjective{
				{Type: "craft", Target: game.TargetUniqueItems, Required: 3},
			},
			Rewards: map[string]int{"omen": 300, "xp": 150},
		},
		{
			ID:            "bounty_work",
			LevelRequired: 5,
			Repeatable:    true,
			Objectives: []game.QuestObjective{
				{Type: "kill", Target: "bounty_hunter", Required: 1},
			},
			Rewards: map[string]int{"omen": 75, "xp": 40},
		},
	}
	out := make(map[string]game.QuestDefinition, len(defs))
	for _, d := range defs {
		out[d.ID] = d
	}
	return out
}

// defaultRecipes is the authoritative crafting recipe table.
func defaultRecipes() map[string]game.Recipe {
	recipes := []game.Recipe{
		{
			ID:          "scrap_plate",
			Inputs:      map[string]int{"iron": 10},
			OutputItem:  "scrap_plate",
			OutputQty:   1,
			CraftTimeMS: 5000,
		},
		{
			ID:          "titanium_hull",
			Inputs:      map[string]int{"titanium": 15, "scrap_plate": 2},
			OutputItem:  "titanium_hull",
			OutputQty:   1,
			CraftTimeMS: 20000,
		},
		{
			ID:          "armor_plating",
			Inputs:      map[string]int{"scrap_plate": 5},
			OutputItem:  "armor_plating",
			OutputQty:   1,
			CraftTimeMS: 10000,
		},
		{
			ID:          "shield_cell",
			Inputs:      map[string]int{"titanium": 8, "drone_parts": 2},
			OutputItem:  "shield_cell",
			OutputQty:   1,
			CraftTimeMS: 15000,
		},
	}
	out := make(map[string]game.Recipe, len(recipes))
	for _, r := range recipes {
		out[r.ID] = r
	}
	return out
}

// equipmentCatalog maps every equippable item key to its slot and stat
// modifiers. Weapons also appear in weaponForItem so firing can resolve
// a weapon spec for a given equipped slot.
func equipmentCatalog() map[string]game.EquippableItem {
	items := []game.EquippableItem{
		{ItemKey: "laser_mk1", Slot: game.SlotWeapon1},
		{ItemKey: "laser_mk2", Slot: game.SlotWeapon1, Modifiers: game.StatModifiers{DamageBonus: 0.1}},
		{ItemKey: "missile_mk1", Slot: game.SlotWeapon2},
		{ItemKey: "railgun_mk1", Slot: game.SlotWeapon2, Modifiers: game.StatModifiers{DamageBonus: 0.05}},
		{ItemKey: "armor_plating", Slot: game.SlotArmor, Modifiers: game.StatModifiers{ArmorBonus: 25}},
		{ItemKey: "titanium_hull", Slot: game.SlotArmor, Modifiers: game.StatModifiers{ArmorBonus: 60}},
		{ItemKey: "shield_cell", Slot: game.SlotShield, Modifiers: game.StatModifiers{ShieldBonus: 0.2}},
		{ItemKey: "engine_booster", Slot: game.SlotEngine, Modifiers: game.StatModifiers{SpeedBonus: 0.15}},
		{ItemKey: "mining_laser_mk2", Slot: game.SlotMiningLaser, Modifiers: game.StatModifiers{MiningBonus: 0.3}},
		{ItemKey: "cargo_pod", Slot: game.SlotUtility, Modifiers: game.StatModifiers{CargoBonus: 0.25}},
	}
	out := make(map[string]game.EquippableItem, len(items))
	for _, it := range items {
		out[it.ItemKey] = it
	}
	return out
}

// weaponForItem maps an equipped weapon item key to the weapon table
// row it fires with.
func weaponForItem() map[string]game.WeaponType {
	return map[string]game.WeaponType{
		"laser_mk1":   game.WeaponLaser,
		"laser_mk2":   game.WeaponLaser,
		"missile_mk1": game.WeaponMissile,
		"railgun_mk1": game.WeaponRailgun,
	}
}

var slotNames = map[game.Slot]string{
	game.SlotWeapon1:     "weapon1",
	game.SlotWeapon2:     "weapon2",
	game.SlotShield:      "shield",
	game.SlotEngine:      "engine",
	game.SlotMiningLaser: "mining_laser",
	game.SlotArmor:       "armor",
	game.SlotUtility:     "utility",
}

func slotToString(slot game.Slot) string {
	return slotNames[slot]
}

func slotFromString(s string) (game.Slot, bool) {
	for slot, name := range slotNames {
		if name == s {
			return slot, true
		}
	}
	return 0, false
}
