package game

// Slot identifies one equipment slot. There are exactly 7, a closed set.
type Slot int

const (
	SlotWeapon1 Slot = iota
	SlotWeapon2
	SlotShield
	SlotEngine
	SlotMiningLaser
	SlotArmor
	SlotUtility
	slotCount
)

// StatModifiers are the percentage bonuses (and one flat bonus) an
// equipped item contributes. Percentages are summed additively across
// occupied slots, not compounded.
type StatModifiers struct {
	ArmorBonus  float64 // flat HP, not a percentage
	ShieldBonus float64 // percentage, e.g. 0.1 = +10%
	SpeedBonus  float64
	MiningBonus float64
	CargoBonus  float64
	DamageBonus float64
}

// Add returns the element-wise sum of two modifier sets.
func (m StatModifiers) Add(o StatModifiers) StatModifiers {
	return StatModifiers{
		ArmorBonus:  m.ArmorBonus + o.ArmorBonus,
		ShieldBonus: m.ShieldBonus + o.ShieldBonus,
		SpeedBonus:  m.SpeedBonus + o.SpeedBonus,
		MiningBonus: m.MiningBonus + o.MiningBonus,
		CargoBonus:  m.CargoBonus + o.CargoBonus,
		DamageBonus: m.DamageBonus + o.DamageBonus,
	}
}

// EquippableItem is an item_key that can occupy exactly one slot.
type EquippableItem struct {
	ItemKey   string
	Slot      Slot
	Modifiers StatModifiers
}

// EquipmentSet holds one item per slot.
type EquipmentSet struct {
	Slots map[Slot]*EquippableItem
}

// NewEquipmentSet returns an empty equipment set.
func NewEquipmentSet() *EquipmentSet {
	return &EquipmentSet{Slots: make(map[Slot]*EquippableItem)}
}

// Equip swaps item into slot, returning the previously equipped item
// (nil if the slot was empty) so the caller can return it to inventory.
func (e *EquipmentSet) Equip(item *EquippableItem) *EquippableItem {
	prev := e.Slots[item.Slot]
	e.Slots[item.Slot] = item
	return prev
}

// Unequip removes and returns whatever occupies slot, or nil.
func (e *EquipmentSet) Unequip(slot Slot) *EquippableItem {
	prev := e.Slots[slot]
	delete(e.Slots, slot)
	return prev
}

// Aggregate sums StatModifiers over every occupied slot.
func (e *EquipmentSet) Aggregate() StatModifiers {
	var total StatModifiers
	for _, item := range e.Slots {
		if item != nil {
			total = total.Add(item.Modifiers)
		}
	}
	return total
}

// WeaponSlots returns the equipped items in Weapon1/Weapon2, in order,
// skipping empty slots. Used by firing validation (slot index bound).
func (e *EquipmentSet) WeaponSlots() []*EquippableItem {
	var out []*EquippableItem
	if w := e.Slots[SlotWeapon1]; w != nil {
		out = append(out, w)
	}
	if w := e.Slots[SlotWeapon2]; w != nil {
		out = append(out, w)
	}
	return out
}
