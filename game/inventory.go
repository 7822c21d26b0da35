package game

import "fmt"

// DefaultCapacity is the default maximum sum of item counts an
// inventory may hold.
const DefaultCapacity = 200

// Inventory holds item counts and a scalar currency balance. The sum
// of counts never exceeds Capacity and OmenBalance never goes negative.
type Inventory struct {
	Capacity    int
	Counts      map[string]int
	OmenBalance float64
}

// NewInventory returns an empty inventory at the default capacity.
func NewInventory() *Inventory {
	return &Inventory{
		Capacity: DefaultCapacity,
		Counts:   make(map[string]int),
	}
}

// Total returns the sum of all item counts.
func (inv *Inventory) Total() int {
	sum := 0
	for _, n := range inv.Counts {
		sum += n
	}
	return sum
}

// HeadRoom returns how many more items can be added before Capacity is hit.
func (inv *Inventory) HeadRoom() int {
	room := inv.Capacity - inv.Total()
	if room < 0 {
		return 0
	}
	return room
}

// Add increases item by amount, failing if it would exceed capacity.
// amount must be positive.
func (inv *Inventory) Add(item string, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("invalid amount %d", amount)
	}
	if amount > inv.HeadRoom() {
		return fmt.Errorf("inventory full")
	}
	inv.Counts[item] += amount
	return nil
}

// AddUpTo adds as much of amount as head-room allows, returning the
// amount actually added. Used by mining and loot, which silently cap.
func (inv *Inventory) AddUpTo(item string, amount int) int {
	room := inv.HeadRoom()
	if amount > room {
		amount = room
	}
	if amount <= 0 {
		return 0
	}
	inv.Counts[item] += amount
	return amount
}

// Remove decreases item by amount, erasing the key if it reaches zero.
// Fails without mutation if the item doesn't have enough.
func (inv *Inventory) Remove(item string, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("invalid amount %d", amount)
	}
	have := inv.Counts[item]
	if have < amount {
		return fmt.Errorf("insufficient %s: have %d, need %d", item, have, amount)
	}
	remaining := have - amount
	if remaining == 0 {
		delete(inv.Counts, item)
	} else {
		inv.Counts[item] = remaining
	}
	return nil
}

// Has reports whether the inventory holds at least amount of item.
func (inv *Inventory) Has(item string, amount int) bool {
	return inv.Counts[item] >= amount
}

// CreditOmen adds amount (must be >= 0) to the balance.
func (inv *Inventory) CreditOmen(amount float64) {
	if amount < 0 {
		return
	}
	inv.OmenBalance += amount
}

// DebitOmen removes amount from the balance, failing without mutation
// if it would go negative.
func (inv *Inventory) DebitOmen(amount float64) error {
	if amount < 0 {
		return fmt.Errorf("invalid amount %f", amount)
	}
	if inv.OmenBalance < amount {
		return fmt.Errorf("insufficient omen: have %.2f, need %.2f", inv.OmenBalance, amount)
	}
	inv.OmenBalance -= amount
	return nil
}
