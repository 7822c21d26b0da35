package game

// MaxInputBuffer bounds how many unprocessed inputs a player may queue;
// older entries are dropped once full.
const MaxInputBuffer = 10

// Input is one client movement sample. Forward/Right are clamped to
// [-1,1] before being rotated through the isometric basis.
type Input struct {
	Seq     int64
	Forward float64
	Right   float64
}

// InputBuffer is a small bounded FIFO. Pushing past capacity drops the
// oldest entry. Only the latest entry matters per tick; everything
// older is implicitly acknowledged.
type InputBuffer struct {
	items []Input
}

// Push enqueues an input, dropping the oldest if the buffer is full.
func (b *InputBuffer) Push(in Input) {
	if len(b.items) >= MaxInputBuffer {
		b.items = b.items[1:]
	}
	b.items = append(b.items, in)
}

// DrainLatest removes and returns the most recent input and clears the
// buffer, or returns false if nothing was queued.
func (b *InputBuffer) DrainLatest() (Input, bool) {
	if len(b.items) == 0 {
		return Input{}, false
	}
	latest := b.items[len(b.items)-1]
	b.items = b.items[:0]
	return latest, true
}

// PlayerState is position, velocity and facing.
type PlayerState struct {
	X, Y   float64
	VX, VY float64
	Yaw    float64 // degrees
}

// Player is a character: either human-controlled or, transiently,
// referenced by NPC systems that reuse combat stats. A Player appears
// in exactly one Zone's Players map at a time.
type Player struct {
	ID                  int64
	AccountID           int64
	Name                string
	State               PlayerState
	ZoneID              string
	LastProcessedSeq    int64
	Inputs              InputBuffer
	LastActivity        int64 // server-time ms
	Disconnected        bool
	DisconnectTime      int64 // server-time ms, valid iff Disconnected
	Inventory           *Inventory
	MiningNodeID        *int64
	IsDocked            bool
	DockedStationZoneID *string

	Level        int
	XP           float64
	SkillPoints  int
	Combat       *CombatStats
	Equipment    *EquipmentSet
	Crafting     *CraftingQueue
	Quests       *QuestTracker
}

// NewPlayer constructs a fresh character at level 1 with default stats.
func NewPlayer(id int64, name string, zoneID string, x, y float64) *Player {
	p := &Player{
		ID:        id,
		Name:      name,
		ZoneID:    zoneID,
		State:     PlayerState{X: x, Y: y},
		Inventory: NewInventory(),
		Level:     1,
		Equipment: NewEquipmentSet(),
		Crafting:  NewCraftingQueue(),
		Quests:    NewQuestTracker(),
	}
	p.Combat = NewCombatStats(DeriveShipStats(p.Level, p.Equipment.Aggregate()))
	return p
}

// ShipStats returns the player's current derived stats from level and
// equipped modifiers.
func (p *Player) ShipStats() ShipStats {
	return DeriveShipStats(p.Level, p.Equipment.Aggregate())
}

// StartMining records the node a player is extracting from. A player
// may mine at most one node at a time.
func (p *Player) StartMining(nodeID int64) {
	id := nodeID
	p.MiningNodeID = &id
}

// StopMining clears the mining attachment.
func (p *Player) StopMining() {
	p.MiningNodeID = nil
}

// Dock attaches the player to a station zone, zeroing velocity and
// blocking further input until Undock.
func (p *Player) Dock(stationZoneID string) {
	p.IsDocked = true
	z := stationZoneID
	p.DockedStationZoneID = &z
	p.State.VX = 0
	p.State.VY = 0
}

// Undock releases the player from a station.
func (p *Player) Undock() {
	p.IsDocked = false
	p.DockedStationZoneID = nil
}
