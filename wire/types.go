// Package wire implements the binary frame format every connection
// actor and the game loop exchange: one type byte followed by a
// MessagePack-encoded named map.
package wire

// Type is the one-byte message type id that opens every frame.
type Type byte

// Type ids. Grouped the way the wire table groups them;
// values are authoritative and must not be renumbered.
const (
	TypeHello   Type = 0x01
	TypeWelcome Type = 0x02
	TypeInput   Type = 0x03
	TypeWorldState Type = 0x04
	TypeJoin    Type = 0x05
	TypeLeft    Type = 0x06
	TypePing    Type = 0x07
	TypePong    Type = 0x08
	TypeStartMining Type = 0x09
	TypeMiningUpdate Type = 0x0A
	TypeNodeDepleted Type = 0x0B
	TypeStopMining Type = 0x0C
	TypeZoneInfo Type = 0x0D
	TypeZoneTransfer Type = 0x0E

	TypeCraftStart    Type = 0x10
	TypeCraftStatus   Type = 0x11
	TypeCraftComplete Type = 0x12
	TypeCraftFailed   Type = 0x13

	TypeMarketPlace    Type = 0x14
	TypeMarketCancel   Type = 0x15
	TypeMarketOrderUpdate Type = 0x16
	TypeMarketTrade    Type = 0x17
	TypeMarketBook     Type = 0x18
	TypeMarketReqBook  Type = 0x19

	TypeFire        Type = 0x20
	TypeHitConfirm  Type = 0x21
	TypeDamaged     Type = 0x22
	TypeDeath       Type = 0x23
	TypeRespawn     Type = 0x24
	TypeRespawnRequest Type = 0x25
	TypeCombatState Type = 0x26

	TypeEquip      Type = 0x30
	TypeUnequip    Type = 0x31
	TypeEquipUpdate Type = 0x32
	TypeShipStats  Type = 0x33
	TypeLevelUp    Type = 0x34

	TypeNPCSpawn Type = 0x38
	TypeNPCDeath Type = 0x39

	TypeQuestList      Type = 0x40
	TypeQuestAccept    Type = 0x41
	TypeQuestProgress  Type = 0x42
	TypeQuestComplete  Type = 0x43
	TypeQuestAbandon   Type = 0x44
	TypeQuestAvailable Type = 0x45

	TypeLogin    Type = 0x50
	TypeRegister Type = 0x51
	TypeAuthSuccess Type = 0x52
	TypeAuthFailed  Type = 0x53

	TypeDockRequest   Type = 0x60
	TypeDockOK        Type = 0x61
	TypeUndockRequest Type = 0x62
	TypeUndockOK      Type = 0x63
	TypeDockFail      Type = 0x64
)

// Disconnected is the internal sentinel frame a reader actor delivers
// to the loop in place of a real frame when its transport closes. It
// is never sent on the wire; [0xFF] is reserved for it so the frame
// byte space stays disjoint from real type ids.
const Disconnected Type = 0xFF
