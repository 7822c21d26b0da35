package game

import "math/rand"

// ZoneType distinguishes the three kinds of region; only Space allows PvP.
type ZoneType int

const (
	ZoneSpace ZoneType = iota
	ZoneStation
	ZonePlanet
)

// Bounds is an axis-aligned rectangle a zone's content is confined to.
type Bounds struct {
	XMin, XMax, YMin, YMax float64
}

// Contains reports whether (x,y) lies within the bounds, inclusive.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.XMin && x <= b.XMax && y >= b.YMin && y <= b.YMax
}

// RandomPoint returns a uniformly random point strictly inside the bounds.
func (b Bounds) RandomPoint(rng *rand.Rand) (float64, float64) {
	x := b.XMin + rng.Float64()*(b.XMax-b.XMin)
	y := b.YMin + rng.Float64()*(b.YMax-b.YMin)
	return x, y
}

// Zone is a bounded region holding its own player and resource-node
// sets plus a set of connected neighbor zones. A Player appears in
// exactly one zone's Players map at any time.
type Zone struct {
	ID          string
	Name        string
	Type        ZoneType
	Bounds      Bounds
	Connections []string // ordered; first entry is the default boundary-handoff target
	Players     map[int64]*Player
	Nodes       map[int64]*ResourceNode
	DockPoint   *struct{ X, Y float64 } // station zones only
}

// NewZone constructs an empty zone.
func NewZone(id, name string, zoneType ZoneType, bounds Bounds, connections []string) *Zone {
	return &Zone{
		ID:          id,
		Name:        name,
		Type:        zoneType,
		Bounds:      bounds,
		Connections: connections,
		Players:     make(map[int64]*Player),
		Nodes:       make(map[int64]*ResourceNode),
	}
}

// AllowsPvP reports whether firing and damage are permitted in this zone.
func (z *Zone) AllowsPvP() bool {
	return z.Type == ZoneSpace
}

// HasConnection reports whether target is a declared neighbor.
func (z *Zone) HasConnection(target string) bool {
	for _, c := range z.Connections {
		if c == target {
			return true
		}
	}
	return false
}

// DefaultTransferTarget returns the zone id a player is bounced to on
// leaving bounds, and false if the zone has no declared connections.
func (z *Zone) DefaultTransferTarget() (string, bool) {
	if len(z.Connections) == 0 {
		return "", false
	}
	return z.Connections[0], true
}

// AddPlayer inserts p into the zone's player set.
func (z *Zone) AddPlayer(p *Player) {
	z.Players[p.ID] = p
	p.ZoneID = z.ID
}

// RemovePlayer removes a player by id from the zone's player set.
func (z *Zone) RemovePlayer(id int64) {
	delete(z.Players, id)
}

// AddNode inserts a resource node into the zone.
func (z *Zone) AddNode(n *ResourceNode) {
	z.Nodes[n.ID] = n
}

// ConnectedPlayers returns the players currently attached and not
// marked disconnected, for broadcast fan-out.
func (z *Zone) ConnectedPlayers() []*Player {
	out := make([]*Player, 0, len(z.Players))
	for _, p := range z.Players {
		if !p.Disconnected {
			out = append(out, p)
		}
	}
	return out
}
