// Package server is the glue: connection actors, the single
// authoritative tick loop, per-type-id dispatch and broadcast fan-out.
// It owns every game.Zone, the market.Market, and the store.Store —
// nothing outside this package mutates world state.
package server

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/odyssey-game/server/auth"
	"github.com/odyssey-game/server/config"
	"github.com/odyssey-game/server/game"
	"github.com/odyssey-game/server/market"
	"github.com/odyssey-game/server/store"
	"github.com/odyssey-game/server/wire"
)

// DisconnectGraceMS is how long a disconnected player's record lingers
// before being removed from the zone.
const DisconnectGraceMS = 60_000

// PersistIntervalTicks is how many ticks elapse between periodic saves
// of every connected player (60s at the 50ms tick rate).
const PersistIntervalTicks = 60_000 / game.TickIntervalMS

// npcIDBase keeps NPC ids disjoint from player ids, so a projectile's
// hit set and DAMAGED target ids never alias across the two spaces.
const npcIDBase = 1_000_000

// inboundMsg is one raw frame arriving from a connection's reader actor.
type inboundMsg struct {
	connID int64
	raw    []byte
}

// Server is the single authoritative owner of all world state.
type Server struct {
	log *zap.SugaredLogger

	store         *store.Store
	authSvc       *auth.Service
	market        *market.Market
	questDB       map[string]game.QuestDefinition
	recipes       map[string]game.Recipe
	equipCatalog  map[string]game.EquippableItem
	weaponByItem  map[string]game.WeaponType
	defaultZoneID string

	connIDs   *game.IDAllocator
	playerIDs *game.IDAllocator
	nodeIDs   *game.IDAllocator
	npcIDs    *game.IDAllocator
	projIDs   *game.IDAllocator
	orderIDs  *game.IDAllocator

	register chan *connection
	inbound  chan inboundMsg

	rng *rand.Rand

	startedAt time.Time
	tick      int64

	mu          sync.Mutex // never locked; the fields below are touched only by Run's goroutine
	zones       map[string]*game.Zone
	spawners    map[string]*game.ZoneSpawner
	npcs        map[int64]*game.NPC
	projectiles map[string][]*game.Projectile // keyed by zone id

	// lastFire is the per-player, per-weapon-slot last-fire timestamp
	// side table; auxiliary per-player state lives in loop-owned maps
	// keyed by player_id rather than on the Player itself.
	lastFire map[int64]map[int]int64

	conns          map[int64]*connection // conn_id -> connection
	playerConn     map[int64]int64       // player_id -> conn_id
	connPlayer     map[int64]int64       // conn_id -> player_id
	playerZone     map[int64]string      // player_id -> zone_id, mirrors zone membership for O(1) lookup
	playerAccount  map[int64]int64       // player_id -> account_id, 0 for guests
	accountPlayer  map[int64]int64       // account_id -> player_id, for reconnect/reattach
	pendingAccount map[int64]int64       // conn_id -> authenticated account_id, cleared once HELLO joins the world

	done chan struct{}
}

// New constructs a Server from configuration and its storage/auth
// collaborators, building the static zone topology from cfg and seeding
// the player id allocator past every id already persisted.
func New(ctx context.Context, cfg config.Config, st *store.Store, authSvc *auth.Service, log *zap.SugaredLogger) *Server {
	playerStart := int64(1)
	if st != nil {
		if max, err := st.MaxPlayerID(ctx); err == nil {
			playerStart = max + 1
		} else {
			log.Warnw("could not read max player id, starting from 1", "err", err)
		}
	}

	s := &Server{
		log:            log,
		store:          st,
		authSvc:        authSvc,
		defaultZoneID:  cfg.DefaultZoneID,
		equipCatalog:   equipmentCatalog(),
		weaponByItem:   weaponForItem(),
		connIDs:        game.NewIDAllocator(1),
		playerIDs:      game.NewIDAllocator(playerStart),
		nodeIDs:        game.NewIDAllocator(1),
		npcIDs:         game.NewIDAllocator(npcIDBase),
		projIDs:        game.NewIDAllocator(1),
		orderIDs:       game.NewIDAllocator(1),
		register:       make(chan *connection, 16),
		inbound:        make(chan inboundMsg, 1024),
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
		startedAt:      time.Now(),
		zones:          make(map[string]*game.Zone),
		spawners:       make(map[string]*game.ZoneSpawner),
		npcs:           make(map[int64]*game.NPC),
		projectiles:    make(map[string][]*game.Projectile),
		lastFire:       make(map[int64]map[int]int64),
		conns:          make(map[int64]*connection),
		playerConn:     make(map[int64]int64),
		connPlayer:     make(map[int64]int64),
		playerZone:     make(map[int64]string),
		playerAccount:  make(map[int64]int64),
		accountPlayer:  make(map[int64]int64),
		pendingAccount: make(map[int64]int64),
		done:           make(chan struct{}),
	}
	s.market = market.NewMarket(s.orderIDs)
	s.questDB = defaultQuestDB()
	s.recipes = defaultRecipes()
	s.buildZones(cfg)
	applyWeaponOverrides(cfg.WeaponOverrides)
	return s
}

// applyWeaponOverrides replaces rows of the authoritative weapon table
// with configured tuning, keyed by weapon name.
func applyWeaponOverrides(overrides []config.WeaponOverride) {
	for _, ov := range overrides {
		for typ, spec := range game.Weapons {
			if spec.Name != ov.Type {
				continue
			}
			game.Weapons[typ] = game.WeaponSpec{
				Name:       spec.Name,
				Damage:     ov.Damage,
				Range:      ov.Range,
				CooldownMS: ov.CooldownMS,
				ProjSpeed:  ov.ProjSpeed,
				Splash:     ov.Splash,
				Piercing:   ov.Piercing,
			}
		}
	}
}

func (s *Server) buildZones(cfg config.Config) {
	for _, zc := range cfg.Zones {
		var zt game.ZoneType
		switch zc.Type {
		case "station":
			zt = game.ZoneStation
		case "planet":
			zt = game.ZonePlanet
		default:
			zt = game.ZoneSpace
		}
		bounds := game.Bounds{XMin: zc.Bounds.XMin, XMax: zc.Bounds.XMax, YMin: zc.Bounds.YMin, YMax: zc.Bounds.YMax}
		zone := game.NewZone(zc.ID, zc.Name, zt, bounds, zc.Connections)
		if zt == game.ZoneStation {
			zone.DockPoint = &struct{ X, Y float64 }{X: zc.DockPointX, Y: zc.DockPointY}
		}
		for _, nc := range zc.Nodes {
			zone.AddNode(game.NewResourceNode(s.nodeIDs.Next(), nc.ResourceType, nc.X, nc.Y, nc.TotalAmount, nc.Quality, nc.RespawnMS))
		}
		s.zones[zc.ID] = zone

		var table []game.SpawnTableEntry
		for _, sc := range zc.SpawnTable {
			table = append(table, game.SpawnTableEntry{Type: npcTypeFromString(sc.Type), MaxConcurrent: sc.MaxConcurrent, RespawnMS: sc.RespawnMS})
		}
		s.spawners[zc.ID] = game.NewZoneSpawner(zc.ID, table)
	}
}

func npcTypeFromString(s string) game.NPCType {
	switch s {
	case "bounty_hunter":
		return game.NPCBountyHunter
	case "trader":
		return game.NPCTrader
	case "mining_drone":
		return game.NPCMiningDrone
	case "station_guard":
		return game.NPCStationGuard
	default:
		return game.NPCPirate
	}
}

// nowMS is monotonic server time in milliseconds since process start.
func (s *Server) nowMS() int64 {
	return time.Since(s.startedAt).Milliseconds()
}

// Run is the main authoritative loop: drain registrations and
// disconnects, drain inbound messages, tick every zone, broadcast,
// periodically persist. It returns, after saving every connected
// player, when ctx is cancelled or Shutdown is called.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(game.TickIntervalMS * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.saveAllConnected(context.Background())
			return
		case <-s.done:
			s.saveAllConnected(context.Background())
			return
		case c := <-s.register:
			s.handleRegister(c)
		case msg := <-s.inbound:
			s.dispatch(msg.connID, msg.raw)
		case <-ticker.C:
			s.drainChannelsNonBlocking()
			s.runTick()
		}
	}
}

// drainChannelsNonBlocking opportunistically processes any
// registrations and inbound messages (including disconnect sentinels)
// queued since the last tick before running the tick phase, so each
// tick sees a consistent cut of the queues.
func (s *Server) drainChannelsNonBlocking() {
	for {
		select {
		case c := <-s.register:
			s.handleRegister(c)
			continue
		case msg := <-s.inbound:
			s.dispatch(msg.connID, msg.raw)
			continue
		default:
			return
		}
	}
}

// runTick executes one simulation step across every zone and
// broadcasts the resulting world state.
func (s *Server) runTick() {
	s.tick++
	now := s.nowMS()

	s.tickDisconnectTimeouts(now)
	for zoneID := range s.zones {
		s.tickMovementAndTransfers(zoneID)
	}
	for zoneID := range s.zones {
		s.tickMining(zoneID, now)
	}
	for zoneID := range s.zones {
		s.tickCombat(zoneID, now)
	}
	s.tickNPCs(now)
	s.tickCrafting(now)

	s.broadcastWorldState()

	if s.tick%PersistIntervalTicks == 0 {
		s.saveAllConnected(context.Background())
	}
}

// Shutdown stops Run after it finishes persisting connected players.
func (s *Server) Shutdown() {
	close(s.done)
}

// Inventory implements market.Accounts by looking a player up across
// every zone. Trades settle within a single tick dispatch, so this
// never races with movement or other mutation.
func (s *Server) Inventory(playerID int64) (*game.Inventory, bool) {
	p := s.findPlayer(playerID)
	if p == nil {
		return nil, false
	}
	return p.Inventory, true
}

// findPlayer locates a player by id across all zones. Callers already
// hold the loop (there is only one goroutine mutating state), so no
// locking is required beyond what's needed for connection bookkeeping.
func (s *Server) findPlayer(playerID int64) *game.Player {
	zoneID, ok := s.playerZone[playerID]
	if !ok {
		return nil
	}
	zone, ok := s.zones[zoneID]
	if !ok {
		return nil
	}
	return zone.Players[playerID]
}

// sendToConn encodes and queues a frame directly by connection id, for
// use before a connection has an attached player (auth, hello).
func (s *Server) sendToConn(connID int64, typ wire.Type, body interface{}) {
	c, ok := s.conns[connID]
	if !ok {
		return
	}
	raw, err := wire.Encode(typ, body)
	if err != nil {
		s.log.Warnw("encode failed", "type", typ, "err", err)
		return
	}
	c.enqueue(raw)
}

// sendTo encodes and queues a frame for one connection by player id.
func (s *Server) sendTo(playerID int64, typ wire.Type, body interface{}) {
	connID, ok := s.playerConn[playerID]
	if !ok {
		return
	}
	c, ok := s.conns[connID]
	if !ok {
		return
	}
	raw, err := wire.Encode(typ, body)
	if err != nil {
		s.log.Warnw("encode failed", "type", typ, "err", err)
		return
	}
	c.enqueue(raw)
}

// broadcastToZone encodes and queues a frame for every connected
// player in zoneID, optionally skipping one player id.
func (s *Server) broadcastToZone(zoneID string, typ wire.Type, body interface{}, skip int64) {
	zone, ok := s.zones[zoneID]
	if !ok {
		return
	}
	raw, err := wire.Encode(typ, body)
	if err != nil {
		s.log.Warnw("encode failed", "type", typ, "err", err)
		return
	}
	for _, p := range zone.ConnectedPlayers() {
		if p.ID == skip {
			continue
		}
		if connID, ok := s.playerConn[p.ID]; ok {
			if c, ok := s.conns[connID]; ok {
				c.enqueue(raw)
			}
		}
	}
}
