// Package config loads the server's YAML configuration: listen
// address, tick interval, zone/connection topology, NPC spawn tables,
// weapon table overrides and the persistence DSN.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level server configuration document.
type Config struct {
	ListenAddr     string       `yaml:"listen_addr"`
	TickIntervalMS int64        `yaml:"tick_interval_ms"`
	DatabaseDSN    string       `yaml:"database_dsn"`
	LogLevel       string       `yaml:"log_level"`
	DefaultZoneID  string       `yaml:"default_zone_id"`
	Zones          []ZoneConfig `yaml:"zones"`
	WeaponOverrides []WeaponOverride `yaml:"weapon_overrides"`
}

// BoundsConfig is an axis-aligned rectangle a zone's content is
// confined to.
type BoundsConfig struct {
	XMin float64 `yaml:"x_min"`
	XMax float64 `yaml:"x_max"`
	YMin float64 `yaml:"y_min"`
	YMax float64 `yaml:"y_max"`
}

// NodeConfig is one resource node placed in a zone at startup.
type NodeConfig struct {
	ResourceType string  `yaml:"resource_type"`
	X            float64 `yaml:"x"`
	Y            float64 `yaml:"y"`
	TotalAmount  float64 `yaml:"total_amount"`
	Quality      int     `yaml:"quality"`
	RespawnMS    int64   `yaml:"respawn_ms"`
}

// SpawnTableEntryConfig configures one NPC type's population in a zone.
type SpawnTableEntryConfig struct {
	Type          string `yaml:"type"` // pirate, bounty_hunter, trader, mining_drone, station_guard
	MaxConcurrent int    `yaml:"max_concurrent"`
	RespawnMS     int64  `yaml:"respawn_ms"`
}

// ZoneConfig is one zone's static topology and population.
type ZoneConfig struct {
	ID          string                  `yaml:"id"`
	Name        string                  `yaml:"name"`
	Type        string                  `yaml:"type"` // space, station, planet
	Bounds      BoundsConfig            `yaml:"bounds"`
	Connections []string                `yaml:"connections"`
	Nodes       []NodeConfig            `yaml:"nodes"`
	SpawnTable  []SpawnTableEntryConfig `yaml:"spawn_table"`
	DockPointX  float64                 `yaml:"dock_point_x"`
	DockPointY  float64                 `yaml:"dock_point_y"`
}

// WeaponOverride replaces one row of the authoritative weapon
// table, letting ops tune balance without a rebuild.
type WeaponOverride struct {
	Type       string  `yaml:"type"`
	Damage     int     `yaml:"damage"`
	Range      float64 `yaml:"range"`
	CooldownMS int64   `yaml:"cooldown_ms"`
	ProjSpeed  float64 `yaml:"proj_speed"`
	Splash     float64 `yaml:"splash"`
	Piercing   bool    `yaml:"piercing"`
}

// Default returns a small but complete two-zone configuration: one
// space sector and its connected station, enough to exercise every
// subsystem out of the box.
func Default() Config {
	return Config{
		ListenAddr:     ":8765",
		TickIntervalMS: 50,
		DatabaseDSN:    "odyssey.db",
		LogLevel:       "info",
		DefaultZoneID:  "sector-1",
		Zones: []ZoneConfig{
			{
				ID:          "sector-1",
				Name:        "Sector One",
				Type:        "space",
				Bounds:      BoundsConfig{XMin: -2000, XMax: 2000, YMin: -2000, YMax: 2000},
				Connections: []string{"station-1"},
				Nodes: []NodeConfig{
					{ResourceType: "iron", X: 0, Y: 0, TotalAmount: 100, Quality: 1, RespawnMS: 30000},
					{ResourceType: "titanium", X: 500, Y: -300, TotalAmount: 200, Quality: 3, RespawnMS: 30000},
				},
				SpawnTable: []SpawnTableEntryConfig{
					{Type: "pirate", MaxConcurrent: 5, RespawnMS: 20000},
					{Type: "mining_drone", MaxConcurrent: 3, RespawnMS: 15000},
				},
			},
			{
				ID:          "station-1",
				Name:        "Odyssey Station",
				Type:        "station",
				Bounds:      BoundsConfig{XMin: -200, XMax: 200, YMin: -200, YMax: 200},
				Connections: []string{"sector-1"},
				SpawnTable: []SpawnTableEntryConfig{
					{Type: "station_guard", MaxConcurrent: 2, RespawnMS: 10000},
				},
				DockPointX: 0,
				DockPointY: 0,
			},
		},
	}
}

// Load reads a YAML config file at path, falling back to Default when
// the file does not exist, so a bare binary still starts with a
// usable world.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
