// Package store implements the relational persistence façade: account
// credentials and player snapshots (position, progression, inventory,
// equipment, active quests). It is the only component
// the game loop's periodic-save and HELLO-time load paths talk to.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/odyssey-game/server/auth"
)

// Store wraps a sqlite connection and is safe for the single game-loop
// goroutine that is its only caller; the persistence façade is
// accessed only by the loop.
type Store struct {
	db *sql.DB
}

// Open connects to dsn, running pending migrations before returning.
// A failure here aborts the process; the caller is expected to treat
// the error that way.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", dsn, err)
	}
	db.SetMaxOpenConns(1) // single-writer sqlite; the loop is the only caller anyway
	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// AccountByUsername implements auth.Store. Returns (nil, nil) on miss.
func (s *Store) AccountByUsername(ctx context.Context, username string) (*auth.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM accounts WHERE username = ?`, username)
	var a auth.Account
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("store: account by username: %w", err)
	}
	return &a, nil
}

// CreateAccount implements auth.Store.
func (s *Store) CreateAccount(ctx context.Context, username, passwordHash string, createdAt int64) (*auth.Account, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (username, password_hash, created_at) VALUES (?, ?, ?)`,
		username, passwordHash, createdAt)
	if err != nil {
		return nil, fmt.Errorf("store: create account: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("store: create account: %w", err)
	}
	return &auth.Account{ID: id, Username: username, PasswordHash: passwordHash, CreatedAt: createdAt}, nil
}

// QuestProgressRow is one persisted row of quest_progress.
type QuestProgressRow struct {
	QuestID        string
	Status         string // "active" or "completed"
	ObjectivesJSON string
}

// PlayerSnapshot is everything persisted for one character.
type PlayerSnapshot struct {
	ID          int64
	AccountID   int64
	Name        string
	Level       int
	XP          float64
	OmenBalance float64
	ZoneID      string
	X, Y        float64
	HP          int
	Shield      int
	Inventory   map[string]int
	Equipment   map[string]string // slot_type -> item_type
	Quests      []QuestProgressRow
}

// MaxPlayerID returns the highest persisted player id, or 0 if none
// exist, so the loop can allocate player_id = max(existing)+1 at
// startup.
func (s *Store) MaxPlayerID(ctx context.Context) (int64, error) {
	var max sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(id) FROM players`).Scan(&max); err != nil {
		return 0, fmt.Errorf("store: max player id: %w", err)
	}
	return max.Int64, nil
}

// LoadByAccount returns the persisted snapshot for accountID, or
// (nil, nil) on miss.
func (s *Store) LoadByAccount(ctx context.Context, accountID int64) (*PlayerSnapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, account_id, name, level, xp, omen_balance, zone_id, x, y, hp, shield
		 FROM players WHERE account_id = ?`, accountID)
	snap := &PlayerSnapshot{}
	if err := row.Scan(&snap.ID, &snap.AccountID, &snap.Name, &snap.Level, &snap.XP,
		&snap.OmenBalance, &snap.ZoneID, &snap.X, &snap.Y, &snap.HP, &snap.Shield); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("store: load player: %w", err)
	}

	inv, err := s.loadInventory(ctx, snap.ID)
	if err != nil {
		return nil, err
	}
	snap.Inventory = inv

	equip, err := s.loadEquipment(ctx, snap.ID)
	if err != nil {
		return nil, err
	}
	snap.Equipment = equip

	quests, err := s.loadQuests(ctx, snap.ID)
	if err != nil {
		return nil, err
	}
	snap.Quests = quests

	return snap, nil
}

func (s *Store) loadInventory(ctx context.Context, playerID int64) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT item_type, quantity FROM inventories WHERE player_id = ?`, playerID)
	if err != nil {
		return nil, fmt.Errorf("store: load inventory: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var item string
		var qty int
		if err := rows.Scan(&item, &qty); err != nil {
			return nil, fmt.Errorf("store: scan inventory row: %w", err)
		}
		out[item] = qty
	}
	return out, rows.Err()
}

func (s *Store) loadEquipment(ctx context.Context, playerID int64) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slot_type, item_type FROM equipment WHERE player_id = ?`, playerID)
	if err != nil {
		return nil, fmt.Errorf("store: load equipment: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var slot, item string
		if err := rows.Scan(&slot, &item); err != nil {
			return nil, fmt.Errorf("store: scan equipment row: %w", err)
		}
		out[slot] = item
	}
	return out, rows.Err()
}

func (s *Store) loadQuests(ctx context.Context, playerID int64) ([]QuestProgressRow, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT quest_id, status, objectives_json FROM quest_progress WHERE player_id = ?`, playerID)
	if err != nil {
		return nil, fmt.Errorf("store: load quests: %w", err)
	}
	defer rows.Close()
	var out []QuestProgressRow
	for rows.Next() {
		var r QuestProgressRow
		if err := rows.Scan(&r.QuestID, &r.Status, &r.ObjectivesJSON); err != nil {
			return nil, fmt.Errorf("store: scan quest row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// EncodeObjectives is a small helper so callers in the server package
// don't need their own JSON import just to build a QuestProgressRow.
func EncodeObjectives(objectives map[int]int) (string, error) {
	b, err := json.Marshal(objectives)
	if err != nil {
		return "", fmt.Errorf("store: encode objectives: %w", err)
	}
	return string(b), nil
}

// DecodeObjectives is EncodeObjectives's inverse.
func DecodeObjectives(raw string) (map[int]int, error) {
	out := make(map[int]int)
	if raw == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("store: decode objectives: %w", err)
	}
	return out, nil
}

// Save persists snap as a single transaction: upsert the player row,
// then delete-and-reinsert its inventory, equipment and quest rows.
func (s *Store) Save(ctx context.Context, snap *PlayerSnapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin save tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO players (id, account_id, name, level, xp, omen_balance, zone_id, x, y, hp, shield)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name=excluded.name, level=excluded.level, xp=excluded.xp,
		   omen_balance=excluded.omen_balance, zone_id=excluded.zone_id,
		   x=excluded.x, y=excluded.y, hp=excluded.hp, shield=excluded.shield`,
		snap.ID, snap.AccountID, snap.Name, snap.Level, snap.XP, snap.OmenBalance,
		snap.ZoneID, snap.X, snap.Y, snap.HP, snap.Shield)
	if err != nil {
		return fmt.Errorf("store: upsert player: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM inventories WHERE player_id = ?`, snap.ID); err != nil {
		return fmt.Errorf("store: clear inventory: %w", err)
	}
	for item, qty := range snap.Inventory {
		if qty <= 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO inventories (player_id, item_type, quantity) VALUES (?, ?, ?)`,
			snap.ID, item, qty); err != nil {
			return fmt.Errorf("store: insert inventory row: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM equipment WHERE player_id = ?`, snap.ID); err != nil {
		return fmt.Errorf("store: clear equipment: %w", err)
	}
	for slot, item := range snap.Equipment {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO equipment (player_id, slot_type, item_type) VALUES (?, ?, ?)`,
			snap.ID, slot, item); err != nil {
			return fmt.Errorf("store: insert equipment row: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM quest_progress WHERE player_id = ?`, snap.ID); err != nil {
		return fmt.Errorf("store: clear quests: %w", err)
	}
	for _, q := range snap.Quests {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO quest_progress (player_id, quest_id, status, objectives_json) VALUES (?, ?, ?, ?)`,
			snap.ID, q.QuestID, q.Status, q.ObjectivesJSON); err != nil {
			return fmt.Errorf("store: insert quest row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit save tx: %w", err)
	}
	return nil
}
