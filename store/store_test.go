package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAccountRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	acc, err := s.CreateAccount(ctx, "nova", "hashed", 1000)
	require.NoError(t, err)
	require.NotZero(t, acc.ID)

	got, err := s.AccountByUsername(ctx, "nova")
	require.NoError(t, err)
	require.Equal(t, acc.ID, got.ID)
	require.Equal(t, "hashed", got.PasswordHash)
}

func TestAccountByUsernameMiss(t *testing.T) {
	s := openTestStore(t)
	got, err := s.AccountByUsername(context.Background(), "nobody")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSaveThenLoadPlayerRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	acc, err := s.CreateAccount(ctx, "nova", "hashed", 1000)
	require.NoError(t, err)

	snap := &PlayerSnapshot{
		ID:          1,
		AccountID:   acc.ID,
		Name:        "Nova",
		Level:       5,
		XP:          120.5,
		OmenBalance: 300,
		ZoneID:      "sector-1",
		X:           10, Y: -5,
		HP:     80,
		Shield: 20,
		Inventory: map[string]int{"iron": 50, "scrap_metal": 3},
		Equipment: map[string]string{"weapon1": "laser_mk1"},
		Quests: []QuestProgressRow{
			{QuestID: "intro", Status: "active", ObjectivesJSON: `{"0":1}`},
		},
	}
	require.NoError(t, s.Save(ctx, snap))

	loaded, err := s.LoadByAccount(ctx, acc.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, snap.Name, loaded.Name)
	require.Equal(t, snap.Level, loaded.Level)
	require.InDelta(t, snap.XP, loaded.XP, 1e-9)
	require.InDelta(t, snap.OmenBalance, loaded.OmenBalance, 1e-9)
	require.Equal(t, snap.ZoneID, loaded.ZoneID)
	require.Equal(t, snap.HP, loaded.HP)
	require.Equal(t, snap.Shield, loaded.Shield)
	require.Equal(t, snap.Inventory, loaded.Inventory)
	require.Equal(t, snap.Equipment, loaded.Equipment)
	require.Len(t, loaded.Quests, 1)
	require.Equal(t, "intro", loaded.Quests[0].QuestID)
}

func TestMaxPlayerIDEmptyIsZero(t *testing.T) {
	s := openTestStore(t)
	max, err := s.MaxPlayerID(context.Background())
	require.NoError(t, err)
	require.Zero(t, max)
}
