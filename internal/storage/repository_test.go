package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/phillipDoubleU/showdex/internal/battle"
	"github.com/phillipDoubleU/showdex/internal/dex"
)

func seedList() []dex.Move {
	return []dex.Move{
		{Name: "Tackle", Format: "gen9ou", Category: dex.CategoryPhysical, BasePower: 40},
		{Name: "Brave Bird", Format: "gen9ou", Category: dex.CategoryPhysical, BasePower: 120, Recoil: &dex.Fraction{Numerator: 1, Denominator: 3}},
		{Name: "Thunderbolt", Format: "gen9ou", Category: dex.CategorySpecial, BasePower: 90, Secondary: &dex.Secondary{Chance: 10, Effect: "par"}},
		{Name: "Icicle Spear", Format: "gen9ou", Category: dex.CategoryPhysical, BasePower: 25, MultiHit: &dex.HitRange{Min: 2, Max: 5}},
		{Name: "Ancient Tackle", Format: "gen1ou", Category: dex.CategoryPhysical, BasePower: 40},
	}
}

func openTestDB(t *testing.T, seed []dex.Move) *gorm.DB {
	t.Helper()
	db, err := OpenAndMigrate(filepath.Join(t.TempDir(), "test.db"), seed)
	require.NoError(t, err)
	return db
}

func TestOpenAndMigrateSeedsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := OpenAndMigrate(path, seedList())
	require.NoError(t, err)
	var count int64
	require.NoError(t, db.Model(&MoveRecord{}).Count(&count).Error)
	assert.Equal(t, int64(5), count)

	// Reopening against an already-seeded database must not duplicate rows.
	db, err = OpenAndMigrate(path, seedList())
	require.NoError(t, err)
	require.NoError(t, db.Model(&MoveRecord{}).Count(&count).Error)
	assert.Equal(t, int64(5), count)
}

func TestRepositoryMove(t *testing.T) {
	repo := NewSQLiteRepository(openTestDB(t, seedList()), seedList())

	m, err := repo.Move("Brave Bird", "gen9ou")
	require.NoError(t, err)
	assert.Equal(t, 120, m.BasePower)
	require.NotNil(t, m.Recoil)
	assert.Equal(t, 3, m.Recoil.Denominator)

	// Canonical lookup: punctuation and case are irrelevant.
	_, err = repo.Move("brave-bird", "gen9ou")
	assert.NoError(t, err)

	_, err = repo.Move("Brave Bird", "gen1ou")
	assert.ErrorIs(t, err, dex.ErrUnknownMove)

	_, err = repo.Move("no such move", "gen9ou")
	assert.ErrorIs(t, err, dex.ErrUnknownMove)
}

func TestRepositoryMoveFallsBackToDatabase(t *testing.T) {
	// An empty cache forces the database path; the rows were seeded by
	// OpenAndMigrate.
	repo := NewSQLiteRepository(openTestDB(t, seedList()), nil)

	m, err := repo.Move("Thunderbolt", "gen9ou")
	require.NoError(t, err)
	assert.Equal(t, 90, m.BasePower)
	require.NotNil(t, m.Secondary)
	assert.Equal(t, 10, m.Secondary.Chance)

	m, err = repo.Move("Icicle Spear", "gen9ou")
	require.NoError(t, err)
	require.NotNil(t, m.MultiHit)
	assert.Equal(t, 2, m.MultiHit.Min)
	assert.Equal(t, 5, m.MultiHit.Max)
}

func TestRepositoryListMoves(t *testing.T) {
	repo := NewSQLiteRepository(openTestDB(t, seedList()), seedList())

	all, err := repo.ListMoves("")
	require.NoError(t, err)
	assert.Len(t, all, 5)

	gen9, err := repo.ListMoves("gen9ou")
	require.NoError(t, err)
	assert.Len(t, gen9, 4)

	none, err := repo.ListMoves("gen2ou")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepositorySummaries(t *testing.T) {
	repo := NewSQLiteRepository(openTestDB(t, nil), nil)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.SaveSummary(battle.SimulationSummary{
			BattleID:      string(rune('a' + i)),
			Format:        "gen9ou",
			TurnsAdvanced: i,
			StartedAt:     base,
			FinishedAt:    base.Add(time.Duration(i) * time.Minute),
		}))
	}

	got, err := repo.ListSummaries(2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Newest first.
	assert.Equal(t, "c", got[0].BattleID)
	assert.Equal(t, "b", got[1].BattleID)

	all, err := repo.ListSummaries(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMoveRecordRoundTrip(t *testing.T) {
	src := dex.Move{
		Name: "Close Combat", Format: "gen9ou", Type: "fighting",
		Category: dex.CategoryPhysical, BasePower: 120,
		StatChange: &dex.StatDeltas{Def: -1, SpD: -1, SelfTarget: true},
	}

	rec := recordFromMove(&src)
	assert.Equal(t, dex.CanonicalName(src.Name), rec.Canonical)

	got := rec.toMove()
	assert.Equal(t, src.Name, got.Name)
	assert.Equal(t, src.BasePower, got.BasePower)
	require.NotNil(t, got.StatChange)
	assert.Equal(t, -1, got.StatChange.Def)
	assert.True(t, got.StatChange.SelfTarget)
}

func TestMoveRecordRoundTripTrickRoom(t *testing.T) {
	src := dex.Move{
		Name: "Trick Room", Format: "gen9ou", Type: "psychic",
		Category: dex.CategoryStatus, Priority: -7,
		Field: &dex.FieldPayload{TrickRoom: true},
	}

	rec := recordFromMove(&src)
	got := rec.toMove()
	require.NotNil(t, got.Field)
	assert.True(t, got.Field.TrickRoom)
	assert.Equal(t, -7, got.Priority)
}
