package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/devcardhq/devcard-companion/internal/storage/models"
)

func setupCollectionTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS collections (
			name TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	require.NoError(t, err)

	return db
}

func testProject(id, name string) models.DevCardProject {
	now := time.Now().UTC().Truncate(time.Second)
	return models.DevCardProject{
		ID:         id,
		Name:       name,
		CreatedAt:  now,
		LastEdited: now,
		Config:     models.DefaultCardConfig(),
		Rarity:     models.RarityCommon,
	}
}

func TestCollectionRepository_EmptySlotReadsEmpty(t *testing.T) {
	db := setupCollectionTestDB(t)
	repo := NewCollectionRepository(db)

	projects, err := repo.Read(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestCollectionRepository_WriteThenRead(t *testing.T) {
	db := setupCollectionTestDB(t)
	repo := NewCollectionRepository(db)
	ctx := context.Background()

	want := []models.DevCardProject{
		testProject("dc_1", "First"),
		testProject("dc_2", "Second"),
	}
	require.NoError(t, repo.Write(ctx, want))

	got, err := repo.Read(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "dc_1", got[0].ID)
	assert.Equal(t, "dc_2", got[1].ID)
	assert.Equal(t, "Developer", got[0].Config.Name)
}

func TestCollectionRepository_WriteReplacesWholesale(t *testing.T) {
	db := setupCollectionTestDB(t)
	repo := NewCollectionRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Write(ctx, []models.DevCardProject{testProject("dc_1", "First")}))
	require.NoError(t, repo.Write(ctx, []models.DevCardProject{testProject("dc_2", "Second")}))

	got, err := repo.Read(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "dc_2", got[0].ID)
}

func TestCollectionRepository_MalformedPayloadReadsEmpty(t *testing.T) {
	db := setupCollectionTestDB(t)
	repo := NewCollectionRepository(db)
	ctx := context.Background()

	_, err := db.Exec("INSERT INTO collections (name, payload) VALUES (?, ?)", ProjectsSlot, "{not json")
	require.NoError(t, err)

	projects, err := repo.Read(ctx)
	require.NoError(t, err, "malformed payload should read as empty, not error")
	assert.Empty(t, projects)
}

func TestCollectionRepository_NilWritesEmptyCollection(t *testing.T) {
	db := setupCollectionTestDB(t)
	repo := NewCollectionRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Write(ctx, nil))

	projects, err := repo.Read(ctx)
	require.NoError(t, err)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}
