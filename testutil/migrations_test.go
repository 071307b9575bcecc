package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-journal/backend/migrations"
	"github.com/pkordes/travel-journal/backend/testutil"
)

// journalTables lists every table the migrations create.
var journalTables = []string{
	"users", "categories", "adventures", "visits",
	"activities", "lodgings", "transportations",
}

// TestMigrations rolls the schema all the way down and back up. It finishes
// with every migration applied because other packages share the database.
func TestMigrations(t *testing.T) {
	db := testutil.NewSQLDB(t)
	ctx := context.Background()

	p, err := migrations.NewProvider(db)
	require.NoError(t, err)

	_, err = p.DownTo(ctx, 0)
	require.NoError(t, err, "reset to version 0")
	for _, table := range journalTables {
		assert.False(t, tableExists(t, db, table), "table %q after reset", table)
	}

	results, err := p.Up(ctx)
	require.NoError(t, err, "goose up")
	require.NotEmpty(t, results)
	for _, table := range journalTables {
		assert.True(t, tableExists(t, db, table), "table %q after up", table)
	}

	version, err := p.GetDBVersion(ctx)
	require.NoError(t, err)
	sources := p.ListSources()
	assert.Equal(t, sources[len(sources)-1].Version, version)
}

// Deleting an adventure removes its visits; deleting a category only
// detaches it.
func TestMigrations_ReferentialActions(t *testing.T) {
	tx := testutil.NewTx(t)
	ctx := context.Background()

	var userID, categoryID, adventureID string
	require.NoError(t, tx.QueryRow(ctx,
		`INSERT INTO users (username) VALUES ('migration-check') RETURNING id`).Scan(&userID))
	require.NoError(t, tx.QueryRow(ctx,
		`INSERT INTO categories (user_id, name, display_name) VALUES ($1, 'beach', 'Beach') RETURNING id`,
		userID).Scan(&categoryID))
	require.NoError(t, tx.QueryRow(ctx,
		`INSERT INTO adventures (user_id, name, category_id) VALUES ($1, 'Algarve', $2) RETURNING id`,
		userID, categoryID).Scan(&adventureID))
	_, err := tx.Exec(ctx,
		`INSERT INTO visits (adventure_id, category_id, location) VALUES ($1, $2, 'Sagres')`,
		adventureID, categoryID)
	require.NoError(t, err)

	_, err = tx.Exec(ctx, `DELETE FROM categories WHERE id = $1`, categoryID)
	require.NoError(t, err)

	var detached bool
	require.NoError(t, tx.QueryRow(ctx,
		`SELECT category_id IS NULL FROM adventures WHERE id = $1`, adventureID).Scan(&detached))
	assert.True(t, detached, "adventure keeps existing without its category")

	_, err = tx.Exec(ctx, `DELETE FROM adventures WHERE id = $1`, adventureID)
	require.NoError(t, err)

	var visits int
	require.NoError(t, tx.QueryRow(ctx,
		`SELECT count(*) FROM visits WHERE adventure_id = $1`, adventureID).Scan(&visits))
	assert.Zero(t, visits)
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)`
	var exists bool
	require.NoError(t, db.QueryRowContext(context.Background(), q, table).Scan(&exists))
	return exists
}
