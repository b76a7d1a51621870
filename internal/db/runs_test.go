package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/adniprep/internal/monitoring"
	"github.com/banshee-data/adniprep/internal/schema"
	"github.com/banshee-data/adniprep/internal/table"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	monitoring.SetLogger(t.Logf)
	t.Cleanup(func() { monitoring.SetLogger(nil) })

	d, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestOpen_AppliesMigrations(t *testing.T) {
	d := openTestDB(t)

	v, dirty, err := d.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(2), v)
	assert.False(t, dirty)

	// Re-running is a no-op.
	require.NoError(t, d.MigrateUp())
}

func TestMigrateDown(t *testing.T) {
	d := openTestDB(t)
	require.NoError(t, d.MigrateDown())

	v, _, err := d.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(1), v)

	var n int
	err = d.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'prepared_values'`).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSaveRun(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	tb, err := table.New([]string{"RID", "ABETA", "ABETA_LowMidHigh"}, [][]table.Cell{
		{table.Text("2"), table.Number(80), table.Text("Low")},
		{table.Text("3"), table.Missing(), table.Missing()},
	})
	require.NoError(t, err)
	dict, _ := schema.ADNIMerge().WithDtypes(map[string]string{"ABETA": "float64"})

	runID, err := d.SaveRun(ctx, "/in/ADNIMERGE.csv", "/out", tb, dict)
	require.NoError(t, err)
	assert.NotEmpty(t, runID)

	runs, err := d.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
	assert.Equal(t, "/in/ADNIMERGE.csv", runs[0].SourcePath)
	assert.Equal(t, 2, runs[0].RowCount)
	assert.Equal(t, 3, runs[0].ColumnCount)
	assert.False(t, runs[0].CreatedAt.IsZero())

	archived, err := d.Dictionary(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, dict.Descriptors(), archived.Descriptors())

	abeta, err := d.ColumnValues(ctx, runID, "ABETA")
	require.NoError(t, err)
	require.Len(t, abeta, 1)
	assert.True(t, abeta[0].Equal(table.Number(80)))

	status, err := d.ColumnValues(ctx, runID, "ABETA_LowMidHigh")
	require.NoError(t, err)
	assert.True(t, status[0].Equal(table.Text("Low")))
	_, present := status[1]
	assert.False(t, present)
}

func TestSaveRun_DistinctIDs(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	tb, err := table.New([]string{"RID"}, [][]table.Cell{{table.Text("1")}})
	require.NoError(t, err)

	a, err := d.SaveRun(ctx, "a.csv", "/out", tb, schema.ADNIMerge())
	require.NoError(t, err)
	b, err := d.SaveRun(ctx, "b.csv", "/out", tb, schema.ADNIMerge())
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	runs, err := d.Runs(ctx)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}
