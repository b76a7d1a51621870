package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/adniprep/internal/schema"
	"github.com/banshee-data/adniprep/internal/table"
	"github.com/banshee-data/adniprep/internal/version"
)

// Run is one archived preparation run.
type Run struct {
	ID          string
	SourcePath  string
	DestDir     string
	Version     string
	GitSHA      string
	RowCount    int
	ColumnCount int
	CreatedAt   time.Time
}

// SaveRun archives a prepared table and its dictionary under a new run ID.
// Missing cells are not stored. Everything is written in one transaction.
func (db *DB) SaveRun(ctx context.Context, source, dest string, tb *table.Table, dict *schema.Dictionary) (string, error) {
	runID := uuid.New().String()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, source_path, dest_dir, version, git_sha, row_count, column_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, source, dest, version.Version, version.GitSHA,
		tb.NumRows(), tb.NumColumns(), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	for i, d := range dict.Descriptors() {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO column_dictionary (run_id, position, name, mod, num_cat, data_type, dtype)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, i, d.Name, string(d.Mod), string(d.NumCat), string(d.DataType), d.Dtype,
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert descriptor %s: %w", d.Name, err)
		}
	}

	if err := insertValues(ctx, tx, runID, tb); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run %s: %w", runID, err)
	}
	return runID, nil
}

func insertValues(ctx context.Context, tx *sql.Tx, runID string, tb *table.Table) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO prepared_values (run_id, row_index, column_name, text_value, num_value)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare value insert: %w", err)
	}
	defer stmt.Close()

	columns := tb.Columns()
	for i := 0; i < tb.NumRows(); i++ {
		for j, c := range tb.Row(i) {
			if c.IsMissing() {
				continue
			}
			var text sql.NullString
			var num sql.NullFloat64
			if f, ok := c.Float(); ok {
				num = sql.NullFloat64{Float64: f, Valid: true}
			} else {
				text = sql.NullString{String: c.String(), Valid: true}
			}
			if _, err := stmt.ExecContext(ctx, runID, i, columns[j], text, num); err != nil {
				return fmt.Errorf("failed to insert value row %d column %s: %w", i, columns[j], err)
			}
		}
	}
	return nil
}

// Runs returns every archived run, oldest first.
func (db *DB) Runs(ctx context.Context) ([]Run, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT run_id, source_path, dest_dir, version, git_sha, row_count, column_count, created_at
		 FROM runs ORDER BY created_at, run_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &r.SourcePath, &r.DestDir, &r.Version, &r.GitSHA, &r.RowCount, &r.ColumnCount, &created); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for run %s: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Dictionary returns the archived column dictionary of a run.
func (db *DB) Dictionary(ctx context.Context, runID string) (*schema.Dictionary, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT name, mod, num_cat, data_type, dtype FROM column_dictionary
		 WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query dictionary: %w", err)
	}
	defer rows.Close()

	var descs []schema.Descriptor
	for rows.Next() {
		var d schema.Descriptor
		var mod, numCat, dataType string
		if err := rows.Scan(&d.Name, &mod, &numCat, &dataType, &d.Dtype); err != nil {
			return nil, fmt.Errorf("failed to scan descriptor: %w", err)
		}
		d.Mod, d.NumCat, d.DataType = schema.Mod(mod), schema.NumCat(numCat), schema.DataType(dataType)
		descs = append(descs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return schema.NewDictionary(descs)
}

// ColumnValues returns the archived cells of one column, indexed by row.
// Rows whose cell was missing are absent from the map.
func (db *DB) ColumnValues(ctx context.Context, runID, column string) (map[int]table.Cell, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT row_index, text_value, num_value FROM prepared_values
		 WHERE run_id = ? AND column_name = ?`, runID, column)
	if err != nil {
		return nil, fmt.Errorf("failed to query values: %w", err)
	}
	defer rows.Close()

	out := make(map[int]table.Cell)
	for rows.Next() {
		var i int
		var text sql.NullString
		var num sql.NullFloat64
		if err := rows.Scan(&i, &text, &num); err != nil {
			return nil, fmt.Errorf("failed to scan value: %w", err)
		}
		if num.Valid {
			out[i] = table.Number(num.Float64)
		} else {
			out[i] = table.Text(text.String)
		}
	}
	return out, rows.Err()
}
