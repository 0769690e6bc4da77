// Package db stores evaluation reports in PostgreSQL.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	jsoniter "github.com/json-iterator/go"

	"github.com/udisondev/dfocalc/internal/engine"
)

// ErrNotFound is returned when no report exists for a character.
var ErrNotFound = errors.New("db: report not found")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// upsertReportSQL is shared by the single and batch save paths.
const upsertReportSQL = `INSERT INTO evaluations (server_id, character_id, character_name, fingerprint, job, mode, report)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (server_id, character_id, fingerprint) DO UPDATE
	SET character_name = EXCLUDED.character_name,
	    job = EXCLUDED.job,
	    mode = EXCLUDED.mode,
	    report = EXCLUDED.report,
	    created_at = now()`

// DB wraps a pgx connection pool for report storage.
type DB struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and returns a DB handle.
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &DB{pool: pool}, nil
}

// Close closes the database connection pool.
func (d *DB) Close() {
	d.pool.Close()
}

// StoredReport is a report together with its row metadata.
type StoredReport struct {
	ID        int64
	CreatedAt time.Time
	Report    engine.Report
}

// SaveReport upserts rep keyed by server, character and fingerprint, so
// re-evaluating an unchanged bundle replaces its row. Returns the row id.
func (d *DB) SaveReport(ctx context.Context, rep engine.Report) (int64, error) {
	payload, err := json.Marshal(rep)
	if err != nil {
		return 0, fmt.Errorf("encoding report for %s/%s: %w", rep.ServerID, rep.CharacterID, err)
	}

	var id int64
	err = d.pool.QueryRow(ctx,
		upsertReportSQL+" RETURNING id",
		rep.ServerID, rep.CharacterID, rep.CharacterName, rep.Fingerprint, rep.Job, rep.Mode, payload,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("saving report for %s/%s: %w", rep.ServerID, rep.CharacterID, err)
	}
	return id, nil
}

// SaveReports stores all reports in one transaction.
func (d *DB) SaveReports(ctx context.Context, reps []engine.Report) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	batch := &pgx.Batch{}
	for _, rep := range reps {
		payload, err := json.Marshal(rep)
		if err != nil {
			return fmt.Errorf("encoding report for %s/%s: %w", rep.ServerID, rep.CharacterID, err)
		}
		batch.Queue(
			upsertReportSQL,
			rep.ServerID, rep.CharacterID, rep.CharacterName, rep.Fingerprint, rep.Job, rep.Mode, payload,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("saving %d reports: %w", len(reps), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing reports: %w", err)
	}
	return nil
}

// LatestReport returns the most recent report of a character.
func (d *DB) LatestReport(ctx context.Context, serverID, characterID string) (StoredReport, error) {
	var (
		out     StoredReport
		payload []byte
	)
	err := d.pool.QueryRow(ctx,
		`SELECT id, created_at, report FROM evaluations
		 WHERE server_id = $1 AND character_id = $2
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`,
		serverID, characterID,
	).Scan(&out.ID, &out.CreatedAt, &payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return out, ErrNotFound
		}
		return out, fmt.Errorf("querying report for %s/%s: %w", serverID, characterID, err)
	}

	if err := json.Unmarshal(payload, &out.Report); err != nil {
		return out, fmt.Errorf("decoding report %d: %w", out.ID, err)
	}
	return out, nil
}
