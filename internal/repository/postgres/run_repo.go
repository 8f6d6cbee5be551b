package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/NordCoder/Runboard/internal/domain/run"
	"github.com/jackc/pgx/v5"
)

var _ run.Repo = (*RunRepo)(nil)

type RunRepo struct{ db *DB }

func NewRunRepo(db *DB) *RunRepo { return &RunRepo{db: db} }

const (
	qRunUpsert = `
INSERT INTO runs (id, scenario, status, device_name, started_at, duration_sec)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE
SET scenario     = EXCLUDED.scenario,
    status       = EXCLUDED.status,
    device_name  = EXCLUDED.device_name,
    started_at   = EXCLUDED.started_at,
    duration_sec = EXCLUDED.duration_sec,
    updated_at   = NOW();
`
	qRunList = `
SELECT id, scenario, status, device_name, started_at, duration_sec
FROM runs
ORDER BY started_at DESC, id;
`
	qRunByID = `
SELECT id, scenario, status, device_name, started_at, duration_sec
FROM runs
WHERE id = $1;
`
)

func scanRun(row pgx.Row, r *run.Run) error {
	var status string
	if err := row.Scan(&r.ID, &r.Scenario, &status, &r.Device, &r.StartedAt, &r.DurationSec); err != nil {
		return mapErr(err)
	}
	r.Status = run.Status(status)
	return nil
}

func (r *RunRepo) Upsert(ctx context.Context, rr *run.Run) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	eq := r.db.execQueryer(ctx)
	if _, err := eq.Exec(ctx, qRunUpsert,
		rr.ID, rr.Scenario, string(rr.Status), rr.Device, rr.StartedAt, rr.DurationSec,
	); err != nil {
		return fmt.Errorf("upsert run: %w", mapErr(err))
	}
	return nil
}

func (r *RunRepo) List(ctx context.Context) ([]run.Run, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.execQueryer(ctx).Query(ctx, qRunList)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	out := make([]run.Run, 0, 64)
	for rows.Next() {
		var rr run.Run
		if err := scanRun(rows, &rr); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, rr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func (r *RunRepo) GetByID(ctx context.Context, id string) (*run.Run, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var rr run.Run
	if err := scanRun(r.db.execQueryer(ctx).QueryRow(ctx, qRunByID, id), &rr); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, run.ErrNotFound
		}
		return nil, err
	}
	return &rr, nil
}
