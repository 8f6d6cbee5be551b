package postgres

import (
	"context"
	"fmt"

	"github.com/NordCoder/Runboard/internal/domain/run"
	"github.com/jackc/pgx/v5"
)

var _ run.StepRepo = (*StepRepo)(nil)

type StepRepo struct{ db *DB }

func NewStepRepo(db *DB) *StepRepo { return &StepRepo{db: db} }

const (
	qStepsByRun = `
SELECT run_id, idx, status, llm_command, COALESCE(screenshot_url, '')
FROM run_steps
WHERE run_id = $1
ORDER BY idx;
`
	qStepsDelete = `DELETE FROM run_steps WHERE run_id = $1;`
)

func (r *StepRepo) ListByRun(ctx context.Context, runID string) ([]run.Step, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.execQueryer(ctx).Query(ctx, qStepsByRun, runID)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	out := []run.Step{}
	for rows.Next() {
		var (
			s      run.Step
			status string
			cmd    []byte
		)
		if err := rows.Scan(&s.RunID, &s.Index, &status, &cmd, &s.ScreenshotURL); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		s.Status = run.StepStatus(status)
		s.LLMCommand = cmd
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

// ReplaceForRun swaps the stored steps of runID for steps. Call it inside
// WithTx so readers never see a partial list.
func (r *StepRepo) ReplaceForRun(ctx context.Context, runID string, steps []run.Step) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	eq := r.db.execQueryer(ctx)
	if _, err := eq.Exec(ctx, qStepsDelete, runID); err != nil {
		return fmt.Errorf("delete steps: %w", err)
	}
	if len(steps) == 0 {
		return nil
	}

	tx, err := extractTx(ctx)
	if err != nil {
		return fmt.Errorf("replace steps: %w", err)
	}
	rowsSrc := make([][]any, 0, len(steps))
	for _, s := range steps {
		var cmd any
		if len(s.LLMCommand) > 0 {
			cmd = []byte(s.LLMCommand)
		}
		var shot any
		if s.ScreenshotURL != "" {
			shot = s.ScreenshotURL
		}
		rowsSrc = append(rowsSrc, []any{runID, s.Index, string(s.Status), cmd, shot})
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"run_steps"},
		[]string{"run_id", "idx", "status", "llm_command", "screenshot_url"},
		pgx.CopyFromRows(rowsSrc),
	); err != nil {
		return fmt.Errorf("copy steps: %w", mapErr(err))
	}
	return nil
}
