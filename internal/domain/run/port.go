package run

import "context"

type Repo interface {
	List(ctx context.Context) ([]Run, error)
	GetByID(ctx context.Context, id string) (*Run, error)
	Upsert(ctx context.Context, r *Run) error
}

type StepRepo interface {
	ListByRun(ctx context.Context, runID string) ([]Step, error)
	ReplaceForRun(ctx context.Context, runID string, steps []Step) error
}
