package kafka

import (
	"context"

	"github.com/NordCoder/Runboard/internal/domain/run"
)

type RunEvents interface {
	PublishRunResult(ctx context.Context, res run.Result) error
}
