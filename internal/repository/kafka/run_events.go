package kafka

import (
	"context"

	"github.com/NordCoder/Runboard/internal/domain/kafka"
	"github.com/NordCoder/Runboard/internal/domain/run"
)

type RunEventsKafka struct {
	p *Producer
}

func NewRunEventsKafka(p *Producer) *RunEventsKafka { return &RunEventsKafka{p: p} }

var _ kafka.RunEvents = (*RunEventsKafka)(nil)

// PublishRunResult keys the message by run id so every update of one run
// lands on the same partition.
func (e *RunEventsKafka) PublishRunResult(ctx context.Context, res run.Result) error {
	return e.p.PublishJSON(ctx, []byte(res.Run.ID), res)
}
