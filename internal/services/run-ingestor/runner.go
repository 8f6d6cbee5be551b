package run_ingestor

import (
	"context"
	"errors"

	"github.com/NordCoder/Runboard/internal/domain"
	"github.com/NordCoder/Runboard/internal/domain/run"
	kafkax "github.com/NordCoder/Runboard/internal/repository/kafka"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	mConsumed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ingestor_messages_consumed_total", Help: "Run result messages consumed",
	})
	mIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ingestor_runs_ingested_total", Help: "Runs stored",
	})
	mRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ingestor_runs_rejected_total", Help: "Runs rejected as invalid",
	}, []string{"kind"})
	mFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ingestor_runs_failed_total", Help: "Runs that could not be stored",
	})
)

type Subscriber interface {
	Consume(ctx context.Context, h kafkax.Handler) error
}

type Runner struct {
	log *zap.Logger
	sub Subscriber
	h   *Handler
}

func NewRunner(log *zap.Logger, sub Subscriber, h *Handler) *Runner {
	return &Runner{log: log.With(zap.String("component", "run-ingestor")), sub: sub, h: h}
}

// Run consumes until ctx is done. Invalid results are logged, counted and
// committed; storage failures stay uncommitted.
func (r *Runner) Run(ctx context.Context) error {
	handler := kafkax.JSONHandler(func(ctx context.Context, key []byte, res *run.Result) error {
		mConsumed.Inc()
		return r.handle(ctx, key, res)
	})

	if err := r.sub.Consume(ctx, handler); err != nil && !errors.Is(err, context.Canceled) {
		r.log.Warn("kafka consume", zap.Error(err))
		return err
	}
	return ctx.Err()
}

func (r *Runner) handle(ctx context.Context, key []byte, res *run.Result) error {
	err := r.h.HandleResult(ctx, key, res)
	switch {
	case err == nil:
		mIngested.Inc()
		r.log.Debug("run ingested",
			zap.String("run_id", res.Run.ID),
			zap.String("status", string(res.Run.Status)),
			zap.Int("steps", len(res.Steps)))
		return nil
	case domain.IsValidation(err):
		var ve *domain.ValidationError
		errors.As(err, &ve)
		mRejected.WithLabelValues(ve.Kind).Inc()
		r.log.Warn("run rejected", zap.String("run_id", res.Run.ID), zap.Error(err))
		return nil
	default:
		mFailed.Inc()
		r.log.Error("run not stored", zap.String("run_id", res.Run.ID), zap.Error(err))
		return err
	}
}
