package retry

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

type Config struct {
	Attempts  int           `mapstructure:"attempts"`
	BaseDelay time.Duration `mapstructure:"base_delay"`
	MaxDelay  time.Duration `mapstructure:"max_delay"`
	Jitter    float64       `mapstructure:"jitter"`
}

type permanentError struct{ err error }

func (p permanentError) Error() string { return p.err.Error() }
func (p permanentError) Unwrap() error { return p.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err: err}
}

func IsPermanent(err error) bool {
	var p permanentError
	return errors.As(err, &p)
}

// DefaultStorePolicy retries storage writes until they succeed, the error is
// Permanent or the context is canceled.
func DefaultStorePolicy(name string, cfg Config, log *zap.Logger) Policy {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Attempts <= 0 {
		cfg.Attempts = 5
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 200 * time.Millisecond
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 10 * time.Second
	}
	return Policy{
		Name:     name,
		Attempts: cfg.Attempts,
		Backoff:  ExpoJitter{Base: cfg.BaseDelay, Max: cfg.MaxDelay, Jitter: cfg.Jitter},
		Retryable: func(err error) bool {
			return err != nil && !IsPermanent(err) &&
				!errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		},
		OnAttempt: func(i int, err error) {
			log.Warn("retry", zap.String("op", name), zap.Int("attempt", i+1), zap.Error(err))
		},
		OnExhaust: func(err error) {
			if !errors.Is(err, context.Canceled) && !IsPermanent(err) {
				log.Error("retries exhausted", zap.String("op", name), zap.Error(err))
			}
		},
	}
}
