package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"
)

func BootstrapConsumer(ctx context.Context, cfg *ConsumerConfig, spec TopicSpec, logger *zap.Logger) *Consumer {
	spec.Name = cfg.Topic
	if spec.MaxWait <= 0 {
		spec.MaxWait = 5 * time.Second
	}
	if err := EnsureTopic(ctx, cfg.Brokers, spec, logger); err != nil {
		logger.Warn("ensure topic", zap.String("topic", cfg.Topic), zap.Error(err))
	}
	if cfg.Logger == nil {
		cfg.Logger = logger
	}
	return NewConsumer(cfg)
}

func BootstrapProducer(ctx context.Context, brokers []string, spec TopicSpec, logger *zap.Logger) *Producer {
	if err := EnsureTopic(ctx, brokers, spec, logger); err != nil {
		logger.Warn("ensure topic", zap.String("topic", spec.Name), zap.Error(err))
	}
	return NewProducer(brokers, spec.Name).WithLogger(logger)
}
