// Package health keeps the gRPC health status in line with the data source.
package health

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const Service = "runboard.Dashboard"

type Pinger interface {
	Ping(ctx context.Context) error
}

type Prober struct {
	log      *zap.Logger
	src      Pinger
	srv      *health.Server
	interval time.Duration
	timeout  time.Duration
}

func NewProber(log *zap.Logger, src Pinger, srv *health.Server, interval time.Duration) *Prober {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Prober{
		log:      log.With(zap.String("component", "health")),
		src:      src,
		srv:      srv,
		interval: interval,
		timeout:  min(interval, time.Second),
	}
}

// Check pings the source once and publishes the result for the overall
// server and for Service.
func (p *Prober) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	pctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := p.src.Ping(pctx); err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
		p.log.Warn("source unhealthy", zap.Error(err))
	}
	p.srv.SetServingStatus("", status)
	p.srv.SetServingStatus(Service, status)
	return status
}

// Run probes until ctx is done, then marks everything NOT_SERVING.
func (p *Prober) Run(ctx context.Context) {
	t := time.NewTicker(p.interval)
	defer t.Stop()

	p.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			p.srv.Shutdown()
			return
		case <-t.C:
			p.Check(ctx)
		}
	}
}
