package grpc

import (
	"context"
	"time"

	"rental-ops-backend/internal/logger"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported for the console API.
const ServiceName = "rentalops.console"

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthChecker keeps the gRPC health status in line with database reachability.
type HealthChecker struct {
	server   *health.Server
	db       Pinger
	interval time.Duration
}

func NewHealthChecker(db Pinger, interval time.Duration) *HealthChecker {
	return &HealthChecker{
		server:   health.NewServer(),
		db:       db,
		interval: interval,
	}
}

// Server returns the health server to register with a grpc.Server.
func (h *HealthChecker) Server() *health.Server {
	return h.server
}

// Check pings the database once and updates both the overall and the console status.
func (h *HealthChecker) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := h.db.PingContext(ctx); err != nil {
		logger.Warn("database ping failed", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.server.SetServingStatus("", status)
	h.server.SetServingStatus(ServiceName, status)
	return status
}

// Run checks immediately and then on every interval until ctx is done, at which
// point all services are marked not serving.
func (h *HealthChecker) Run(ctx context.Context) {
	h.Check(ctx)
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			h.server.Shutdown()
			return
		case <-ticker.C:
			h.Check(ctx)
		}
	}
}
