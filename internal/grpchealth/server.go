// Package grpchealth exposes the standard gRPC health service so
// orchestrators can health-check a running annotator without speaking HTTP.
package grpchealth

import (
	"errors"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthgrpc "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health key reported alongside the overall "" status.
const ServiceName = "cunit.Annotator"

type Server struct {
	grpc   *grpc.Server
	health *health.Server
	logger *slog.Logger
}

// New registers the health service. Both statuses start NOT_SERVING.
func New(logger *slog.Logger) *Server {
	s := &Server{
		grpc:   grpc.NewServer(),
		health: health.NewServer(),
		logger: logger,
	}
	healthgrpc.RegisterHealthServer(s.grpc, s.health)
	s.SetServing(false)
	return s
}

// SetServing flips the overall and annotator statuses together.
func (s *Server) SetServing(serving bool) {
	status := healthgrpc.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthgrpc.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Serve blocks until Stop. A stopped server is not an error.
func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("gRPC health listening", "addr", lis.Addr().String())
	if err := s.grpc.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// Stop marks the service NOT_SERVING and stops gracefully, forcing the stop
// after timeout.
func (s *Server) Stop(timeout time.Duration) {
	s.SetServing(false)

	stopped := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(timeout):
		s.logger.Warn("graceful stop timed out, forcing stop")
		s.grpc.Stop()
	}
}
