package grpc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type stubDB struct {
	err error
}

func (s *stubDB) HealthCheck(context.Context) error {
	return s.err
}

func check(t *testing.T, s *GRPCServer, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := s.health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestProbeTracksDatabase(t *testing.T) {
	db := &stubDB{}
	s := NewGRPCServer(db, nil)

	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, s.probe(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, s, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, s, ServiceName))

	db.err = errors.New("connection refused")
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, s.probe(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, s, ServiceName))
}

func TestProbeWithoutDatabase(t *testing.T) {
	s := NewGRPCServer(nil, nil)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, s.probe(context.Background()))
}

func TestUnaryInterceptorPassesThrough(t *testing.T) {
	s := NewGRPCServer(nil, nil)
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	resp, err := s.unaryInterceptor(context.Background(), "req", info,
		func(ctx context.Context, req any) (any, error) {
			return "resp", nil
		})
	require.NoError(t, err)
	assert.Equal(t, "resp", resp)
}
