package main

import (
	"log"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const healthServiceName = "storefront"

type healthServer struct {
	grpc   *grpc.Server
	status *health.Server
	addr   net.Addr
}

// startHealth serves grpc.health.v1 on addr. An empty addr disables it.
func startHealth(addr string) (*healthServer, error) {
	if addr == "" {
		return nil, nil
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	srv := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(healthServiceName, healthpb.HealthCheckResponse_SERVING)

	go func() {
		if err := srv.Serve(lis); err != nil {
			log.Printf("[health] grpc serve stopped: %v", err)
		}
	}()
	log.Printf("[health] grpc health listening on %s", lis.Addr())
	return &healthServer{grpc: srv, status: hs, addr: lis.Addr()}, nil
}

// Stop reports NOT_SERVING to watchers, then stops the server.
func (h *healthServer) Stop() {
	if h == nil {
		return
	}
	h.status.Shutdown()
	h.grpc.GracefulStop()
}
