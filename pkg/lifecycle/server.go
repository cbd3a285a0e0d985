// Package lifecycle handles process startup and bounded shutdown for
// the layer's long-running services.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	ShutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
)

// Service defines the interface that all services must implement.
type Service interface {
	Start(context.Context) error
	Stop(context.Context) error
}

// ServerOptions holds configuration for creating a server.
type ServerOptions struct {
	ServiceName    string
	HTTPAddr       string
	Handler        http.Handler
	GRPCHealthAddr string
	Service        Service
}

// RunServer starts a service with the provided options and handles
// lifecycle. It blocks until a signal arrives, the context is
// canceled, or a component fails.
func RunServer(ctx context.Context, opts *ServerOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Printf("*** Starting service %s", opts.ServiceName)

	errChan := make(chan error, 1)

	go func() {
		if err := opts.Service.Start(ctx); err != nil {
			select {
			case errChan <- err:
			default:
				log.Printf("Service error: %v", err)
			}
		}
	}()

	httpServer := startHTTPServer(opts, errChan)

	grpcServer, err := startGRPCHealthServer(opts, errChan)
	if err != nil {
		return err
	}

	return handleShutdown(ctx, cancel, httpServer, grpcServer, opts.Service, errChan)
}

func startHTTPServer(opts *ServerOptions, errChan chan error) *http.Server {
	if opts.Handler == nil {
		return nil
	}

	server := &http.Server{
		Addr:              opts.HTTPAddr,
		Handler:           opts.Handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Printf("Starting HTTP server on %s", opts.HTTPAddr)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case errChan <- err:
			default:
				log.Printf("HTTP server error: %v", err)
			}
		}
	}()

	return server
}

// startGRPCHealthServer exposes a standard gRPC health endpoint so
// orchestrators can probe the process without touching the data API.
func startGRPCHealthServer(opts *ServerOptions, errChan chan error) (*grpc.Server, error) {
	if opts.GRPCHealthAddr == "" {
		return nil, nil
	}

	listener, err := net.Listen("tcp", opts.GRPCHealthAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", opts.GRPCHealthAddr, err)
	}

	server := grpc.NewServer()

	hs := health.NewServer()
	hs.SetServingStatus(opts.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, hs)

	go func() {
		log.Printf("Starting gRPC health server on %s", opts.GRPCHealthAddr)

		if err := server.Serve(listener); err != nil {
			select {
			case errChan <- err:
			default:
				log.Printf("gRPC health server error: %v", err)
			}
		}
	}()

	return server, nil
}

func handleShutdown(
	ctx context.Context,
	cancel context.CancelFunc,
	httpServer *http.Server,
	grpcServer *grpc.Server,
	svc Service,
	errChan chan error,
) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var runErr error

	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, initiating shutdown", sig)
	case err := <-errChan:
		log.Printf("Received error: %v, initiating shutdown", err)

		runErr = fmt.Errorf("service error: %w", err)
	case <-ctx.Done():
		log.Printf("Context canceled, initiating shutdown")

		runErr = ctx.Err()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer shutdownCancel()

	cancel()

	if httpServer != nil {
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during HTTP server shutdown: %v", err)
		}
	}

	if grpcServer != nil {
		grpcServer.GracefulStop()
	}

	if err := svc.Stop(shutdownCtx); err != nil {
		log.Printf("Error during service shutdown: %v", err)

		if runErr == nil {
			runErr = fmt.Errorf("shutdown error: %w", err)
		}
	}

	return runErr
}
