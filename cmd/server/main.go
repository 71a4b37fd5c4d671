// Command main is the entry point for the Kindred backend server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"kindred/internal/config"
	"kindred/internal/observability"
	"kindred/internal/server"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize distributed tracing
	shutdownTracing, err := observability.InitTracing(tracingConfigFromEnv(cfg))
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	// Create server with dependency injection
	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server resource shutdown error: %v", err)
		}
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("Tracing shutdown error: %v", err)
		}
	}()

	log.Fatal(srv.Start())
}

// tracingConfigFromEnv builds the tracing configuration from OTEL_*
// environment variables so deployments can enable tracing without a
// config file change.
func tracingConfigFromEnv(cfg *config.Config) observability.TracingConfig {
	ratio := 1.0
	if raw := os.Getenv("OTEL_SAMPLER_RATIO"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			ratio = parsed
		}
	}

	return observability.TracingConfig{
		ServiceName:    "kindred-api",
		ServiceVersion: os.Getenv("APP_VERSION"),
		Environment:    cfg.Env,
		Enabled:        os.Getenv("OTEL_TRACING_ENABLED") == "true",
		Exporter:       os.Getenv("OTEL_EXPORTER"),
		OTLPEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		SamplerRatio:   ratio,
	}
}
