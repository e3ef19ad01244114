package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignite/campaign-planner/internal/agent"
	"github.com/ignite/campaign-planner/internal/api"
	"github.com/ignite/campaign-planner/internal/config"
	"github.com/ignite/campaign-planner/internal/orchestrator"
)

// checkPortAvailable verifies that the target port is not already in use.
// This prevents confusion from stale processes occupying the port.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v\n"+
			"  Hint: Run 'lsof -i :%d' to find the blocking process", port, addr, err, port)
	}
	ln.Close()
	return nil
}

func main() {
	log.Println("Starting Campaign Planner API server...")

	// Load configuration
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Pre-flight check: verify the target port is available
	if err := checkPortAvailable(cfg.Server.Host, cfg.Server.Port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}
	log.Printf("Pre-flight check passed: port %d is available", cfg.Server.Port)

	// Initialize the reasoning capability
	capability := agent.FromConfig(context.Background(),
		cfg.Agent.Provider, cfg.Agent.OpenAIAPIKey, cfg.Agent.OpenAIModel, cfg.Agent.BedrockModelID)
	if capability.Enabled() {
		log.Printf("AI agent initialized (provider: %s)", capability.Name())
	} else {
		log.Println("AI agent not configured - planner and analyzer use deterministic fallbacks")
	}

	// Initialize the campaign orchestrator
	orch, err := orchestrator.New(cfg, capability)
	if err != nil {
		log.Fatalf("Failed to initialize orchestrator: %v", err)
	}
	log.Printf("Orchestrator initialized (outputs: %s)", orch.OutputDir())

	router := api.SetupRoutes(api.NewHandlers(orch))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	log.Println("All services initialized, server is ready")

	<-done
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
