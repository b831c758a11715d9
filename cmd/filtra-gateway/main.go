// Package main is the entrypoint for the filtra gateway server.
// The gateway accepts check requests, resolves exercises against the
// workspace catalog, runs the checker, and records every attempt.
//
// Per docs/plan.md:
//   - "Accept check requests, resolve names, forward to the checker"
//   - "Explicitly does NOT: mutate the workspace at runtime"
//   - "Gateway startup fails if the attempt store is unavailable"
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/filtra-labs/filtra/internal/bootstrap"
	"github.com/filtra-labs/filtra/internal/gateway"
	"github.com/filtra-labs/filtra/internal/observability"
	"github.com/filtra-labs/filtra/internal/storage"
)

var (
	version = "0.1.0"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "filtra-gateway: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		addr          = flag.String("addr", ":8080", "HTTP listen address")
		workspacePath = flag.String("workspace", "", "workspace YAML file (required)")
		dbPath        = flag.String("db", "", "SQLite attempt database path (required in production)")
		showHelp      = flag.Bool("help", false, "Show help message")
		showVer       = flag.Bool("version", false, "Show version")
		devMode       = flag.Bool("dev", false, "Development mode (allows in-memory attempt store)")
	)
	flag.Parse()

	if *showHelp {
		flag.Usage()
		return nil
	}

	if *showVer {
		fmt.Printf("filtra-gateway %s (commit: %s, built: %s)\n", version, commit, date)
		return nil
	}

	if *workspacePath == "" {
		*workspacePath = os.Getenv("FILTRA_WORKSPACE")
		if *workspacePath == "" {
			return fmt.Errorf("workspace required: use -workspace flag or FILTRA_WORKSPACE env var")
		}
	}

	if *dbPath == "" {
		*dbPath = os.Getenv("FILTRA_DATABASE_PATH")
	}

	// The gateway refuses to start without a durable attempt store,
	// unless in dev mode.
	if *dbPath == "" && !*devMode {
		return fmt.Errorf("attempt database required: use -db flag or FILTRA_DATABASE_PATH env var (use -dev for development mode)")
	}

	// Load the workspace: validate first, apply only a valid file.
	log.Printf("Loading workspace %s", *workspacePath)
	ws, err := bootstrap.LoadWorkspace(*workspacePath)
	if err != nil {
		return fmt.Errorf("failed to load workspace: %w", err)
	}
	if err := ws.Validate(); err != nil {
		return fmt.Errorf("workspace validation failed: %w", err)
	}
	cat, err := ws.Apply()
	if err != nil {
		return fmt.Errorf("failed to apply workspace: %w", err)
	}
	log.Printf("Workspace loaded: %d universes, %d filters, %d exercises",
		len(cat.UniverseNames()), len(cat.FilterNames()), len(cat.Exercises()))

	// Create the attempt repository.
	var repo storage.AttemptRepository
	if *dbPath != "" {
		db, err := storage.OpenDatabase(*dbPath)
		if err != nil {
			return fmt.Errorf("failed to open attempt database: %w", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("attempt database connectivity check failed: %w", err)
		}

		// Migrations run automatically on startup.
		log.Println("Running attempt store migrations...")
		if err := storage.NewMigrationRunner(db).Run(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		log.Println("Attempt store migrations completed")

		repo, err = storage.NewSQLiteRepository(db)
		if err != nil {
			return err
		}
		log.Printf("Attempt store opened at %s", *dbPath)
	} else {
		log.Println("WARNING: Development mode - using in-memory attempt store (not for production)")
		repo = storage.NewMockRepository()
	}

	// Every check is audited through the persistent logger.
	logger, err := observability.NewPersistentLoggerWithWriter(repo, os.Stdout)
	if err != nil {
		return fmt.Errorf("failed to create check logger: %w", err)
	}

	gw, err := gateway.NewGateway(cat, repo, logger, gateway.Config{
		Version: version,
	})
	if err != nil {
		return fmt.Errorf("failed to create gateway: %w", err)
	}

	server := &http.Server{
		Addr:         *addr,
		Handler:      gw,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Handle graceful shutdown
	done := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("Shutting down gateway...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
		close(done)
	}()

	log.Printf("Filtra gateway starting on %s", *addr)
	log.Printf("Version: %s, Commit: %s", version, commit)
	log.Printf("Health check: http://localhost%s/health", *addr)
	log.Printf("Readiness: http://localhost%s/ready", *addr)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	log.Println("Gateway stopped")
	return nil
}
