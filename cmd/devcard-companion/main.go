// Package main runs the DevCard Companion server: a local REST API over
// the developer card collection, with GitHub and image proxies for the
// card renderer.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/devcardhq/devcard-companion/internal/api"
	"github.com/devcardhq/devcard-companion/internal/app"
	"github.com/devcardhq/devcard-companion/internal/config"
	"github.com/devcardhq/devcard-companion/internal/github"
	"github.com/devcardhq/devcard-companion/internal/storage"
	"github.com/devcardhq/devcard-companion/internal/version"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	dbPath      = flag.String("db-path", "", "Database path (default: ~/.devcard-companion/data.db)")
	openBrowser = flag.Bool("open-browser", false, "Open the frontend in a browser on startup")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("devcard-companion %s\n", version.GetVersion())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Flags override the config file
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *openBrowser {
		cfg.Server.OpenBrowser = true
	}

	fmt.Println("DevCard Companion")
	fmt.Println("=================")
	fmt.Println()

	// Setup database path
	finalDBPath := cfg.Database.Path
	if finalDBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}
		finalDBPath = filepath.Join(home, ".devcard-companion", "data.db")
	}
	fmt.Printf("Database: %s\n", finalDBPath)

	// Open database
	dbConfig := storage.DefaultConfig(finalDBPath)
	dbConfig.AutoMigrate = true
	db, err := storage.Open(dbConfig)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	storageService := storage.NewService(db)
	defer func() {
		if err := storageService.Close(); err != nil {
			log.Printf("Error closing storage service: %v", err)
		}
	}()

	// GitHub client for card syncing
	fetcher := github.NewClient(&github.Config{
		BaseURL: cfg.GitHub.BaseURL,
		Token:   cfg.GitHub.Token,
	})

	services := app.NewServices(storageService, fetcher)
	facades := &api.Facades{
		Projects: app.NewProjectFacade(services),
		Stats:    app.NewStatsFacade(services),
		Backup:   storage.NewBackupManager(storageService.CollectionRepo()),
	}

	// Create API server
	apiConfig := &api.Config{
		Port:            cfg.Server.Port,
		OpenBrowser:     cfg.Server.OpenBrowser,
		FrontendURL:     cfg.Server.FrontendURL,
		GitHubBaseURL:   cfg.GitHub.BaseURL,
		GitHubToken:     cfg.GitHub.Token,
		ExtraImageHosts: cfg.Proxy.ExtraImageHosts,
		BackupDir:       filepath.Join(filepath.Dir(finalDBPath), "backups"),
	}
	server := api.NewServer(apiConfig, facades)

	if err := server.Start(); err != nil {
		log.Fatalf("Failed to start API server: %v", err)
	}

	fmt.Println()
	fmt.Printf("API server running at http://localhost:%d\n", server.Port())
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	// Reload config-driven settings while running. Only debug mode is
	// hot-swappable today; server and database changes need a restart.
	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	if path, err := config.Path(); err == nil {
		go func() {
			_ = config.Watch(watchCtx, path, func(updated *config.Config) {
				if updated.App.DebugMode != cfg.App.DebugMode {
					cfg.App.DebugMode = updated.App.DebugMode
					log.Printf("Debug mode set to %v", cfg.App.DebugMode)
				}
			})
		}()
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println()
	fmt.Println("Shutting down...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	fmt.Println("API server stopped.")
}
