/*
main.go - Application entry point

PURPOSE:
  Starts the fuel record book: opens both storage backends, reconciles
  them into the startup snapshot, builds the Book, and serves the local
  API with periodic autosave and a final flush on shutdown.

STARTUP SEQUENCE:
  1. Load configuration (.env + environment), apply flag overrides
  2. Open the SQLite durable store and the JSON backup store
  3. ReconcilingStore.Load() -> startup snapshot
  4. Build the Book and HTTP router
  5. Start the autosave ticker and the server

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Stop the autosave ticker
  3. Final Save() so nothing recorded after the last tick is lost
  4. Close the database

FLAGS (override environment):
  -port    HTTP server port
  -db      SQLite database path (":memory:" works for scratch runs)
  -backup  Backup directory

SEE ALSO:
  - config/config.go: Environment configuration
  - store/reconcile.go: Startup reconciliation
*/
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anshuonline/fuel-record-management/api"
	"github.com/anshuonline/fuel-record-management/config"
	"github.com/anshuonline/fuel-record-management/ledger"
	"github.com/anshuonline/fuel-record-management/store"
	"github.com/anshuonline/fuel-record-management/store/backup"
	"github.com/anshuonline/fuel-record-management/store/sqlite"
)

func main() {
	cfg := config.Load()

	port := flag.String("port", cfg.HTTPPort, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	backupDir := flag.String("backup", cfg.BackupDir, "backup directory")
	flag.Parse()

	ledger.DefaultPerLiterDiscount = cfg.PerLiterDiscount

	durable, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open durable store: %v", err)
	}
	defer durable.Close()

	mirror, err := backup.New(*backupDir)
	if err != nil {
		log.Fatalf("Failed to open backup store: %v", err)
	}

	reconciler := store.NewReconcilingStore(durable, mirror)
	book := ledger.NewBook(reconciler.Load(context.Background()), reconciler)

	saver := api.NewAutoSaver(book, cfg.AutoSaveInterval)
	saver.Start()

	router := api.NewRouter(api.NewHandler(book))
	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Fuel record book listening on http://localhost:%s", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	saver.Stop()
	if err := book.Save(ctx); err != nil {
		log.Printf("Final save failed: %v", err)
	}

	log.Println("Stopped")
}
