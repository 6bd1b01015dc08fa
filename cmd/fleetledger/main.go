package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/jask/fleetledger/internal/cache"
	"github.com/jask/fleetledger/internal/config"
	"github.com/jask/fleetledger/internal/database"
	"github.com/jask/fleetledger/internal/database/repository"
	"github.com/jask/fleetledger/internal/httpapi"
	"github.com/jask/fleetledger/internal/ledger"
	"github.com/jask/fleetledger/internal/tui"
)

func main() {
	serve := flag.Bool("serve", false, "serve the ledger over HTTP instead of the terminal UI")
	seedDemo := flag.Bool("seed-demo", false, "insert sample transactions into an empty table")
	refreshRef := flag.Bool("refresh-reference", false, "drop the cached vehicle list before starting")
	reset := flag.Bool("reset", false, "delete every transaction, keeping the fleet tables")
	flag.Parse()

	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warn: .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if cfg.Database.Driver == "sqlite" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			log.Fatalf("mkdir db dir: %v", err)
		}
	}

	if err := database.RunMigrations(cfg.Database); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, dialect, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.SeedDefaults(ctx, db, dialect); err != nil {
		log.Fatalf("seed defaults: %v", err)
	}
	if *reset {
		if err := database.ResetLedger(ctx, db, dialect); err != nil {
			log.Fatalf("reset: %v", err)
		}
	}
	if *seedDemo {
		if err := database.SeedDemo(ctx, db, dialect); err != nil {
			log.Fatalf("seed demo: %v", err)
		}
	}

	opts := ledger.Options{StrictInput: cfg.Ledger.StrictInput}
	if cfg.Cache.RedisURL != "" {
		vc, err := cache.Open(cfg.Cache.RedisURL, cfg.Cache.VehicleTTL, nil)
		if err != nil {
			log.Printf("warn: continuing without cache: %v", err)
		} else {
			defer vc.Close()
			if *refreshRef {
				if err := vc.Invalidate(ctx); err != nil {
					log.Printf("warn: refresh reference: %v", err)
				}
			}
			opts.Cache = vc
		}
	}

	l := ledger.New(repository.NewTransactionRepo(db, dialect), repository.NewVehicleRepo(db, dialect), opts)

	if *serve {
		if err := l.LoadReference(ctx); err != nil {
			log.Printf("warn: %v", err)
		}
		if err := l.Load(ctx); err != nil {
			log.Printf("warn: %v", err)
		}
		log.Printf("listening on %s", cfg.HTTP.Addr)
		if err := httpapi.NewRouter(l, cfg).Run(cfg.HTTP.Addr); err != nil {
			log.Fatalf("serve: %v", err)
		}
		return
	}

	if cfg.Log.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.Path), 0o755); err != nil {
			log.Fatalf("mkdir log dir: %v", err)
		}
		f, err := tea.LogToFile(cfg.Log.Path, "fleetledger")
		if err != nil {
			log.Fatalf("log file: %v", err)
		}
		defer f.Close()
	}

	p := tea.NewProgram(tui.New(ctx, cfg, l), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
