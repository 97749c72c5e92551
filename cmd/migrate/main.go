// Command migrate applies or inspects the database schema.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"aihub/internal/config"
	"aihub/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate <up|status>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dialector, err := database.Dialector(cfg)
	if err != nil {
		return err
	}
	db, err := database.Open(dialector)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(flag.Arg(0))) {
	case "up":
		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Println("migrations applied")
	case "status":
		status, err := database.SchemaStatus(db)
		if err != nil {
			return fmt.Errorf("schema status failed: %w", err)
		}
		missing := 0
		for _, s := range status {
			state := "present"
			if !s.Exists {
				state = "missing"
				missing++
			}
			log.Printf("%-16s %s", s.Table, state)
		}
		log.Printf("driver=%s env=%s tables=%d missing=%d", cfg.DBDriver, cfg.Env, len(status), missing)
	default:
		return usage()
	}

	return nil
}
