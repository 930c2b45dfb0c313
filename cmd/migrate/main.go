// Command migrate applies or inspects the database schema. Production
// servers do not migrate on start, so deployments run "migrate up" first.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"forum/internal/config"
	"forum/internal/database"
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

	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{ApplySchema: false})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(flag.Arg(0))) {
	case "up":
		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Println("schema applied")
	case "status":
		status, err := database.SchemaStatus(db)
		if err != nil {
			return fmt.Errorf("schema status failed: %w", err)
		}
		for _, ts := range status {
			state := "present"
			if !ts.Exists {
				state = "missing"
			}
			log.Printf("%-16s %s", ts.Table, state)
		}
		if database.Pending(status) {
			log.Println("schema incomplete: run migrate up")
		}
	default:
		return usage()
	}
	return nil
}
