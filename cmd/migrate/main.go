// Command migrate manages the database schema.
//
// Usage:
//
//	migrate up                  apply all pending migrations
//	migrate down                roll back all migrations
//	migrate steps <n>           apply n migrations (negative rolls back)
//	migrate version             print the current schema version
//	migrate force <version>     set the version without running migrations
//	migrate create <name>       create a new migration file pair
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/dormlife/backend/internal/infrastructure/config"
	"github.com/dormlife/backend/internal/infrastructure/logger"
	"github.com/dormlife/backend/internal/infrastructure/migration"
	"go.uber.org/zap"
)

func main() {
	migrationsPath := flag.String("path", "migrations", "path to migration files")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(2)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{Level: "info", Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	// create needs no database connection
	if command == "create" {
		if len(args) < 2 {
			usage()
			os.Exit(2)
		}
		mf, err := migration.CreateMigration(*migrationsPath, args[1])
		if err != nil {
			log.Fatal("failed to create migration", zap.Error(err))
		}
		log.Info("migration created",
			zap.String("up", mf.UpPath),
			zap.String("down", mf.DownPath),
		)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	migrator, err := migration.NewFromURL(cfg.Database.DSN(), *migrationsPath, log)
	if err != nil {
		log.Fatal("failed to create migrator", zap.Error(err))
	}
	defer migrator.Close() //nolint:errcheck

	switch command {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Down()
	case "steps":
		if len(args) < 2 {
			usage()
			os.Exit(2)
		}
		var n int
		n, err = strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("steps requires an integer argument", zap.String("got", args[1]))
		}
		err = migrator.Steps(n)
	case "version":
		var v uint
		var dirty bool
		v, dirty, err = migrator.Version()
		if err == nil {
			log.Info("schema version", zap.Uint("version", v), zap.Bool("dirty", dirty))
		}
	case "force":
		if len(args) < 2 {
			usage()
			os.Exit(2)
		}
		var v int
		v, err = strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("force requires an integer argument", zap.String("got", args[1]))
		}
		err = migrator.Force(v)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal("migration command failed", zap.String("command", command), zap.Error(err))
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: migrate [-path dir] <command>

commands:
  up                apply all pending migrations
  down              roll back all migrations
  steps <n>         apply n migrations (negative rolls back)
  version           print the current schema version
  force <version>   set the version without running migrations
  create <name>     create a new migration file pair`)
}
