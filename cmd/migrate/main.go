package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/qrdine/backend/internal/infrastructure/config"
	"github.com/qrdine/backend/internal/infrastructure/logger"
	"github.com/qrdine/backend/internal/infrastructure/migration"
	"github.com/qrdine/backend/migrations"
	"go.uber.org/zap"
)

const defaultMigrationsDir = "migrations"

var errUsage = errors.New("invalid arguments")

// dbCommand runs against a live database
type dbCommand struct {
	usage string
	args  int
	run   func(m *migration.Migrator, log *zap.Logger, args []string) error
}

var dbCommands = map[string]dbCommand{
	"up": {"up", 0, func(m *migration.Migrator, _ *zap.Logger, _ []string) error {
		return m.Up()
	}},
	"down": {"down", 0, func(m *migration.Migrator, _ *zap.Logger, _ []string) error {
		return m.Down()
	}},
	"step": {"step <n>", 1, func(m *migration.Migrator, _ *zap.Logger, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: step count %q", errUsage, args[0])
		}
		return m.Steps(n)
	}},
	"goto": {"goto <version>", 1, func(m *migration.Migrator, _ *zap.Logger, args []string) error {
		v, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("%w: version %q", errUsage, args[0])
		}
		return m.GoTo(uint(v))
	}},
	"force": {"force <version>", 1, func(m *migration.Migrator, _ *zap.Logger, args []string) error {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: version %q", errUsage, args[0])
		}
		return m.Force(v)
	}},
	"version": {"version", 0, func(m *migration.Migrator, log *zap.Logger, _ []string) error {
		st, err := m.Status()
		if err != nil {
			return err
		}
		if !st.Applied {
			log.Info("No migrations applied")
			return nil
		}
		log.Info("Current migration version", zap.Uint("version", st.Version), zap.Bool("dirty", st.Dirty))
		return nil
	}},
}

func main() {
	migrationsPath := flag.String("path", "", "Read migrations from this directory instead of the embedded set")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(2)
	}

	log, err := logger.New(logger.Config{
		Level:      *logLevel,
		Format:     "console",
		TimeFormat: "2006-01-02 15:04:05",
		Service:    "qrdine-migrate",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	var source fs.FS = migrations.FS
	if *migrationsPath != "" {
		source = os.DirFS(*migrationsPath)
	}

	command, rest := args[0], args[1:]
	switch command {
	case "create":
		if len(rest) < 1 {
			log.Fatal("Migration name required. Usage: migrate create <name>")
		}
		dir := *migrationsPath
		if dir == "" {
			dir = defaultMigrationsDir
		}
		createMigration(log, dir, rest[0])
		return
	case "list":
		listMigrations(log, source)
		return
	}

	cmd, ok := dbCommands[command]
	if !ok {
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(2)
	}
	if len(rest) < cmd.args {
		log.Fatal("Missing argument", zap.String("usage", "migrate "+cmd.usage))
	}

	if err := runDBCommand(cmd, source, log, rest); err != nil {
		if errors.Is(err, errUsage) {
			log.Fatal("Invalid argument", zap.String("usage", "migrate "+cmd.usage), zap.Error(err))
		}
		log.Fatal("Migration command failed", zap.String("command", command), zap.Error(err))
	}
}

func runDBCommand(cmd dbCommand, source fs.FS, log *zap.Logger, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping database: %w", err)
	}

	// the migrator owns db from here on and closes it
	m, err := migration.New(db, source, log)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer func() { _ = m.Close() }()

	return cmd.run(m, log, args)
}

func createMigration(log *zap.Logger, dir, name string) {
	mf, err := migration.CreateMigration(dir, name)
	if err != nil {
		log.Fatal("Failed to create migration", zap.Error(err))
	}
	log.Info("Migration created",
		zap.String("version", mf.Version),
		zap.String("up_file", mf.UpPath),
		zap.String("down_file", mf.DownPath),
	)
}

func listMigrations(log *zap.Logger, source fs.FS) {
	names, err := migration.ListMigrations(source)
	if err != nil {
		log.Fatal("Failed to list migrations", zap.Error(err))
	}
	if err := migration.CheckPairs(source); err != nil {
		log.Warn("Incomplete migration pair", zap.Error(err))
	}
	log.Info("Available migrations", zap.Int("count", len(names)))
	for _, name := range names {
		fmt.Println("  -", name)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `QR Dine schema migrations

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                Apply all pending migrations
  down              Roll back all migrations
  step <n>          Apply n migrations (negative rolls back)
  goto <version>    Migrate to a specific version
  version           Show the current schema version
  force <version>   Set the version without migrating (clears a dirty state)
  create <name>     Write the next numbered migration pair
  list              List available migrations

Flags:
  -path string      Migrations directory (default: embedded migrations, ./migrations for create)
  -log-level string Log level: debug, info, warn, error (default: info)

The database is configured through QRDINE_DATABASE_* variables or config.toml.
`)
}
