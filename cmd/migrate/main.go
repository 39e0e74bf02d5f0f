package main

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/joho/godotenv"
	"maisquecardapio.backend/internal/config"
	"maisquecardapio.backend/internal/infrastructure/datasources/postgres"
	"maisquecardapio.backend/migrations"
)

// migrator is the subset of *migrate.Migrate the commands use
type migrator interface {
	Up() error
	Steps(n int) error
	Version() (uint, bool, error)
	Force(version int) error
	Close() (error, error)
}

var (
	loadDotenv  = godotenv.Load
	loadCfg     = config.Load
	openSQL     = postgres.NewConnection
	newMigrator = func(db *sql.DB) (migrator, error) {
		source, err := iofs.New(migrations.FS, ".")
		if err != nil {
			return nil, err
		}
		driver, err := migratepg.WithInstance(db, &migratepg.Config{})
		if err != nil {
			return nil, err
		}
		return migrate.NewWithInstance("iofs", source, "postgres", driver)
	}
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		printUsage(out)
		return errors.New("missing command")
	}

	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := loadCfg()

	db, err := openSQL(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := newMigrator(db)
	if err != nil {
		return fmt.Errorf("failed to initialise migrations: %w", err)
	}
	defer func() {
		if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
			log.Printf("failed to close migration resources: %v, %v", sourceErr, dbErr)
		}
	}()

	return execute(m, args, out)
}

func execute(m migrator, args []string, out io.Writer) error {
	switch args[0] {
	case "up":
		err := m.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Fprintln(out, "no change: database is up to date")
			return nil
		}
		if err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		fmt.Fprintln(out, "migrations applied")

	case "down":
		if err := m.Steps(-1); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
		fmt.Fprintln(out, "rolled back one migration")

	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Fprintln(out, "no migration applied yet")
			return nil
		}
		if err != nil {
			return fmt.Errorf("migrate version: %w", err)
		}
		suffix := ""
		if dirty {
			suffix = " (dirty)"
		}
		fmt.Fprintf(out, "version %d%s\n", version, suffix)

	case "force":
		if len(args) < 2 {
			return errors.New("force requires a version number")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[1], err)
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("migrate force: %w", err)
		}
		fmt.Fprintf(out, "forced version %d\n", version)

	default:
		printUsage(out)
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, "usage: migrate <command>")
	fmt.Fprintln(out, "  up         apply all pending migrations")
	fmt.Fprintln(out, "  down       roll back the last migration")
	fmt.Fprintln(out, "  version    print the current version")
	fmt.Fprintln(out, "  force N    set the version without running migrations")
}
