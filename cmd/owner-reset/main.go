package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"maisquecardapio.backend/internal/config"
	"maisquecardapio.backend/internal/domain/entities"
	"maisquecardapio.backend/internal/infrastructure/datasources/postgres"
	"maisquecardapio.backend/internal/infrastructure/repositories"
	"maisquecardapio.backend/pkg/crypto"
)

const generatedPasswordLength = 10

var openResetDB = postgres.Open

var openResetSQLDB = func(db *gorm.DB) (io.Closer, error) {
	return db.DB()
}

// ownerStore is the subset of the establishment repository the reset needs
type ownerStore interface {
	GetBySlug(ctx context.Context, slug string) (*entities.Establishment, error)
	Update(ctx context.Context, establishment *entities.Establishment) error
}

type ownerResetDeps struct {
	loadEnv      func() error
	loadCfg      func() *config.Config
	prepare      func(cfg *config.Config) (ownerStore, io.Closer, error)
	hash         func(password string) (string, error)
	tempPassword func(length int) (string, error)
	out          io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultOwnerResetDeps() ownerResetDeps {
	return ownerResetDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (ownerStore, io.Closer, error) {
			db, err := openResetDB(cfg.Database)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}
			sqlDB, err := openResetSQLDB(db)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
			}
			return repositories.NewEstablishmentRepository(db), sqlDB, nil
		},
		hash:         crypto.HashPassword,
		tempPassword: crypto.GenerateTemporaryPassword,
		out:          os.Stdout,
	}
}

func runOwnerReset(args []string, deps ownerResetDeps) error {
	def := defaultOwnerResetDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.prepare == nil {
		deps.prepare = def.prepare
	}
	if deps.hash == nil {
		deps.hash = def.hash
	}
	if deps.tempPassword == nil {
		deps.tempPassword = def.tempPassword
	}
	if deps.out == nil {
		deps.out = def.out
	}

	fs := flag.NewFlagSet("owner-reset", flag.ContinueOnError)
	slugFlag := fs.String("slug", "", "establishment slug (required)")
	passwordFlag := fs.String("password", "", "new owner password (generated when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	slug := strings.ToLower(strings.TrimSpace(*slugFlag))
	if slug == "" {
		return fmt.Errorf("--slug is required")
	}
	password := *passwordFlag
	if password == "" {
		generated, err := deps.tempPassword(generatedPasswordLength)
		if err != nil {
			return err
		}
		password = generated
	}
	if len(password) < 6 {
		return fmt.Errorf("password must have at least 6 characters")
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := deps.loadCfg()
	store, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	ctx := context.Background()
	est, err := store.GetBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("failed to load establishment %s: %w", slug, err)
	}

	hash, err := deps.hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	est.PasswordHash = hash
	if err := store.Update(ctx, est); err != nil {
		return fmt.Errorf("failed to update establishment %s: %w", slug, err)
	}

	_, _ = fmt.Fprintln(deps.out, "Owner password reset")
	_, _ = fmt.Fprintf(deps.out, "slug=%s\n", est.Slug)
	_, _ = fmt.Fprintf(deps.out, "owner_email=%s\n", est.OwnerEmail)
	_, _ = fmt.Fprintf(deps.out, "PASSWORD=%s\n", password)
	return nil
}

func main() {
	if err := runOwnerReset(os.Args[1:], defaultOwnerResetDeps()); err != nil {
		log.Fatal(err)
	}
}
