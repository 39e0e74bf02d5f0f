package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"maisquecardapio.backend/internal/config"
	"maisquecardapio.backend/internal/infrastructure/datasources/postgres"
	"maisquecardapio.backend/internal/infrastructure/jobs"
	"maisquecardapio.backend/internal/infrastructure/messaging"
	"maisquecardapio.backend/internal/infrastructure/repositories"
	"maisquecardapio.backend/internal/interfaces/http/handlers"
	"maisquecardapio.backend/internal/interfaces/http/middleware"
	"maisquecardapio.backend/internal/usecases"
	"maisquecardapio.backend/pkg/jwt"
	"maisquecardapio.backend/pkg/logger"
	"maisquecardapio.backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

var (
	loadDotenv      = godotenv.Load
	loadCfg         = config.Load
	initLog         = logger.Init
	initRedis       = redis.Init
	openDB          = postgres.Open
	migrateDB       = postgres.AutoMigrate
	seedDB          = postgres.Seed
	newSessionStore = redis.NewSessionStore
	runServer       = func(ctx context.Context, r *gin.Engine, port string) error {
		srv := &http.Server{Addr: ":" + port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	}
	getStdDB = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer redis.Close()
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Warn(ctx, "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(ctx, "Connected to database", zap.String("driver", cfg.Database.Driver))
		if cfg.Database.AutoMigrate {
			if err := migrateDB(db); err != nil {
				return err
			}
		}
		if cfg.Database.Seed {
			if err := seedDB(ctx, db); err != nil {
				return err
			}
		}
	}

	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	a := buildApp(cfg, db, sqlDB, sessionStore)
	a.dispatcher.Start()
	defer func() {
		drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.dispatcher.Shutdown(drainCtx); err != nil {
			logger.Warn(drainCtx, "Notification queue not drained", zap.Error(err))
		}
	}()

	// Start background jobs
	if cfg.Billing.CheckInterval > 0 {
		checkJob := jobs.NewSubscriptionCheckJob(a.subscriptions, cfg.Billing.CheckInterval)
		go checkJob.Start(ctx)
		defer checkJob.Stop()
	}

	r := a.router
	logger.Info(ctx, "Server starting",
		zap.String("port", cfg.Server.Port),
		zap.Int("routes", len(r.Routes())),
	)

	if err := runServer(ctx, r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	logger.Info(context.Background(), "Server stopped")
	return nil
}

// app is the wired HTTP surface plus the pieces whose lifecycle main owns
type app struct {
	router        *gin.Engine
	dispatcher    *messaging.Dispatcher
	subscriptions *usecases.SubscriptionUsecase
}

func buildApp(cfg *config.Config, db *gorm.DB, sqlDB *sql.DB, sessionStore usecases.SessionStore) *app {
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.OwnerExpiry, cfg.JWT.SuperadminExpiry)

	// Repositories
	establishmentRepo := repositories.NewEstablishmentRepository(db)
	planRepo := repositories.NewPlanRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)
	neighborhoodRepo := repositories.NewNeighborhoodRepository(db)
	tableRepo := repositories.NewTableRepository(db)
	commandRepo := repositories.NewCommandRepository(db)
	reservationRepo := repositories.NewReservationRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)
	subscriptionRepo := repositories.NewSubscriptionRepository(db)
	reminderRepo := repositories.NewReminderRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Outbound WhatsApp notifications
	dispatcher := messaging.NewDispatcher(
		messaging.NewEvolutionClient(cfg.Messaging.NotifyTimeout),
		messaging.GatewayConfig{
			BaseURL:  cfg.Messaging.GatewayURL,
			APIKey:   cfg.Messaging.GatewayAPIKey,
			Instance: cfg.Messaging.GatewayInstance,
		},
		cfg.Messaging.QueueSize,
		cfg.Messaging.NotifyTimeout,
	)

	// Usecases
	authUsecase := usecases.NewAuthUsecase(establishmentRepo, jwtService, sessionStore, usecases.SuperadminCredentials{
		Username:     cfg.Security.SuperadminUsername,
		PasswordHash: cfg.Security.SuperadminPasswordHash,
	})
	establishmentUsecase := usecases.NewEstablishmentUsecase(establishmentRepo, planRepo, settingsRepo, uow, cfg.Billing.TrialDays)
	catalogUsecase := usecases.NewCatalogUsecase(productRepo, categoryRepo)
	tableUsecase := usecases.NewTableUsecase(tableRepo, commandRepo, reservationRepo)
	orderUsecase := usecases.NewOrderUsecase(orderRepo, neighborhoodRepo, settingsRepo, dispatcher)
	settingsUsecase := usecases.NewSettingsUsecase(settingsRepo, uow)
	superadminUsecase := usecases.NewSuperadminUsecase(establishmentRepo, planRepo, uow)
	subscriptionUsecase := usecases.NewSubscriptionUsecase(usecases.SubscriptionRepos{
		Establishments: establishmentRepo,
		Plans:          planRepo,
		Subscriptions:  subscriptionRepo,
		Reminders:      reminderRepo,
		Settings:       settingsRepo,
		Categories:     categoryRepo,
		Neighborhoods:  neighborhoodRepo,
		Tables:         tableRepo,
	}, uow, dispatcher, usecases.SubscriptionConfig{
		Location:         cfg.Billing.Location(),
		OperatorWhatsApp: cfg.Messaging.OperatorWhatsApp,
		WebhookAPIKey:    cfg.Security.WebhookAPIKey,
		DefaultMonths:    cfg.Billing.DefaultMonths,
	})

	healthHandler := handlers.NewHealthHandler(map[string]handlers.Pinger{
		"database": sqlDB.PingContext,
		"redis": func(ctx context.Context) error {
			return redis.GetClient().Ping(ctx).Err()
		},
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r, healthHandler)
	registerMetricsRoute(r)
	registerAPIRoutes(r, routeDeps{
		publicHandler:       handlers.NewPublicHandler(establishmentUsecase),
		authHandler:         handlers.NewAuthHandler(authUsecase),
		catalogHandler:      handlers.NewCatalogHandler(catalogUsecase, categoryRepo, neighborhoodRepo),
		tableHandler:        handlers.NewTableHandler(tableUsecase, tableRepo, commandRepo, reservationRepo),
		orderHandler:        handlers.NewOrderHandler(orderUsecase),
		settingsHandler:     handlers.NewSettingsHandler(settingsUsecase),
		subscriptionHandler: handlers.NewSubscriptionHandler(subscriptionUsecase, cfg.Security.CronSecret),
		superadminHandler:   handlers.NewSuperadminHandler(superadminUsecase),

		tenantMiddleware:     middleware.TenantMiddleware(establishmentRepo, middleware.DefaultTenantSkipPrefixes...),
		ownerAuthMiddleware:  middleware.OwnerAuth(authUsecase),
		superadminMiddleware: middleware.SuperadminAuth(authUsecase),
		loginRateLimit:       middleware.NewRateLimiter(cfg.Security.LoginRatePerMinute, cfg.Security.LoginBurst).Middleware(),
	})

	return &app{router: r, dispatcher: dispatcher, subscriptions: subscriptionUsecase}
}
