package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/assetvault/asset-management/internal"
	"github.com/assetvault/asset-management/internal/assignment"
	assignmentPostgres "github.com/assetvault/asset-management/internal/assignment/postgres"
	"github.com/assetvault/asset-management/internal/audit"
	auditPostgres "github.com/assetvault/asset-management/internal/audit/postgres"
	"github.com/assetvault/asset-management/internal/auth"
	authPostgres "github.com/assetvault/asset-management/internal/auth/postgres"
	"github.com/assetvault/asset-management/internal/dashboard"
	dashboardPostgres "github.com/assetvault/asset-management/internal/dashboard/postgres"
	"github.com/assetvault/asset-management/internal/directory"
	directoryPostgres "github.com/assetvault/asset-management/internal/directory/postgres"
	"github.com/assetvault/asset-management/internal/item"
	itemPostgres "github.com/assetvault/asset-management/internal/item/postgres"
	"github.com/assetvault/asset-management/internal/photo"
	photoPostgres "github.com/assetvault/asset-management/internal/photo/postgres"
	"github.com/assetvault/asset-management/internal/servicelog"
	servicelogPostgres "github.com/assetvault/asset-management/internal/servicelog/postgres"
	"github.com/assetvault/asset-management/internal/transport/rest"
	"github.com/assetvault/asset-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Gorm   *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) error {
	cfg := deps.Config
	lg := deps.Logger

	// Make sure the upload directory exists before anything serves it.
	if err := os.MkdirAll(cfg.Storage.UploadDir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	tokenGen := auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.TokenDuration)
	authService := auth.NewService(authPostgres.NewUserRepository(deps.Gorm), tokenGen, cfg.Security.BCryptCost, lg)

	itemRepo := itemPostgres.NewItemRepository(deps.Gorm)
	itemService := item.NewService(itemRepo, lg)

	photoStore := photo.NewDiskStore(cfg.Storage.UploadDir)
	photoService := photo.NewService(photoPostgres.NewPhotoRepository(deps.Gorm), itemRepo, photoStore, cfg.Storage.PublicURL, lg)

	directoryRepo := directoryPostgres.NewDirectoryRepository(deps.Gorm)
	directoryService := directory.NewService(directoryRepo, lg)

	assignmentRepo := assignmentPostgres.NewAssignmentRepository(deps.Gorm)
	assignmentService := assignment.NewService(assignmentRepo, itemRepo, directoryRepo, lg)

	auditService := audit.NewService(auditPostgres.NewAuditRepository(deps.Gorm), lg)

	servicelogService := servicelog.NewService(
		servicelogPostgres.NewServiceLogRepository(deps.Gorm),
		itemRepo,
		assignmentRepo,
		auditService,
		cfg.Service.IntervalDays,
		lg,
	)

	dashboardService := dashboard.NewService(dashboardPostgres.NewDashboardRepository(deps.Gorm), lg)

	handlers := rest.Handlers{
		Auth:       auth.NewHandler(authService),
		Item:       item.NewHandler(itemService),
		Photo:      photo.NewHandler(photoService),
		Directory:  directory.NewHandler(directoryService),
		Assignment: assignment.NewHandler(assignmentService),
		Audit:      audit.NewHandler(auditService),
		ServiceLog: servicelog.NewHandler(servicelogService),
		Dashboard:  dashboard.NewHandler(dashboardService),
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, cfg, handlers, lg)
	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.LoggerWrapper(),
		DB:     db,
		Gorm:   gormDB,
		Router: chi.NewRouter(),
	}, nil
}

// initDB opens the pgx-backed connection pool shared by sqlx and gorm.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	if cfg.ConnMaxLifetime > 0 {
		dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
