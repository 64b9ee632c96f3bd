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

	"github.com/commerceops/backoffice/internal"
	"github.com/commerceops/backoffice/internal/analytics"
	analyticsPostgres "github.com/commerceops/backoffice/internal/analytics/postgres"
	"github.com/commerceops/backoffice/internal/auth"
	authPostgres "github.com/commerceops/backoffice/internal/auth/postgres"
	"github.com/commerceops/backoffice/internal/brand"
	brandPostgres "github.com/commerceops/backoffice/internal/brand/postgres"
	"github.com/commerceops/backoffice/internal/category"
	categoryPostgres "github.com/commerceops/backoffice/internal/category/postgres"
	"github.com/commerceops/backoffice/internal/core/events"
	"github.com/commerceops/backoffice/internal/customer"
	customerPostgres "github.com/commerceops/backoffice/internal/customer/postgres"
	"github.com/commerceops/backoffice/internal/order"
	orderPostgres "github.com/commerceops/backoffice/internal/order/postgres"
	"github.com/commerceops/backoffice/internal/product"
	productPostgres "github.com/commerceops/backoffice/internal/product/postgres"
	"github.com/commerceops/backoffice/internal/rbac"
	"github.com/commerceops/backoffice/internal/transport"
	"github.com/commerceops/backoffice/internal/transport/rest"
	"github.com/commerceops/backoffice/internal/upload"
	"github.com/commerceops/backoffice/internal/user"
	userPostgres "github.com/commerceops/backoffice/internal/user/postgres"
	"github.com/commerceops/backoffice/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
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
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Bus      *events.EventBus
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
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

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Role definitions are static; refuse to boot on an inconsistent hierarchy.
	if err := rbac.Validate(); err != nil {
		return nil, fmt.Errorf("role definitions invalid: %w", err)
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.L()
	bus := events.NewEventBus(lg)
	baseHandler := transport.NewBaseHandler(lg)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authPostgres.NewRepository(gormDB), tokenGen)

	productRepo := productPostgres.NewProductRepository(gormDB)
	productService := product.NewService(productRepo, bus, lg)
	categoryService := category.NewService(categoryPostgres.NewCategoryRepository(gormDB), bus, lg)
	brandService := brand.NewService(brandPostgres.NewBrandRepository(gormDB), bus, lg)
	customerService := customer.NewService(customerPostgres.NewCustomerRepository(gormDB), bus, lg)
	orderService := order.NewService(orderPostgres.NewOrderRepository(gormDB), productRepo, bus, lg)
	userService := user.NewService(userPostgres.NewUserRepository(db))
	analyticsService := analytics.NewService(analyticsPostgres.NewAnalyticsRepository(gormDB), lg)
	uploadService := upload.NewService(config.Storage, lg)

	handlers := rest.Handlers{
		Auth:      auth.NewHandler(authService),
		Authz:     auth.NewAuthorization(lg),
		User:      user.NewHandler(userService),
		Product:   product.NewHandler(baseHandler, productService),
		Category:  category.NewHandler(baseHandler, categoryService),
		Brand:     brand.NewHandler(baseHandler, brandService),
		Customer:  customer.NewHandler(baseHandler, customerService),
		Order:     order.NewHandler(baseHandler, orderService),
		Upload:    upload.NewHandler(baseHandler, uploadService),
		Analytics: analytics.NewHandler(baseHandler, analyticsService),
	}

	return &Dependencies{
		Config:   config,
		Logger:   lg,
		DB:       db,
		GormDB:   gormDB,
		Router:   chi.NewRouter(),
		Handlers: handlers,
		Bus:      bus,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm wraps the already-open connection pool so both query layers
// share one pool.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
}
