package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/Dawstr8/peek-a-peak/internal/config"
	"github.com/Dawstr8/peek-a-peak/internal/domain"
	"github.com/Dawstr8/peek-a-peak/internal/middleware"
	"github.com/Dawstr8/peek-a-peak/internal/module/auth"
	"github.com/Dawstr8/peek-a-peak/internal/module/mountainrange"
	"github.com/Dawstr8/peek-a-peak/internal/module/peak"
	"github.com/Dawstr8/peek-a-peak/internal/module/photo"
	"github.com/Dawstr8/peek-a-peak/internal/module/user"
	"github.com/Dawstr8/peek-a-peak/internal/module/weather"
	"github.com/Dawstr8/peek-a-peak/internal/storage"
)

// App holds the core application dependencies and the HTTP server.
type App struct {
	engine *gin.Engine
	db     *gorm.DB
	logger *logger.Logger
	cfg    *config.Config
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

var newHTTPServer = func(addr string, handler http.Handler) httpServer {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// New creates and wires a fully configured App from the given Config.
//
// It sets up logging, database, file storage, the weather client, domain
// repositories, services, handlers, middleware, and routes.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	success := false

	// 1. Setup logger.
	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	if cfg.Server.Mode == gin.DebugMode && cfg.Server.Host == "0.0.0.0" {
		log.Warn("insecure server config: debug mode on 0.0.0.0 may expose debug behavior and permissive CORS")
	}
	defer func() {
		if success {
			return
		}
		if err := log.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}()

	// 2. Setup database.
	db, err := config.SetupDatabase(&cfg.Database, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}
	defer func() {
		if success {
			return
		}
		sqlDB, err := db.DB()
		if err != nil {
			return
		}
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", slog.Any("error", err))
		}
	}()

	// 3. AutoMigrate in debug mode only.
	if cfg.Server.Mode == gin.DebugMode {
		if err := db.AutoMigrate(
			&domain.User{},
			&domain.Session{},
			&domain.MountainRange{},
			&domain.Peak{},
			&domain.SummitPhoto{},
			&domain.WeatherCondition{},
			&domain.WeatherRecord{},
		); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		log.Info("auto migration completed")
	}

	// 4. Setup file storage.
	store, uploadsDir, err := setupStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("setup storage: %w", err)
	}

	// 5. Manual dependency injection: repository → service → handler.
	userRepo := user.NewUserRepository(db)
	sessionRepo := auth.NewSessionRepository(db)
	rangeRepo := mountainrange.NewRangeRepository(db)
	peakRepo := peak.NewPeakRepository(db)
	photoRepo := photo.NewPhotoRepository(db)

	authSvc := auth.NewService(userRepo, sessionRepo, cfg.Auth.SessionTTLDuration())
	peakSvc := peak.NewPeakService(peakRepo)
	userSvc := user.NewUserService(userRepo, photoRepo, peakRepo)

	var weatherSvc domain.WeatherService
	if cfg.Weather.Enabled {
		weatherSvc = weather.NewWeatherService(
			weather.NewHTTPClient(cfg.Weather.BaseURL, cfg.Weather.APIKey),
			weather.NewConditionRepository(db),
			weather.NewRecordRepository(db),
		)
	}
	photoSvc := photo.NewPhotoService(photoRepo, userRepo, store, weatherSvc)

	modules := []Module{
		auth.NewModule(auth.NewHandler(authSvc, cfg.Auth.CookieSecure), authSvc),
		user.NewModule(user.NewUserHandler(userSvc), authSvc),
		peak.NewModule(peak.NewPeakHandler(peakSvc), authSvc),
		photo.NewModule(photo.NewPhotoHandler(photoSvc), authSvc),
		mountainrange.NewModule(mountainrange.NewRangeHandler(rangeRepo)),
	}
	if weatherSvc != nil {
		modules = append(modules, weather.NewModule(weather.NewWeatherHandler(weatherSvc)))
	}

	// 6. Create Gin engine with custom middleware (not gin.Default()).
	if err := validateGinMode(cfg.Server.Mode); err != nil {
		return nil, err
	}
	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()

	// Build CORS config from application settings.
	// In release mode, when no allowlist is configured, default to deny cross-origin requests.
	corsConfig := resolveCORSConfig(cfg.Server.Mode, cfg.Server.CORS.AllowOrigins)

	engine.Use(
		middleware.Recovery(log.Logger),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			TrustUpstream: false,
		}),
		middleware.Logger(log.Logger),
		middleware.CORSWithConfig(corsConfig),
	)

	// 7. Register all routes.
	if err := RegisterRoutes(engine, &RouteDeps{
		Modules:    modules,
		DB:         db,
		UploadsDir: uploadsDir,
	}); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	success = true
	return &App{
		engine: engine,
		db:     db,
		logger: log,
		cfg:    cfg,
	}, nil
}

// setupStorage builds the configured storage backend. For the local backend it
// also returns the directory to serve at /uploads.
func setupStorage(cfg *config.Config) (storage.Storage, string, error) {
	switch cfg.Storage.Backend {
	case "s3":
		s3, err := storage.NewS3(context.Background(), storage.S3Config{
			Endpoint:  cfg.Storage.S3.Endpoint,
			AccessKey: cfg.Storage.S3.AccessKey,
			SecretKey: cfg.Storage.S3.SecretKey,
			Bucket:    cfg.Storage.S3.Bucket,
			UseSSL:    cfg.Storage.S3.UseSSL,
		})
		if err != nil {
			return nil, "", err
		}
		return s3, "", nil
	default:
		local, err := storage.NewLocal(cfg.Storage.Local.Dir)
		if err != nil {
			return nil, "", err
		}
		return local, local.Dir(), nil
	}
}

func resolveCORSConfig(mode string, configuredAllowOrigins []string) middleware.CORSConfig {
	corsConfig := middleware.DefaultCORSConfig()

	if len(configuredAllowOrigins) > 0 {
		corsConfig.AllowOrigins = configuredAllowOrigins
		return corsConfig
	}

	if mode == gin.ReleaseMode {
		corsConfig.AllowOrigins = []string{}
	}

	return corsConfig
}

func validateGinMode(mode string) error {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		return nil
	default:
		return fmt.Errorf("invalid server.mode %q: must be one of %q, %q, %q", mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}
}

// Run starts the HTTP server and blocks until a shutdown signal is received.
// It performs graceful shutdown with a 5-second timeout and closes the
// database connection.
func (a *App) Run() error {
	if a == nil {
		return errors.New("app is nil")
	}
	if a.cfg == nil {
		return errors.New("app config is nil")
	}
	if a.engine == nil {
		return errors.New("app engine is nil")
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	srv := newHTTPServer(addr, a.engine)

	// Listen for SIGINT / SIGTERM.
	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server in a goroutine.
	errCh := make(chan error, 1)
	go func() {
		if a.logger != nil {
			a.logger.Info("server started", slog.String("addr", addr))
		} else {
			slog.Info("server started", slog.String("addr", addr))
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error

	// Wait for shutdown signal or server error.
	select {
	case <-ctx.Done():
		if a.logger != nil {
			a.logger.Info("shutdown signal received")
		} else {
			slog.Info("shutdown signal received")
		}
	case err := <-errCh:
		runErr = fmt.Errorf("server error: %w", err)
	}

	if runErr == nil {
		// Graceful shutdown with 5-second deadline.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			if a.logger != nil {
				a.logger.Error("server shutdown error", slog.Any("error", err))
			} else {
				slog.Error("server shutdown error", slog.Any("error", err))
			}
		}
	}

	// Close database connection.
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				if a.logger != nil {
					a.logger.Error("database close error", slog.Any("error", err))
				} else {
					slog.Error("database close error", slog.Any("error", err))
				}
			} else {
				if a.logger != nil {
					a.logger.Info("database connection closed")
				} else {
					slog.Info("database connection closed")
				}
			}
		}
	}

	if a.logger != nil {
		a.logger.Info("server stopped")
		if err := a.logger.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	} else {
		slog.Info("server stopped")
	}

	if runErr != nil {
		return runErr
	}

	return nil
}
