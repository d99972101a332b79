package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"usercontacts/internal/auth"
	"usercontacts/internal/cache"
	"usercontacts/internal/config"
	"usercontacts/internal/db"
	"usercontacts/internal/handler"
	"usercontacts/internal/repository"
	"usercontacts/internal/router"
	"usercontacts/internal/service"
	"usercontacts/internal/storage"
)

const bootTimeout = 10 * time.Second

// App is the wired HTTP server and the resources it owns.
type App struct {
	cfg   *config.Config
	log   *zap.Logger
	db    *gorm.DB
	cache *cache.Client
	echo  *echo.Echo
}

// New connects to the database, migrates, prepares upload storage and wires every
// layer. Only configuration errors are fatal: an unreachable database is logged and the
// server still comes up.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("database init: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, bootTimeout)
	defer cancel()
	if err := db.Ping(pingCtx, gormDB); err != nil {
		log.Error("Unable to connect to database", zap.Error(err))
	} else {
		log.Info("Connection established successfully", zap.String("driver", cfg.DBDriver))
	}

	if err := db.Migrate(gormDB); err != nil {
		log.Error("Unable to create tables", zap.Error(err))
	} else {
		log.Info("Database & tables created")
	}

	uploads, err := openStorage(pingCtx, cfg, log)
	if err != nil {
		_ = db.Close(gormDB)
		return nil, err
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if cacheClient.Enabled() {
		if err := cacheClient.Ping(pingCtx); err != nil {
			log.Warn("redis unavailable, caching disabled until it recovers", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			log.Info("redis connected", zap.String("addr", cfg.RedisAddr))
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	contactRepo := repository.NewContactRepository(gormDB)
	blacklistRepo := repository.NewTokenBlacklistRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(blacklistRepo, cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient)
	contactService := service.NewContactService(userRepo, contactRepo, cacheClient)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	router.Register(
		e,
		log,
		jwtService,
		userService,
		tokenStore,
		uploads,
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService),
		handler.NewContactHandler(contactService),
		handler.NewGalleryHandler(uploads, log),
	)

	return &App{cfg: cfg, log: log, db: gormDB, cache: cacheClient, echo: e}, nil
}

func openStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (storage.Store, error) {
	switch cfg.StorageBackend {
	case storage.BackendMinio:
		store, err := storage.NewMinio(storage.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			return nil, err
		}
		created, err := store.EnsureBucket(ctx)
		if err != nil {
			log.Error("Unable to prepare uploads bucket", zap.String("bucket", cfg.MinioBucket), zap.Error(err))
		} else if created {
			log.Info("uploads bucket created.", zap.String("bucket", cfg.MinioBucket))
		} else {
			log.Info("uploads bucket exists.", zap.String("bucket", cfg.MinioBucket))
		}
		return store, nil
	case storage.BackendDisk, "":
		created, err := storage.EnsureDir(cfg.UploadDir)
		if err != nil {
			return nil, fmt.Errorf("uploads directory: %w", err)
		}
		if created {
			log.Info("uploads directory created.", zap.String("dir", cfg.UploadDir))
		} else {
			log.Info("uploads directory exists.", zap.String("dir", cfg.UploadDir))
		}
		return storage.NewDisk(cfg.UploadDir), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
	}
}

// Handler exposes the HTTP handler, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.echo
}

// Start listens on the configured port and blocks until the server stops.
func (a *App) Start() error {
	addr := ":" + a.cfg.ServerPort
	a.log.Info("Server running on localhost:"+a.cfg.ServerPort, zap.String("addr", addr))
	a.log.Info("Swagger documentation available", zap.String("url", swaggerURL(a.cfg)))
	if err := a.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server start: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones and releases the
// database and cache connections.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.echo.Shutdown(ctx)
	if cerr := a.cache.Close(); cerr != nil {
		a.log.Warn("close redis", zap.Error(cerr))
	}
	if derr := db.Close(a.db); derr != nil && err == nil {
		err = derr
	}
	return err
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	switch {
	case host == "":
		host = "http://localhost:" + cfg.ServerPort
	case len(host) >= 7 && host[:7] == "http://", len(host) >= 8 && host[:8] == "https://":
	default:
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}
