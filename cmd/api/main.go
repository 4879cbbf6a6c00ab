package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/awsugahm/acd2026-api/api/swagger"
	"github.com/awsugahm/acd2026-api/internal/handler"
	"github.com/awsugahm/acd2026-api/internal/repository"
	"github.com/awsugahm/acd2026-api/internal/seed"
	"github.com/awsugahm/acd2026-api/internal/service"
	"github.com/awsugahm/acd2026-api/pkg/cache"
	"github.com/awsugahm/acd2026-api/pkg/config"
	"github.com/awsugahm/acd2026-api/pkg/database"
	"github.com/awsugahm/acd2026-api/pkg/logger"
	"github.com/awsugahm/acd2026-api/pkg/storage"
)

// @title AWS Community Day 2026 API
// @version 1.0.0
// @description Public content, forms and organizer back office for the community conference.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const exportCleanupInterval = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck
	if err := database.EnsureSchema(ctx, db); err != nil {
		logr.Fatal("failed to apply schema", zap.Error(err))
	}

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, public cache disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close() //nolint:errcheck
		}
	}

	content, err := seed.Load()
	if err != nil {
		logr.Fatal("failed to load built-in content", zap.Error(err))
	}

	app, err := buildApp(ctx, cfg, db, redisClient, content, logr)
	if err != nil {
		logr.Fatal("failed to build application", zap.Error(err))
	}

	go app.runExportCleanup(ctx, exportCleanupInterval)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           newRouter(cfg, app, logr),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}

type application struct {
	logger  *zap.Logger
	metrics *service.MetricsService
	exports *service.ExportService
	uploads *storage.LocalStorage

	auth       *handler.AuthHandler
	schedules  *handler.ScheduleHandler
	sponsors   *handler.SponsorHandler
	content    *handler.ContentHandler
	events     *handler.EventHandler
	volunteers *handler.VolunteerHandler
	contact    *handler.ContactHandler
	exportsAPI *handler.ExportHandler
	health     *handler.MetricsHandler

	authSvc *service.AuthService
}

func buildApp(ctx context.Context, cfg *config.Config, db *sqlx.DB, redisClient *redis.Client, content *seed.Data, logr *zap.Logger) (*application, error) {
	validate := validator.New()
	metrics := service.NewMetricsService()

	uploads, err := storage.NewLocalStorage(cfg.Uploads.Dir, cfg.Uploads.PublicURL)
	if err != nil {
		return nil, err
	}
	exportStore, err := storage.NewLocalStorage(cfg.Exports.Dir, "")
	if err != nil {
		return nil, err
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)

	scheduleRepo := repository.NewScheduleRepository(db)
	sponsorRepo := repository.NewSponsorRepository(db)
	speakerRepo := repository.NewSpeakerRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	faqRepo := repository.NewFAQRepository(db)
	volunteerRepo := repository.NewVolunteerRepository(db)
	userRepo := repository.NewUserRepository(db)

	var cacheRepo service.CacheRepository
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cfg.Cache.Enabled)

	uploadCfg := service.UploadConfig{
		MaxFileSizeBytes: cfg.Uploads.MaxFileSizeBytes,
		AllowedMIMEs:     cfg.Uploads.AllowedMIMEs,
	}

	scheduleSvc := service.NewScheduleService(scheduleRepo, content, cacheSvc, metrics, validate, logr, service.ScheduleServiceConfig{
		Location: cfg.Event.Location,
		CacheTTL: cfg.Cache.TTL,
	})
	sponsorSvc := service.NewSponsorService(sponsorRepo, uploads, cacheSvc, metrics, validate, logr, service.SponsorServiceConfig{
		Uploads:  uploadCfg,
		CacheTTL: cfg.Cache.TTL,
	})
	if _, err := sponsorSvc.Load(ctx); err != nil {
		logr.Warn("initial sponsor load failed", zap.Error(err))
	}
	contentSvc := service.NewContentService(speakerRepo, ticketRepo, faqRepo, cacheSvc, logr, cfg.Cache.TTL)
	eventSvc := service.NewEventService(cfg.Event, content, time.Now)
	volunteerSvc := service.NewVolunteerService(volunteerRepo, uploads, metrics, validate, logr, uploadCfg)
	contactSvc := service.NewContactService(cfg.Contact.RelayURL, cfg.Contact.Timeout, nil, metrics, validate, logr)
	exportSvc := service.NewExportService(scheduleRepo, volunteerRepo, exportStore, signer, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		EventName: cfg.Event.Name,
		Subtitle:  cfg.Event.Venue,
		ResultTTL: cfg.Exports.SignedURLTTL,
	}, logr, nil, nil)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})

	checks := map[string]handler.HealthCheck{
		"postgres": db.PingContext,
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	return &application{
		logger:     logr,
		metrics:    metrics,
		exports:    exportSvc,
		uploads:    uploads,
		auth:       handler.NewAuthHandler(authSvc),
		schedules:  handler.NewScheduleHandler(scheduleSvc, cfg.Cache.TTL),
		sponsors:   handler.NewSponsorHandler(sponsorSvc, cfg.Cache.TTL),
		content:    handler.NewContentHandler(contentSvc, cfg.Cache.TTL),
		events:     handler.NewEventHandler(eventSvc),
		volunteers: handler.NewVolunteerHandler(volunteerSvc),
		contact:    handler.NewContactHandler(contactSvc),
		exportsAPI: handler.NewExportHandler(exportSvc),
		health:     handler.NewMetricsHandler(metrics, checks),
		authSvc:    authSvc,
	}, nil
}

// runExportCleanup removes expired export files until ctx is cancelled.
func (a *application) runExportCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := a.exports.Cleanup(0)
			if err != nil {
				a.logger.Warn("export cleanup failed", zap.Error(err))
				continue
			}
			if len(removed) > 0 {
				a.logger.Info("expired exports removed", zap.Int("count", len(removed)))
			}
		}
	}
}
