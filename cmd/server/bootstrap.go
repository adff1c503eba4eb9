package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/postboard/api/internal/config"
	"github.com/postboard/api/internal/handlers"
	"github.com/postboard/api/internal/middleware"
	"github.com/postboard/api/internal/models"
	"github.com/postboard/api/internal/services"
	"github.com/postboard/api/internal/utils"
	"github.com/postboard/api/pkg/logger"
	"gorm.io/gorm"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	cfg         *config.Config
	db          *gorm.DB
	tokens      *services.TokenService
	posts       *services.PostService
	comments    *services.CommentService
	audit       *services.AuditService
	housekeeper *services.Housekeeper
	authLimiter *middleware.RateLimiter

	authHandler    *handlers.AuthHandler
	userHandler    *handlers.UserHandler
	postHandler    *handlers.PostHandler
	commentHandler *handlers.CommentHandler
	healthHandler  *handlers.HealthHandler
	auditHandler   *handlers.AuditHandler
}

// bootstrap opens and migrates the database, then wires every service.
func bootstrap(cfg *config.Config) (*appServices, error) {
	db, err := models.Open(&cfg.Database, cfg.Log.Level == "debug")
	if err != nil {
		return nil, err
	}

	if err := models.AutoMigrate(db); err != nil {
		_ = models.Close(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return newAppServices(cfg, db), nil
}

// newAppServices builds services and handlers on an open database.
func newAppServices(cfg *config.Config, db *gorm.DB) *appServices {
	signer := utils.NewSigner(&cfg.JWT)
	tokens := services.NewTokenService(db, signer, &cfg.JWT)
	users := services.NewUserService(db)
	posts := services.NewPostService(db)
	comments := services.NewCommentService(db)
	audit := services.NewAuditService(db)

	return &appServices{
		cfg:         cfg,
		db:          db,
		tokens:      tokens,
		posts:       posts,
		comments:    comments,
		audit:       audit,
		housekeeper: services.NewHousekeeper(tokens, audit, cfg.Housekeeping.Schedule, cfg.Housekeeping.AuditRetentionDays),
		authLimiter: middleware.NewRateLimiter(cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst),

		authHandler:    handlers.NewAuthHandler(services.NewAuthService(db, tokens)),
		userHandler:    handlers.NewUserHandler(users),
		postHandler:    handlers.NewPostHandler(posts),
		commentHandler: handlers.NewCommentHandler(comments),
		healthHandler:  handlers.NewHealthHandler(db),
		auditHandler:   handlers.NewAuditHandler(audit),
	}
}

// start launches background jobs.
func (s *appServices) start() error {
	return s.housekeeper.Start()
}

// shutdown stops background jobs and closes the database.
func (s *appServices) shutdown(ctx context.Context) error {
	var errs []error
	if err := s.housekeeper.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("housekeeper: %w", err))
	}
	s.authLimiter.Close()

	if err := models.Close(s.db); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}
	logger.Info().Msg("All services stopped")
	return errors.Join(errs...)
}
