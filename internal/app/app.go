package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hugovasko/intern-com-backend/internal/auth"
	"github.com/hugovasko/intern-com-backend/internal/billing"
	"github.com/hugovasko/intern-com-backend/internal/config"
	"github.com/hugovasko/intern-com-backend/internal/email"
	"github.com/hugovasko/intern-com-backend/internal/github"
	"github.com/hugovasko/intern-com-backend/internal/handlers"
	"github.com/hugovasko/intern-com-backend/internal/logger"
	"github.com/hugovasko/intern-com-backend/internal/middleware"
	"github.com/hugovasko/intern-com-backend/internal/models"
	"github.com/hugovasko/intern-com-backend/internal/repositories"
	"github.com/hugovasko/intern-com-backend/internal/routes"
	"github.com/hugovasko/intern-com-backend/internal/services"
)

// Run boots the whole service: config, logging, database, migrations,
// admin seed, router.
func Run() error {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	auth.Configure(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLHours)*time.Hour)

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		// Maps unique violations onto gorm.ErrDuplicatedKey so the
		// repositories can return their sentinels.
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Opportunity{},
		&models.Application{},
	); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	if err := seedFirstAdmin(db, cfg); err != nil {
		return fmt.Errorf("seed first admin: %w", err)
	}

	provider := billing.NewStripeProvider(
		cfg.Stripe.SecretKey,
		cfg.Stripe.WebhookSecret,
		cfg.Stripe.PriceID,
	)

	router := SetupRouter(db, cfg, provider)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server listening", "addr", addr, "env", cfg.Server.Env)
	return router.Run(addr)
}

// SetupRouter assembles repositories, services, handlers and middleware
// into a gin engine. Tests call it with a fake billing provider.
func SetupRouter(db *gorm.DB, cfg *config.Config, provider billing.Provider) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))

	userRepo := repositories.NewUserRepository(db)
	opportunityRepo := repositories.NewOpportunityRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)

	githubClient := github.NewClient(
		cfg.GitHub.ClientID,
		cfg.GitHub.ClientSecret,
		cfg.GitHub.OAuthBaseURL,
		cfg.GitHub.APIBaseURL,
	)
	sender := email.NewSender(cfg)

	svcs := services.NewServiceContainer(
		userRepo,
		opportunityRepo,
		applicationRepo,
		provider,
		githubClient,
		sender,
	)

	h := handlers.NewHandlerContainer(svcs, githubClient)
	routes.RegisterRoutes(router, h)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router
}

// seedFirstAdmin creates the bootstrap admin account once, on an empty
// admin table.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		logger.Debug("admin seed skipped: no credentials configured")
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).
		Where("role = ?", models.UserRoleAdmin).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return err
	}

	adminEmail := cfg.FirstAdminEmail
	admin := &models.User{
		FirstName:    "Admin",
		Email:        &adminEmail,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	logger.Info("first admin seeded", "email", adminEmail)
	return nil
}
