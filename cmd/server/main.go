package main

import (
	"net/http"
	"os"

	_ "helpdesk/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"helpdesk/internal/auth"
	"helpdesk/internal/cache"
	"helpdesk/internal/config"
	"helpdesk/internal/db"
	"helpdesk/internal/handler"
	"helpdesk/internal/logger"
	"helpdesk/internal/mailer"
	"helpdesk/internal/model"
	"helpdesk/internal/repository"
	"helpdesk/internal/router"
	"helpdesk/internal/service"
)

// @title Helpdesk API
// @version 1.0
// @description Support ticket tracker with role-based access, comments, and notifications.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logger.New()
	defer log.Sync()

	e := echo.New()
	e.HideBanner = true

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalw("database init", "error", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Infow("RESET_DB=true detected, dropping all tables")
		tables := []interface{}{
			&model.Notification{},
			&model.NotificationPreference{},
			&model.Comment{},
			&model.Ticket{},
			&model.Category{},
			&model.Department{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Warnw("drop table failed (may not exist)", "error", err)
			}
		}
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.NotificationPreference{},
		&model.Department{},
		&model.Category{},
		&model.Ticket{},
		&model.Comment{},
		&model.Notification{},
	); err != nil {
		log.Fatalw("auto-migrate", "error", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	ticketRepo := repository.NewTicketRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)
	deptRepo := repository.NewDepartmentRepository(gormDB)
	catRepo := repository.NewCategoryRepository(gormDB)
	notifRepo := repository.NewNotificationRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Email transport; the nop mailer keeps fan-out wiring intact when
	// delivery is turned off.
	var mail mailer.Mailer = mailer.NopMailer{}
	if cfg.EmailEnabled {
		mail = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:        cfg.SMTPHost,
			Port:        cfg.SMTPPort,
			Username:    cfg.SMTPUsername,
			Password:    cfg.SMTPPassword,
			FromAddress: cfg.SMTPFrom,
		})
	}

	// Initialize services
	notifier := service.NewNotifier(notifRepo, userRepo, mail, log, cfg.BaseURL)
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, authService, cacheClient)
	ticketService := service.NewTicketService(ticketRepo, userRepo, deptRepo, catRepo, notifier)
	commentService := service.NewCommentService(commentRepo, ticketRepo, notifier)
	catalogService := service.NewCatalogService(deptRepo, catRepo)
	notificationService := service.NewNotificationService(notifRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	ticketHandler := handler.NewTicketHandler(ticketService)
	commentHandler := handler.NewCommentHandler(commentService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	// Register routes
	router.Register(
		e,
		cfg,
		userService,
		authHandler,
		userHandler,
		ticketHandler,
		commentHandler,
		catalogHandler,
		notificationHandler,
	)

	addr := ":" + cfg.ServerPort
	log.Infow("starting server", "addr", addr)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalw("server start", "error", err)
	}
}
