package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/myrsple/rezervace-sub000/config"
	"github.com/myrsple/rezervace-sub000/internal/handler"
	"github.com/myrsple/rezervace-sub000/internal/middleware"
	"github.com/myrsple/rezervace-sub000/internal/notify"
	"github.com/myrsple/rezervace-sub000/internal/repository"
	"github.com/myrsple/rezervace-sub000/internal/service"
	"github.com/myrsple/rezervace-sub000/pkg/database"
	"github.com/myrsple/rezervace-sub000/pkg/rabbitmq"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := database.NewPostgresDB(cfg.DSN())
	if cfg.SeedSpots {
		if err := database.SeedSpots(db); err != nil {
			log.Fatalf("failed to seed spots: %v", err)
		}
	}

	checks := map[string]handler.Check{"database": database.Ping(db)}

	// RabbitMQ is optional: without it reservations work but no mail goes out
	var publisher service.Publisher
	if cfg.RabbitURL != "" {
		mqPublisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer mqPublisher.Close()
		publisher = mqPublisher
		checks["rabbitmq"] = mqPublisher.Ping

		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatalf("failed to start consuming: %v", err)
		}

		var sender notify.Sender = notify.LogSender{}
		if cfg.MailerSendAPIKey != "" {
			sender = notify.NewMailerSendSender(cfg.MailerSendAPIKey, cfg.MailFromName, cfg.MailFromEmail)
		}
		notify.NewConsumer(sender).Start(ctx, msgs)
	} else {
		log.Println("[RabbitMQ] RABBITMQ_URL not set, notifications disabled")
	}

	limiterStore := middleware.NewMemoryStore(cfg.RateLimitPerMinute)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		limiterStore = middleware.NewRedisStore(rdb, cfg.RateLimitPerMinute, time.Minute)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	limit := middleware.RateLimit(limiterStore)

	// Repositories
	tx := repository.NewTransactor(db)
	spotRepo := repository.NewSpotRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	competitionRepo := repository.NewCompetitionRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)

	// Services
	spotSvc := service.NewSpotService(spotRepo)
	calendarSvc := service.NewCalendarService(spotRepo, reservationRepo, competitionRepo, time.Now)
	reservationSvc := service.NewReservationService(tx, spotRepo, reservationRepo, competitionRepo,
		publisher, cfg.BankAccountIBAN, time.Now)
	competitionSvc := service.NewCompetitionService(tx, competitionRepo, registrationRepo,
		publisher, cfg.BankAccountIBAN, time.Now)

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = middleware.NewRequestValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())
	e.Use(echoMw.BodyLimit("64K"))

	auth := middleware.NewAdminAuth(cfg.AdminPasswordHash, cfg.AdminSessionSecret, cfg.AdminSessionTTL)

	api := e.Group("/api/v1")
	adminOpen := api.Group("/admin")
	admin := api.Group("/admin", auth.Middleware())

	handler.NewHealthHandler(checks).RegisterRoutes(e)
	handler.NewSpotHandler(spotSvc, calendarSvc).RegisterRoutes(api, admin)
	handler.NewReservationHandler(reservationSvc, cfg.BankAccountIBAN).RegisterRoutes(api, admin, limit)
	handler.NewCompetitionHandler(competitionSvc, cfg.BankAccountIBAN).RegisterRoutes(api, admin, limit)
	handler.NewAdminHandler(auth, cfg.CookieSecure).RegisterRoutes(adminOpen, admin, limit)

	e.Static("/", cfg.StaticDir)

	go func() {
		log.Printf("Rezervace starting on :%s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
