package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"

	_ "github.com/shenikar/emergency_dispatch/docs"
	"github.com/shenikar/emergency_dispatch/internal/auth"
	"github.com/shenikar/emergency_dispatch/internal/config"
	"github.com/shenikar/emergency_dispatch/internal/events"
	"github.com/shenikar/emergency_dispatch/internal/geocode"
	v1 "github.com/shenikar/emergency_dispatch/internal/handler/http/v1"
	"github.com/shenikar/emergency_dispatch/internal/repository"
	"github.com/shenikar/emergency_dispatch/internal/scheduler"
	"github.com/shenikar/emergency_dispatch/internal/service"
	"github.com/shenikar/emergency_dispatch/internal/triage"
	"github.com/shenikar/emergency_dispatch/pkg/logger"
	"github.com/shenikar/emergency_dispatch/pkg/postgres"
	redisclient "github.com/shenikar/emergency_dispatch/pkg/redis"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API, webhook worker and scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(ctx context.Context) error {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		return err
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Инициализация репозиториев
	incidentRepo := repository.NewIncidentRepository(dbpool, redisClient)
	userRepo := repository.NewUserRepository(dbpool)
	facilityRepo := repository.NewFacilityRepository(dbpool)

	// Справочник учреждений загружается до приема запросов
	directory := service.NewFacilityDirectory(facilityRepo, log)
	if err := directory.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to load facility directory: %w", err)
	}

	// Внешние сервисы
	analyzer := triage.NewAnalyzer(cfg, log)
	resolver, err := geocode.NewResolver(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create geocoding client: %w", err)
	}
	publisher := events.NewRedisPublisher(redisClient)
	subscriber := events.NewRedisSubscriber(redisClient, log)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	// Инициализация сервисов
	incidentService := service.NewIncidentService(incidentRepo, userRepo, directory, analyzer, resolver, publisher, log, cfg)
	authService := service.NewAuthService(userRepo, tokens, log)
	profileService := service.NewProfileService(userRepo, log)

	// Инициализация хэндлеров
	handler := v1.NewHandler(v1.Services{
		Incidents: incidentService,
		Auth:      authService,
		Profiles:  profileService,
		Directory: directory,
	}, tokens, subscriber, log, cfg)

	// Настройка Gin роутера
	router := gin.New()
	router.Use(v1.AccessLogMiddleware(log), gin.Recovery())
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	g, gctx := errgroup.WithContext(ctx)

	srv := newHTTPServer(fmt.Sprintf(":%s", cfg.HTTPPort), router, handler.CloseStreams)

	g.Go(func() error {
		log.Infof("HTTP server started on port %s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	webhookWorker := events.NewWebhookWorker(redisClient, log, cfg)
	g.Go(func() error {
		return webhookWorker.Run(gctx)
	})

	sched := scheduler.New(incidentService, directory, log, cfg.SweepSchedule, cfg.FacilityRefreshSchedule)
	g.Go(func() error {
		return sched.Run(gctx)
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Received shutdown signal, shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Server gracefully stopped")
	return nil
}

// newHTTPServer собирает сервер. Контекст запросов не связан с сигналом остановки:
// Shutdown дожидается начатых запросов, а onShutdown закрывает hijacked-соединения.
func newHTTPServer(addr string, handler http.Handler, onShutdown func()) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(onShutdown)
	return srv
}
