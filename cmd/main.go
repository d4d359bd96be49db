package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/tourist_safety/internal/anomaly"
	"github.com/shenikar/tourist_safety/internal/config"
	v1 "github.com/shenikar/tourist_safety/internal/handler/http/v1"
	"github.com/shenikar/tourist_safety/internal/metrics"
	"github.com/shenikar/tourist_safety/internal/repository"
	"github.com/shenikar/tourist_safety/internal/repository/memory"
	"github.com/shenikar/tourist_safety/internal/scheduler"
	"github.com/shenikar/tourist_safety/internal/service"
	"github.com/shenikar/tourist_safety/internal/webhook"
	"github.com/shenikar/tourist_safety/internal/zoneindex"
	"github.com/shenikar/tourist_safety/pkg/kafka"
	"github.com/shenikar/tourist_safety/pkg/logger"
	"github.com/shenikar/tourist_safety/pkg/postgres"
	redisclient "github.com/shenikar/tourist_safety/pkg/redis"

	_ "github.com/shenikar/tourist_safety/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Tourist Safety API
// @version 1.0
// @description Location tracking, geofencing, anomaly detection and emergency response for tourists.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	// Контекст для graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Метрики
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	// Redis нужен для очереди вебхуков; при наличии он же служит кешем оценок
	var redisClient *goredis.Client
	if cfg.EventsBackend == config.EventsBackendRedis || cfg.StorageDriver == config.StorageDriverPostgres {
		redisClient, err = redisclient.NewRedisClient(ctx, redisclient.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
			PoolSize: cfg.RedisPoolSize,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to Redis")
	}

	// Инициализация репозиториев
	repos, closeStore, err := newRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer closeStore()
	if redisClient != nil {
		repos.ScoreCache = repository.NewScoreCache(redisClient, cfg.ScoreCacheTTL)
	}

	// Инициализация издателя событий
	publisher, closePublisher, err := newPublisher(ctx, cfg, log, redisClient)
	if err != nil {
		log.Fatalf("Failed to initialize event publisher: %v", err)
	}
	defer closePublisher()

	if cfg.EventsBackend == config.EventsBackendRedis {
		webhook.NewWebhookWorker(redisClient, log, cfg).Start(ctx)
	}

	// Инициализация сервисов
	index := zoneindex.New(cfg.Location())
	detectorCfg := anomaly.DefaultConfig()
	detectorCfg.LateNightThreshold = cfg.AnomalyLateNightThreshold
	detectorCfg.Location = cfg.Location()
	detector := anomaly.NewDetector(detectorCfg)

	zoneService := service.NewZoneService(repos.Zones, index, log, appMetrics)
	if err := zoneService.LoadIndex(ctx); err != nil {
		log.Fatalf("Failed to load zones: %v", err)
	}
	alertService := service.NewAlertService(repos, publisher, log, cfg, appMetrics)
	locationService := service.NewLocationService(repos, alertService, index, detector, log, cfg, appMetrics)
	scoreService := service.NewScoreService(repos, log, cfg)
	deviceService := service.NewDeviceService(repos.Devices, alertService, detector, log)

	// Периодический поиск аномалий
	sweeper, err := scheduler.NewAnomalySweeper(locationService, log, cfg)
	if err != nil {
		log.Fatalf("Failed to create anomaly sweeper: %v", err)
	}
	sweeper.Start(ctx)

	// Инициализация хэндлеров
	handler := v1.NewHandler(v1.Services{
		Alerts:    alertService,
		Locations: locationService,
		Scores:    scoreService,
		Zones:     zoneService,
		Devices:   deviceService,
	}, log, cfg)

	// Настройка Gin роутера
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Маршруты для Swagger UI и метрик
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))

	// Запуск HTTP-сервера
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	<-ctx.Done()
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}
	if err := sweeper.Stop(shutdownCtx); err != nil {
		log.WithError(err).Warn("Anomaly sweeper did not stop in time")
	}

	log.Info("Server gracefully stopped")
}

// newRepositories собирает хранилища выбранного драйвера
func newRepositories(ctx context.Context, cfg *config.Config, log *logrus.Logger) (service.Repositories, func(), error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		log.Warn("Using in-memory storage, data will be lost on restart")
		store := memory.New()
		return service.Repositories{
			Locations:   store.Locations(),
			Alerts:      store.Alerts(),
			Emergencies: store.Emergencies(),
			Zones:       store.Zones(),
			Devices:     store.Devices(),
			Responders:  store.Responders(),
			Scores:      store.Scores(),
			Tx:          store,
		}, func() {}, nil
	}

	// Запуск миграций
	log.Info("Running database migrations...")
	if err := postgres.Migrate(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		return service.Repositories{}, nil, err
	}
	log.Info("Database migrations applied successfully")

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		return service.Repositories{}, nil, err
	}
	log.Info("Successfully connected to PostgreSQL")

	return postgresRepositories(dbpool), dbpool.Close, nil
}

func postgresRepositories(dbpool *pgxpool.Pool) service.Repositories {
	return service.Repositories{
		Locations:   repository.NewLocationRepository(dbpool),
		Alerts:      repository.NewAlertRepository(dbpool),
		Emergencies: repository.NewEmergencyRepository(dbpool),
		Zones:       repository.NewZoneRepository(dbpool),
		Devices:     repository.NewDeviceRepository(dbpool),
		Responders:  repository.NewResponderRepository(dbpool),
		Scores:      repository.NewScoreRepository(dbpool),
		Tx:          repository.NewTransactor(dbpool),
	}
}

// newPublisher создает издателя событий выбранного бэкенда
func newPublisher(ctx context.Context, cfg *config.Config, log *logrus.Logger, redisClient *goredis.Client) (webhook.EventPublisher, func(), error) {
	switch cfg.EventsBackend {
	case config.EventsBackendKafka:
		client, err := kafka.NewProducer(ctx, cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("topic", cfg.KafkaTopic).Info("Publishing events to Kafka")
		return webhook.NewKafkaEventPublisher(client, cfg.KafkaTopic), client.Close, nil
	case config.EventsBackendRedis:
		log.Info("Publishing events to Redis webhook queue")
		return webhook.NewRedisEventPublisher(redisClient), func() {}, nil
	default:
		log.Warn("Events are only logged")
		return webhook.NewLogEventPublisher(log), func() {}, nil
	}
}

// requestLogger пишет одну запись на каждый HTTP-запрос
func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		entry := log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.FullPath(),
			"status":  c.Writer.Status(),
			"client":  c.ClientIP(),
			"latency": time.Since(start).String(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Error("HTTP request failed")
			return
		}
		entry.Debug("HTTP request served")
	}
}
