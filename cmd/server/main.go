package main

import (
	"context"
	"fmt"
	"log"

	"github.com/howlerhq/howler-api/adapters/event"
	httpAdapter "github.com/howlerhq/howler-api/adapters/http"
	"github.com/howlerhq/howler-api/adapters/instagram"
	"github.com/howlerhq/howler-api/adapters/persistence"
	accountUC "github.com/howlerhq/howler-api/internal/application/usecase/account"
	authUC "github.com/howlerhq/howler-api/internal/application/usecase/auth"
	libraryUC "github.com/howlerhq/howler-api/internal/application/usecase/library"
	"github.com/howlerhq/howler-api/internal/application/usecase/scraper"
	"github.com/howlerhq/howler-api/internal/application/service"
	"github.com/howlerhq/howler-api/internal/config"
	"github.com/howlerhq/howler-api/internal/domain/library"
	"github.com/howlerhq/howler-api/internal/domain/source"
	"github.com/howlerhq/howler-api/internal/domain/state"
	"github.com/howlerhq/howler-api/pkg/auth"
	"github.com/howlerhq/howler-api/pkg/logger"
	"github.com/howlerhq/howler-api/pkg/ratelimit"
	"github.com/howlerhq/howler-api/pkg/tracing"
)

func main() {
	fmt.Println("Start Howler API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	if cfg.Jaeger.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "howler-api")
		if err != nil {
			appLogger.Error("cannot init tracing, continuing without it", err)
		} else {
			defer tp.Shutdown(context.Background())
		}
	}

	// Durable state is optional: without a DSN the service runs
	// memory-only, exactly like the original deployment.
	var stateRepo state.Repository
	if cfg.DB.DSN != "" {
		dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
		if err != nil {
			log.Fatalf("FATAL: cannot connect Postgres: %v", err)
		}
		defer dbPool.Close()

		stateRepo, err = persistence.NewPostgresSnapshotRepo(dbPool, appLogger)
		if err != nil {
			log.Fatalf("FATAL: cannot init snapshot repository: %v", err)
		}
	} else {
		appLogger.Warn("DB_DSN not set, state will not survive restarts")
	}

	var profileCache accountUC.ProfileCache
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(cfg, appLogger)
		if err != nil {
			log.Fatalf("FATAL: cannot connect Redis: %v", err)
		}
		defer redisClient.Close()
		profileCache = persistence.NewRedisProfileCache(redisClient, appLogger)
	} else {
		appLogger.Warn("REDIS_ADDR not set, profile lookups will not be cached")
	}

	var kafkaClient *event.KafkaProducerClient
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err = event.NewKafkaProducerClient(cfg)
		if err != nil {
			log.Fatalf("FATAL: cannot init Kafka: %v", err)
		}
		defer kafkaClient.Close()
	} else {
		appLogger.Warn("KAFKA_BROKERS not set, events will not be published")
	}

	// Domain state
	store := library.NewStore(cfg.Scraper.LibraryCapacity, appLogger)
	registry := source.NewRegistry()

	// Fetch pipeline
	httpClient := instagram.NewHTTPClient(cfg.Scraper.FetchTimeout)
	resolver := service.NewResolver(instagram.DefaultStrategies(httpClient), cfg.Scraper.FetchTimeout, appLogger)

	scheduler := scraper.NewScheduler(
		registry, store, resolver, kafkaClient,
		cfg.Scraper.DefaultIntervalHours, appLogger,
	)
	persister := service.NewStatePersister(store, registry, scheduler.Config, stateRepo, appLogger)
	scheduler.SetPersister(persister)

	// Restore persisted state before anything can run
	if stateRepo != nil {
		snap, err := stateRepo.Load(context.Background())
		if err != nil {
			appLogger.Error("cannot load persisted state, starting empty", err)
		} else if snap != nil {
			store.Restore(snap.Items)
			registry.Restore(snap.Accounts)
			scheduler.Restore(snap.Scheduler)
		}
	}
	scheduler.Start()
	defer scheduler.Shutdown()

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	limiter := ratelimit.NewLimiter(ratelimit.DefaultLimit, ratelimit.DefaultWindow)

	// Use cases
	loginUseCase := authUC.NewLoginUseCase(cfg, jwtSvc, appLogger)
	listItemsUseCase := libraryUC.NewListItemsUseCase(store, appLogger)
	statsUseCase := libraryUC.NewStatsUseCase(store, scheduler.Config, appLogger)
	markUsedUseCase := libraryUC.NewMarkUsedUseCase(store, persister, kafkaClient, appLogger)
	deleteItemUseCase := libraryUC.NewDeleteItemUseCase(store, persister, kafkaClient, appLogger)
	addAccountUseCase := accountUC.NewAddAccountUseCase(registry, store, resolver, persister, appLogger)
	removeAccountUseCase := accountUC.NewRemoveAccountUseCase(registry, store, persister, appLogger)
	lookupProfileUseCase := accountUC.NewLookupProfileUseCase(resolver, profileCache, appLogger)

	// HTTP handlers
	router := httpAdapter.NewRouter(httpAdapter.RouterDeps{
		Store:     store,
		Registry:  registry,
		JWTSvc:    jwtSvc,
		Limiter:   limiter,
		Auth:      httpAdapter.NewAuthHandler(loginUseCase),
		Library:   httpAdapter.NewLibraryHandler(listItemsUseCase, statsUseCase, markUsedUseCase, deleteItemUseCase),
		Accounts:  httpAdapter.NewAccountHandler(addAccountUseCase, removeAccountUseCase, registry, scheduler),
		Scraper:   httpAdapter.NewScraperHandler(scheduler, registry),
		Instagram: httpAdapter.NewInstagramHandler(lookupProfileUseCase),
		Proxy:     httpAdapter.NewProxyHandler(appLogger),
	})

	log.Printf("Server running on port %s", cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Cannot run server: %v", err)
	}
}
