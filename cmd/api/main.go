package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "moveasy-api/docs"
	"moveasy-api/internal/cache"
	"moveasy-api/internal/client"
	"moveasy-api/internal/config"
	"moveasy-api/internal/handler"
	"moveasy-api/internal/middleware"
	"moveasy-api/internal/repository"
	"moveasy-api/internal/service"
	"moveasy-api/internal/telemetry"
	"moveasy-api/internal/translation"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "moveasy-api"

// @title Moveasy API
// @version 1.0.0
// @description Listing search, geocoding, translation and commute estimates for the Moveasy frontend.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	setupLogger(config.LogLevel, config.IsDevelopment())

	if err := config.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, serviceName, config.OTelEndpoint)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize tracer")
		shutdownTracer = func(context.Context) error { return nil }
	}

	// Database connection
	conn, err := pgxpool.New(ctx, config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	kv, err := cache.Open(config.TranslationCacheDB, config.TranslationCacheTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open translation cache")
	}
	defer kv.Close()
	go purgeExpired(ctx, kv, time.Hour)

	// Providers
	httpClient := telemetry.NewHTTPClient(config.ProviderTimeout)
	photon := client.NewPhotonClient(config.PhotonBaseURL, httpClient)
	libre := client.NewLibreTranslateClient(config.LibreTranslateURL, config.LibreTranslateAPIKey, httpClient)
	routes := client.NewOpenRouteClient(config.OpenRouteServiceURL, config.OpenRouteServiceKey, httpClient)

	var uiTranslator translation.Provider = libre
	if config.GoogleTranslateAPIKey != "" {
		google, err := client.NewGoogleTranslateClient(ctx, config.GoogleTranslateAPIKey)
		if err != nil {
			log.Error().Err(err).Msg("failed to create Google Translate client, using LibreTranslate")
		} else {
			defer google.Close()
			uiTranslator = google
		}
	}

	// Initialize layers
	repo := repository.NewRepository(conn)
	translationCache := translation.NewCache(config.TranslationCacheTTL, kv)
	adapter := translation.NewAdapter(translation.NewDictionary(), translationCache, libre)

	geocodeService := service.NewGeocodeService(photon, adapter,
		service.NewGeocodeCache(config.GeocodeCacheSize, config.GeocodeCacheTTL))
	searchService := service.NewSearchService(repo,
		service.NewAreaResolver(repo),
		service.NewBuildingResolver(repo),
		adapter,
		geocodeService,
	)
	mapService := service.NewMapService(repo,
		service.NewAreaResolver(repo),
		service.NewBuildingResolver(repo),
		adapter,
	)
	commuteService := service.NewCommuteService(routes)
	translateService := service.NewTranslateService(uiTranslator, translationCache)
	areaSyncService := service.NewAreaSyncService(repo)
	adminService := service.NewAdminService(config.SupabaseJWTSecret, repo)

	geoHandler := handler.NewGeoHandler(geocodeService)
	searchHandler := handler.NewSearchHandler(searchService)
	mapHandler := handler.NewMapHandler(mapService)
	commuteHandler := handler.NewCommuteHandler(commuteService)
	translateHandler := handler.NewTranslateHandler(translateService)
	areaHandler := handler.NewAreaHandler(areaSyncService, config.DataFiles())
	adminHandler := handler.NewAdminHandler(adminService)
	configHandler := handler.NewConfigHandler(handler.PublicConfig{
		SupabaseURL:     config.SupabaseURL,
		SupabaseAnonKey: config.SupabaseAnonKey,
		GoogleClientID:  config.GoogleClientID,
	})

	if !config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(), middleware.Prometheus(), middleware.CORS(config.Origins()))

	requireAdmin := middleware.RequireAdmin(adminService)

	r.GET("/", handler.Info)
	r.GET("/health", handler.Health)
	r.GET("/metrics", middleware.PrometheusHandler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.GET("/", handler.Info)
	api.GET("/config", configHandler.Get)
	api.GET("/search", searchHandler.Search)
	api.GET("/buildings/categories", searchHandler.Categories)
	api.GET("/map", mapHandler.Map)

	geo := api.Group("/geo")
	geo.GET("/search", geoHandler.Search)
	geo.GET("/reverse", geoHandler.Reverse)

	tr := api.Group("/translate")
	tr.GET("/languages", translateHandler.Languages)
	tr.POST("/text", translateHandler.Text)
	tr.POST("/batch", translateHandler.Batch)
	tr.POST("/json", translateHandler.JSON)
	tr.DELETE("/cache", requireAdmin, translateHandler.ClearCache)

	areas := api.Group("/areas")
	areas.GET("/status", areaHandler.Status)
	areas.GET("/locate", searchHandler.Locate)
	areas.GET("/:id/details", searchHandler.Details)
	areas.POST("/sync-from-json", requireAdmin, areaHandler.SyncFromJSON)
	areas.POST("/sync-from-files", requireAdmin, areaHandler.SyncFromFiles)

	api.POST("/commute", commuteHandler.Commute)
	api.POST("/commute/batch", commuteHandler.Batch)

	api.GET("/admin/check", adminHandler.Check)
	api.GET("/users", requireAdmin, adminHandler.ListUsers)

	srv := &http.Server{
		Addr:              config.ServerAddress,
		Handler:           otelhttp.NewHandler(r, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", config.ServerAddress).Str("environment", config.Environment).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("tracer shutdown failed")
	}
}

func setupLogger(level string, development bool) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	if development {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// purgeExpired drops stale persistent translations until ctx is done.
func purgeExpired(ctx context.Context, kv *cache.Store, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := kv.PurgeExpired(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("failed to purge translation cache")
				continue
			}
			log.Debug().Int64("removed", n).Msg("purged expired translations")
		}
	}
}
