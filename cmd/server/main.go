package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/trilhasbrasil/backend/internal/auth"
	"github.com/trilhasbrasil/backend/internal/delivery/http"
	"github.com/trilhasbrasil/backend/internal/forecast"
	"github.com/trilhasbrasil/backend/internal/repository/postgres"
	"github.com/trilhasbrasil/backend/internal/repository/seed"
	"github.com/trilhasbrasil/backend/internal/repository/sqlite"
	"github.com/trilhasbrasil/backend/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Dependency Injection: Repositories
	dataRepo, closeRepo := openRepository(ctx, cfg)
	defer closeRepo()

	// Dependency Injection: Services
	locale := forecast.MatchLocale(cfg.WeatherLocale)
	var provider service.ForecastProvider
	if cfg.OpenWeatherAPIKey != "" {
		owm := service.NewOpenWeatherProvider(cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL, locale.ProviderLang, cfg.OpenWeatherRPS)
		provider = service.NewCachedForecastProvider(owm, cfg.WeatherCacheTTL)
	} else {
		log.Println("OPENWEATHER_API_KEY not set, /weather will answer 500")
	}

	var verifier auth.Verifier
	switch {
	case cfg.SupabaseURL != "":
		verifier = auth.NewSupabaseVerifier(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	case cfg.Env != "production":
		log.Println("SUPABASE_URL not set, accepting dev-<user> tokens")
		verifier = auth.DevVerifier{}
	default:
		log.Fatal("SUPABASE_URL is required in production")
	}

	broker := auth.NewBroker()
	hikeSvc := service.NewHikeService(dataRepo, cfg.HikeTick)

	unsubscribeHikes := broker.Subscribe(func(e auth.Event) {
		if e.Type == auth.SignedOut {
			if n := hikeSvc.StopUser(e.User.ID); n > 0 {
				log.Printf("Stopped %d hike(s) of %s on sign-out", n, e.User.ID)
			}
		}
	})
	defer unsubscribeHikes()

	svc := http.Services{
		Weather:   service.NewWeatherService(provider, locale),
		Catalog:   service.NewCatalogService(dataRepo),
		Maps:      service.NewMapService(dataRepo),
		Community: service.NewCommunityService(dataRepo),
		Hikes:     hikeSvc,
		Sessions:  auth.NewSessions(verifier, broker),
		Repo:      dataRepo,
	}

	// Fiber App
	app := fiber.New(http.AppConfig("Trilhas Brasil API v1.0"))

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Routes
	http.SetupRoutes(app, svc)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	hikeSvc.StopAll()
	hikeSvc.WaitBackground()
	log.Println("Server exited gracefully")
}

// openRepository picks Postgres when it answers, then SQLite when a path is
// configured, and falls back to the in-memory store
func openRepository(ctx context.Context, cfg *Config) (service.DataRepository, func()) {
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err == nil {
			err = pool.Ping(ctx)
		}
		if err == nil {
			log.Println("Connected to PostgreSQL")
			repo := postgres.NewPostgresRepository(pool)
			seedPostgres(ctx, repo)
			return repo, pool.Close
		}
		log.Printf("Warning: Could not connect to database: %v", err)
		if pool != nil {
			pool.Close()
		}
	}

	if cfg.SQLitePath != "" {
		repo, err := sqlite.New(cfg.SQLitePath)
		if err == nil {
			if err := repo.SeedCatalog(ctx, seed.Parks(), seed.Trails()); err != nil {
				log.Printf("Warning: Could not seed SQLite catalog: %v", err)
			}
			log.Printf("Using SQLite store at %s", cfg.SQLitePath)
			return repo, func() { repo.Close() }
		}
		log.Printf("Warning: Could not open SQLite store: %v", err)
	}

	log.Println("Running with mock data only")
	return postgres.NewMockRepository(), func() {}
}

func seedPostgres(ctx context.Context, repo *postgres.PostgresRepository) {
	n, err := repo.CountParks(ctx)
	if err != nil {
		log.Printf("Warning: Could not count parks: %v", err)
		return
	}
	if n > 0 {
		return
	}
	if err := repo.SeedCatalog(ctx, seed.Parks(), seed.Trails()); err != nil {
		log.Printf("Warning: Could not seed catalog: %v", err)
		return
	}
	log.Println("Seeded empty catalog")
}

type Config struct {
	DatabaseURL        string
	SQLitePath         string
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string
	OpenWeatherRPS     float64
	WeatherLocale      string
	WeatherCacheTTL    time.Duration
	SupabaseURL        string
	SupabaseAnonKey    string
	HikeTick           time.Duration
	CORSOrigins        string
	Port               string
	Env                string
}

func loadConfig() *Config {
	return &Config{
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		SQLitePath:         getEnv("SQLITE_PATH", ""),
		OpenWeatherAPIKey:  getEnv("OPENWEATHER_API_KEY", ""),
		OpenWeatherBaseURL: getEnv("OPENWEATHER_BASE_URL", service.DefaultOpenWeatherURL),
		OpenWeatherRPS:     getEnvFloat("OPENWEATHER_RPS", 1),
		WeatherLocale:      getEnv("WEATHER_LOCALE", "pt-BR"),
		WeatherCacheTTL:    getEnvDuration("WEATHER_CACHE_TTL", 30*time.Minute),
		SupabaseURL:        getEnv("SUPABASE_URL", ""),
		SupabaseAnonKey:    getEnv("SUPABASE_ANON_KEY", ""),
		HikeTick:           getEnvDuration("HIKE_TICK", time.Second),
		CORSOrigins:        getEnv("CORS_ORIGINS", "*"),
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("GO_ENV", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return d
}
