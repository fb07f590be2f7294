package main

import (
	"fmt"
	"net/http"

	"github.com/QRVault/QR-Backend/internal/auth"
	"github.com/QRVault/QR-Backend/internal/config"
	"github.com/QRVault/QR-Backend/internal/db"
	"github.com/QRVault/QR-Backend/internal/logging"
	"github.com/QRVault/QR-Backend/internal/middleware"
	"github.com/QRVault/QR-Backend/internal/qr"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.New(cfg.IsProduction())
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("connecting to database", zap.Error(err))
	}

	// Migration order matters: qr_codes carries a foreign key to users.
	if err := auth.Init(gdb); err != nil {
		log.Fatal("migrating auth tables", zap.Error(err))
	}
	if err := qr.Init(gdb); err != nil {
		log.Fatal("migrating qr tables", zap.Error(err))
	}

	// Sessions live in postgres by default, or in Redis when REDIS_URL is set.
	var sessions auth.SessionStore
	if cfg.RedisURL != "" {
		client, err := auth.OpenRedis(cfg.RedisURL)
		if err != nil {
			log.Fatal("connecting to redis", zap.Error(err))
		}
		defer client.Close()
		sessions = auth.NewRedisSessionStore(client, cfg.SessionTTL)
		log.Info("session store: redis")
	} else {
		sessions = auth.NewGormSessionStore(gdb, cfg.SessionTTL)
		log.Info("session store: postgres")
	}

	users := auth.NewUserStore(gdb)
	codes := qr.NewStore(gdb)

	authHandler := auth.NewHandler(users, sessions, log, cfg.IsProduction())
	qrHandler := qr.NewHandler(codes, sessions, log)
	limiter := middleware.NewRateLimiter(cfg.LoginRatePerMin)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Get("/", RootHandler)

	authHandler.RegisterRoutes(r, limiter)
	qrHandler.RegisterRoutes(r)

	log.Info("server listening", zap.String("port", cfg.Port))
	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
