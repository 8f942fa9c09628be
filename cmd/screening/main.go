package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/KRITHIKR007/SIH-ALPHA01/internal/admin"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/inference"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/screening"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/shared/auth"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/shared/config"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/shared/database"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/shared/events"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/shared/logging"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/shared/metrics"
	secmiddleware "github.com/KRITHIKR007/SIH-ALPHA01/internal/shared/middleware"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/tts"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/upload"
)

// App holds all application dependencies
type App struct {
	Config *config.Config
	DB     *database.DB
	Bus    *events.Bus
	Models *inference.Client
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logging.Init(cfg.Server.Env)

	app := &App{Config: cfg, Bus: events.NewBus()}

	// Initialize database (optional - skip if not available)
	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		slog.Warn("database not available, running in non-persistent mode", "error", err)
	} else {
		app.DB = db
		defer db.Close()

		if err := database.Migrate(ctx, db.Pool); err != nil {
			slog.Warn("migration failed", "error", err)
		}
	}

	app.Models = inference.NewClient(inference.ClientConfig{
		BaseURL: cfg.Inference.URL,
		Timeout: time.Duration(cfg.Inference.TimeoutSeconds) * time.Second,
	})

	files, err := upload.NewStore(cfg.Uploads)
	if err != nil {
		slog.Error("failed to initialize upload store", "error", err)
		os.Exit(1)
	}

	// Completed screenings are logged through the bus so operators can
	// trace outcomes without database access.
	app.Bus.Subscribe(screening.EventScreeningCompleted, func(ctx context.Context, event events.Event) error {
		slog.Info("screening completed", "event_id", event.ID, "data", event.Data)
		return nil
	})

	var sessions *screening.Repository
	if app.DB != nil {
		sessions = screening.NewRepository(app.DB.Pool)
	}

	var screeningSvc *screening.Service
	var ttsSvc *tts.Service
	if sessions != nil {
		screeningSvc = screening.NewService(sessions, files, app.Models, app.Bus)
		ttsSvc = tts.NewService(app.Models, sessions, cfg.TTS)
	} else {
		screeningSvc = screening.NewService(nil, files, app.Models, app.Bus)
		ttsSvc = tts.NewService(app.Models, nil, cfg.TTS)
	}

	rateLimiter := secmiddleware.NewIPRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(secmiddleware.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))
	r.Use(secmiddleware.SecurityHeaders)
	r.Use(secmiddleware.MaxBody(cfg.Uploads.MaxBytes * 2))
	r.Use(metrics.Middleware)
	r.Use(corsMiddleware)
	r.Use(rateLimiter.Middleware)

	// Health checks (unauthenticated)
	r.Get("/health", healthHandler(app))
	r.Get("/ready", readyHandler(app))
	r.Handle("/metrics", metrics.Handler())

	// API info
	r.Get("/", infoHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/screenings", screening.NewHandler(screeningSvc).Routes())
		r.Mount("/tts", tts.NewHandler(ttsSvc).Routes())

		if sessions != nil {
			r.Route("/admin", func(r chi.Router) {
				r.Use(auth.Middleware(cfg.Auth))
				r.Use(auth.RequireAdmin)
				r.Mount("/", admin.NewHandler(sessions).Routes())
			})
		}
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		slog.Info("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
		close(done)
	}()

	slog.Info("dyslexia screening platform starting",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"inference_service", cfg.Inference.URL,
		"persistent", app.DB != nil,
	)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	<-done
	slog.Info("server stopped")
}

func infoHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"name":    "Dyslexia Screening Platform",
		"version": "0.1.0",
		"docs":    "/api/v1",
	})
}

func healthHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
		})
	}
}

func readyHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"server": "ready",
		}

		if app.DB != nil {
			if err := app.DB.Health(r.Context()); err != nil {
				checks["database"] = "not ready: " + err.Error()
			} else {
				checks["database"] = "ready"
			}
		} else {
			checks["database"] = "not configured"
		}

		if err := app.Models.Health(r.Context()); err != nil {
			checks["inference"] = "not ready: " + err.Error()
		} else {
			checks["inference"] = "ready"
		}

		allReady := true
		for _, status := range checks {
			if status != "ready" && status != "not configured" {
				allReady = false
				break
			}
		}

		status := http.StatusOK
		if !allReady {
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"status": map[bool]string{true: "ready", false: "not ready"}[allReady],
			"checks": checks,
		})
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Request-ID")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
