package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/tpclabs/research-assistant/internal/config"
	"github.com/tpclabs/research-assistant/internal/content"
	"github.com/tpclabs/research-assistant/internal/llm"
	"github.com/tpclabs/research-assistant/internal/logger"
	"github.com/tpclabs/research-assistant/internal/middleware"
	"github.com/tpclabs/research-assistant/internal/research"
	"github.com/tpclabs/research-assistant/internal/search"
	"github.com/tpclabs/research-assistant/internal/settings"
	"github.com/tpclabs/research-assistant/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.New(cfg.LogFile, cfg.Production)
	defer log.Sync()

	// ── Embedded store ───────────────────────────────────────
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatal("create data dir", zap.Error(err))
	}
	db, err := store.Open(filepath.Join(cfg.DataDir, "research.db"))
	if err != nil {
		log.Fatal("open store", zap.Error(err))
	}
	defer db.Close()

	credStore := store.NewCredentialStore(db)
	researchStore := store.NewResearchStore(db)

	// ── Collaborator clients ─────────────────────────────────
	searcher := search.NewTavily()
	model := llm.NewClient()

	// ── Services & handlers ──────────────────────────────────
	researchSvc := research.NewService(credStore, researchStore, searcher, model, log)
	contentSvc := content.NewService(credStore, researchStore, model, log)

	settingsHandler := settings.NewHandler(credStore, log)
	researchHandler := research.NewHandler(researchSvc, researchStore, log)
	contentHandler := content.NewHandler(contentSvc, log)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/settings/keys", func(r chi.Router) {
		r.Get("/", settingsHandler.Get)
		r.Put("/", settingsHandler.Put)
		r.Delete("/", settingsHandler.Delete)
	})

	r.Route("/api/research", func(r chi.Router) {
		r.Use(middleware.RequireCredentials(credStore))
		r.Post("/", researchHandler.Create)
		r.Get("/", researchHandler.List)
		r.Get("/{id}", researchHandler.Get)
		r.Post("/{id}/more", researchHandler.More)
		r.Post("/{id}/articles", contentHandler.Generate)
		r.Get("/{id}/jobs", contentHandler.Jobs)
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 5 * time.Minute,
	}

	go func() {
		log.Info("backend listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
