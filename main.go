package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"photo-bridge/internal/database"
	"photo-bridge/internal/handlers"
	"photo-bridge/internal/logging"
	"photo-bridge/internal/media"
	"photo-bridge/internal/metrics"
	"photo-bridge/internal/middleware"
	"photo-bridge/internal/startup"
	"photo-bridge/internal/thumbs"
	"photo-bridge/internal/workers"

	"github.com/gorilla/mux"
)

func main() {
	startTime := time.Now()

	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	if err := media.InitVips(); err != nil {
		logging.Warn("libvips unavailable, using pure Go decode path: %v", err)
	}
	defer media.ShutdownVips()

	db, err := database.New(context.Background(), config.DatabasePath)
	if err != nil {
		startup.LogFatal("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// One engine instance for the life of the process, injected everywhere
	manager := thumbs.NewManager(media.NewFileDecoder(), thumbs.Config{
		CacheDir:      config.ThumbnailDir,
		ThumbnailSize: config.ThumbnailSize,
		MemoryEntries: config.MemoryEntries,
		Workers:       workers.ForCPU(config.DecodeWorkers),
		Metadata:      db,
	})
	defer manager.Close()

	if config.MetricsEnabled {
		metrics.InitializeMetrics()
		go metrics.Serve(config.MetricsPort)
	}

	h := handlers.New(manager, db, config)
	router := setupRouter(h)
	handler := middleware.Logger(router)

	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go handleShutdown(srv, manager)

	logging.Info("Preview service listening on :%s (started in %v)", config.Port, time.Since(startTime))
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/thumbnail", h.GetThumbnail).Methods("GET")
	api.HandleFunc("/prefetch", h.Prefetch).Methods("POST")
	api.HandleFunc("/metadata", h.GetMetadata).Methods("GET")
	api.HandleFunc("/cache/clear", h.ClearCache).Methods("POST")

	return r
}

func handleShutdown(srv *http.Server, manager *thumbs.Manager) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	logging.Info("Received %v, shutting down", sig)

	// Abandon queued work first so in-flight handlers fail fast
	manager.StopQueue()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown error: %v", err)
	}
}
