package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/dukerupert/sabzi/internal/handler"
	"github.com/dukerupert/sabzi/internal/metrics"
	"github.com/dukerupert/sabzi/internal/middleware"
	"github.com/dukerupert/sabzi/internal/seed"
	"github.com/dukerupert/sabzi/internal/store"
	ws "github.com/dukerupert/sabzi/internal/websocket"
)

type Server struct {
	hub       *ws.Hub
	itemStore *store.ItemStore
	itemH     *handler.ItemHandler
	metrics   *metrics.Registry
	loading   atomic.Bool
	logger    *slog.Logger
	now       func() time.Time
}

// New wires the item store, websocket hub and handlers. The server starts in
// the loading state until Bootstrap has run.
func New(db *sql.DB, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	itemStore := store.NewItemStore(db)
	reg := metrics.NewRegistry()

	s := &Server{
		hub:       hub,
		itemStore: itemStore,
		itemH:     handler.NewItemHandler(itemStore, hub, reg, logger.With("component", "item")),
		metrics:   reg,
		logger:    logger,
		now:       time.Now,
	}
	s.loading.Store(true)
	return s
}

// Loading reports whether Bootstrap is still running.
func (s *Server) Loading() bool {
	return s.loading.Load()
}

// Bootstrap seeds the store from seedText when it is empty and clears the
// loading flag. It returns the number of items inserted.
func (s *Server) Bootstrap(seedText string) (int, error) {
	defer s.loading.Store(false)

	count, err := s.itemStore.Count()
	if err != nil {
		return 0, fmt.Errorf("bootstrap: %w", err)
	}
	if count > 0 {
		s.refreshCounts()
		s.logger.Info("store already populated, skipping seed", "items", count)
		return 0, nil
	}

	records := seed.ParseLines(seedText)
	items := seed.FromRecords(records, s.now().UTC())
	if len(items) == 0 {
		s.logger.Warn("seed text produced no items")
		return 0, nil
	}
	if err := s.itemStore.CreateBatch(items); err != nil {
		return 0, fmt.Errorf("bootstrap: %w", err)
	}

	s.metrics.ObserveRecords(records)
	s.metrics.ItemsImported.Add(float64(len(items)))
	s.refreshCounts()
	s.hub.Broadcast(ws.Imported(len(items)))
	s.logger.Info("seeded shopping list", "items", len(items))
	return len(items), nil
}

func (s *Server) refreshCounts() {
	items, err := s.itemStore.List()
	if err != nil {
		s.logger.Warn("refresh item counts", "error", err)
		return
	}
	s.metrics.SetItemCounts(items)
}

// Hub returns the websocket hub.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.Handle("GET /metrics", s.metrics.Handler())
	mux.HandleFunc("GET /ws", ws.Handler(s.hub))

	// Parsing touches no storage, so it stays available while loading.
	mux.HandleFunc("POST /api/parse", s.itemH.Parse)

	itemMux := http.NewServeMux()
	s.registerItemRoutes(itemMux)
	mux.Handle("/api/items", s.requireLoaded(itemMux))
	mux.Handle("/api/items/", s.requireLoaded(itemMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) registerItemRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/items", s.itemH.List)
	mux.HandleFunc("POST /api/items", s.itemH.Create)
	mux.HandleFunc("POST /api/items/import", s.itemH.Import)
	mux.HandleFunc("GET /api/items/{id}", s.itemH.Get)
	mux.HandleFunc("PUT /api/items/{id}", s.itemH.Update)
	mux.HandleFunc("PUT /api/items/{id}/status", s.itemH.SetStatus)
	mux.HandleFunc("DELETE /api/items/{id}", s.itemH.Delete)
}

// requireLoaded answers 503 until the initial seed has finished.
func (s *Server) requireLoaded(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.loading.Load() {
			w.Header().Set("Retry-After", "1")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "loading"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if s.loading.Load() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "loading"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
