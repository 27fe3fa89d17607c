// Package server exposes the latest refresh cycle as the JSON API the
// browser dashboard polls.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ShortSentinel/internal/snapshot"
)

// Server wraps the HTTP surface over the snapshot store.
type Server struct {
	Store *snapshot.Store
	http  *http.Server
}

// NewServer builds the router and the underlying http.Server.
func NewServer(addr string, store *snapshot.Store) *Server {
	s := &Server{Store: store}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/scores", s.handleScores)
		r.Get("/scores/{symbol}", s.handleScore)
		r.Get("/seasonality/weekly", s.handleWeekly)
		r.Get("/seasonality/heatmap", s.handleHeatmap)
	})

	s.http = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	log.Printf("[INFO] http server listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	cycle := s.Store.Latest()
	payload := map[string]interface{}{"status": "ok", "warmed_up": cycle != nil}
	if cycle != nil {
		payload["refreshed_at"] = cycle.RefreshedAt
		payload["symbols"] = len(cycle.Scores)
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	cycle := s.Store.Latest()
	if cycle == nil {
		writeError(w, http.StatusServiceUnavailable, "no refresh cycle completed yet")
		return
	}

	limit := len(cycle.Scores)
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n < limit {
			limit = n
		}
	}

	rows := make([]scoreRow, 0, limit)
	for _, cs := range cycle.Scores[:limit] {
		rows = append(rows, toScoreRow(cs))
	}
	writeJSON(w, http.StatusOK, scoresResponse{
		RefreshedAt: cycle.RefreshedAt,
		Source:      cycle.Source,
		TimingScore: cycle.TimingScore,
		Scores:      rows,
	})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	cs, ok := s.Store.Score(symbol)
	if !ok {
		writeError(w, http.StatusNotFound, "symbol not in current cycle")
		return
	}
	writeJSON(w, http.StatusOK, toScoreDetail(cs))
}

func (s *Server) handleWeekly(w http.ResponseWriter, _ *http.Request) {
	cycle := s.Store.Latest()
	if cycle == nil || cycle.Market == nil {
		writeError(w, http.StatusServiceUnavailable, "no seasonality aggregate yet")
		return
	}
	writeJSON(w, http.StatusOK, toWeeklyResponse(cycle.Market))
}

func (s *Server) handleHeatmap(w http.ResponseWriter, _ *http.Request) {
	cycle := s.Store.Latest()
	if cycle == nil || cycle.Market == nil {
		writeError(w, http.StatusServiceUnavailable, "no seasonality aggregate yet")
		return
	}
	writeJSON(w, http.StatusOK, toHeatmapResponse(cycle.Market))
}
