package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/baxromumarov/donor-wall/internal/core"
	"github.com/baxromumarov/donor-wall/internal/observability"
	"github.com/baxromumarov/donor-wall/internal/store"
)

type Server struct {
	router *chi.Mux
	store  *store.Store
	sync   *core.SyncService
}

func NewServer(store *store.Store, sync *core.SyncService) *Server {
	s := &Server{
		router: chi.NewRouter(),
		store:  store,
		sync:   sync,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/stats", s.handleStats)
	s.router.Post("/scrape-donors", s.handleScrapeDonors)
	s.router.Get("/api/donors", s.handleListDonors)
	s.router.Post("/api/donors", s.handleAddDonor)
	s.router.Delete("/api/donors/{id}", s.handleDeleteDonor)
	s.router.Get("/api/settings", s.handleGetSettings)
	s.router.Put("/api/settings", s.handleUpdateSettings)
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, observability.Snapshot())
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
