package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/baxromumarov/donor-wall/internal/core"
	"github.com/baxromumarov/donor-wall/internal/scraper"
	"github.com/baxromumarov/donor-wall/internal/store"
)

// handleScrapeDonors is the "run sync now" entry point used by operators and
// the interval trigger alike.
func (s *Server) handleScrapeDonors(w http.ResponseWriter, r *http.Request) {
	result := s.sync.Run(r.Context())

	switch result.Status {
	case core.StatusSuccess:
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"message":      "Donors scraped successfully.",
			"donors_count": result.Count,
		})
	case core.StatusNoData:
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"message": "No donor data found from configured source.",
		})
	default:
		respondError(w, http.StatusBadGateway, result.Detail)
	}
}

func (s *Server) handleListDonors(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r, 10)

	donors, err := s.store.ListDonors(r.Context(), perPage, (page-1)*perPage)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch donors: "+err.Error())
		return
	}
	if donors == nil {
		donors = []store.Donor{}
	}
	respondJSON(w, http.StatusOK, donors)
}

type AddDonorRequest struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

func (s *Server) handleAddDonor(w http.ResponseWriter, r *http.Request) {
	var req AddDonorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Name is required")
		return
	}

	id, err := s.store.AddDonor(r.Context(), req.Name, scraper.ParseDecimal(req.Amount))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to add donor: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"id": id})
}

func (s *Server) handleDeleteDonor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid donor ID")
		return
	}

	if err := s.store.DeleteDonor(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete donor: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.store.GetSettings(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch settings: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	current, err := s.store.GetSettings(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch settings: "+err.Error())
		return
	}

	if err := json.NewDecoder(r.Body).Decode(&current); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.store.UpdateSettings(r.Context(), current); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update settings: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, current)
}

func parsePagination(r *http.Request, defaultPerPage int) (int, int) {
	q := r.URL.Query()
	page := 1
	perPage := defaultPerPage

	if v := q.Get("page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			page = parsed
		}
	}
	if v := q.Get("per_page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			perPage = parsed
		}
	}

	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	return page, perPage
}
