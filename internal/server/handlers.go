package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/omarshaarawi/hoopsbot/internal/models"
	"github.com/omarshaarawi/hoopsbot/internal/projection"
	"github.com/omarshaarawi/hoopsbot/internal/service"
)

type Handler struct {
	svc ProjectionService
}

func NewHandler(svc ProjectionService) *Handler {
	return &Handler{svc: svc}
}

// projectionResponse marks whether the projection is a fallback served after
// a failed refresh.
type projectionResponse struct {
	Projection models.MatchupProjection `json:"projection"`
	Stale      bool                     `json:"stale"`
	Error      string                   `json:"error,omitempty"`
}

type statusRequest struct {
	Status string `json:"status"`
	Date   string `json:"date,omitempty"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetProjection loads a projection. Query params: team, week, period; all
// optional.
func (h *Handler) GetProjection(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid projection request", err)
		return
	}

	p, err := h.svc.Load(r.Context(), req)
	if err == nil {
		respondJSON(w, http.StatusOK, projectionResponse{Projection: p})
		return
	}

	if errors.Is(err, service.ErrStaleRequest) {
		respondError(w, http.StatusConflict, "Superseded by a newer request", err)
		return
	}

	var fetchErr *service.FetchError
	if errors.As(err, &fetchErr) {
		if last, ok := h.svc.Last(req); ok {
			respondJSON(w, http.StatusOK, projectionResponse{Projection: last, Stale: true, Error: err.Error()})
			return
		}
		respondError(w, http.StatusBadGateway, "Failed to fetch matchup data", err)
		return
	}

	respondError(w, http.StatusInternalServerError, "Failed to build projection", err)
}

func (h *Handler) GetCurrentProjection(w http.ResponseWriter, r *http.Request) {
	p, ok := h.svc.Current()
	if !ok {
		respondError(w, http.StatusNotFound, "No projection loaded", nil)
		return
	}
	respondJSON(w, http.StatusOK, projectionResponse{Projection: p})
}

func (h *Handler) GetOverrides(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.DisableState())
}

func (h *Handler) SetPlayerStatus(w http.ResponseWriter, r *http.Request) {
	playerID, err := strconv.Atoi(mux.Vars(r)["playerID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid player ID", err)
		return
	}

	var body statusRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	status, err := projection.ParseStatus(body.Status)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid status", err)
		return
	}

	p, err := h.svc.SetPlayerStatus(r.Context(), playerID, status, body.Date)
	h.respondOverride(w, p, err)
}

func (h *Handler) ClearPlayerStatus(w http.ResponseWriter, r *http.Request) {
	playerID, err := strconv.Atoi(mux.Vars(r)["playerID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid player ID", err)
		return
	}

	p, err := h.svc.ClearPlayerStatus(r.Context(), playerID)
	h.respondOverride(w, p, err)
}

func (h *Handler) respondOverride(w http.ResponseWriter, p models.MatchupProjection, err error) {
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, projectionResponse{Projection: p})
	case errors.Is(err, service.ErrNoProjection):
		respondJSON(w, http.StatusAccepted, map[string]string{"message": "Override saved; no projection loaded"})
	case errors.Is(err, projection.ErrInvalidDate), errors.Is(err, projection.ErrInvalidStatus):
		respondError(w, http.StatusBadRequest, "Invalid override", err)
	default:
		respondError(w, http.StatusInternalServerError, "Failed to update override", err)
	}
}

func (h *Handler) parseRequest(r *http.Request) (models.MatchupRequest, error) {
	req := h.svc.DefaultRequest()
	q := r.URL.Query()

	if team := q.Get("team"); team != "" {
		id, err := strconv.Atoi(team)
		if err != nil || id <= 0 {
			return req, fmt.Errorf("team must be a positive integer: %q", team)
		}
		req.TeamID = id
	}
	if week := q.Get("week"); week != "" {
		n, err := strconv.Atoi(week)
		if err != nil || n < 0 {
			return req, fmt.Errorf("week must be a non-negative integer: %q", week)
		}
		req.Week = n
	}
	if period := q.Get("period"); period != "" {
		p := models.StatsPeriod(period)
		if !p.Valid() {
			return req, fmt.Errorf("unknown period %q", period)
		}
		req.Period = p
	}
	return req, nil
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	respondJSON(w, status, response)
}
