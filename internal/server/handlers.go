package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/UnknownOlympus/meteogrid/internal/dashboard"
	"github.com/UnknownOlympus/meteogrid/internal/models"
	"github.com/UnknownOlympus/meteogrid/internal/repository"
	"github.com/UnknownOlympus/meteogrid/internal/service"
)

var errMissingParam = errors.New("missing query parameter")

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	lat, lon, err := floatPair(r.URL.Query(), "lat", "lon")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cell, err := s.deps.Projector.Project(lat, lon)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, cell)
}

func (s *Server) handleGridReverse(w http.ResponseWriter, r *http.Request) {
	x, y, err := floatPair(r.URL.Query(), "x", "y")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	coords, err := s.deps.Projector.Unproject(x, y)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, coords)
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var (
		forecast *service.Forecast
		err      error
	)
	if name := query.Get("location"); name != "" {
		forecast, err = s.deps.Weather.ForecastFor(r.Context(), name)
	} else {
		var lat, lon float64
		lat, lon, err = floatPair(query, "lat", "lon")
		if err != nil {
			writeError(w, http.StatusBadRequest, service.MessageLocationUnavailable)
			return
		}
		forecast, err = s.deps.Weather.ForecastAt(r.Context(), models.Coordinates{Latitude: lat, Longitude: lon})
	}

	if err != nil {
		s.logger.ErrorContext(r.Context(), "weather request failed", "error", err)
		writeError(w, weatherStatus(err), service.UserMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, forecast)
}

func weatherStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidLocation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Board.Snapshot())
}

type moveRequest struct {
	From *int `json:"from"`
	To   *int `json:"to"`
}

func (s *Server) handleMoveSection(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.From == nil || req.To == nil {
		writeError(w, http.StatusBadRequest, "from and to are required")
		return
	}

	if err := s.deps.Board.Move(*req.From, *req.To); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, dashboard.ErrIndexOutOfRange) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"sections": s.deps.Board.Sections()})
}

func floatPair(query url.Values, first, second string) (float64, float64, error) {
	a, err := floatParam(query, first)
	if err != nil {
		return 0, 0, err
	}
	b, err := floatParam(query, second)
	if err != nil {
		return 0, 0, err
	}

	return a, b, nil
}

func floatParam(query url.Values, name string) (float64, error) {
	raw := query.Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s", errMissingParam, name)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}

	return v, nil
}
