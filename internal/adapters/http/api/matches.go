// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/abeldarick/ASDM-PRONO/internal/adapters/repository"
	"github.com/abeldarick/ASDM-PRONO/internal/contract"
	"github.com/abeldarick/ASDM-PRONO/internal/domain/model"
)

type listMatchesResponse struct {
	Matches []model.Match `json:"matches"`
	Total   int           `json:"total"`
}

// handleListMatches handles GET /api/matches with optional filters.
func (s *Server) handleListMatches(w http.ResponseWriter, req *request) {
	q := req.http.URL.Query()
	filter := repository.Filter{
		Competition: q.Get("competition"),
		Team:        q.Get("team"),
		Limit:       intQuery(q.Get("limit")),
		Offset:      intQuery(q.Get("offset")),
	}
	if raw := q.Get("date"); raw != "" {
		day, err := time.Parse(dateLayout, raw)
		if err != nil {
			s.reject(w, &contract.FieldError{Field: "date", Reason: "must be a YYYY-MM-DD date"})
			return
		}
		filter.Date = day
	}

	matches, total, err := s.deps.ListMatches(req.http.Context(), filter)
	if err != nil {
		s.fail(w, err)
		return
	}
	if matches == nil {
		matches = []model.Match{}
	}
	writeJSON(w, http.StatusOK, listMatchesResponse{Matches: matches, Total: total})
}

type matchStatsResponse struct {
	MatchStats      model.Map `json:"matchStats"`
	HistoricalStats model.Map `json:"historicalStats"`
}

// handleMatchStats handles GET /api/matches/:matchId/stats.
func (s *Server) handleMatchStats(w http.ResponseWriter, req *request) {
	matchStats, historical, err := s.deps.MatchStats(req.http.Context(), req.params["matchId"])
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matchStatsResponse{MatchStats: matchStats, HistoricalStats: historical})
}

// intQuery parses an already-validated numeric query value, tolerating the
// JSON number form.
func intQuery(raw string) int {
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return int(f)
}
