// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"time"

	"github.com/abeldarick/ASDM-PRONO/internal/contract"
	"github.com/abeldarick/ASDM-PRONO/internal/domain/model"
	"github.com/abeldarick/ASDM-PRONO/internal/domain/predict"
)

// dateLayout is the calendar-day format accepted in paths and bodies.
const dateLayout = "2006-01-02"

// handleMatchPrediction handles GET /api/predictions/match/:matchId.
func (s *Server) handleMatchPrediction(w http.ResponseWriter, req *request) {
	p, err := s.deps.PredictMatch(req.http.Context(), req.params["matchId"])
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type datePredictionsResponse struct {
	Matches     []model.Match      `json:"matches"`
	Predictions []model.Prediction `json:"predictions"`
}

// handleDatePredictions handles GET /api/predictions/date/:date.
func (s *Server) handleDatePredictions(w http.ResponseWriter, req *request) {
	day, err := time.Parse(dateLayout, req.params["date"])
	if err != nil {
		s.reject(w, &contract.FieldError{Field: "date", Reason: "must be a YYYY-MM-DD date"})
		return
	}
	matches, predictions, err := s.deps.PredictionsOn(req.http.Context(), day)
	if err != nil {
		s.fail(w, err)
		return
	}
	if matches == nil {
		matches = []model.Match{}
	}
	if predictions == nil {
		predictions = []model.Prediction{}
	}
	writeJSON(w, http.StatusOK, datePredictionsResponse{Matches: matches, Predictions: predictions})
}

// handleAnalyze handles POST /api/predictions/analyze.
func (s *Server) handleAnalyze(w http.ResponseWriter, req *request) {
	kickoff, err := time.Parse(dateLayout, stringField(req.body, "date"))
	if err != nil {
		s.reject(w, &contract.FieldError{Field: "date", Reason: "must be a YYYY-MM-DD date"})
		return
	}
	p, err := s.deps.Analyze(req.http.Context(), predict.Fixture{
		HomeTeam:    stringField(req.body, "homeTeam"),
		AwayTeam:    stringField(req.body, "awayTeam"),
		Kickoff:     kickoff,
		Competition: stringField(req.body, "competition"),
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
