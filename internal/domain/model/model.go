// Package model contains the match and prediction types shared across the
// application.
package model

import "time"

// Match describes a single fixture as produced by the match data source.
// Matches are immutable once stored.
type Match struct {
	ID          string    `json:"matchId"`
	HomeTeam    string    `json:"homeTeam"`
	AwayTeam    string    `json:"awayTeam"`
	Kickoff     time.Time `json:"date"`
	Competition string    `json:"competition"`
	Statistics  Map       `json:"statistics,omitempty"`
}

// Prediction is the outcome of running the prediction engine for one match.
// Probabilities are kept in [0,1]; Features carries the model inputs that
// explain the result.
type Prediction struct {
	HomeScore         float64 `json:"homeScore"`
	AwayScore         float64 `json:"awayScore"`
	Over15Probability float64 `json:"over15Probability"`
	Confidence        float64 `json:"confidence"`
	Features          Map     `json:"features,omitempty"`
}

// ModelKind enumerates the prediction model families the service supports.
type ModelKind string

// Supported model kinds.
const (
	ModelStatistical  ModelKind = "statistical"
	ModelDeepLearning ModelKind = "deep-learning"
)

// Valid reports whether k names a supported model family.
func (k ModelKind) Valid() bool {
	return k == ModelStatistical || k == ModelDeepLearning
}
