// Package predict computes match predictions by blending a statistical
// (Poisson-style) model with a deep-learning stand-in. The implementation
// simulates external model servers: deterministic outputs derived from the
// fixture, with optional inference latency.
package predict

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/abeldarick/ASDM-PRONO/internal/domain/model"
)

// Default ensemble configuration constants.
const (
	defaultStatWeight      = 0.6
	defaultDeepWeight      = 0.4
	defaultConfidenceFloor = 0.6
	defaultMaxGoals        = 10
	defaultRandomSeed      = 42
)

// Fixture carries the match facts the engine needs to produce a prediction.
type Fixture struct {
	MatchID     string
	HomeTeam    string
	AwayTeam    string
	Kickoff     time.Time
	Competition string
}

// Engine produces a prediction for a fixture.
type Engine interface {
	// Predict computes a prediction, honoring ctx for cancellation.
	Predict(ctx context.Context, fx Fixture) (model.Prediction, error)
}

// Ensemble implements Engine by blending two model families. Safe for
// concurrent use; blend weights only change through options at construction.
type Ensemble struct {
	statWeight float64
	deepWeight float64

	confidenceFloor float64
	maxGoals        float64

	minLatency time.Duration
	maxLatency time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewEnsemble creates the ensemble with the production blend (0.6
// statistical, 0.4 deep) and the validation thresholds.
func NewEnsemble(opts ...Option) *Ensemble {
	e := &Ensemble{
		statWeight:      defaultStatWeight,
		deepWeight:      defaultDeepWeight,
		confidenceFloor: defaultConfidenceFloor,
		maxGoals:        defaultMaxGoals,
		rng:             rand.New(rand.NewSource(defaultRandomSeed)), //nolint:gosec // deterministic seed for reproducible testing
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Predict blends both model families and validates the result. Predictions
// that miss the confidence floor or exceed the goal cap are replaced by the
// low-confidence fallback rather than served as-is.
func (e *Ensemble) Predict(ctx context.Context, fx Fixture) (model.Prediction, error) {
	if err := e.simulateLatency(ctx); err != nil {
		return model.Prediction{}, err
	}

	statHome, statAway := e.poissonExpectation(fx.HomeTeam, fx.AwayTeam)
	deepHome, deepAway := e.deepExpectation(fx.HomeTeam, fx.AwayTeam, fx.Competition)

	total := e.statWeight + e.deepWeight
	home := (statHome*e.statWeight + deepHome*e.deepWeight) / total
	away := (statAway*e.statWeight + deepAway*e.deepWeight) / total

	over15 := clamp01(1 - math.Exp(-(home+away)/1.5))
	confidence := clamp01(0.55 + 0.4*agreement(statHome+statAway, deepHome+deepAway))

	p := model.Prediction{
		HomeScore:         round2(home),
		AwayScore:         round2(away),
		Over15Probability: round2(over15),
		Confidence:        round2(confidence),
		Features: model.Map{
			"team_form":              model.Number(round2(teamStrength(fx.HomeTeam) - teamStrength(fx.AwayTeam))),
			"historical_performance": model.Number(round2(statHome + statAway)),
			"player_statistics":      model.Number(round2(deepHome + deepAway)),
			"weather_conditions":     model.Text("unknown"),
		},
	}
	if !e.acceptable(p) {
		return e.fallback(fx), nil
	}
	return p, nil
}

// acceptable applies the prediction validation thresholds: minimum
// confidence, plausible scores, and the full feature set present.
func (e *Ensemble) acceptable(p model.Prediction) bool {
	if p.Confidence < e.confidenceFloor {
		return false
	}
	if p.HomeScore > e.maxGoals || p.AwayScore > e.maxGoals {
		return false
	}
	for _, feature := range []string{"team_form", "historical_performance", "player_statistics", "weather_conditions"} {
		if _, ok := p.Features[feature]; !ok {
			return false
		}
	}
	return true
}

// fallback is served when the ensemble output fails validation. It carries
// zero confidence so consumers can tell it apart from a real prediction.
func (e *Ensemble) fallback(fx Fixture) model.Prediction {
	return model.Prediction{
		Confidence: 0,
		Features: model.Map{
			"fallback": model.Boolean(true),
			"match_id": model.Text(fx.MatchID),
		},
	}
}

func (e *Ensemble) simulateLatency(ctx context.Context) error {
	if e.minLatency <= 0 || e.maxLatency <= e.minLatency {
		return nil
	}
	e.mu.Lock()
	latency := e.minLatency + time.Duration(e.rng.Int63n(int64(e.maxLatency-e.minLatency)))
	e.mu.Unlock()
	select {
	case <-ctx.Done():
		return fmt.Errorf("prediction cancelled: %w", ctx.Err())
	case <-time.After(latency):
		return nil
	}
}

// poissonExpectation derives expected goals per side from relative team
// strength, with a fixed home advantage.
func (e *Ensemble) poissonExpectation(home, away string) (float64, float64) {
	hs := teamStrength(home)
	as := teamStrength(away)
	return 1.35*hs/as + 0.25, 1.35 * as / hs
}

// deepExpectation is the deep-learning stand-in: a second deterministic
// estimate shifted by a competition factor so the two families disagree in
// a controlled way.
func (e *Ensemble) deepExpectation(home, away, competition string) (float64, float64) {
	factor := 0.9 + 0.2*teamStrength(competition)
	hs := teamStrength(home)
	as := teamStrength(away)
	return (1.2*hs/as + 0.3) * factor, 1.2 * as / hs * factor
}

// teamStrength maps a name onto (0.5, 1.5] deterministically.
func teamStrength(name string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return 0.5 + float64(h.Sum32()%1000+1)/1000.0
}

// agreement maps the relative gap between two estimates onto [0,1], 1 when
// the model families fully agree.
func agreement(a, b float64) float64 {
	if a == 0 && b == 0 {
		return 1
	}
	gap := math.Abs(a-b) / math.Max(math.Abs(a), math.Abs(b))
	return clamp01(1 - gap)
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(1, f))
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
