package predict

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/abeldarick/ASDM-PRONO/internal/domain/model"
	"github.com/abeldarick/ASDM-PRONO/pkg/logger"
	"github.com/abeldarick/ASDM-PRONO/pkg/metrics"
)

// Model update configuration constants.
const (
	// improvementThreshold is the minimum gain every evaluation metric must
	// show before a candidate model replaces the current one.
	improvementThreshold = 0.02
	versionStep          = 0.1
	initialVersion       = 1.0
	scheduleCheckPeriod  = time.Hour
	// maintenanceHour is the off-peak hour for scheduled retraining.
	maintenanceHour = 3
)

// EvalMetrics summarizes how a model performs on the evaluation set.
type EvalMetrics struct {
	Accuracy float64 `json:"accuracy"`
	RMSE     float64 `json:"rmse"`
	LogLoss  float64 `json:"log_loss"`
}

// Evaluator trains and evaluates a candidate model, returning its metrics.
// The default implementation simulates the training run.
type Evaluator func(ctx context.Context, kind model.ModelKind, params model.Map, current EvalMetrics) (EvalMetrics, error)

// UpdateResult reports the outcome of one update attempt.
type UpdateResult struct {
	Deployed bool
	Version  float64
	Metrics  EvalMetrics
}

// Updater serializes model updates and decides whether a candidate model is
// good enough to deploy. A candidate ships only when accuracy, RMSE, and
// log-loss each improve beyond the threshold.
type Updater struct {
	mu       sync.Mutex
	version  float64
	current  map[model.ModelKind]EvalMetrics
	evaluate Evaluator
	rng      *rand.Rand
	log      logger.Logger
}

// UpdaterOption applies a configuration option to the Updater.
type UpdaterOption func(*Updater)

// WithEvaluator replaces the simulated training run.
func WithEvaluator(eval Evaluator) UpdaterOption {
	return func(u *Updater) {
		if eval != nil {
			u.evaluate = eval
		}
	}
}

// WithUpdaterLogger sets a custom logger for the updater.
func WithUpdaterLogger(log logger.Logger) UpdaterOption {
	return func(u *Updater) {
		if log != nil {
			u.log = log
		}
	}
}

// NewUpdater creates the updater with baseline metrics for both model
// families.
func NewUpdater(opts ...UpdaterOption) *Updater {
	u := &Updater{
		version: initialVersion,
		current: map[model.ModelKind]EvalMetrics{
			model.ModelStatistical:  {Accuracy: 0.64, RMSE: 1.21, LogLoss: 0.61},
			model.ModelDeepLearning: {Accuracy: 0.67, RMSE: 1.14, LogLoss: 0.58},
		},
		rng: rand.New(rand.NewSource(defaultRandomSeed)), //nolint:gosec // deterministic seed for reproducible testing
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.evaluate == nil {
		u.evaluate = u.simulatedEvaluation
	}
	return u
}

// Update trains and evaluates a candidate for the given model family and
// deploys it when every metric clears the improvement threshold. Updates are
// serialized behind a lock so concurrent admin calls cannot interleave.
func (u *Updater) Update(ctx context.Context, kind model.ModelKind, params model.Map) (UpdateResult, error) {
	if !kind.Valid() {
		return UpdateResult{}, ErrUnknownModel
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	current := u.current[kind]
	candidate, err := u.evaluate(ctx, kind, params, current)
	if err != nil {
		return UpdateResult{}, err
	}

	if !shouldDeploy(current, candidate) {
		return UpdateResult{Deployed: false, Version: u.version, Metrics: candidate}, nil
	}

	u.current[kind] = candidate
	u.version += versionStep
	metrics.UpdateModelVersion(u.version)
	metrics.UpdateModelAccuracy(candidate.Accuracy)
	if u.log != nil {
		u.log.Info(ctx, "deployed new model",
			logger.String("model", string(kind)),
			logger.Float64("version", u.version),
			logger.Float64("accuracy", candidate.Accuracy),
		)
	}
	return UpdateResult{Deployed: true, Version: u.version, Metrics: candidate}, nil
}

// Version returns the currently deployed model version.
func (u *Updater) Version() float64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.version
}

// CurrentMetrics returns the evaluation metrics of the deployed model for a
// family.
func (u *Updater) CurrentMetrics(kind model.ModelKind) EvalMetrics {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.current[kind]
}

// Schedule retrains both model families during the off-peak maintenance
// hour. It checks once per hour and returns when ctx is cancelled.
func (u *Updater) Schedule(ctx context.Context) {
	ticker := time.NewTicker(scheduleCheckPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if now.Hour() != maintenanceHour {
				continue
			}
			for _, kind := range []model.ModelKind{model.ModelStatistical, model.ModelDeepLearning} {
				if _, err := u.Update(ctx, kind, nil); err != nil && u.log != nil {
					u.log.Error(ctx, "scheduled model update failed",
						logger.String("model", string(kind)),
						logger.Error(err),
					)
				}
			}
		}
	}
}

// shouldDeploy requires all three metrics to beat the current model by more
// than the improvement threshold. RMSE and log-loss improve downwards.
func shouldDeploy(current, candidate EvalMetrics) bool {
	improvements := []float64{
		candidate.Accuracy - current.Accuracy,
		current.RMSE - candidate.RMSE,
		current.LogLoss - candidate.LogLoss,
	}
	for _, imp := range improvements {
		if imp <= improvementThreshold {
			return false
		}
	}
	return true
}

// simulatedEvaluation stands in for a real training pipeline. A supplied
// "target_accuracy" parameter steers the candidate; otherwise the run lands
// near the current metrics, usually below the deploy threshold.
func (u *Updater) simulatedEvaluation(_ context.Context, _ model.ModelKind, params model.Map, current EvalMetrics) (EvalMetrics, error) {
	shift := u.rng.Float64()*0.04 - 0.02
	if params != nil {
		if target, ok := params["target_accuracy"]; ok {
			if f, isNum := target.Float64(); isNum {
				shift = f - current.Accuracy
			}
		}
	}
	return EvalMetrics{
		Accuracy: clamp01(current.Accuracy + shift),
		RMSE:     current.RMSE - shift*2,
		LogLoss:  current.LogLoss - shift,
	}, nil
}
