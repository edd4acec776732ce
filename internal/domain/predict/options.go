package predict

import "time"

// Option applies a configuration option to the Ensemble.
type Option func(*Ensemble)

// WithBlendWeights sets the statistical/deep-learning blend. Weights are
// normalized, so only their ratio matters.
func WithBlendWeights(statistical, deep float64) Option {
	return func(e *Ensemble) {
		if statistical > 0 && deep > 0 {
			e.statWeight = statistical
			e.deepWeight = deep
		}
	}
}

// WithConfidenceFloor sets the minimum confidence an ensemble prediction
// must reach before it is served instead of the fallback.
func WithConfidenceFloor(floor float64) Option {
	return func(e *Ensemble) {
		if floor > 0 && floor <= 1 {
			e.confidenceFloor = floor
		}
	}
}

// WithMaxGoals caps the predicted score per side. Predictions above the cap
// are treated as model misbehavior and replaced by the fallback.
func WithMaxGoals(max float64) Option {
	return func(e *Ensemble) {
		if max > 0 {
			e.maxGoals = max
		}
	}
}

// WithLatencyRange sets the simulated inference latency range, modeling the
// external model servers the ensemble stands in for.
func WithLatencyRange(minLatency, maxLatency time.Duration) Option {
	return func(e *Ensemble) {
		if minLatency > 0 && maxLatency > minLatency {
			e.minLatency = minLatency
			e.maxLatency = maxLatency
		}
	}
}
