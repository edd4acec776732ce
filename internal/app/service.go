// Package app provides the core business service that implements the
// dependencies required by the HTTP API.
package app

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/abeldarick/ASDM-PRONO/internal/adapters/cache"
	"github.com/abeldarick/ASDM-PRONO/internal/adapters/repository"
	"github.com/abeldarick/ASDM-PRONO/internal/adapters/users"
	"github.com/abeldarick/ASDM-PRONO/internal/contract"
	"github.com/abeldarick/ASDM-PRONO/internal/domain/model"
	"github.com/abeldarick/ASDM-PRONO/internal/domain/predict"
	"github.com/abeldarick/ASDM-PRONO/internal/policy"
	"github.com/abeldarick/ASDM-PRONO/pkg/logger"
	"github.com/abeldarick/ASDM-PRONO/pkg/metrics"
)

// Service wires the contract registry, security policy, prediction engine,
// match store, cache, and account registry behind one dependency surface.
type Service struct {
	mu sync.RWMutex

	registry *contract.Registry
	policy   *policy.Policy

	store    repository.Store
	cache    *cache.PredictionCache
	accounts *users.Registry
	engine   predict.Engine
	updater  *predict.Updater

	// Configuration
	cacheTTL   time.Duration
	tokenTTL   time.Duration
	statWeight float64
	deepWeight float64
	seed       []model.Match

	// State
	started          atomic.Bool
	startedAt        time.Time
	predictionsCount atomic.Int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithPolicy replaces the default security policy.
func WithPolicy(p *policy.Policy) Option {
	return func(s *Service) {
		if p != nil {
			s.policy = p
		}
	}
}

// WithCacheTTL sets how long predictions stay cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithTokenTTL sets how long issued auth tokens stay valid.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

// WithBlendWeights sets the statistical/deep-learning ensemble blend.
func WithBlendWeights(statistical, deep float64) Option {
	return func(s *Service) {
		if statistical > 0 && deep > 0 {
			s.statWeight = statistical
			s.deepWeight = deep
		}
	}
}

// WithMatches preloads the match store.
func WithMatches(matches ...model.Match) Option {
	return func(s *Service) {
		s.seed = matches
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cacheTTL:   6 * time.Hour,
		tokenTTL:   24 * time.Hour,
		statWeight: 0.6,
		deepWeight: 0.4,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components and verifies the security policy
// against the route table.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started.Load() {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	reg, err := contract.Default()
	if err != nil {
		return err
	}
	s.registry = reg

	if s.policy == nil {
		s.policy = policy.New()
	}
	if err := s.policy.CheckAgainst(s.registry); err != nil {
		return err
	}

	s.store = repository.NewMemStore(repository.WithSeed(s.seed...))
	s.cache = cache.New(cache.WithTTL(s.cacheTTL))
	s.accounts = users.NewRegistry(users.WithTokenTTL(s.tokenTTL))
	s.engine = predict.NewEnsemble(predict.WithBlendWeights(s.statWeight, s.deepWeight))
	s.updater = predict.NewUpdater(predict.WithUpdaterLogger(s.logger))

	s.startedAt = time.Now()
	s.started.Store(true)
	s.logger.Info(ctx, "prediction service started",
		logger.Int("routes", len(s.registry.Routes())),
		logger.Int("seededMatches", len(s.seed)),
	)
	return nil
}

// Stop shuts the service down. Components are in-memory, so this only flips
// the started flag and logs.
func (s *Service) Stop() {
	if !s.started.CompareAndSwap(true, false) {
		return
	}
	s.logger.Info(context.Background(), "prediction service stopped")
}

// ScheduleModelUpdates runs the nightly retraining loop until ctx ends.
func (s *Service) ScheduleModelUpdates(ctx context.Context) {
	s.updater.Schedule(ctx)
}

// Registry exposes the contract registry for the HTTP dispatcher.
func (s *Service) Registry() *contract.Registry {
	return s.registry
}

// Policy exposes the security policy for the HTTP middleware.
func (s *Service) Policy() *policy.Policy {
	return s.policy
}

// Register creates an account and returns its first token.
func (s *Service) Register(ctx context.Context, email, password, name string) (users.Credentials, error) {
	creds, err := s.accounts.Register(ctx, email, password, name)
	if err != nil {
		return users.Credentials{}, err
	}
	metrics.UpdateRegisteredUsers(s.accounts.Count(ctx))
	return creds, nil
}

// Login verifies credentials and returns a fresh token.
func (s *Service) Login(ctx context.Context, email, password string) (users.Credentials, error) {
	return s.accounts.Login(ctx, email, password)
}

// Authenticate resolves a bearer token to a user ID.
func (s *Service) Authenticate(ctx context.Context, token string) (string, error) {
	return s.accounts.Authenticate(ctx, token)
}

// PredictMatch returns the prediction for a stored match, consulting the
// cache first.
func (s *Service) PredictMatch(ctx context.Context, matchID string) (model.Prediction, error) {
	m, err := s.store.Get(ctx, matchID)
	if err != nil {
		return model.Prediction{}, err
	}
	if p, ok := s.cache.Get(ctx, matchID); ok {
		return p, nil
	}
	p, err := s.predict(ctx, predict.Fixture{
		MatchID:     m.ID,
		HomeTeam:    m.HomeTeam,
		AwayTeam:    m.AwayTeam,
		Kickoff:     m.Kickoff,
		Competition: m.Competition,
	})
	if err != nil {
		return model.Prediction{}, err
	}
	s.cache.Put(ctx, matchID, p)
	return p, nil
}

// PredictionsOn returns the fixtures on a day with a prediction for each.
func (s *Service) PredictionsOn(ctx context.Context, day time.Time) ([]model.Match, []model.Prediction, error) {
	ms, err := s.store.OnDate(ctx, day)
	if err != nil {
		return nil, nil, err
	}
	ps := make([]model.Prediction, 0, len(ms))
	for _, m := range ms {
		p, err := s.PredictMatch(ctx, m.ID)
		if err != nil {
			return nil, nil, err
		}
		ps = append(ps, p)
	}
	return ms, ps, nil
}

// Analyze produces an ad-hoc prediction for a fixture that may not be in
// the store. Results are not cached because the fixture has no stable ID.
func (s *Service) Analyze(ctx context.Context, fx predict.Fixture) (model.Prediction, error) {
	return s.predict(ctx, fx)
}

// ListMatches returns matches for the filter and the pre-pagination total.
func (s *Service) ListMatches(ctx context.Context, f repository.Filter) ([]model.Match, int, error) {
	return s.store.List(ctx, f)
}

// MatchStats returns per-match and historical stats for a match.
func (s *Service) MatchStats(ctx context.Context, matchID string) (model.Map, model.Map, error) {
	return s.store.Stats(ctx, matchID)
}

// UpdateModels runs one admin-triggered model update.
func (s *Service) UpdateModels(ctx context.Context, kind model.ModelKind, params model.Map) (predict.UpdateResult, error) {
	return s.updater.Update(ctx, kind, params)
}

// GetStats returns service statistics for the admin metrics endpoint.
func (s *Service) GetStats() map[string]interface{} {
	ctx := context.Background()
	accuracy := s.updater.CurrentMetrics(model.ModelDeepLearning).Accuracy

	return map[string]interface{}{
		"predictionsCount": s.predictionsCount.Load(),
		"accuracy":         accuracy,
		"userCount":        s.accounts.Count(ctx),
		"systemHealth": map[string]interface{}{
			"started":        s.started.Load(),
			"uptimeSeconds":  int(time.Since(s.startedAt).Seconds()),
			"goroutines":     runtime.NumGoroutine(),
			"cachedEntries":  s.cache.Len(),
			"matchesTracked": s.store.Count(ctx),
			"modelVersion":   s.updater.Version(),
		},
	}
}

func (s *Service) predict(ctx context.Context, fx predict.Fixture) (model.Prediction, error) {
	start := time.Now()
	p, err := s.engine.Predict(ctx, fx)
	if err != nil {
		return model.Prediction{}, err
	}
	metrics.RecordPrediction()
	metrics.RecordPredictionLatency(float64(time.Since(start).Milliseconds()))
	if fb, ok := p.Features["fallback"]; ok {
		if isFallback, _ := fb.Bool(); isFallback {
			metrics.RecordPredictionFallback()
		}
	}
	s.predictionsCount.Add(1)
	return p, nil
}

// IsNotFound reports whether err is the match store's not-found condition.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
