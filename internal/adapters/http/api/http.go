// Package api declares HTTP contracts and route registration helpers. The
// dispatcher consults the contract registry for every request: the route
// table decides what exists, the declared shapes decide what is accepted,
// and the security policy decides who may call it.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/abeldarick/ASDM-PRONO/internal/adapters/repository"
	"github.com/abeldarick/ASDM-PRONO/internal/adapters/users"
	"github.com/abeldarick/ASDM-PRONO/internal/contract"
	"github.com/abeldarick/ASDM-PRONO/internal/domain/model"
	"github.com/abeldarick/ASDM-PRONO/internal/domain/predict"
	"github.com/abeldarick/ASDM-PRONO/internal/policy"
	"github.com/abeldarick/ASDM-PRONO/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Registry() *contract.Registry
	Policy() *policy.Policy

	Register(ctx context.Context, email, password, name string) (users.Credentials, error)
	Login(ctx context.Context, email, password string) (users.Credentials, error)
	Authenticate(ctx context.Context, token string) (string, error)

	PredictMatch(ctx context.Context, matchID string) (model.Prediction, error)
	PredictionsOn(ctx context.Context, day time.Time) ([]model.Match, []model.Prediction, error)
	Analyze(ctx context.Context, fx predict.Fixture) (model.Prediction, error)

	ListMatches(ctx context.Context, f repository.Filter) ([]model.Match, int, error)
	MatchStats(ctx context.Context, matchID string) (model.Map, model.Map, error)

	UpdateModels(ctx context.Context, kind model.ModelKind, params model.Map) (predict.UpdateResult, error)
	GetStats() map[string]interface{}
}

// request carries everything a route handler needs after dispatch:
// validated payload, bound path parameters, and the authenticated user.
type request struct {
	route  *contract.Route
	params contract.Params
	body   model.Map
	userID string
	http   *http.Request
}

// handlerFunc is the signature every route handler implements.
type handlerFunc func(w http.ResponseWriter, req *request)

// Server wires HTTP routes for the business API.
type Server struct {
	deps     Dependencies
	limiter  *rateLimiter
	handlers map[string]handlerFunc
}

// NewServer creates a new API server dispatching over the contract registry.
func NewServer(deps Dependencies) *Server {
	s := &Server{
		deps:    deps,
		limiter: newRateLimiter(deps.Policy()),
	}
	s.handlers = map[string]handlerFunc{
		contract.RouteRegister:         s.handleRegister,
		contract.RouteLogin:            s.handleLogin,
		contract.RouteMatchPrediction:  s.handleMatchPrediction,
		contract.RouteDatePredictions:  s.handleDatePredictions,
		contract.RouteAnalyze:          s.handleAnalyze,
		contract.RouteListMatches:      s.handleListMatches,
		contract.RouteMatchStats:       s.handleMatchStats,
		contract.RouteUpdateModels:     s.handleUpdateModels,
		contract.RouteOperationMetrics: s.handleOperationMetrics,
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	api := CORSMiddleware(RateLimitMiddleware(s.dispatch, s.limiter), s.deps.Policy())
	mux.HandleFunc("/api/", api)
	mux.HandleFunc("/healthz", MetricsMiddleware(handleHealth, "healthz"))
}

// dispatch resolves the route, enforces the auth policy, validates the
// request against the declared shapes, and hands off to the route handler.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	rt, params, err := s.deps.Registry().Lookup(r.Method, r.URL.Path)
	if err != nil {
		metrics.RecordErrorByType(codeRouteNotFound)
		writeError(w, http.StatusNotFound, codeRouteNotFound, err)
		return
	}

	wrapped := func(w http.ResponseWriter, r *http.Request) {
		userID, ok := s.authenticate(w, r)
		if !ok {
			return
		}
		req, ok := s.validated(w, r, rt, params)
		if !ok {
			return
		}
		req.userID = userID
		s.handlers[rt.Name](w, req)
	}
	MetricsMiddleware(wrapped, rt.Template)(w, r)
}

// authenticate applies the security policy for the request path. A Required
// path without a valid bearer token is rejected; on Optional paths an
// invalid token degrades to anonymous access.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (string, bool) {
	requirement := s.deps.Policy().AuthRequirementFor(r.URL.Path)
	if requirement == policy.AuthNone {
		return "", true
	}

	userID, err := s.deps.Authenticate(r.Context(), bearerToken(r))
	if err == nil {
		return userID, true
	}
	if requirement == policy.AuthRequired {
		metrics.RecordAuthRejected()
		metrics.RecordErrorByType(codeAuthRequired)
		writeError(w, http.StatusUnauthorized, codeAuthRequired, ErrAuthRequired)
		return "", false
	}
	return "", true
}

// validated decodes and validates body, query, and path parameters against
// the route's declared shapes.
func (s *Server) validated(w http.ResponseWriter, r *http.Request, rt *contract.Route, params contract.Params) (*request, bool) {
	req := &request{route: rt, params: params, http: r}

	if rt.Params != nil {
		if err := rt.Params.ValidateStrings(params); err != nil {
			s.reject(w, err)
			return nil, false
		}
	}
	if rt.Query != nil {
		values := make(map[string]string)
		for key := range r.URL.Query() {
			values[key] = r.URL.Query().Get(key)
		}
		if err := rt.Query.ValidateStrings(values); err != nil {
			s.reject(w, err)
			return nil, false
		}
	}
	if rt.Body != nil {
		var body model.Map
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.reject(w, &contract.FieldError{Field: "body", Reason: "must be a JSON object"})
			return nil, false
		}
		if err := rt.Body.Validate(body); err != nil {
			s.reject(w, err)
			return nil, false
		}
		req.body = body
	}
	return req, true
}

func (s *Server) reject(w http.ResponseWriter, err error) {
	metrics.RecordErrorByType(codeValidation)
	writeError(w, http.StatusBadRequest, codeValidation, err)
}

// fail translates handler errors: the store's not-found condition becomes
// 404, everything else 500.
func (s *Server) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		metrics.RecordErrorByType(codeRouteNotFound)
		writeError(w, http.StatusNotFound, "not_found", err)
		return
	}
	metrics.RecordErrorByType(codeInternal)
	writeError(w, http.StatusInternalServerError, codeInternal, err)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	resp := errorResponse{Code: code, Message: msg}
	var fieldErr *contract.FieldError
	if errors.As(err, &fieldErr) {
		resp.Field = fieldErr.Field
	}
	writeJSON(w, status, resp)
}

// bearerToken extracts the token from an Authorization: Bearer header.
func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	h := r.Header.Get("Authorization")
	if len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	return ""
}

// stringField reads a validated string field from a decoded body.
func stringField(body model.Map, name string) string {
	s, _ := body[name].String()
	return s
}
