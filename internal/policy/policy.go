// Package policy holds the security policy for the API: which path prefixes
// demand authentication, the global rate-limit budget, and the CORS
// allow-lists. The policy is static configuration; enforcement belongs to
// the HTTP adapter, which queries it per request.
package policy

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/abeldarick/ASDM-PRONO/internal/contract"
)

// AuthRequirement classifies how a path relates to authentication.
type AuthRequirement int

// Auth requirement levels.
const (
	// AuthNone means the path is outside every auth pattern.
	AuthNone AuthRequirement = iota
	// AuthOptional means a valid token enriches the request but is not demanded.
	AuthOptional
	// AuthRequired means unauthenticated access must be rejected.
	AuthRequired
)

func (a AuthRequirement) String() string {
	switch a {
	case AuthRequired:
		return "required"
	case AuthOptional:
		return "optional"
	default:
		return "none"
	}
}

// RateLimit is the single global request budget shared by all routes.
type RateLimit struct {
	Window      time.Duration
	MaxRequests int
}

// CORS lists the origins and methods the transport may accept on preflight.
type CORS struct {
	AllowedOrigins []string
	AllowedMethods []string
}

// Policy is the evaluated security configuration. Read-only after New.
type Policy struct {
	requiredPatterns []string
	optionalPatterns []string
	rateLimit        RateLimit
	cors             CORS
}

// Option applies a configuration option to the Policy.
type Option func(*Policy)

// WithRequiredPatterns overrides the prefix globs that demand authentication.
func WithRequiredPatterns(patterns ...string) Option {
	return func(p *Policy) {
		if len(patterns) > 0 {
			p.requiredPatterns = patterns
		}
	}
}

// WithOptionalPatterns overrides the prefix globs where auth is optional.
func WithOptionalPatterns(patterns ...string) Option {
	return func(p *Policy) {
		if len(patterns) > 0 {
			p.optionalPatterns = patterns
		}
	}
}

// WithRateLimit overrides the global rate-limit budget.
func WithRateLimit(window time.Duration, maxRequests int) Option {
	return func(p *Policy) {
		if window > 0 && maxRequests > 0 {
			p.rateLimit = RateLimit{Window: window, MaxRequests: maxRequests}
		}
	}
}

// WithCORS overrides the CORS allow-lists.
func WithCORS(origins, methods []string) Option {
	return func(p *Policy) {
		if len(origins) > 0 {
			p.cors.AllowedOrigins = origins
		}
		if len(methods) > 0 {
			p.cors.AllowedMethods = methods
		}
	}
}

// New builds the policy with the declared defaults: auth required on the
// prediction and admin surfaces, optional on match browsing, a 15-minute
// window of 100 requests, and the production web origin.
func New(opts ...Option) *Policy {
	p := &Policy{
		requiredPatterns: []string{"/api/predictions/*", "/api/admin/*"},
		optionalPatterns: []string{"/api/matches/*"},
		rateLimit: RateLimit{
			Window:      15 * time.Minute,
			MaxRequests: 100,
		},
		cors: CORS{
			AllowedOrigins: []string{"https://yourapp.com"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AuthRequirementFor classifies a concrete request path. Required patterns
// win over optional ones when both match.
func (p *Policy) AuthRequirementFor(path string) AuthRequirement {
	for _, pat := range p.requiredPatterns {
		if globMatch(pat, path) {
			return AuthRequired
		}
	}
	for _, pat := range p.optionalPatterns {
		if globMatch(pat, path) {
			return AuthOptional
		}
	}
	return AuthNone
}

// RateLimitFor returns the request budget for a client key. The policy
// declares one undifferentiated budget, so the key is accepted only for
// interface stability.
func (p *Policy) RateLimitFor(_ string) RateLimit {
	return p.rateLimit
}

// CORSPolicy returns the static CORS allow-lists.
func (p *Policy) CORSPolicy() CORS {
	return p.cors
}

// OriginAllowed reports whether the given Origin header value is accepted.
func (p *Policy) OriginAllowed(origin string) bool {
	for _, o := range p.cors.AllowedOrigins {
		if o == origin {
			return true
		}
	}
	return false
}

// CheckAgainst verifies referential integrity between the policy and the
// route table: every auth pattern must match at least one registered route.
// Meant to run once at startup.
func (p *Policy) CheckAgainst(reg *contract.Registry) error {
	routes := reg.Routes()
	patterns := make([]string, 0, len(p.requiredPatterns)+len(p.optionalPatterns))
	patterns = append(patterns, p.requiredPatterns...)
	patterns = append(patterns, p.optionalPatterns...)
	for _, pat := range patterns {
		if !strings.HasPrefix(pat, "/") {
			return fmt.Errorf("%w: pattern %q must start with /", ErrInvalidPolicy, pat)
		}
		matched := false
		for _, rt := range routes {
			if globMatch(pat, rt.Template) {
				matched = true
				break
			}
		}
		if !matched {
			return fmt.Errorf("%w: %q", ErrDanglingPattern, pat)
		}
	}
	return nil
}

// globMatch implements prefix-glob matching: "P/*" matches any path whose
// prefix is "P/". The separator is part of the prefix so that a sibling
// path like /api/predictions-other never matches /api/predictions/*.
func globMatch(pattern, path string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
		return strings.HasPrefix(path, prefix+"/")
	}
	return pattern == path
}
