package contract

import "net/http"

// Route names used by the HTTP adapter to dispatch matched routes.
const (
	RouteRegister         = "auth.register"
	RouteLogin            = "auth.login"
	RouteMatchPrediction  = "predictions.match"
	RouteDatePredictions  = "predictions.date"
	RouteAnalyze          = "predictions.analyze"
	RouteListMatches      = "matches.list"
	RouteMatchStats       = "matches.stats"
	RouteUpdateModels     = "admin.update_models"
	RouteOperationMetrics = "admin.metrics"
)

// Default returns the registry for the full prediction API surface.
func Default() (*Registry, error) {
	credentials := NewShape("AuthResponse",
		Required("token", KindString),
		Required("userId", KindString),
	)
	prediction := NewShape("PredictionResponse",
		Required("homeScore", KindNumber),
		Required("awayScore", KindNumber),
		Required("over15Probability", KindNumber),
		Required("confidence", KindNumber),
		Optional("features", KindMap),
	)

	return NewRegistry(
		&Route{
			Name:     RouteRegister,
			Method:   http.MethodPost,
			Template: "/api/auth/register",
			Body: NewShape("RegisterRequest",
				Required("email", KindString),
				Required("password", KindString),
				Required("name", KindString),
			),
			Response: credentials,
		},
		&Route{
			Name:     RouteLogin,
			Method:   http.MethodPost,
			Template: "/api/auth/login",
			Body: NewShape("LoginRequest",
				Required("email", KindString),
				Required("password", KindString),
			),
			Response: credentials,
		},
		&Route{
			Name:     RouteMatchPrediction,
			Method:   http.MethodGet,
			Template: "/api/predictions/match/:matchId",
			Params: NewShape("MatchPredictionParams",
				Required("matchId", KindString),
			),
			Response: prediction,
		},
		&Route{
			Name:     RouteDatePredictions,
			Method:   http.MethodGet,
			Template: "/api/predictions/date/:date",
			Params: NewShape("DatePredictionsParams",
				Required("date", KindString),
			),
			Response: NewShape("DatePredictionsResponse",
				Required("matches", KindMap),
				Required("predictions", KindMap),
			),
		},
		&Route{
			Name:     RouteAnalyze,
			Method:   http.MethodPost,
			Template: "/api/predictions/analyze",
			Body: NewShape("AnalyzeRequest",
				Required("homeTeam", KindString),
				Required("awayTeam", KindString),
				Required("date", KindString),
				Required("competition", KindString),
			),
			Response: prediction,
		},
		&Route{
			Name:     RouteListMatches,
			Method:   http.MethodGet,
			Template: "/api/matches",
			Query: NewShape("ListMatchesQuery",
				Optional("date", KindString),
				Optional("competition", KindString),
				Optional("team", KindString),
				Optional("limit", KindNumber),
				Optional("offset", KindNumber),
			),
			Response: NewShape("ListMatchesResponse",
				Required("matches", KindMap),
				Required("total", KindNumber),
			),
		},
		&Route{
			Name:     RouteMatchStats,
			Method:   http.MethodGet,
			Template: "/api/matches/:matchId/stats",
			Params: NewShape("MatchStatsParams",
				Required("matchId", KindString),
			),
			Response: NewShape("MatchStatsResponse",
				Required("matchStats", KindMap),
				Required("historicalStats", KindMap),
			),
		},
		&Route{
			Name:     RouteUpdateModels,
			Method:   http.MethodPost,
			Template: "/api/admin/update-models",
			Body: NewShape("UpdateModelsRequest",
				Literals("modelType", "statistical", "deep-learning"),
				Optional("parameters", KindMap),
			),
			Response: NewShape("UpdateModelsResponse",
				Required("success", KindBoolean),
				Required("metrics", KindMap),
			),
		},
		&Route{
			Name:     RouteOperationMetrics,
			Method:   http.MethodGet,
			Template: "/api/admin/metrics",
			Response: NewShape("OperationMetricsResponse",
				Required("predictionsCount", KindNumber),
				Required("accuracy", KindNumber),
				Required("userCount", KindNumber),
				Required("systemHealth", KindMap),
			),
		},
	)
}
