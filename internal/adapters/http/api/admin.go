// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/abeldarick/ASDM-PRONO/internal/contract"
	"github.com/abeldarick/ASDM-PRONO/internal/domain/model"
)

type updateModelsResponse struct {
	Success bool               `json:"success"`
	Metrics map[string]float64 `json:"metrics"`
}

// handleUpdateModels handles POST /api/admin/update-models.
func (s *Server) handleUpdateModels(w http.ResponseWriter, req *request) {
	kind := model.ModelKind(stringField(req.body, "modelType"))

	var params model.Map
	if raw, ok := req.body["parameters"]; ok && !raw.IsZero() {
		b, _ := raw.MarshalJSON()
		if err := json.Unmarshal(b, &params); err != nil {
			s.reject(w, &contract.FieldError{Field: "parameters", Reason: "must be an object"})
			return
		}
	}

	result, err := s.deps.UpdateModels(req.http.Context(), kind, params)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updateModelsResponse{
		Success: result.Deployed,
		Metrics: map[string]float64{
			"accuracy": result.Metrics.Accuracy,
			"rmse":     result.Metrics.RMSE,
			"log_loss": result.Metrics.LogLoss,
			"version":  result.Version,
		},
	})
}

// handleOperationMetrics handles GET /api/admin/metrics.
func (s *Server) handleOperationMetrics(w http.ResponseWriter, req *request) {
	writeJSON(w, http.StatusOK, s.deps.GetStats())
}
