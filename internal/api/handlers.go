package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abhisek/skillgauge/internal/assessment"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode response", "error", err)
	}
}

// respondServiceError maps the error taxonomy onto HTTP status codes:
// caller mistakes are 400s, oracle trouble is a 502, anything else a 500.
func (s *Server) respondServiceError(w http.ResponseWriter, err error) {
	var (
		ve   *assessment.ValidationError
		comm *assessment.OracleCommunicationError
		cv   *assessment.OracleContractViolation
		ae   *assessment.AggregationError
	)

	switch {
	case errors.As(err, &ve):
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "validation_error", Message: err.Error()})
	case errors.As(err, &comm):
		s.respondJSON(w, http.StatusBadGateway, errorResponse{Error: "oracle_communication_error", Message: err.Error()})
	case errors.As(err, &cv):
		s.log.Error("oracle contract violation", "error", err, "raw", cv.RawText)
		s.respondJSON(w, http.StatusBadGateway, errorResponse{Error: "oracle_contract_violation", Message: err.Error()})
	case errors.As(err, &ae):
		s.respondJSON(w, http.StatusBadGateway, errorResponse{Error: "aggregation_error", Message: err.Error()})
	default:
		s.respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: err.Error()})
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"service": "skillgauge",
		"endpoints": map[string]string{
			"generate":          "POST /generate - generate an assessment",
			"evaluate":          "POST /evaluate - evaluate answers",
			"generate-demotion": "POST /generate-demotion - generate a simplified assessment",
			"roles":             "GET /roles - list known roles",
			"health":            "GET /health - health check",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "skillgauge",
	})
}

func (s *Server) handleRoles(w http.ResponseWriter, r *http.Request) {
	if s.roles == nil {
		s.respondJSON(w, http.StatusOK, map[string]any{"roles": []string{}})
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"roles": s.roles.Roles()})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	spec, ok := s.decodeSpec(w, r)
	if !ok {
		return
	}

	set, err := s.svc.Generate(r.Context(), spec)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, set)
}

func (s *Server) handleGenerateDemotion(w http.ResponseWriter, r *http.Request) {
	spec, ok := s.decodeSpec(w, r)
	if !ok {
		return
	}

	set, err := s.svc.GenerateDemotion(r.Context(), spec)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, set)
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var batch assessment.SubmissionBatch
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_request", Message: "invalid JSON body"})
		return
	}

	eval, err := s.svc.Evaluate(r.Context(), batch)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, eval)
}

// decodeSpec parses a generation request and fills empty skills from the
// role table when one is loaded.
func (s *Server) decodeSpec(w http.ResponseWriter, r *http.Request) (assessment.Spec, bool) {
	var spec assessment.Spec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_request", Message: "invalid JSON body"})
		return spec, false
	}

	if len(spec.Skills) == 0 && s.roles != nil {
		if skills, ok := s.roles.SkillsFor(spec.Role); ok {
			spec.Skills = skills
		}
	}

	return spec, true
}
