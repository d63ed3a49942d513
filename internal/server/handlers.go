package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mariana/concept-panel/internal/jobs"
	"github.com/mariana/concept-panel/internal/types"
)

const (
	defaultProfileCount = 100
	maxProfileCount     = 100
)

// generateRequest wraps the target demographics with the number of personas
// to produce. A count inside the demographics themselves is honored when the
// top-level one is absent.
type generateRequest struct {
	Demographics types.DemographicInput `json:"demographics"`
	Count        int                    `json:"count"`
}

// analyzeRequest carries the panel and the concepts to evaluate against it.
type analyzeRequest struct {
	Profiles []types.Persona `json:"profiles" validate:"required,min=1,max=1000"`
	Concepts []types.Concept `json:"concepts" validate:"required,min=1,max=50"`
}

// jobAccepted is the immediate response to a submission.
type jobAccepted struct {
	JobID   string      `json:"jobId"`
	Status  jobs.Status `json:"status"`
	Message string      `json:"message"`
}

// handleGenerateProfiles accepts a persona generation request and returns a
// job id for polling.
func (s *Server) handleGenerateProfiles(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	count := req.Count
	if count <= 0 {
		count = req.Demographics.ConsumerCount
	}
	if count <= 0 {
		count = defaultProfileCount
	}
	if count > maxProfileCount {
		s.errorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("count must not exceed %d", maxProfileCount))
		return
	}

	id, err := s.runner.Submit(r.Context(), "job", s.generationWork(req.Demographics, count))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to start generation job")
		return
	}

	s.jsonResponse(w, http.StatusAccepted, jobAccepted{
		JobID:   id,
		Status:  jobs.StatusProcessing,
		Message: "Profile generation started. Poll for status.",
	})
}

// handlePollProfiles reports the state of a generation job.
func (s *Server) handlePollProfiles(w http.ResponseWriter, r *http.Request) {
	s.pollJob(w, r)
}

// handleAnalyze accepts a preference analysis request and returns a job id
// for polling.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	id, err := s.runner.Submit(r.Context(), "analysis", s.analysisWork(req.Profiles, req.Concepts))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to start analysis job")
		return
	}

	s.jsonResponse(w, http.StatusAccepted, jobAccepted{
		JobID:   id,
		Status:  jobs.StatusProcessing,
		Message: "Analysis started. Poll for status.",
	})
}

// handlePollAnalysis reports the state of an analysis job.
func (s *Server) handlePollAnalysis(w http.ResponseWriter, r *http.Request) {
	s.pollJob(w, r)
}

// pollJob resolves a jobId query parameter against the store. An evicted job
// is indistinguishable from one that never existed. A completed job's result
// fields are flattened into the response body next to the status key.
func (s *Server) pollJob(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("jobId")
	if id == "" {
		s.errorResponse(w, http.StatusBadRequest, "jobId query parameter is required")
		return
	}

	job, err := s.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Job not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Failed to look up job")
		return
	}

	switch job.Status {
	case jobs.StatusCompleted:
		s.jsonResponse(w, http.StatusOK, flattenResult(job.Result))
	case jobs.StatusFailed:
		s.jsonResponse(w, http.StatusInternalServerError, map[string]any{
			"status": job.Status,
			"error":  job.Error,
		})
	default:
		s.jsonResponse(w, http.StatusOK, map[string]any{"status": job.Status})
	}
}

// flattenResult merges a stored result object's fields into the poll payload
// alongside the completed status.
func flattenResult(result json.RawMessage) map[string]any {
	payload := map[string]any{"status": jobs.StatusCompleted}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(result, &fields); err != nil {
		payload["result"] = result
		return payload
	}
	for key, value := range fields {
		if key == "status" {
			continue
		}
		payload[key] = value
	}
	return payload
}

// validationMessage renders the first validation failure for the client.
func validationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}
