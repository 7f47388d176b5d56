package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/rolecolor-agent/internal/db"
	"github.com/jonathan/rolecolor-agent/internal/pipeline"
	"github.com/jonathan/rolecolor-agent/internal/rendering"
)

// RunRequest represents the request body for /run
type RunRequest struct {
	Resume    string `json:"resume,omitempty" validate:"required_without=ResumeURL,excluded_with=ResumeURL"`
	ResumeURL string `json:"resume_url,omitempty" validate:"omitempty,url"`
	Template  string `json:"template,omitempty"`
	OutDir    string `json:"out_dir,omitempty"`
	Compile   bool   `json:"compile,omitempty"`
}

// Validate validates the RunRequest using the validator.
func (r *RunRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// RunResponse represents the response for /run
type RunResponse struct {
	RunID  string `json:"run_id"`
	Status string `json:"status"`
}

// RunStatusResponse represents the response for GET /runs/{id}
type RunStatusResponse struct {
	RunID        string `json:"run_id"`
	Source       string `json:"source"`
	DominantRole string `json:"dominant_role,omitempty"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
	CompletedAt  string `json:"completed_at,omitempty"`
}

// buildRunOptions converts a RunRequest into pipeline options.
func (s *Server) buildRunOptions(req *RunRequest) pipeline.RunOptions {
	if req.Template == "" {
		req.Template = rendering.TemplateFull
	}
	return pipeline.RunOptions{
		ResumePath:  req.Resume,
		ResumeURL:   req.ResumeURL,
		TemplateID:  req.Template,
		OutDir:      req.OutDir,
		Compile:     req.Compile,
		APIKey:      s.apiKey,
		DatabaseURL: s.databaseURL,
		Verbose:     true,
	}
}

// handleRun starts a new analysis pipeline run in the background
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	opts := s.buildRunOptions(&req)

	// Generate a preliminary run ID for the response
	// The actual run record is created inside the pipeline
	preliminaryID := uuid.New().String()

	log.Printf("Starting pipeline run (preliminary ID: %s)", preliminaryID)

	go func() {
		ctx := context.Background()
		if _, err := pipeline.Run(ctx, opts); err != nil {
			log.Printf("Pipeline run failed: %v", err)
		}
	}()

	s.jsonResponse(w, http.StatusAccepted, RunResponse{
		RunID:  preliminaryID,
		Status: "started",
	})
}

// handleRunStream starts a pipeline and streams progress via SSE
func (s *Server) handleRunStream(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	stream, err := newProgressStream(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("Starting streaming pipeline run...")

	opts := s.buildRunOptions(&req)
	opts.OnProgress = func(event pipeline.ProgressEvent) {
		if err := stream.Step(event); err != nil {
			log.Printf("Error writing SSE event: %v", err)
		}
	}

	// Run pipeline synchronously (blocking until complete)
	result, err := pipeline.Run(r.Context(), opts)
	if err != nil {
		log.Printf("Pipeline run failed: %v", err)
		stream.Fail(err.Error())
		return
	}

	stream.Complete(result)
	log.Printf("Streaming pipeline run completed")
}

// handleListRuns returns a list of analysis runs with optional filters
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	filters := db.RunFilters{
		DominantRole: r.URL.Query().Get("dominant_role"),
		Status:       r.URL.Query().Get("status"),
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filters.Limit = limit
		}
	}

	runs, err := s.db.ListRuns(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	response := make([]RunStatusResponse, 0, len(runs))
	for _, run := range runs {
		response = append(response, runStatusResponse(&run))
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"runs":  response,
		"count": len(response),
	})
}

// handleGetRun returns the status of a single run
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	runID, ok := s.parseRunID(w, r)
	if !ok {
		return
	}

	run, err := s.db.GetRun(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if run == nil {
		s.errorResponse(w, http.StatusNotFound, "Run not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, runStatusResponse(run))
}

// handleDeleteRun deletes a run and its artifacts
func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	runID, ok := s.parseRunID(w, r)
	if !ok {
		return
	}

	if err := s.db.DeleteRun(r.Context(), runID); err != nil {
		if err.Error() == "run not found: "+runID.String() {
			s.errorResponse(w, http.StatusNotFound, "Run not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleRunArtifacts returns the artifacts recorded for a run
func (s *Server) handleRunArtifacts(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	runID, ok := s.parseRunID(w, r)
	if !ok {
		return
	}

	artifacts, err := s.db.ListArtifacts(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"run_id":    runID.String(),
		"artifacts": artifacts,
		"count":     len(artifacts),
	})
}

// handleRunResumeTex returns the resume.tex for a run as plain text
func (s *Server) handleRunResumeTex(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	runID, ok := s.parseRunID(w, r)
	if !ok {
		return
	}

	tex, err := s.db.GetResumeTexByRunID(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if tex == "" {
		s.errorResponse(w, http.StatusNotFound, "resume.tex not found for this run")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=resume.tex")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(tex))
}

// handleRunScore returns the stored score result for a run
func (s *Server) handleRunScore(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	runID, ok := s.parseRunID(w, r)
	if !ok {
		return
	}

	score, err := s.db.GetScoreResultByRunID(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if score == nil {
		s.errorResponse(w, http.StatusNotFound, "Score not found for this run")
		return
	}

	keywords, err := s.db.GetTopKeywordsByRunID(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ScoreResponse{
		Score:       score,
		TopKeywords: keywords,
	})
}

// parseRunID extracts and parses the {id} path value, writing the error
// response on failure.
func (s *Server) parseRunID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := r.PathValue("id")
	if idStr == "" {
		s.errorResponse(w, http.StatusBadRequest, "Run ID is required")
		return uuid.Nil, false
	}

	runID, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid run ID format")
		return uuid.Nil, false
	}
	return runID, true
}

// runStatusResponse converts a db.Run into the API response shape.
func runStatusResponse(run *db.Run) RunStatusResponse {
	resp := RunStatusResponse{
		RunID:        run.ID.String(),
		Source:       run.Source,
		DominantRole: run.DominantRole,
		Status:       run.Status,
		CreatedAt:    run.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if run.CompletedAt != nil {
		resp.CompletedAt = run.CompletedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return resp
}
