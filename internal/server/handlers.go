package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/rolecolor-agent/internal/extraction"
	"github.com/jonathan/rolecolor-agent/internal/rendering"
	"github.com/jonathan/rolecolor-agent/internal/scoring"
	"github.com/jonathan/rolecolor-agent/internal/types"
	"github.com/jonathan/rolecolor-agent/internal/validation"
)

// ScoreRequest represents the request body for /score
type ScoreRequest struct {
	Text string `json:"text" validate:"required,min=1"`
	TopN int    `json:"top_n,omitempty" validate:"omitempty,min=1,max=50"`
}

// Validate validates the ScoreRequest using the validator.
func (r *ScoreRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ScoreResponse represents the response for /score
type ScoreResponse struct {
	Score       *types.ScoreResult    `json:"score"`
	TopKeywords []types.RankedKeyword `json:"top_keywords"`
}

// RenderRequest represents the request body for /render
type RenderRequest struct {
	Template string                  `json:"template,omitempty"`
	Role     string                  `json:"role" validate:"required,oneof=Builder Enabler Thriver Supportee"`
	Fields   *types.StructuredFields `json:"fields" validate:"required"`
}

// Validate validates the RenderRequest using the validator.
func (r *RenderRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// RenderResponse represents the response for /render
type RenderResponse struct {
	Template string                  `json:"template"`
	Role     string                  `json:"role"`
	LaTeX    string                  `json:"latex"`
	Report   *types.ValidationReport `json:"report"`
}

// ValidateRequest represents the request body for /validate
type ValidateRequest struct {
	Document string `json:"document" validate:"required,min=1"`
}

// Validate validates the ValidateRequest using the validator.
func (r *ValidateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ExtractRequest represents the request body for /extract.
// The text must already carry the section headers (NAME:, CONTACT:, ...)
// produced by the extraction model or by hand.
type ExtractRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

// Validate validates the ExtractRequest using the validator.
func (r *ExtractRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// handleScore scores resume text against the RoleColor lexicon
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if req.TopN == 0 {
		req.TopN = 10
	}

	engine := scoring.NewEngine(nil)
	score := engine.Score(req.Text)

	s.jsonResponse(w, http.StatusOK, ScoreResponse{
		Score:       score,
		TopKeywords: scoring.TopKeywords(score, req.TopN),
	})
}

// handleRender renders structured fields into a LaTeX document
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if req.Template == "" {
		req.Template = rendering.TemplateFull
	}
	role, err := types.ParseRoleColor(req.Role)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	document, err := rendering.Render(req.Template, role, req.Fields)
	if err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, "Render failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, RenderResponse{
		Template: req.Template,
		Role:     role.String(),
		LaTeX:    document,
		Report:   validation.CheckStructure(document),
	})
}

// handleValidate checks the structure of a LaTeX document
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, validation.CheckStructure(req.Document))
}

// handleExtract parses section-headered resume text into structured fields
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	fields := extraction.ParseStructuredFields(req.Text)
	if fields.IsEmpty() {
		s.errorResponse(w, http.StatusUnprocessableEntity, "No recognizable sections found")
		return
	}

	s.jsonResponse(w, http.StatusOK, fields)
}

// handleListTemplates returns the available LaTeX template IDs
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"templates": rendering.TemplateIDs(),
	})
}
