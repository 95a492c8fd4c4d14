package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/jonathan/skillbyte/internal/ingestion"
	"github.com/jonathan/skillbyte/internal/ranking"
	"github.com/jonathan/skillbyte/internal/types"
)

// resumeField is the multipart field holding the uploaded file
const resumeField = "resume"

// TextAnalyzeRequest is the body of POST /text-analyze
type TextAnalyzeRequest struct {
	Text string `json:"text"`
}

// RankRequest is the body of POST /jobs/rank
type RankRequest struct {
	Skills []string `json:"skills" validate:"required,min=1,dive,required"`
	Mode   string   `json:"mode,omitempty" validate:"omitempty,oneof=overlap eligibility"`
	// ExperienceLevel is used in eligibility mode
	ExperienceLevel string `json:"experience_level,omitempty" validate:"omitempty,oneof=beginner high_school_graduate early_career intermediate"`
}

// RankResponse is the body returned by POST /jobs/rank
type RankResponse struct {
	Mode ranking.Mode        `json:"mode"`
	Jobs []types.RankedMatch `json:"jobs"`
}

// JobsResponse lists the job archetypes of the active catalog
type JobsResponse struct {
	Listings       []types.JobArchetype `json:"listings"`
	EntryLevelJobs []types.JobArchetype `json:"entry_level_jobs"`
	TechJobs       []types.JobArchetype `json:"tech_jobs"`
}

// handleAnalyze extracts the text of an uploaded resume and analyzes it
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, err)
			return
		}
		s.errorResponse(w, &ErrNoFile{Field: resumeField})
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile(resumeField)
	if err != nil {
		s.errorResponse(w, &ErrNoFile{Field: resumeField})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	contentType := header.Header.Get("Content-Type")
	log.Printf("[server] /analyze file=%s type=%s size=%d", header.Filename, contentType, len(data))

	text, err := ingestion.ExtractText(contentType, header.Filename, data)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.analyze(w, r, text)
}

// handleTextAnalyze analyzes text extracted by the client
func (s *Server) handleTextAnalyze(w http.ResponseWriter, r *http.Request) {
	var req TextAnalyzeRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.errorResponse(w, &ErrValidation{Field: "text", Message: "No text provided for analysis."})
		return
	}
	log.Printf("[server] /text-analyze chars=%d", len(req.Text))

	s.analyze(w, r, req.Text)
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request, text string) {
	report, err := s.analyzer.Analyze(r.Context(), text)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

// handleRankJobs ranks archetypes for a skill list supplied by the client
func (s *Server) handleRankJobs(w http.ResponseWriter, r *http.Request) {
	var req RankRequest
	if !s.decode(w, r, &req) {
		return
	}

	mode := ranking.ModeOverlap
	if req.Mode != "" {
		mode = ranking.Mode(req.Mode)
	}
	tier := types.ExperienceTier(req.ExperienceLevel)
	if tier == "" {
		tier = types.TierBeginner
	}
	profile := types.NewSkillProfile()
	profile.Technical = req.Skills

	jobs, err := s.analyzer.Matcher().Match(mode, profile, req.Skills, tier)
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "mode", Message: err.Error()})
		return
	}
	s.jsonResponse(w, http.StatusOK, RankResponse{Mode: mode, Jobs: jobs})
}

// handleListJobs returns the catalog's job archetypes
func (s *Server) handleListJobs(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, JobsResponse{
		Listings:       s.catalog.Listings,
		EntryLevelJobs: s.catalog.EntryLevelJobs,
		TechJobs:       s.catalog.TechJobs,
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status": "ok",
		"mode":   string(s.analyzer.Mode()),
	})
}

// decode reads a JSON body into dst and validates it. It writes the error
// response and returns false on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, err)
		} else {
			s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		}
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		s.errorResponse(w, validationError(err))
		return false
	}
	return true
}
