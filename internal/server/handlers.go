package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-matcher/internal/types"
)

// ParseRequest represents the request body for /parse. Kind may also be sent
// as "type".
type ParseRequest struct {
	Kind    string  `json:"kind" validate:"required_without=Type"`
	Type    string  `json:"type"`
	Content *string `json:"content" validate:"required"`
}

// ParseResponse wraps a parsed résumé or job description.
type ParseResponse struct {
	Kind   types.DocumentKind `json:"kind"`
	Parsed any                `json:"parsed"`
}

// AnalyzeRequest represents the request body for /analyze. Each side is
// given either as a parsed object or as raw text.
type AnalyzeRequest struct {
	Resume     json.RawMessage `json:"resume" validate:"required_without=ResumeText,excluded_with=ResumeText"`
	ResumeText string          `json:"resume_text"`
	JD         json.RawMessage `json:"jd" validate:"required_without=JDText,excluded_with=JDText"`
	JDText     string          `json:"jd_text"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleConfig returns the public scoring configuration when enabled
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.Server.ExposeConfig {
		s.jsonResponse(w, http.StatusNotFound, ErrorResponse{
			Error:     "config endpoint is disabled",
			RequestID: requestID(r.Context()),
		})
		return
	}
	s.jsonResponse(w, http.StatusOK, s.analyzer.Config().Public())
}

// handleParse parses raw text into a résumé profile or job description
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	name := req.Kind
	if name == "" {
		name = req.Type
	}
	kind, err := types.ParseDocumentKind(name)
	if err != nil {
		s.errorResponse(w, r, asValidation(err))
		return
	}

	parsed, err := s.analyzer.Parse(kind, *req.Content)
	if err != nil {
		s.errorResponse(w, r, asValidation(err))
		return
	}
	s.jsonResponse(w, http.StatusOK, ParseResponse{Kind: kind, Parsed: parsed})
}

// handleAnalyze scores a résumé against a job description
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	var resume *types.ResumeProfile
	if req.ResumeText != "" {
		resume = s.analyzer.ParseResume(req.ResumeText)
	} else {
		p, err := types.DecodeResumeProfile(req.Resume)
		if err != nil {
			s.errorResponse(w, r, prefixField("resume", err))
			return
		}
		resume = p
	}

	var jd *types.JobDescription
	if req.JDText != "" {
		jd = s.analyzer.ParseJD(req.JDText)
	} else {
		j, err := types.DecodeJobDescription(req.JD)
		if err != nil {
			s.errorResponse(w, r, prefixField("jd", err))
			return
		}
		jd = j
	}

	result := s.analyzer.Analyze(resume, jd)
	s.logger.Debug("analysis complete",
		"request_id", requestID(r.Context()),
		"analysis_id", result.AnalysisID,
		"score", result.Score)
	s.jsonResponse(w, http.StatusOK, result)
}

// decodeBody decodes the JSON body into dst and runs struct validation.
func (s *Server) decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &ErrBodyTooLarge{Limit: tooLarge.Limit}
		}
		return asValidation(types.AsFieldError(err))
	}

	if err := s.validator.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &ErrValidation{
				Field:   verrs[0].Field(),
				Message: validationMessage(verrs[0]),
			}
		}
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "required_without":
		return fmt.Sprintf("one of %s or %s is required", fe.Field(), jsonName(fe.Param()))
	case "excluded_with":
		return fmt.Sprintf("%s and %s are mutually exclusive", fe.Field(), jsonName(fe.Param()))
	}
	return fmt.Sprintf("failed %q check", fe.Tag())
}

// jsonName maps the struct field names used in cross-field tags to their
// wire names.
func jsonName(field string) string {
	switch field {
	case "ResumeText":
		return "resume_text"
	case "JDText":
		return "jd_text"
	case "Type":
		return "type"
	}
	return field
}

// asValidation converts a *types.FieldError into an *ErrValidation.
func asValidation(err error) error {
	var fieldErr *types.FieldError
	if errors.As(err, &fieldErr) {
		return &ErrValidation{Field: fieldErr.Field, Message: fieldErr.Message}
	}
	return err
}

// prefixField qualifies a field error with the request member it came from.
func prefixField(member string, err error) error {
	var fieldErr *types.FieldError
	if errors.As(err, &fieldErr) {
		field := member
		if fieldErr.Field != "body" {
			field = member + "." + fieldErr.Field
		}
		return &ErrValidation{Field: field, Message: fieldErr.Message}
	}
	return err
}
