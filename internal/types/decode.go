package types

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DecodeResumeProfile decodes a JSON résumé profile. Fields with the wrong
// JSON kind produce a *FieldError naming the field.
func DecodeResumeProfile(data []byte) (*ResumeProfile, error) {
	var p ResumeProfile
	if err := decodeInto(data, &p); err != nil {
		return nil, err
	}
	p.EnsureSlices()
	return &p, nil
}

// DecodeJobDescription decodes a JSON job description and merges its skills
// into the required list.
func DecodeJobDescription(data []byte) (*JobDescription, error) {
	var j JobDescription
	if err := decodeInto(data, &j); err != nil {
		return nil, err
	}
	j.Merge()
	j.EnsureSlices()
	return &j, nil
}

func decodeInto(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return AsFieldError(err)
	}
	return nil
}

// AsFieldError converts JSON type errors into a *FieldError. Other errors are
// wrapped under the "body" field.
func AsFieldError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return &FieldError{
			Field:   field,
			Message: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
		}
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &FieldError{Field: "body", Message: fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)}
	}
	return &FieldError{Field: "body", Message: err.Error()}
}
