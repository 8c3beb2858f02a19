package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/types"
)

const nameSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"}
	}
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateJSON_ValidJSON(t *testing.T) {
	schemaPath := writeFile(t, "schema.json", nameSchema)
	jsonPath := writeFile(t, "doc.json", `{"name": "Go"}`)

	assert.NoError(t, ValidateJSON(schemaPath, jsonPath))
}

func TestValidateJSON_WrongType(t *testing.T) {
	schemaPath := writeFile(t, "schema.json", nameSchema)
	jsonPath := writeFile(t, "doc.json", `{"name": 42}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Equal(t, "name", validationErr.Errors[0].Field)
}

func TestValidateJSON_NonExistentFiles(t *testing.T) {
	schemaPath := writeFile(t, "schema.json", nameSchema)

	err := ValidateJSON(filepath.Join(t.TempDir(), "missing.json"), schemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = ValidateJSON(schemaPath, filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString_Invalid(t *testing.T) {
	err := ValidateJSONString(nameSchema, `{"age": 30}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidateJSONString_BadSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Schema: "analysis_result.schema.json",
		Errors: []FieldError{
			{Field: "score", Message: "Must be less than or equal to 100"},
			{Field: "matched", Message: "Invalid type. Expected: array, given: null"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "analysis_result.schema.json")
	assert.Contains(t, msg, "1. score")
	assert.Contains(t, msg, "2. matched")
}

func TestValidateAnalysisResult_AnalyzerOutput(t *testing.T) {
	a, err := pipeline.NewAnalyzer(nil)
	require.NoError(t, err)

	results := []types.AnalysisResult{
		a.AnalyzeText("Skills\nGo, Docker\n\nExperience\nEngineer | 2021 - Present\nAcme\n• Built 3 Go services", "Requirements\n• Go, Kubernetes"),
		a.AnalyzeText("", "Requirements\n• Go"),
	}
	for _, r := range results {
		assert.NoError(t, ValidateAnalysisResult(r))
	}
}

func TestValidateAnalysisResult_RejectsOutOfRange(t *testing.T) {
	r := types.AnalysisResult{Score: 140}
	r.Normalize()

	err := ValidateAnalysisResult(r)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "score", verr.Errors[0].Field)
}

func TestValidateResumeProfileAndJD(t *testing.T) {
	a, err := pipeline.NewAnalyzer(nil)
	require.NoError(t, err)

	assert.NoError(t, ValidateResumeProfile(a.ParseResume("Jane Doe\njane@example.com\n\nSkills\nGo")))
	assert.NoError(t, ValidateResumeProfile(a.ParseResume("")))
	assert.NoError(t, ValidateJobDescription(a.ParseJD("Backend Engineer\n\nRequirements\n• Go")))

	err = ValidateBytes("resume_profile.schema.json", []byte(`{"skills": "Go"}`))
	assert.Error(t, err)

	err = ValidateBytes("nope.schema.json", []byte(`{}`))
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}
