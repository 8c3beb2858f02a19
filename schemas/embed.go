// Package schemas holds the JSON Schema contracts for the matcher's
// documents.
package schemas

import "embed"

// Schema file names.
const (
	AnalysisResult = "analysis_result.schema.json"
	ResumeProfile  = "resume_profile.schema.json"
	JobDescription = "job_description.schema.json"
)

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// Names lists the embedded schemas.
func Names() []string {
	return []string{AnalysisResult, ResumeProfile, JobDescription}
}
