package parsing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDateRange(t *testing.T) {
	tests := []struct {
		line      string
		wantStart string
		wantEnd   string
		ok        bool
	}{
		{"Oct 2023 – Present", "Oct 2023", "Present", true},
		{"Software Engineer Jan 2020 - Mar 2022", "Jan 2020", "Mar 2022", true},
		{"September 2019 — current", "September 2019", "Present", true},
		{"2018 - 2020", "2018", "2020", true},
		{"01/2021 - 06/2023", "01/2021", "06/2023", true},
		{"3/21 - 5/22", "3/21", "5/22", true},
		{"'19 - '21", "'19", "'21", true},
		{"Sept '19 to Now", "Sept '19", "Present", true},
		{"Built 3 services", "", "", false},
		{"", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			dr, ok := FindDateRange(tt.line)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.wantStart, dr.Start)
			assert.Equal(t, tt.wantEnd, dr.End)
		})
	}
}

func TestStripDateRange(t *testing.T) {
	assert.Equal(t, "Software Engineer", StripDateRange("Software Engineer | Jan 2020 - Present"))
	assert.Equal(t, "", StripDateRange("Jan 2020 - Present"))
	assert.Equal(t, "Data Analyst", StripDateRange("Data Analyst"))
}

func TestIsRoleHeader(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Software Engineer", true},
		{"Acme Corp  2019 - 2021", true},
		{"SENIOR DATA SCIENTIST", true},
		{"• Senior Engineer on the platform team", false},
		{"engineers on the platform team", false},
		{"Mentored the lead engineer.", false},
		{"Acme Corp, Remote", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRoleHeader(tt.line))
		})
	}
}

func TestClassifyLine(t *testing.T) {
	assert.Equal(t, LineBlank, ClassifyLine("   "))
	assert.Equal(t, LineBullet, ClassifyLine("• Built APIs"))
	assert.Equal(t, LineBullet, ClassifyLine("1. Built APIs"))
	assert.Equal(t, LineHeader, ClassifyLine("Backend Developer"))
	assert.Equal(t, LineText, ClassifyLine("Acme Corp"))
}

func TestNextRoleState(t *testing.T) {
	tests := []struct {
		from RoleState
		kind LineKind
		want RoleState
	}{
		{StateScanning, LineHeader, StateRoleOpen},
		{StateScanning, LineText, StateScanning},
		{StateScanning, LineBullet, StateCollectingBullets},
		{StateRoleOpen, LineText, StateCollectingBullets},
		{StateRoleOpen, LineBlank, StateRoleOpen},
		{StateCollectingBullets, LineBlank, StateCollectingBullets},
		{StateCollectingBullets, LineHeader, StateRoleOpen},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"/"+tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, NextRoleState(tt.from, tt.kind))
		})
	}
}

func TestExtractLocation(t *testing.T) {
	assert.Equal(t, "Remote", ExtractLocation("Acme Corp, Remote"))
	assert.Equal(t, "San Francisco, CA", ExtractLocation("Acme Corp | San Francisco, CA"))
	assert.Equal(t, "", ExtractLocation("Acme Corp"))
}

func TestParseRoles_TitleThenDateLine(t *testing.T) {
	lines := strings.Split("Software Engineer\nOct 2023 – Present\nAcme Corp, Remote\n• Built APIs", "\n")

	roles := ParseRoles(lines)

	require.Len(t, roles, 1)
	r := roles[0]
	assert.Equal(t, "Software Engineer", r.Role)
	assert.Equal(t, "Oct 2023", r.Start)
	assert.Equal(t, "Present", r.End)
	assert.Contains(t, r.Company, "Acme Corp")
	assert.Equal(t, "Remote", r.Location)
	assert.Equal(t, []string{"Built APIs"}, []string(r.Bullets))
}

func TestParseRoles_MultipleRoles(t *testing.T) {
	text := `Senior Engineer | Jan 2021 - Present
Globex, New York, NY
• Led migration to Kubernetes
  across 40 services
• Cut p99 latency by 35%

Software Engineer at Initech  2018 - 2020
- Built billing pipeline in Go`

	roles := ParseRoles(strings.Split(text, "\n"))

	require.Len(t, roles, 2)
	assert.Equal(t, "Senior Engineer", roles[0].Role)
	assert.Equal(t, "Globex", roles[0].Company)
	assert.Equal(t, "New York, NY", roles[0].Location)
	assert.Equal(t, []string{"Led migration to Kubernetes across 40 services", "Cut p99 latency by 35%"}, []string(roles[0].Bullets))

	assert.Equal(t, "Software Engineer", roles[1].Role)
	assert.Equal(t, "Initech", roles[1].Company)
	assert.Equal(t, "2018", roles[1].Start)
	assert.Equal(t, "2020", roles[1].End)
	assert.Equal(t, []string{"Built billing pipeline in Go"}, []string(roles[1].Bullets))
}

func TestParseRoles_CompanyFirstLayout(t *testing.T) {
	text := "Acme Corp  2019 - 2021\nData Analyst\n• Built dashboards for 12 teams"

	roles := ParseRoles(strings.Split(text, "\n"))

	require.Len(t, roles, 1)
	assert.Equal(t, "Data Analyst", roles[0].Role)
	assert.Equal(t, "Acme Corp", roles[0].Company)
	assert.Equal(t, "2019", roles[0].Start)
}

func TestParseRoles_DropsBulletlessRoles(t *testing.T) {
	text := "Intern\nAcme\n\nSoftware Engineer 2020 - 2021\n• Shipped features"

	roles := ParseRoles(strings.Split(text, "\n"))

	require.Len(t, roles, 1)
	assert.Equal(t, "Software Engineer", roles[0].Role)
}

func TestParseRoles_ConcatenatedLine(t *testing.T) {
	line := "Backend Engineer Oct 2024 – PresentAcme Corp Remote• Built ingestion service handling 2M events/day• Reduced costs by 30%"

	roles := ParseRoles([]string{line})

	require.Len(t, roles, 1)
	assert.Equal(t, "Backend Engineer", roles[0].Role)
	assert.Equal(t, "Oct 2024", roles[0].Start)
	assert.Equal(t, "Present", roles[0].End)
	assert.Equal(t, "Acme Corp", roles[0].Company)
	assert.Equal(t, "Remote", roles[0].Location)
	assert.Len(t, roles[0].Bullets, 2)
}

func TestParseRoles_CompanyLineGluedToBullet(t *testing.T) {
	line := "Search Engineer Mar 2020 – Mar 2022Google, Mountain View, CA• Built search infra • Led 4 engineers"

	roles := ParseRoles([]string{line})

	require.Len(t, roles, 1)
	assert.Equal(t, "Search Engineer", roles[0].Role)
	assert.Equal(t, "Google", roles[0].Company)
	assert.Equal(t, "Mountain View, CA", roles[0].Location)
	assert.Equal(t, []string{"Built search infra", "Led 4 engineers"}, []string(roles[0].Bullets))
}

func TestParseRoles_CommaSeparatedTitleAndCompany(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		role     string
		company  string
		location string
	}{
		{"title and company", "Data Scientist, Initech 05/2019 - 06/21\n• Trained churn models", "Data Scientist", "Initech", ""},
		{"with location", "Senior Engineer, Globex, New York, NY 2018 - 2020\n• Led migration", "Senior Engineer", "Globex", "New York, NY"},
		{"location only", "Software Engineer, Remote 2018 - 2020\n• Shipped features", "Software Engineer", "", "Remote"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roles := ParseRoles(strings.Split(tt.text, "\n"))

			require.Len(t, roles, 1)
			assert.Equal(t, tt.role, roles[0].Role)
			assert.Equal(t, tt.company, roles[0].Company)
			assert.Equal(t, tt.location, roles[0].Location)
		})
	}
}

func TestParseRoles_Empty(t *testing.T) {
	roles := ParseRoles(nil)
	assert.NotNil(t, roles)
	assert.Empty(t, roles)
}

func TestPreprocessLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "glued date range",
			in:   "Built thingsOct 2024 – Present",
			want: []string{"Built things", "Oct 2024 – Present"},
		},
		{
			name: "text after present",
			in:   "Oct 2024 – PresentAcme Corp",
			want: []string{"Oct 2024 – Present", "Acme Corp"},
		},
		{
			name: "glued bullet",
			in:   "Acme Corp Remote• Built APIs",
			want: []string{"Acme Corp Remote", "• Built APIs"},
		},
		{
			name: "glued bullet after capital",
			in:   "Google, Mountain View, CA• Built search infra • Led 4 engineers",
			want: []string{"Google, Mountain View, CA", "• Built search infra", "• Led 4 engineers"},
		},
		{
			name: "glued bullet after digit and percent",
			in:   "Cut spend 30%• Shipped 2022• Hired",
			want: []string{"Cut spend 30%", "• Shipped 2022", "• Hired"},
		},
		{
			name: "leading bullet untouched",
			in:   "• Built APIs",
			want: []string{"• Built APIs"},
		},
		{
			name: "short camel case untouched",
			in:   "JavaScript Engineer Oct 2024 – Present",
			want: []string{"JavaScript Engineer Oct 2024 – Present"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PreprocessLines([]string{tt.in}))
		})
	}
}
