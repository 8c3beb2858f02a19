package sections

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuessName(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"work experience", Experience},
		{"professional summary", Summary},
		{"technical skills", Skills},
		{"preferred qualifications", Preferred},
		{"what you'll do", Responsibilities},
		{"relevant work experience at scale", Experience},
		{"volunteer experience", Volunteer},
		{"patents", "patents"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, GuessName(tt.key))
		})
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "what you'll do", Key("  ## What You’ll Do:  "))
	assert.Equal(t, "work experience", Key("WORK   EXPERIENCE"))
}

func TestClassifyHeader(t *testing.T) {
	s := New()
	tests := []struct {
		line   string
		name   string
		inline string
		ok     bool
	}{
		{"Experience", Experience, "", true},
		{"EDUCATION", Education, "", true},
		{"Work History:", Experience, "", true},
		{"## Projects", Projects, "", true},
		{"Skills: Go, Python, SQL", Skills, "Go, Python, SQL", true},
		{"PATENTS", "patents", "", true},
		{"Led migration to Kubernetes", "", "", false},
		{"• Built APIs:", "", "", false},
		{"Note: we are hiring", "", "", false},
		{"ACME, INC", "", "", false},
		{"", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			name, inline, ok := s.ClassifyHeader(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.inline, inline)
		})
	}
}

func TestClassifyHeader_Veto(t *testing.T) {
	veto := func(line string) bool {
		return strings.Contains(strings.ToLower(line), "engineer")
	}
	s := New(WithHeaderVeto(veto))

	_, _, ok := s.ClassifyHeader("SENIOR ENGINEER")
	assert.False(t, ok)

	name, _, ok := s.ClassifyHeader("Experience")
	assert.True(t, ok)
	assert.Equal(t, Experience, name)
}

func TestSplit(t *testing.T) {
	text := strings.Join([]string{
		"Jane Doe",
		"jane@example.com",
		"",
		"Summary",
		"Backend engineer.",
		"Experience",
		"Engineer at Acme",
		"• Built things",
		"Skills: Go, SQL",
		"Professional Experience",
		"Intern at Beta",
	}, "\n")

	doc := New().Split(text)

	assert.Equal(t, []string{Unknown, Summary, Experience, Skills}, doc.Names())
	assert.Equal(t, []string{"Jane Doe", "jane@example.com", ""}, doc.Get(Unknown))
	assert.Equal(t, []string{"Backend engineer."}, doc.Get(Summary))
	assert.Equal(t, []string{"Engineer at Acme", "• Built things", "Intern at Beta"}, doc.Get(Experience))
	assert.Equal(t, []string{"Go, SQL"}, doc.Get(Skills))
	assert.True(t, doc.Has(Skills))
	assert.False(t, doc.Has(Education))
	assert.Nil(t, doc.Get(Education))
}

func TestSplit_CapsLineBelowVetoedLine(t *testing.T) {
	veto := func(line string) bool {
		return strings.Contains(line, "2019")
	}
	text := "EXPERIENCE\nSoftware Engineer 2019 - 2021\nACME CORP\n• Built APIs\n\nPATENTS\nUS 1234"

	doc := New(WithHeaderVeto(veto)).Split(text)

	assert.Equal(t, []string{Experience, "patents"}, doc.Names())
	assert.Equal(t, []string{"Software Engineer 2019 - 2021", "ACME CORP", "• Built APIs", ""}, doc.Get(Experience))
	assert.Equal(t, []string{"US 1234"}, doc.Get("patents"))
}

func TestSplit_EveryLineAssignedOnce(t *testing.T) {
	text := "alpha\nbeta\nEducation\nState University\n\ngamma"
	doc := New().Split(text)

	total := 0
	headers := 0
	for _, s := range doc.Sections() {
		total += len(s.Lines)
		if s.Header != "" {
			headers++
		}
	}
	require.Equal(t, 1, headers)
	assert.Equal(t, len(strings.Split(text, "\n"))-headers, total)
}

func TestSplit_Empty(t *testing.T) {
	doc := New().Split("")
	assert.Empty(t, doc.Names())
	assert.Empty(t, doc.Sections())
}

func TestSplit_SkillSubLabels(t *testing.T) {
	doc := New().Split("Skills\nLanguages: Go, Python\nTools: Git\nLanguages: English, Spanish")

	assert.Equal(t, []string{Skills}, doc.Names())
	assert.Equal(t, []string{"Languages: Go, Python", "Tools: Git", "Languages: English, Spanish"}, doc.Get(Skills))

	doc = New().Split("Summary\nBackend engineer.\nLanguages: English, Spanish")
	assert.Equal(t, []string{"English, Spanish"}, doc.Get(Languages))
}
