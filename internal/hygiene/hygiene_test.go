package hygiene

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
)

func profileWith(contact types.Contact, bullets ...string) *types.ResumeProfile {
	return &types.ResumeProfile{
		Contact:    contact,
		Experience: []types.ExperienceRole{{Role: "Engineer", Bullets: bullets}},
	}
}

var withEmail = types.Contact{Email: "a@b.co"}

func TestAnalyze_ShortUnquantified(t *testing.T) {
	r := Analyze(profileWith(withEmail, "Built APIs", "Wrote tests"))

	assert.Equal(t, []string{FlagBulletsTooShort, FlagMissingQuantified}, r.Flags)
	assert.Equal(t, 0.0, r.Score)
	assert.Equal(t, 2, r.Stats.Bullets.Count)
	assert.Equal(t, 2.0, r.Stats.Bullets.AvgWords)
	assert.True(t, r.Stats.ContactComplete)
	assert.Equal(t, []string{"email"}, r.Stats.ContactFieldsFound)
}

func TestAnalyze_NoBullets(t *testing.T) {
	for _, p := range []*types.ResumeProfile{nil, {}} {
		r := Analyze(p)
		assert.Equal(t, []string{FlagNoBullets, FlagMissingContact}, r.Flags)
		assert.Equal(t, 0.2, r.Score)
		assert.NotNil(t, r.Stats.ContactFieldsFound)
	}
}

func TestAnalyze_CleanBullets(t *testing.T) {
	r := Analyze(profileWith(withEmail,
		"Built a streaming ingestion service in Go that processes 2M events per day",
		"Reduced p99 latency 40% across 12 services through caching and query tuning",
	))

	assert.Empty(t, r.Flags)
	assert.NotNil(t, r.Flags)
	assert.InDelta(t, 1.0, r.Score, 1e-9)
	assert.Equal(t, 1.0, r.Stats.NumericRatio)
}

func TestAnalyze_WeakPassiveFirstPerson(t *testing.T) {
	r := Analyze(profileWith(types.Contact{Phone: "555-123-4567"},
		"I was responsible for the deployment pipeline and worked on monitoring",
		"Reports were generated by the team every week for our managers",
	))

	assert.Equal(t, []string{
		FlagMissingQuantified,
		FlagPassiveVoice,
		FlagFirstPerson,
		FlagWeakPhrases,
		FlagMissingActionVerbs,
	}, r.Flags)
	assert.True(t, r.Stats.FirstPerson)
	assert.Equal(t, 0.5, r.Stats.PassiveRatio)
	assert.Equal(t, 0.5, r.Stats.WeakPhraseRatio)
	assert.Equal(t, 1.0, r.Stats.NoActionVerbRatio)
}

func TestAnalyze_LongBullets(t *testing.T) {
	long := "Built " + strings.Repeat("very ", 33) + "long 1"
	r := Analyze(profileWith(withEmail, long))

	assert.Contains(t, r.Flags, FlagBulletsTooLong)
	assert.NotContains(t, r.Flags, FlagBulletsTooShort)
	assert.InDelta(t, 0.5, r.Score, 1e-9)
}

func TestAnalyze_IncludesProjectBullets(t *testing.T) {
	p := &types.ResumeProfile{
		Contact:  withEmail,
		Projects: []types.Project{{Name: "Bot", Bullets: types.StringList{"Built a trading bot that ran 40 strategies against 10 years of data"}}},
	}

	r := Analyze(p)

	assert.Equal(t, 1, r.Stats.Bullets.Count)
	assert.NotContains(t, r.Flags, FlagNoBullets)
}

func TestWeakPhrase(t *testing.T) {
	tests := []struct {
		bullet string
		want   string
	}{
		{"Responsible for on-call rotation", "responsible-for"},
		{"Worked on the billing team", "worked-on"},
		{"Helped migrate services", "helped"},
		{"Was involved in hiring", "involved-in"},
		{"Handled various tasks for the team", "vague-scope"},
		{"Built the billing service", ""},
	}
	for _, tt := range tests {
		t.Run(tt.bullet, func(t *testing.T) {
			got, ok := WeakPhrase(tt.bullet)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want != "", ok)
		})
	}
}

func TestIsPassive(t *testing.T) {
	assert.True(t, IsPassive("The service was deployed weekly"))
	assert.True(t, IsPassive("Cut latency by 30%"))
	assert.False(t, IsPassive("Deployed the service weekly"))
}

func TestHasFirstPerson(t *testing.T) {
	assert.True(t, HasFirstPerson("We shipped the app"))
	assert.True(t, HasFirstPerson("Built my first compiler"))
	assert.True(t, HasFirstPerson("I led the team"))
	assert.False(t, HasFirstPerson("Scaled I/O throughput for US customers"))
	assert.False(t, HasFirstPerson("Owned CI/CD"))
}

func TestHasActionVerb(t *testing.T) {
	assert.True(t, HasActionVerb("Led a team of 5"))
	assert.True(t, HasActionVerb("Team lead who optimized queries."))
	assert.False(t, HasActionVerb("Responsible for servers"))
}
