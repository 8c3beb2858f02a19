package fuzzy

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical", a: "python", b: "python", want: 100},
		{name: "both empty", a: "", b: "", want: 100},
		{name: "one empty", a: "go", b: "", want: 0},
		{name: "disjoint", a: "abc", b: "xyz", want: 0},
		{name: "past tense", a: "build", b: "built", want: 80},
		{name: "suffix", a: "optimize", b: "optimized", want: 100 * (1 - 1.0/17.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Ratio(tt.a, tt.b), 0.01)
		})
	}
}

func TestRatio_Unicode(t *testing.T) {
	assert.InDelta(t, 100.0, Ratio("café", "café"), 0.01)
	assert.InDelta(t, 75.0, Ratio("café", "cafe"), 0.01)
}

func TestTokenSetRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		min  float64
		max  float64
	}{
		{name: "subset scores full", a: "python", b: "built python applications", min: 100, max: 100},
		{name: "reordered tokens", a: "machine learning", b: "learning machine", min: 100, max: 100},
		{name: "no shared tokens", a: "python", b: "java", min: 0, max: 20},
		{name: "empty side", a: "", b: "python", min: 0, max: 0},
		{name: "near spelling", a: "postgresql", b: "postgres", min: 85, max: 95},
		{name: "partial overlap", a: "aws lambda", b: "aws ec2", min: 50, max: 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TokenSetRatio(tt.a, tt.b)
			assert.GreaterOrEqual(t, got, tt.min)
			assert.LessOrEqual(t, got, tt.max)
		})
	}
}

func TestTokenSetRatio_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"react native", "react"},
		{"data pipelines", "built data ingestion pipelines"},
		{"kubernetes", "k8s"},
	}
	for _, p := range pairs {
		assert.InDelta(t, TokenSetRatio(p[0], p[1]), TokenSetRatio(p[1], p[0]), 0.0001)
	}
}

func TestContains(t *testing.T) {
	haystack := []string{"java", "led migration to postgresql", "docker"}

	hit, ok := Contains("postgresql", haystack, 85)
	assert.True(t, ok)
	assert.Equal(t, "led migration to postgresql", hit)

	_, ok = Contains("rust", haystack, 85)
	assert.False(t, ok)
}

func TestCount(t *testing.T) {
	haystack := []string{"python", "built python services", "go"}
	assert.Equal(t, 2, Count("python", haystack, 85))
	assert.Equal(t, 0, Count("scala", haystack, 85))
}

func TestMatch(t *testing.T) {
	haystack := []string{"java", "built python services", "python", "go"}

	first, n := Match("python", haystack, 85)
	assert.Equal(t, "built python services", first)
	assert.Equal(t, 2, n)

	first, n = Match("scala", haystack, 85)
	assert.Empty(t, first)
	assert.Zero(t, n)
}

func TestRatioCutoff(t *testing.T) {
	tests := []struct {
		name   string
		a, b   string
		cutoff float64
		want   float64
	}{
		{name: "no cutoff", a: "build", b: "built", cutoff: 0, want: 80},
		{name: "reachable", a: "build", b: "built", cutoff: 80, want: 80},
		{name: "lengths rule it out", a: "go", b: "golang services", cutoff: 85, want: 0},
		{name: "empty inputs", a: "", b: "", cutoff: 100, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RatioCutoff(tt.a, tt.b, tt.cutoff), 0.01)
		})
	}
}

func TestTokenSetRatioCutoff_LongInputs(t *testing.T) {
	var lineTokens, respTokens []string
	for i := 0; i < 2000; i++ {
		lineTokens = append(lineTokens, fmt.Sprintf("w%d", i))
	}
	for i := 0; i < 4000; i++ {
		respTokens = append(respTokens, fmt.Sprintf("resp%d", i))
	}
	line := strings.Join(lineTokens, " ")
	responsibility := strings.Join(respTokens, " ")

	assert.Zero(t, TokenSetRatioCutoff(line, responsibility, 85))
	assert.Equal(t, 0, Count(line, []string{responsibility}, 85))
}

func TestRatio_LongInputsAreTruncated(t *testing.T) {
	a := strings.Repeat("a", MaxRunes) + strings.Repeat("b", 5000)
	b := strings.Repeat("a", MaxRunes) + strings.Repeat("c", 5000)
	assert.InDelta(t, 100.0, Ratio(a, b), 0.01)
}
