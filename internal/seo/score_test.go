// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"testing"
)

// perfectMarkdown builds a page that passes every check for "scholarship".
func perfectMarkdown() string {
	var sb strings.Builder
	sb.WriteString("Finding a scholarship starts with knowing where to look.\n\n")
	sb.WriteString("## Scholarship deadlines\n\n")
	sb.WriteString("![Campus library](/img/library.jpg)\n\n")
	sb.WriteString("Read the [application guide](https://example.com/apply) first.\n\n")
	for i := 0; i < 10; i++ {
		sb.WriteString(strings.Repeat("students compare programs and funding options carefully ", 14))
		sb.WriteString("every scholarship has its own rules.\n\n")
	}
	return sb.String()
}

func checkByName(t *testing.T, res Result, name string) Check {
	t.Helper()
	for _, c := range res.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("check %q not found", name)
	return Check{}
}

func TestScorePerfectPage(t *testing.T) {
	res := Score(Input{
		Content:     perfectMarkdown(),
		Format:      FormatMarkdown,
		Keyword:     "Scholarship",
		Title:       "How to win a scholarship",
		Description: "A practical scholarship guide for students.",
	})

	if res.Score != 100 {
		for _, c := range res.Checks {
			if !c.Passed {
				t.Logf("failed check %s: %d/%d", c.Name, c.Points, c.MaxPoints)
			}
		}
		t.Fatalf("Score = %d, want 100 (words=%d density=%.2f)", res.Score, res.WordCount, res.KeywordDensity)
	}
	if len(res.Checks) != 10 {
		t.Errorf("len(Checks) = %d, want 10", len(res.Checks))
	}

	maxTotal := 0
	for _, c := range res.Checks {
		maxTotal += c.MaxPoints
	}
	if maxTotal != 100 {
		t.Errorf("sum of MaxPoints = %d, want 100", maxTotal)
	}
}

func TestScoreEmptyInput(t *testing.T) {
	res := Score(Input{})
	if res.Score != 0 {
		t.Errorf("Score = %d, want 0", res.Score)
	}
	if res.WordCount != 0 {
		t.Errorf("WordCount = %d, want 0", res.WordCount)
	}
	for _, c := range res.Checks {
		if c.Passed || c.Points != 0 {
			t.Errorf("check %s = %d points, want 0", c.Name, c.Points)
		}
	}
}

func TestScoreEmptyKeywordKeepsStructuralChecks(t *testing.T) {
	res := Score(Input{
		Content: `<h2>Deadlines</h2><p>Apply early.</p><img src="/a.jpg" alt="A"><a href="/apply">Apply</a>`,
		Title:   "Deadlines",
	})

	// subheadings 10 + words 2 + images 10 + alt 5 + links 5
	if res.Score != 32 {
		t.Errorf("Score = %d, want 32", res.Score)
	}
	for _, name := range []string{CheckKeywordInTitle, CheckKeywordInDescription, CheckKeywordInIntro, CheckKeywordDensity, CheckKeywordInSubheading} {
		if c := checkByName(t, res, name); c.Points != 0 {
			t.Errorf("%s = %d, want 0", name, c.Points)
		}
	}
}

func TestScoreKeywordMatching(t *testing.T) {
	tests := []struct {
		name    string
		keyword string
		title   string
		want    bool
	}{
		{"case insensitive", "Scholarship", "SCHOLARSHIP news", true},
		{"whole word only", "scholar", "Scholarship news", false},
		{"phrase", "full ride", "Get a full ride today", true},
		{"phrase out of order", "full ride", "ride full", false},
		{"punctuation ignored", "masters", "Masters, explained", true},
		{"hyphenated", "full-ride", "Full-ride awards", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Score(Input{Keyword: tt.keyword, Title: tt.title})
			got := checkByName(t, res, CheckKeywordInTitle).Passed
			if got != tt.want {
				t.Errorf("keyword %q in title %q = %v, want %v", tt.keyword, tt.title, got, tt.want)
			}
		})
	}
}

func TestScoreKeywordInIntro(t *testing.T) {
	filler := strings.Repeat("word ", introWords)

	early := Score(Input{Content: "<p>grant " + filler + "</p>", Keyword: "grant"})
	if !checkByName(t, early, CheckKeywordInIntro).Passed {
		t.Error("keyword in first word should pass intro check")
	}

	late := Score(Input{Content: "<p>" + filler + "grant</p>", Keyword: "grant"})
	if checkByName(t, late, CheckKeywordInIntro).Passed {
		t.Error("keyword after first 100 words should fail intro check")
	}
}

func TestDensityPoints(t *testing.T) {
	tests := []struct {
		density float64
		want    int
	}{
		{0, 0},
		{0.1, 3},
		{0.25, 8},
		{0.49, 8},
		{0.5, 15},
		{1.8, 15},
		{2.5, 15},
		{2.6, 8},
		{4, 8},
		{4.1, 3},
		{20, 3},
	}
	for _, tt := range tests {
		if got := densityPoints(tt.density); got != tt.want {
			t.Errorf("densityPoints(%v) = %d, want %d", tt.density, got, tt.want)
		}
	}
}

func TestWordCountPoints(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{0, 0},
		{1, 2},
		{299, 2},
		{300, 5},
		{599, 5},
		{600, 7},
		{999, 7},
		{1000, 10},
		{5000, 10},
	}
	for _, tt := range tests {
		if got := wordCountPoints(tt.words); got != tt.want {
			t.Errorf("wordCountPoints(%d) = %d, want %d", tt.words, got, tt.want)
		}
	}
}

func TestScoreDensity(t *testing.T) {
	// 2 occurrences in 100 words = 2%
	content := "<p>grant " + strings.Repeat("word ", 98) + "grant</p>"
	res := Score(Input{Content: content, Keyword: "grant"})

	if res.WordCount != 100 {
		t.Fatalf("WordCount = %d, want 100", res.WordCount)
	}
	if res.KeywordCount != 2 {
		t.Errorf("KeywordCount = %d, want 2", res.KeywordCount)
	}
	if res.KeywordDensity != 2 {
		t.Errorf("KeywordDensity = %v, want 2", res.KeywordDensity)
	}
	if c := checkByName(t, res, CheckKeywordDensity); c.Points != 15 {
		t.Errorf("density points = %d, want 15", c.Points)
	}
}

func TestScoreImages(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantImages int
		wantAlt    int
	}{
		{"no images", "<p>text</p>", 0, 0},
		{"all with alt", `<img src="/a.jpg" alt="A"><img src="/b.jpg" alt="B">`, 10, 5},
		{"one missing alt", `<img src="/a.jpg" alt="A"><img src="/b.jpg">`, 10, 0},
		{"blank alt", `<img src="/a.jpg" alt="  ">`, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Score(Input{Content: tt.content})
			if got := checkByName(t, res, CheckImages).Points; got != tt.wantImages {
				t.Errorf("images = %d, want %d", got, tt.wantImages)
			}
			if got := checkByName(t, res, CheckImageAlt).Points; got != tt.wantAlt {
				t.Errorf("image alt = %d, want %d", got, tt.wantAlt)
			}
		})
	}
}

func TestScoreIgnoresUnsafeMarkup(t *testing.T) {
	content := `<p>safe text</p><script>grant grant grant</script><h1>grant</h1>`
	res := Score(Input{Content: content, Keyword: "grant"})

	// script content is dropped; h1 is not a subheading
	if checkByName(t, res, CheckSubheadings).Passed {
		t.Error("h1 should not count as a subheading")
	}
	if res.KeywordCount != 1 {
		t.Errorf("KeywordCount = %d, want 1", res.KeywordCount)
	}
}

func TestScoreMarkdownLinksAndHeadings(t *testing.T) {
	res := Score(Input{
		Content: "### Funding for grant seekers\n\nSee [details](https://example.com).",
		Format:  FormatMarkdown,
		Keyword: "grant",
	})
	if !checkByName(t, res, CheckSubheadings).Passed {
		t.Error("h3 should count as a subheading")
	}
	if !checkByName(t, res, CheckKeywordInSubheading).Passed {
		t.Error("keyword in h3 should pass")
	}
	if !checkByName(t, res, CheckLinks).Passed {
		t.Error("markdown link should count")
	}
}

func TestTokenize(t *testing.T) {
	got := tokenize("  Student's guide: Full-ride, 2026!  ")
	want := []string{"student's", "guide", "full", "ride", "2026"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("tokenize = %v, want %v", got, want)
	}
}
