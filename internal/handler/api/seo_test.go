// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"testing"

	"github.com/olegiv/scholarcms/internal/seo"
)

func TestScoreContent(t *testing.T) {
	env := testSetup(t)

	body := `{"content":"<p>Erasmus scholarship deadlines for this year.</p><h2>Erasmus eligibility</h2>","keyword":"erasmus","title":"Erasmus scholarship guide","description":"Everything about Erasmus funding"}`
	w := executeHandler(t, env.h.ScoreContent, newJSONRequest(t, http.MethodPost, "/api/v1/seo/score", body, nil))

	assertStatusCode(t, w, http.StatusOK)
	got := unmarshalData[seo.Result](t, w)
	if got.KeywordCount != 2 {
		t.Errorf("KeywordCount = %d, want 2", got.KeywordCount)
	}
	if got.WordCount != 8 {
		t.Errorf("WordCount = %d, want 8", got.WordCount)
	}
	if len(got.Checks) != 10 {
		t.Errorf("got %d checks, want 10", len(got.Checks))
	}
	if got.Score <= 0 || got.Score > 100 {
		t.Errorf("Score = %d, want within (0, 100]", got.Score)
	}
}

func TestScoreContentMarkdown(t *testing.T) {
	env := testSetup(t)

	body := `{"content":"## Erasmus\n\nApply for **Erasmus** today.","format":"markdown","keyword":"erasmus"}`
	w := executeHandler(t, env.h.ScoreContent, newJSONRequest(t, http.MethodPost, "/api/v1/seo/score", body, nil))

	assertStatusCode(t, w, http.StatusOK)
	got := unmarshalData[seo.Result](t, w)
	if got.KeywordCount != 2 {
		t.Errorf("KeywordCount = %d, want 2", got.KeywordCount)
	}
	for _, c := range got.Checks {
		if c.Name == seo.CheckKeywordInSubheading && !c.Passed {
			t.Error("markdown heading should count as a subheading")
		}
	}
}

func TestScoreContentEmpty(t *testing.T) {
	env := testSetup(t)

	w := executeHandler(t, env.h.ScoreContent, newJSONRequest(t, http.MethodPost, "/api/v1/seo/score", `{}`, nil))
	assertStatusCode(t, w, http.StatusOK)
	if got := unmarshalData[seo.Result](t, w); got.Score != 0 || got.WordCount != 0 {
		t.Errorf("empty content = %+v, want zero score", got)
	}
}

func TestScoreContentValidation(t *testing.T) {
	env := testSetup(t)

	w := executeHandler(t, env.h.ScoreContent, newJSONRequest(t, http.MethodPost, "/api/v1/seo/score", `{"content":"x","format":"rtf"}`, nil))
	assertStatusCode(t, w, http.StatusUnprocessableEntity)
	resp := assertErrorResponse(t, w, "validation_error")
	if _, ok := resp.Error.Details["format"]; !ok {
		t.Errorf("details = %v, want format", resp.Error.Details)
	}

	w = executeHandler(t, env.h.ScoreContent, newJSONRequest(t, http.MethodPost, "/api/v1/seo/score", `not json`, nil))
	assertStatusCode(t, w, http.StatusBadRequest)
}
