// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo scores editorial content for search-engine readiness.
//
// The score is a weighted sum of independent checks. The weights add up to
// 100, so a page that passes every check scores exactly 100.
package seo

import (
	"bytes"
	"math"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Content formats accepted by Score.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// Check names reported in Result.Checks.
const (
	CheckKeywordInTitle       = "keyword_in_title"
	CheckKeywordInDescription = "keyword_in_description"
	CheckKeywordInIntro       = "keyword_in_intro"
	CheckKeywordDensity       = "keyword_density"
	CheckSubheadings          = "subheadings"
	CheckKeywordInSubheading  = "keyword_in_subheading"
	CheckWordCount            = "word_count"
	CheckImages               = "images"
	CheckImageAlt             = "image_alt"
	CheckLinks                = "links"
)

// introWords is how many leading words count as the introduction.
const introWords = 100

// Input is the page being scored.
type Input struct {
	Content     string
	Format      string // FormatHTML (default) or FormatMarkdown
	Keyword     string
	Title       string
	Description string
}

// Check is the outcome of a single scoring rule.
type Check struct {
	Name      string `json:"name"`
	Passed    bool   `json:"passed"`
	Points    int    `json:"points"`
	MaxPoints int    `json:"maxPoints"`
}

// Result is the overall score with the per-check breakdown.
type Result struct {
	Score          int     `json:"score"`
	WordCount      int     `json:"wordCount"`
	KeywordCount   int     `json:"keywordCount"`
	KeywordDensity float64 `json:"keywordDensity"` // percent
	Checks         []Check `json:"checks"`
}

// document is what the checks need from the rendered content.
type document struct {
	words       []string
	headings    [][]string
	images      int
	imagesNoAlt int
	links       int
}

var (
	markdown = goldmark.New()
	policy   = bluemonday.UGCPolicy()
)

// Score evaluates the input against the weight table. It never fails:
// content that cannot be rendered is scored as empty.
func Score(in Input) Result {
	doc := analyze(render(in.Content, in.Format))
	keyword := tokenize(in.Keyword)

	var res Result
	res.WordCount = len(doc.words)

	add := func(name string, points, maxPoints int) {
		res.Checks = append(res.Checks, Check{
			Name:      name,
			Passed:    points == maxPoints,
			Points:    points,
			MaxPoints: maxPoints,
		})
	}

	hasKeyword := len(keyword) > 0

	add(CheckKeywordInTitle, pointsIf(hasKeyword && containsPhrase(tokenize(in.Title), keyword), 15), 15)
	add(CheckKeywordInDescription, pointsIf(hasKeyword && containsPhrase(tokenize(in.Description), keyword), 10), 10)

	intro := doc.words
	if len(intro) > introWords {
		intro = intro[:introWords]
	}
	add(CheckKeywordInIntro, pointsIf(hasKeyword && containsPhrase(intro, keyword), 10), 10)

	if hasKeyword && res.WordCount > 0 {
		res.KeywordCount = countPhrase(doc.words, keyword)
		res.KeywordDensity = float64(res.KeywordCount) * 100 / float64(res.WordCount)
	}
	add(CheckKeywordDensity, densityPoints(res.KeywordDensity), 15)

	add(CheckSubheadings, pointsIf(len(doc.headings) > 0, 10), 10)

	inHeading := false
	if hasKeyword {
		for _, h := range doc.headings {
			if containsPhrase(h, keyword) {
				inHeading = true
				break
			}
		}
	}
	add(CheckKeywordInSubheading, pointsIf(inHeading, 10), 10)

	add(CheckWordCount, wordCountPoints(res.WordCount), 10)
	add(CheckImages, pointsIf(doc.images > 0, 10), 10)
	add(CheckImageAlt, pointsIf(doc.images > 0 && doc.imagesNoAlt == 0, 5), 5)
	add(CheckLinks, pointsIf(doc.links > 0, 5), 5)

	sum := 0
	for _, c := range res.Checks {
		sum += c.Points
	}
	res.Score = int(math.Round(float64(sum) / 100 * 100))

	return res
}

func pointsIf(ok bool, points int) int {
	if ok {
		return points
	}
	return 0
}

func densityPoints(density float64) int {
	switch {
	case density >= 0.5 && density <= 2.5:
		return 15
	case density >= 0.25 && density < 0.5, density > 2.5 && density <= 4:
		return 8
	case density > 0:
		return 3
	default:
		return 0
	}
}

func wordCountPoints(n int) int {
	switch {
	case n >= 1000:
		return 10
	case n >= 600:
		return 7
	case n >= 300:
		return 5
	case n >= 1:
		return 2
	default:
		return 0
	}
}

// render converts the content to sanitised HTML.
func render(content, format string) string {
	if strings.EqualFold(format, FormatMarkdown) {
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(content), &buf); err != nil {
			return ""
		}
		content = buf.String()
	}
	return policy.Sanitize(content)
}

func analyze(content string) document {
	var doc document
	if strings.TrimSpace(content) == "" {
		return doc
	}

	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return doc
	}

	var text strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			text.WriteString(n.Data)
			text.WriteByte(' ')
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
				doc.headings = append(doc.headings, tokenize(nodeText(n)))
			case atom.Img:
				doc.images++
				if strings.TrimSpace(attr(n, "alt")) == "" {
					doc.imagesNoAlt++
				}
			case atom.A:
				if attr(n, "href") != "" {
					doc.links++
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	doc.words = tokenize(text.String())
	return doc
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// tokenize splits text into lower-cased words. Apostrophes inside a word
// are kept so "student's" stays one word.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\'' && r != '’'
	})

	words := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, "'’")
		if f != "" {
			words = append(words, f)
		}
	}
	return words
}

// countPhrase counts non-overlapping whole-word occurrences of phrase.
func countPhrase(words, phrase []string) int {
	if len(phrase) == 0 {
		return 0
	}
	count := 0
	for i := 0; i+len(phrase) <= len(words); {
		if matchAt(words, phrase, i) {
			count++
			i += len(phrase)
			continue
		}
		i++
	}
	return count
}

func containsPhrase(words, phrase []string) bool {
	if len(phrase) == 0 {
		return false
	}
	for i := 0; i+len(phrase) <= len(words); i++ {
		if matchAt(words, phrase, i) {
			return true
		}
	}
	return false
}

func matchAt(words, phrase []string, i int) bool {
	for j, p := range phrase {
		if words[i+j] != p {
			return false
		}
	}
	return true
}
