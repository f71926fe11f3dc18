// Package heuristic derives a call analysis from the transcript alone. Every function
// here is total: any input, including empty text, yields a usable result.
package heuristic

import (
	"strings"
	"unicode/utf8"

	"finecho-server/internal/analysis"
)

const (
	DefaultGoal        = "General advice"
	EmptySummary       = "No transcript available."
	maxSummaryLength   = 400
	truncatedKeepRunes = 397
	ellipsis           = "..."
)

type goalRule struct {
	goal     string
	keywords []string
}

// Order matters: goals are reported in table order.
var goalTable = []goalRule{
	{goal: "retirement", keywords: []string{"retirement", "retire", "pension", "corpus", "nest egg"}},
	{goal: "tax saving", keywords: []string{"tax", "80c", "elss", "tax saving", "deduction"}},
	{goal: "education", keywords: []string{"education", "child", "school", "college", "fees"}},
	{goal: "wealth creation", keywords: []string{"wealth", "growth", "invest", "sip", "mutual fund"}},
	{goal: "emergency", keywords: []string{"emergency", "liquid", "short term", "safety"}},
}

// GoalSummary is the summary half of the heuristic pair.
type GoalSummary struct {
	Summary  string
	Goals    []string
	Language string
}

// SummarizeGoals matches the transcript against the goal table and produces a
// truncated summary. Goals is never empty.
func SummarizeGoals(transcript string) GoalSummary {
	text := normalize(transcript)

	goals := make([]string, 0, len(goalTable))
	for _, rule := range goalTable {
		if containsAny(text, rule.keywords) {
			goals = append(goals, rule.goal)
		}
	}
	if len(goals) == 0 {
		goals = append(goals, DefaultGoal)
	}

	return GoalSummary{
		Summary:  summarize(text),
		Goals:    goals,
		Language: analysis.DefaultLanguage,
	}
}

func summarize(text string) string {
	if text == "" {
		return EmptySummary
	}
	if utf8.RuneCountInString(text) <= maxSummaryLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:truncatedKeepRunes]) + ellipsis
}

func normalize(transcript string) string {
	return strings.ToLower(strings.TrimSpace(transcript))
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
