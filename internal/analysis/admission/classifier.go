// Package admission gates incoming messages on a static, ordered rule table.
// The policy is deliberately permissive: blocking a legitimate academic
// question is the worse failure mode, so the default outcome is admit.
package admission

import "strings"

type ruleKind int

const (
	// deny rejects the message outright and wins over every later rule.
	deny ruleKind = iota
	// allow admits on an academic subject or discipline name.
	allow
	// indicator admits on an interrogative academic phrasing.
	indicator
)

type rule struct {
	kind    ruleKind
	pattern string
}

var greetings = map[string]struct{}{
	"hi":             {},
	"hello":          {},
	"hey":            {},
	"namaste":        {},
	"good morning":   {},
	"good afternoon": {},
	"good evening":   {},
}

// rules is evaluated in order; the first match decides. All deny patterns
// precede allow patterns, which precede interrogative indicators, so the
// deny-list always takes precedence. Matching is plain substring matching
// and can over-trigger on embedded words; that limitation is accepted to
// keep the table auditable.
var rules = []rule{
	{deny, "bomb"},
	{deny, "weapon"},
	{deny, "kill"},
	{deny, "murder"},
	{deny, "suicide"},
	{deny, "porn"},
	{deny, "sex"},
	{deny, "nude"},
	{deny, "drugs"},
	{deny, "cocaine"},
	{deny, "heroin"},
	{deny, "gambling"},
	{deny, "hack into"},
	{deny, "steal"},
	{deny, "violence"},

	{allow, "math"},
	{allow, "algebra"},
	{allow, "geometry"},
	{allow, "calculus"},
	{allow, "trigonometry"},
	{allow, "statistics"},
	{allow, "physics"},
	{allow, "chemistry"},
	{allow, "biology"},
	{allow, "science"},
	{allow, "photosynthesis"},
	{allow, "history"},
	{allow, "geography"},
	{allow, "civics"},
	{allow, "economics"},
	{allow, "computer"},
	{allow, "programming"},
	{allow, "algorithm"},
	{allow, "grammar"},
	{allow, "literature"},
	{allow, "poem"},
	{allow, "essay"},
	{allow, "equation"},
	{allow, "theorem"},
	{allow, "experiment"},
	{allow, "homework"},
	{allow, "exam"},
	{allow, "syllabus"},

	{indicator, "what is"},
	{indicator, "what are"},
	{indicator, "explain"},
	{indicator, "how to"},
	{indicator, "how does"},
	{indicator, "how do"},
	{indicator, "why is"},
	{indicator, "why does"},
	{indicator, "define"},
	{indicator, "describe"},
	{indicator, "difference between"},
	{indicator, "meaning of"},
	{indicator, "solve"},
	{indicator, "calculate"},
}

// IsGreeting reports whether the trimmed, lower-cased text exactly matches
// one of the fixed greetings. Greetings are answered by a canned path
// upstream and never reach the completion provider.
func IsGreeting(text string) bool {
	_, ok := greetings[normalize(text)]
	return ok
}

// IsAdmissible decides whether a message is treated as on-topic. Pure
// function; callers must reject empty input before classification.
func IsAdmissible(text string) bool {
	normalized := normalize(text)

	if _, ok := greetings[normalized]; ok {
		return true
	}

	for _, r := range rules {
		if !strings.Contains(normalized, r.pattern) {
			continue
		}
		switch r.kind {
		case deny:
			return false
		case allow, indicator:
			return true
		}
	}

	// Permissive default: short questions and anything else unmatched are
	// admitted rather than risk blocking a legitimate academic question.
	return true
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
