// Package followup derives suggested next questions from the topic of a
// tutoring exchange. Suggestions key off the user's question only, never the
// generated reply, and are fully deterministic.
package followup

import "strings"

// family groups topic keywords with the suggestion templates they select.
// Families are checked in declaration order; the first match wins.
type family struct {
	name     string
	keywords []string
	school   []string
	advanced []string
}

var families = []family{
	{
		name:     "science",
		keywords: []string{"science", "physics", "chemistry", "biology", "photosynthesis", "atom", "energy", "cell", "experiment", "gravity", "molecule"},
		school: []string{
			"Can you explain this with a simple everyday example?",
			"What experiment could I do at home to see this?",
			"Why is this important in daily life?",
		},
		advanced: []string{
			"What are the governing equations or mechanisms behind this?",
			"How was this phenomenon first discovered and verified?",
			"What are the current open questions in this area?",
		},
	},
	{
		name:     "mathematics",
		keywords: []string{"math", "algebra", "geometry", "calculus", "equation", "theorem", "fraction", "integral", "derivative", "probability", "statistics"},
		school: []string{
			"Can you show me a step-by-step worked example?",
			"What is a common mistake students make here?",
			"Where is this used in real life?",
		},
		advanced: []string{
			"Can you walk through a formal proof of this?",
			"How does this generalize to higher dimensions or abstract settings?",
			"What related theorems should I study next?",
		},
	},
	{
		name:     "history",
		keywords: []string{"history", "war", "empire", "revolution", "ancient", "civilization", "independence", "dynasty", "medieval"},
		school: []string{
			"What happened just before and after this event?",
			"Who were the most important people involved?",
			"How did this change ordinary people's lives?",
		},
		advanced: []string{
			"What primary sources document this period?",
			"How do historians disagree about this event?",
			"What were the long-term economic and political consequences?",
		},
	},
	{
		name:     "computer-science",
		keywords: []string{"computer", "programming", "code", "software", "algorithm", "internet", "data structure", "database", "network", "machine learning"},
		school: []string{
			"Can you explain this with a simple analogy?",
			"What small program could I write to try this out?",
			"What should I learn next after this?",
		},
		advanced: []string{
			"What is the time and space complexity involved?",
			"How is this implemented in real production systems?",
			"What are the trade-offs against alternative approaches?",
		},
	},
	{
		name:     "literature",
		keywords: []string{"literature", "poem", "poetry", "novel", "essay", "grammar", "metaphor", "shakespeare", "author", "story"},
		school: []string{
			"Can you give a short example that shows this?",
			"How can I use this in my own writing?",
			"What famous work is a good example of this?",
		},
		advanced: []string{
			"How have critics interpreted this differently over time?",
			"What literary movements influenced this technique?",
			"How does this compare across languages and traditions?",
		},
	},
}

// prefixSets map interrogative prefixes to generic suggestion templates used
// when no topic family matches.
var prefixSets = []struct {
	prefix      string
	suggestions []string
}{
	{"what is", []string{
		"Can you give me an example of this?",
		"How does this work in practice?",
		"Why is this concept important?",
	}},
	{"how to", []string{
		"What do I need before I start?",
		"What is the most common mistake to avoid?",
		"Can you break this into smaller steps?",
	}},
	{"why is", []string{
		"What would happen if this were not the case?",
		"Can you explain the reasoning step by step?",
		"Is this always true, or are there exceptions?",
	}},
}

var defaults = []string{
	"Can you explain that in more detail?",
	"Can you give me a practical example?",
	"What related topic should I explore next?",
}

// advancedTiers marks the tiers that receive the advanced phrasing; every
// other tier, including unknown ones, gets the school phrasing.
var advancedTiers = map[string]struct{}{
	"college":  {},
	"research": {},
}

// Suggest returns 2-4 follow-up questions for the given user question,
// most relevant first.
func Suggest(question, tierName string) []string {
	normalized := strings.ToLower(strings.TrimSpace(question))
	advanced := isAdvanced(tierName)

	for _, f := range families {
		for _, kw := range f.keywords {
			if strings.Contains(normalized, kw) {
				if advanced {
					return clone(f.advanced)
				}
				return clone(f.school)
			}
		}
	}

	for _, p := range prefixSets {
		if strings.HasPrefix(normalized, p.prefix) {
			return clone(p.suggestions)
		}
	}

	return clone(defaults)
}

// GreetingSuggestions is the fixed set returned with canned greeting replies.
func GreetingSuggestions() []string {
	return []string{
		"What is photosynthesis?",
		"Explain the Pythagorean theorem",
		"How do computers store data?",
	}
}

// RedirectSuggestions is the fixed set returned with the rejection reply,
// nudging the conversation back to academic topics.
func RedirectSuggestions() []string {
	return []string{
		"Ask me a science question",
		"Try a math problem with me",
		"Explore a history topic",
	}
}

func isAdvanced(tierName string) bool {
	_, ok := advancedTiers[strings.ToLower(strings.TrimSpace(tierName))]
	return ok
}

func clone(items []string) []string {
	return append([]string(nil), items...)
}
