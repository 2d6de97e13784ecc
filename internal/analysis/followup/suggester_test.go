package followup

import (
	"reflect"
	"testing"
)

func TestSuggestBounds(t *testing.T) {
	questions := []string{
		"What is photosynthesis?",
		"Explain the Pythagorean theorem",
		"Tell me about the French revolution",
		"how to write a for loop in code",
		"why is the sky blue",
		"something with no obvious topic at all",
	}

	for _, q := range questions {
		for _, tier := range []string{"school", "college", "research", "unknown"} {
			got := Suggest(q, tier)
			if len(got) < 2 || len(got) > 4 {
				t.Errorf("Suggest(%q, %q) returned %d suggestions, want 2-4", q, tier, len(got))
			}
		}
	}
}

func TestScienceFamilySelected(t *testing.T) {
	got := Suggest("What is photosynthesis?", "school")
	want := families[0].school
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected the science family school set, got %v", got)
	}
}

func TestFamilyPriorityOrder(t *testing.T) {
	// "physics" (science) and "history" both match; science is declared
	// first and wins.
	got := Suggest("the history of physics", "school")
	if !reflect.DeepEqual(got, families[0].school) {
		t.Fatalf("expected science family to take priority, got %v", got)
	}
}

func TestTierPhrasing(t *testing.T) {
	school := Suggest("help me with algebra", "school")
	research := Suggest("help me with algebra", "research")
	if reflect.DeepEqual(school, research) {
		t.Fatal("expected different phrasing for school and research tiers")
	}

	college := Suggest("help me with algebra", "college")
	if !reflect.DeepEqual(college, research) {
		t.Fatal("college and research share the advanced phrasing")
	}
}

func TestInterrogativePrefixFallback(t *testing.T) {
	got := Suggest("what is the capital of France", "school")
	if !reflect.DeepEqual(got, prefixSets[0].suggestions) {
		t.Fatalf("expected the 'what is' generic set, got %v", got)
	}
}

func TestDefaultSet(t *testing.T) {
	got := Suggest("ramblings with no keywords or prefixes whatsoever", "school")
	if !reflect.DeepEqual(got, defaults) {
		t.Fatalf("expected the default set, got %v", got)
	}
}

func TestDeterminism(t *testing.T) {
	first := Suggest("explain cellular biology", "college")
	second := Suggest("explain cellular biology", "college")
	if !reflect.DeepEqual(first, second) {
		t.Fatal("suggestions must be deterministic for identical input")
	}
}

func TestReturnedSlicesAreCopies(t *testing.T) {
	got := Suggest("What is photosynthesis?", "school")
	got[0] = "mutated"
	if families[0].school[0] == "mutated" {
		t.Fatal("template tables must not be reachable through returned slices")
	}
}
