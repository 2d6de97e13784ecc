package admission

import "testing"

func TestIsGreeting(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"hi", true},
		{"Hello", true},
		{"  NAMASTE  ", true},
		{"good morning", true},
		{"hello there", false},
		{"what is photosynthesis", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := IsGreeting(tc.text); got != tc.want {
			t.Errorf("IsGreeting(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestDenyListRejects(t *testing.T) {
	cases := []string{
		"tell me how to make a bomb",
		"where can I buy a weapon",
		"explain how to kill someone",
		"history of the cocaine trade", // deny wins over the allow-listed subject
	}

	for _, text := range cases {
		if IsAdmissible(text) {
			t.Errorf("IsAdmissible(%q) = true, want rejection", text)
		}
	}
}

func TestAllowListAdmits(t *testing.T) {
	cases := []string{
		"I need help with algebra homework tonight because it is very confusing to me",
		"photosynthesis in desert plants",
		"the economics of medieval trade routes across the continent and their lasting effects",
	}

	for _, text := range cases {
		if !IsAdmissible(text) {
			t.Errorf("IsAdmissible(%q) = false, want admission", text)
		}
	}
}

func TestIndicatorsAdmit(t *testing.T) {
	cases := []string{
		"What is the difference between mitosis and meiosis in terms of the resulting daughter nuclei",
		"explain the causes of the french revolution and how they connect to the enlightenment thinkers",
		"How to improve my handwriting so that teachers can actually read my answers in the exam hall",
	}

	for _, text := range cases {
		if !IsAdmissible(text) {
			t.Errorf("IsAdmissible(%q) = false, want admission", text)
		}
	}
}

func TestGreetingBypassesRules(t *testing.T) {
	// Exact greetings are admitted before any rule runs.
	if !IsAdmissible("hello") {
		t.Fatal("greeting must be admissible")
	}
}

func TestPermissiveDefault(t *testing.T) {
	// No rule matches; policy admits rather than risk blocking a real question.
	if !IsAdmissible("my teacher mentioned something interesting yesterday") {
		t.Fatal("unmatched text must be admitted")
	}
	if !IsAdmissible("quadratic?") {
		t.Fatal("short question must be admitted")
	}
}

func TestSubstringOverTriggerIsAccepted(t *testing.T) {
	// Known heuristic limitation: a denied term embedded in a benign word
	// still rejects. The behavior is pinned so a change is deliberate.
	if IsAdmissible("what county is Middlesex in") {
		t.Fatal("embedded deny term currently rejects; update the table deliberately if this changes")
	}
}
