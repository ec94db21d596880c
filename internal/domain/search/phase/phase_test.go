package phase

import "testing"

func TestIsValid(t *testing.T) {
	valid := []Phase{Idle, Searching, ResultsFound, AIAnswered, EmptyNoAI}
	for _, p := range valid {
		if !p.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", p)
		}
	}

	invalid := []Phase{"", "done", "RESULTS-FOUND"}
	for _, p := range invalid {
		if p.IsValid() {
			t.Errorf("%q.IsValid() = true, want false", p)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for _, p := range []Phase{ResultsFound, AIAnswered, EmptyNoAI} {
		if !p.IsTerminal() {
			t.Errorf("%q should be terminal", p)
		}
	}
	for _, p := range []Phase{Idle, Searching} {
		if p.IsTerminal() {
			t.Errorf("%q should not be terminal", p)
		}
	}
}
