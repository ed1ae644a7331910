package chat

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidCharacter(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"", true}, // empty means default
		{"default", true},
		{"pirate", true},
		{"poet", true},
		{"robot", true},
		{"wizard", false},
		{"PIRATE", false}, // keys are case sensitive
		{"default ", false},
	}

	for _, tt := range tests {
		if got := ValidCharacter(tt.key); got != tt.want {
			t.Errorf("ValidCharacter(%q) = %t, want %t", tt.key, got, tt.want)
		}
	}
}

func TestCharactersSorted(t *testing.T) {
	want := []string{"default", "pirate", "poet", "robot"}
	if diff := cmp.Diff(want, Characters()); diff != "" {
		t.Errorf("Characters() mismatch (-want +got):\n%s", diff)
	}
}

func TestSystemPromptFor(t *testing.T) {
	if got := systemPromptFor("", false); got != systemPrompts[CharacterDefault] {
		t.Errorf("empty key prompt = %q, want default", got)
	}
	if got := systemPromptFor("pirate", false); got != systemPrompts[CharacterPirate] {
		t.Errorf("pirate prompt = %q", got)
	}

	// agent mode appends the tool instructions to every character
	got := systemPromptFor("pirate", true)
	if !strings.HasPrefix(got, systemPrompts[CharacterPirate]) {
		t.Error("agent prompt does not start with the character prompt")
	}
	if !strings.Contains(got, "tools") {
		t.Error("agent prompt does not mention tools")
	}
}
