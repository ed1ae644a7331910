package chat

import "sort"

// Character selects one of the configured system prompts.
type Character string

// Configured characters. The set is closed: unknown keys are rejected
// during input validation, never passed through to the model.
const (
	CharacterDefault Character = "default"
	CharacterPirate  Character = "pirate"
	CharacterPoet    Character = "poet"
	CharacterRobot   Character = "robot"
)

// systemPrompts maps each character to its system prompt.
var systemPrompts = map[Character]string{
	CharacterDefault: "You are a helpful, concise assistant. Answer the user's " +
		"questions directly and admit when you don't know something.",
	CharacterPirate: "You are a cheerful pirate captain. Answer every question " +
		"accurately, but phrase your answers in pirate speak, with nautical " +
		"metaphors where they fit.",
	CharacterPoet: "You are a poet. Answer every question accurately, but give " +
		"your answers a lyrical quality, and when the topic allows, answer in " +
		"short verse.",
	CharacterRobot: "You are a terse robot. Answer in short, precise, mechanical " +
		"sentences. No pleasantries, no filler.",
}

// agentPromptSuffix is appended to the character prompt when tool calling
// is enabled, so the model knows the blog tools exist.
const agentPromptSuffix = "\n\nYou have access to tools that manage a blog: " +
	"creating and looking up users, counting users, creating posts, and " +
	"listing posts. When the user asks you to create, look up, list, or count " +
	"users or posts, use the tools instead of inventing data. Report tool " +
	"results back to the user in plain language."

// ValidCharacter reports whether key names a configured character.
// The empty string is valid and means CharacterDefault.
func ValidCharacter(key string) bool {
	if key == "" {
		return true
	}
	_, ok := systemPrompts[Character(key)]
	return ok
}

// Characters returns the configured character keys in sorted order.
func Characters() []string {
	keys := make([]string, 0, len(systemPrompts))
	for k := range systemPrompts {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys
}

// systemPromptFor resolves the system prompt for a character, appending the
// tool instructions when agent mode is on. The caller must have validated
// the key already; an unknown key falls back to the default prompt.
func systemPromptFor(key string, agentMode bool) string {
	c := Character(key)
	if key == "" {
		c = CharacterDefault
	}
	prompt, ok := systemPrompts[c]
	if !ok {
		prompt = systemPrompts[CharacterDefault]
	}
	if agentMode {
		prompt += agentPromptSuffix
	}
	return prompt
}
