package chat

import (
	"context"

	"github.com/firebase/genkit/go/genkit"
)

// FlowName is the name the chat flow is registered under. The flow shows
// up in the Genkit developer UI, which makes prompts and tool traces
// inspectable without going through the HTTP API.
const FlowName = "chat"

// FlowInput is the chat flow's input schema.
type FlowInput struct {
	Message   string `json:"message" jsonschema_description:"The user's message"`
	Character string `json:"character,omitempty" jsonschema_description:"Optional persona key, e.g. default or pirate"`
}

// DefineFlow registers the chat flow backed by agent. The flow shares the
// persistent conversation with the HTTP API: turns sent through either
// surface land in the same transcript.
func DefineFlow(g *genkit.Genkit, agent *Agent) {
	genkit.DefineFlow(g, FlowName,
		func(ctx context.Context, input FlowInput) (*Result, error) {
			return agent.Send(ctx, input.Message, input.Character)
		})
}
