// Package chat orchestrates a single-session conversation: it persists the
// user's turn, replays recent history to the model, and persists whatever
// the model answers. In agent mode the model may additionally call the
// registered blog tools before answering.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/marmalade-labs/banter/internal/log"
	"github.com/marmalade-labs/banter/internal/message"
)

// Defaults applied when Config leaves the corresponding field zero.
const (
	defaultMaxTurns      = 5
	defaultHistoryWindow = 10
)

// MessageStore is the slice of the message store the orchestrator needs.
// *message.Store satisfies it; tests substitute fakes.
type MessageStore interface {
	Append(ctx context.Context, role message.Role, content string) (*message.Message, error)
	Recent(ctx context.Context, limit int) ([]*message.Message, error)
}

// ToolCall records one tool invocation the model made while producing its
// answer. Output is not captured: the trace reports which tools ran and
// with what arguments, not what they returned.
type ToolCall struct {
	ToolName  string    `json:"toolName"`
	Input     any       `json:"input"`
	Output    string    `json:"output"`
	Timestamp time.Time `json:"timestamp"`
	Success   bool      `json:"success"`
}

// Result is the outcome of one chat exchange. Both messages are the
// persisted rows, ids and timestamps included. ToolCalls is nil in plain
// mode and when the model answered without tools.
type Result struct {
	UserMessage      *message.Message `json:"userMessage"`
	AssistantMessage *message.Message `json:"assistantMessage"`
	ToolCalls        []ToolCall       `json:"toolCalls,omitempty"`
}

// Config carries the orchestrator's dependencies and settings.
type Config struct {
	Genkit   *genkit.Genkit
	Messages MessageStore
	Logger   log.Logger

	ModelName string // full model name, e.g. "googleai/gemini-2.5-flash"
	AgentMode bool   // expose blog tools to the model
	Tools     []ai.ToolRef

	MaxTurns      int // agentic loop cap, defaults to 5
	HistoryWindow int // messages replayed to the model, defaults to 10
}

func (cfg Config) validate() error {
	if cfg.Genkit == nil {
		return errors.New("genkit instance is required")
	}
	if cfg.Messages == nil {
		return errors.New("message store is required")
	}
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	if cfg.ModelName == "" {
		return errors.New("model name is required")
	}
	if cfg.AgentMode && len(cfg.Tools) == 0 {
		return errors.New("agent mode requires at least one tool")
	}
	return nil
}

// Agent runs the conversation. It is stateless between calls: all
// conversational state lives in the message store. All configuration is
// captured immutably at construction, so one Agent is safe for concurrent
// use.
type Agent struct {
	g         *genkit.Genkit
	messages  MessageStore
	logger    log.Logger
	modelName string
	agentMode bool
	toolRefs  []ai.ToolRef
	toolNames string // cached comma-separated list for logging

	maxTurns      int
	historyWindow int
}

// New builds an Agent from cfg, applying defaults for zero MaxTurns and
// HistoryWindow.
func New(cfg Config) (*Agent, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	maxTurns := cfg.MaxTurns
	if maxTurns <= 0 {
		maxTurns = defaultMaxTurns
	}
	window := cfg.HistoryWindow
	if window <= 0 {
		window = defaultHistoryWindow
	}

	names := make([]string, len(cfg.Tools))
	for i, t := range cfg.Tools {
		names[i] = t.Name()
	}

	a := &Agent{
		g:             cfg.Genkit,
		messages:      cfg.Messages,
		logger:        cfg.Logger,
		modelName:     cfg.ModelName,
		agentMode:     cfg.AgentMode,
		toolRefs:      cfg.Tools,
		toolNames:     strings.Join(names, ", "),
		maxTurns:      maxTurns,
		historyWindow: window,
	}

	a.logger.Info("chat agent initialized",
		"model", a.modelName,
		"agent_mode", a.agentMode,
		"tool_count", len(a.toolRefs),
		"history_window", a.historyWindow,
	)
	return a, nil
}

// Send runs one exchange: validate input, persist the user turn, replay
// recent history to the model, persist the reply.
//
// The user turn is durable before the model is called. If generation fails
// the user message stays in the store with no matching assistant turn, and
// the error wraps ErrGeneration.
//
// An empty model reply is persisted as an empty assistant message rather
// than substituted with a canned apology; the transcript records what the
// model actually said.
func (a *Agent) Send(ctx context.Context, input, character string) (*Result, error) {
	if !ValidCharacter(character) {
		return nil, fmt.Errorf("%w: %q (valid: %s)",
			ErrUnknownCharacter, character, strings.Join(Characters(), ", "))
	}
	if err := message.ValidateTurn(message.RoleUser, input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}

	userMsg, err := a.messages.Append(ctx, message.RoleUser, input)
	if err != nil {
		return nil, fmt.Errorf("storing user message: %w", err)
	}

	// Recent returns most-recent-first and already includes the turn we
	// just appended; the model wants chronological order.
	recent, err := a.messages.Recent(ctx, a.historyWindow)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	history := toModelMessages(recent)

	a.logger.Debug("generating response",
		"character", character,
		"history_size", len(history),
		"agent_mode", a.agentMode,
		"tools", a.toolNames,
	)

	opts := []ai.GenerateOption{
		ai.WithModelName(a.modelName),
		ai.WithSystem(systemPromptFor(character, a.agentMode)),
		ai.WithMessages(history...),
	}
	if a.agentMode {
		opts = append(opts,
			ai.WithTools(a.toolRefs...),
			ai.WithMaxTurns(a.maxTurns),
		)
	}

	resp, err := genkit.Generate(ctx, a.g, opts...)
	if err != nil {
		a.logger.Error("model generation failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	assistantMsg, err := a.messages.Append(ctx, message.RoleAssistant, resp.Text())
	if err != nil {
		return nil, fmt.Errorf("storing assistant message: %w", err)
	}

	return &Result{
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
		ToolCalls:        toolCallsFrom(resp),
	}, nil
}

// toModelMessages converts stored rows, most-recent-first, into
// chronological ai.Messages.
func toModelMessages(recent []*message.Message) []*ai.Message {
	out := make([]*ai.Message, len(recent))
	for i, m := range recent {
		var msg *ai.Message
		if m.Role == message.RoleAssistant {
			msg = ai.NewModelMessage(ai.NewTextPart(m.Content))
		} else {
			msg = ai.NewUserMessage(ai.NewTextPart(m.Content))
		}
		out[len(recent)-1-i] = msg
	}
	return out
}

// toolCallsFrom extracts the tool invocation trace from a model response.
// The tool loop folds earlier turns into the final request, so requests
// are collected from the request history as well as the final message.
func toolCallsFrom(resp *ai.ModelResponse) []ToolCall {
	var reqs []*ai.ToolRequest
	if resp.Request != nil {
		for _, msg := range resp.Request.Messages {
			if msg.Role != ai.RoleModel {
				continue
			}
			for _, p := range msg.Content {
				if p.ToolRequest != nil {
					reqs = append(reqs, p.ToolRequest)
				}
			}
		}
	}
	reqs = append(reqs, resp.ToolRequests()...)
	if len(reqs) == 0 {
		return nil
	}

	calls := make([]ToolCall, len(reqs))
	for i, tr := range reqs {
		calls[i] = ToolCall{
			ToolName:  tr.Name,
			Input:     tr.Input,
			Output:    "",
			Timestamp: time.Now().UTC(),
			Success:   true,
		}
	}
	return calls
}
