package config

import (
	"errors"
	"testing"
)

// validConfig returns a config that passes Validate with the gemini key set.
func validConfig() *Config {
	return &Config{
		Provider:        ProviderGemini,
		ModelName:       "gemini-2.5-flash",
		Mode:            ModePlain,
		HistoryWindow:   DefaultHistoryWindow,
		MaxTurns:        8,
		HTTPAddr:        "127.0.0.1:8080",
		PostgresHost:    "localhost",
		PostgresPort:    5432,
		PostgresUser:    "banter",
		PostgresDBName:  "banter",
		PostgresSSLMode: "disable",
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate(valid) = %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Provider = "anthropic" },
			wantErr: ErrInvalidProvider,
		},
		{
			name:    "empty model name",
			mutate:  func(c *Config) { c.ModelName = "" },
			wantErr: ErrInvalidModelName,
		},
		{
			name:    "unknown mode",
			mutate:  func(c *Config) { c.Mode = "turbo" },
			wantErr: ErrInvalidMode,
		},
		{
			name:    "zero history window",
			mutate:  func(c *Config) { c.HistoryWindow = 0 },
			wantErr: ErrInvalidHistoryWindow,
		},
		{
			name:    "history window over max",
			mutate:  func(c *Config) { c.HistoryWindow = MaxHistoryWindow + 1 },
			wantErr: ErrInvalidHistoryWindow,
		},
		{
			name:    "zero max turns",
			mutate:  func(c *Config) { c.MaxTurns = 0 },
			wantErr: ErrInvalidMaxTurns,
		},
		{
			name:    "empty postgres host",
			mutate:  func(c *Config) { c.PostgresHost = "" },
			wantErr: ErrInvalidPostgresHost,
		},
		{
			name:    "bad postgres port",
			mutate:  func(c *Config) { c.PostgresPort = 70000 },
			wantErr: ErrInvalidPostgresPort,
		},
		{
			name:    "empty database name",
			mutate:  func(c *Config) { c.PostgresDBName = "" },
			wantErr: ErrInvalidPostgresDBName,
		},
		{
			name:    "bad ssl mode",
			mutate:  func(c *Config) { c.PostgresSSLMode = "maybe" },
			wantErr: ErrInvalidPostgresSSLMode,
		},
		{
			name: "ollama without host",
			mutate: func(c *Config) {
				c.Provider = ProviderOllama
				c.OllamaHost = ""
			},
			wantErr: ErrInvalidOllamaHost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateMissingAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg := validConfig()
	if err := cfg.Validate(); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Validate(no key) = %v, want ErrMissingAPIKey", err)
	}
}

func TestValidateOpenAIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg := validConfig()
	cfg.Provider = ProviderOpenAI
	if err := cfg.Validate(); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Validate(openai, no key) = %v, want ErrMissingAPIKey", err)
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate(openai) = %v", err)
	}
}

func TestValidateNil(t *testing.T) {
	var cfg *Config
	if err := cfg.Validate(); !errors.Is(err, ErrConfigNil) {
		t.Errorf("Validate(nil) = %v, want ErrConfigNil", err)
	}
}

func TestAgentMode(t *testing.T) {
	cfg := validConfig()
	if cfg.AgentMode() {
		t.Error("AgentMode() = true for plain mode")
	}
	cfg.Mode = ModeAgent
	if !cfg.AgentMode() {
		t.Error("AgentMode() = false for agent mode")
	}
}

func TestFullModelName(t *testing.T) {
	tests := []struct {
		provider string
		model    string
		want     string
	}{
		{ProviderGemini, "gemini-2.5-flash", "googleai/gemini-2.5-flash"},
		{ProviderOllama, "llama3.3", "ollama/llama3.3"},
		{ProviderOpenAI, "gpt-4o", "openai/gpt-4o"},
		{ProviderGemini, "mock/test-model", "mock/test-model"}, // already qualified
	}

	for _, tt := range tests {
		cfg := &Config{Provider: tt.provider, ModelName: tt.model}
		if got := cfg.FullModelName(); got != tt.want {
			t.Errorf("FullModelName(%s, %s) = %q, want %q", tt.provider, tt.model, got, tt.want)
		}
	}
}
