package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai/openai"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/ollama"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marmalade-labs/banter/db"
	"github.com/marmalade-labs/banter/internal/blog"
	"github.com/marmalade-labs/banter/internal/chat"
	"github.com/marmalade-labs/banter/internal/config"
	"github.com/marmalade-labs/banter/internal/log"
	"github.com/marmalade-labs/banter/internal/message"
	"github.com/marmalade-labs/banter/internal/observability"
	"github.com/marmalade-labs/banter/internal/tools"
)

// serviceName tags exported traces.
const serviceName = "banter"

// Setup creates and initializes the application. On error everything
// already initialized is cleaned up before returning.
func Setup(ctx context.Context, cfg *config.Config, logger log.Logger) (_ *App, retErr error) {
	if cfg == nil {
		return nil, config.ErrConfigNil
	}
	if logger == nil {
		logger = log.NewNop()
	}

	a := &App{Config: cfg, Logger: logger}
	defer func() {
		if retErr != nil {
			if err := a.Close(); err != nil {
				logger.Warn("cleanup during setup failure", "error", err)
			}
		}
	}()

	// Tracing first so Genkit's tracer provider has its exporter before
	// any spans are created.
	otelShutdown, err := observability.Setup(ctx, observability.Config{
		Endpoint:    cfg.OTLPEndpoint,
		ServiceName: serviceName,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("setting up tracing: %w", err)
	}
	a.otelShutdown = otelShutdown

	pool, err := provideDBPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.DBPool = pool

	g, err := provideGenkit(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.Genkit = g

	a.Messages, err = message.NewStore(pool, logger)
	if err != nil {
		return nil, fmt.Errorf("creating message store: %w", err)
	}
	a.Blog, err = blog.NewStore(pool, logger)
	if err != nil {
		return nil, fmt.Errorf("creating blog store: %w", err)
	}

	var toolRefs []ai.ToolRef
	if cfg.AgentMode() {
		handler, err := tools.NewHandler(a.Blog, logger)
		if err != nil {
			return nil, fmt.Errorf("creating tool handler: %w", err)
		}
		toolRefs, err = tools.Register(g, handler)
		if err != nil {
			return nil, fmt.Errorf("registering tools: %w", err)
		}
		logger.Info("blog tools registered", "count", len(toolRefs))
	}

	a.Chat, err = chat.New(chat.Config{
		Genkit:        g,
		Messages:      a.Messages,
		Logger:        logger,
		ModelName:     cfg.FullModelName(),
		AgentMode:     cfg.AgentMode(),
		Tools:         toolRefs,
		MaxTurns:      cfg.MaxTurns,
		HistoryWindow: cfg.HistoryWindow,
	})
	if err != nil {
		return nil, fmt.Errorf("creating chat agent: %w", err)
	}

	chat.DefineFlow(g, a.Chat)

	return a, nil
}

// provideDBPool runs migrations, then creates and pings a connection pool.
func provideDBPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	if err := db.Migrate(cfg.PostgresURL()); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.PostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parsing connection config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}

// provideGenkit initializes Genkit with the configured AI provider.
// Supports gemini (default), ollama, and openai.
func provideGenkit(ctx context.Context, cfg *config.Config, logger log.Logger) (*genkit.Genkit, error) {
	switch cfg.Provider {
	case config.ProviderOllama:
		ollamaPlugin := &ollama.Ollama{ServerAddress: cfg.OllamaHost}
		g := genkit.Init(ctx, genkit.WithPlugins(ollamaPlugin))
		if g == nil {
			return nil, errors.New("initializing genkit with ollama provider")
		}
		// Ollama has no model auto-discovery; register explicitly.
		ollamaPlugin.DefineModel(g, ollama.ModelDefinition{
			Name: cfg.ModelName,
			Type: "chat",
		}, nil)
		logger.Info("initialized Genkit with ollama provider",
			"model", cfg.ModelName, "host", cfg.OllamaHost)
		return g, nil

	case config.ProviderOpenAI:
		g := genkit.Init(ctx, genkit.WithPlugins(&openai.OpenAI{}))
		if g == nil {
			return nil, errors.New("initializing genkit with openai provider")
		}
		logger.Info("initialized Genkit with openai provider", "model", cfg.ModelName)
		return g, nil

	default: // gemini
		g := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))
		if g == nil {
			return nil, errors.New("initializing genkit with gemini provider")
		}
		logger.Info("initialized Genkit with gemini provider", "model", cfg.ModelName)
		return g, nil
	}
}
