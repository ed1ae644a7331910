// Package app wires the application together: configuration, database
// pool, migrations, Genkit, stores, tools, and the chat agent.
package app

import (
	"context"
	"time"

	"github.com/firebase/genkit/go/genkit"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marmalade-labs/banter/internal/blog"
	"github.com/marmalade-labs/banter/internal/chat"
	"github.com/marmalade-labs/banter/internal/config"
	"github.com/marmalade-labs/banter/internal/log"
	"github.com/marmalade-labs/banter/internal/message"
)

// App is the application container. Setup populates it; Close releases
// everything in reverse order.
type App struct {
	Config *config.Config
	Logger log.Logger

	Genkit   *genkit.Genkit
	DBPool   *pgxpool.Pool
	Messages *message.Store
	Blog     *blog.Store
	Chat     *chat.Agent

	otelShutdown func(context.Context) error
}

// Ready reports whether the database is reachable. Used by the readiness
// probe.
func (a *App) Ready(ctx context.Context) error {
	return a.DBPool.Ping(ctx)
}

// Close gracefully releases all resources.
func (a *App) Close() error {
	a.Logger.Info("shutting down application")

	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.otelShutdown(ctx); err != nil {
			a.Logger.Warn("shutting down tracer provider", "error", err)
		}
	}

	if a.DBPool != nil {
		a.DBPool.Close()
		a.Logger.Info("database pool closed")
	}

	return nil
}
