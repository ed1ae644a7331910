// Package api exposes the chat service over HTTP.
//
// Endpoints:
//
//	POST   /api/v1/chat             - send a message, get the model's reply
//	GET    /api/v1/messages         - full transcript, oldest first
//	DELETE /api/v1/messages         - clear the transcript
//	POST   /api/v1/users            - create user
//	GET    /api/v1/users            - list users
//	GET    /api/v1/users/count      - count users
//	GET    /api/v1/users/{id}       - get user with posts
//	PATCH  /api/v1/users/{id}       - partial update
//	GET    /api/v1/users/{id}/posts - posts by one user
//	POST   /api/v1/posts            - create post
//	GET    /api/v1/posts            - list posts with authors
//	GET    /api/v1/posts/{id}       - get post with author
//	PATCH  /api/v1/posts/{id}       - partial update
//	GET    /health                  - liveness probe
//	GET    /ready                   - readiness probe (checks the database)
//
// File structure mirrors the endpoints: server.go holds setup and
// lifecycle, middleware.go the middleware chain, response.go the JSON and
// error-mapping helpers, and one file per handler group.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/marmalade-labs/banter/internal/blog"
	"github.com/marmalade-labs/banter/internal/chat"
	"github.com/marmalade-labs/banter/internal/log"
	"github.com/marmalade-labs/banter/internal/message"
)

const (
	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout caps header reads to keep slow clients from
	// pinning connections.
	ReadHeaderTimeout = 10 * time.Second

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout = 30 * time.Second

	// WriteTimeout is generous because chat requests block on the model.
	WriteTimeout = 120 * time.Second

	// IdleTimeout is the keep-alive idle limit.
	IdleTimeout = 120 * time.Second
)

// ChatService runs one chat exchange. *chat.Agent satisfies it.
type ChatService interface {
	Send(ctx context.Context, input, character string) (*chat.Result, error)
}

// MessageStore is the transcript surface the API needs.
type MessageStore interface {
	All(ctx context.Context) ([]*message.Message, error)
	Clear(ctx context.Context) (int64, error)
}

// BlogStore is the blog CRUD surface the API needs. *blog.Store satisfies it.
type BlogStore interface {
	CreateUser(ctx context.Context, nu blog.NewUser) (*blog.User, error)
	UpdateUser(ctx context.Context, id int64, upd blog.UserUpdate) (*blog.User, error)
	GetUser(ctx context.Context, id int64) (*blog.User, error)
	ListUsers(ctx context.Context) ([]*blog.User, error)
	CountUsers(ctx context.Context) (int64, error)
	CreatePost(ctx context.Context, np blog.NewPost) (*blog.Post, error)
	UpdatePost(ctx context.Context, id int64, upd blog.PostUpdate) (*blog.Post, error)
	GetPost(ctx context.Context, id int64) (*blog.Post, error)
	ListPosts(ctx context.Context, limit int) ([]*blog.Post, error)
	ListPostsByUser(ctx context.Context, userID int64) ([]*blog.Post, error)
}

// ReadyFunc reports whether downstream dependencies are reachable.
type ReadyFunc func(ctx context.Context) error

// ServerConfig carries the server's dependencies.
type ServerConfig struct {
	Logger      log.Logger
	Chat        ChatService
	Messages    MessageStore
	Blog        BlogStore
	Ready       ReadyFunc // nil means always ready
	CORSOrigins []string  // allowed Origin values, empty disables CORS headers
}

func (cfg ServerConfig) validate() error {
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	if cfg.Chat == nil {
		return errors.New("chat service is required")
	}
	if cfg.Messages == nil {
		return errors.New("message store is required")
	}
	if cfg.Blog == nil {
		return errors.New("blog store is required")
	}
	return nil
}

// Server is the HTTP server for the chat REST API.
type Server struct {
	mux    *http.ServeMux
	logger log.Logger
	cors   []string
}

// NewServer builds a server with all routes registered.
func NewServer(cfg ServerConfig) (*Server, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	s := &Server{
		mux:    mux,
		logger: cfg.Logger,
		cors:   cfg.CORSOrigins,
	}

	newHealthHandler(cfg.Ready, cfg.Logger).registerRoutes(mux)
	newChatHandler(cfg.Chat, cfg.Messages, cfg.Logger).registerRoutes(mux)
	newUserHandler(cfg.Blog, cfg.Logger).registerRoutes(mux)
	newPostHandler(cfg.Blog, cfg.Logger).registerRoutes(mux)

	return s, nil
}

// Handler returns the mux with middleware applied.
// Order outermost-first: recovery, request ID, logging, CORS.
func (s *Server) Handler() http.Handler {
	return chain(s.mux,
		recoveryMiddleware(s.logger),
		requestIDMiddleware,
		loggingMiddleware(s.logger),
		corsMiddleware(s.cors),
	)
}

// Run starts the HTTP server and blocks until the context is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
