// Package tools exposes the blog CRUD operations as Genkit tools.
//
// Adapters are thin: each one calls a single store operation and formats
// the result as a human-readable sentence, because the consumer is a
// language model that must be told explicitly when nothing was found.
// Not-found and empty-result conditions never cross the tool boundary as
// errors; only invalid input does.
package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/marmalade-labs/banter/internal/blog"
)

// EntityStore is the store surface the adapters need.
// Interface defined by the consumer; *blog.Store satisfies it.
type EntityStore interface {
	CreateUser(ctx context.Context, nu blog.NewUser) (*blog.User, error)
	GetUser(ctx context.Context, id int64) (*blog.User, error)
	ListUsers(ctx context.Context) ([]*blog.User, error)
	CountUsers(ctx context.Context) (int64, error)
	CreatePost(ctx context.Context, np blog.NewPost) (*blog.Post, error)
	ListPosts(ctx context.Context, limit int) ([]*blog.Post, error)
	ListPostsByUser(ctx context.Context, userID int64) ([]*blog.Post, error)
}

// Handler implements the tool business logic against an EntityStore.
// Genkit closures in register.go are thin parameter adapters around it.
type Handler struct {
	store  EntityStore
	logger *slog.Logger
}

// NewHandler creates a tool handler.
func NewHandler(store EntityStore, logger *slog.Logger) (*Handler, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{store: store, logger: logger}, nil
}

// CreateUser creates a user and reports the generated id.
func (h *Handler) CreateUser(ctx context.Context, input CreateUserInput) (string, error) {
	nu := blog.NewUser{Name: input.Name, Email: input.Email}
	if input.Bio != "" {
		nu.Bio = &input.Bio
	}

	u, err := h.store.CreateUser(ctx, nu)
	if err != nil {
		return "", err
	}

	h.logger.Debug("tool created user", "id", u.ID)
	return fmt.Sprintf("Successfully created user: %s (ID: %d, email: %s)", u.Name, u.ID, u.Email), nil
}

// GetUser looks up one user with their posts.
func (h *Handler) GetUser(ctx context.Context, input GetUserInput) (string, error) {
	u, err := h.store.GetUser(ctx, input.ID)
	if err != nil {
		if errors.Is(err, blog.ErrNotFound) {
			return fmt.Sprintf("No user found with ID %d.", input.ID), nil
		}
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "User %d: %s <%s>", u.ID, u.Name, u.Email)
	if u.Bio != nil {
		fmt.Fprintf(&b, " (bio: %s)", *u.Bio)
	}
	if len(u.Posts) == 0 {
		b.WriteString(". They have no posts yet.")
	} else {
		fmt.Fprintf(&b, ". They have %d post(s):", len(u.Posts))
		for _, p := range u.Posts {
			fmt.Fprintf(&b, "\n- [%d] %s (published: %t)", p.ID, p.Title, p.Published)
		}
	}
	return b.String(), nil
}

// ListUsers lists every user, newest first.
func (h *Handler) ListUsers(ctx context.Context) (string, error) {
	users, err := h.store.ListUsers(ctx)
	if err != nil {
		return "", err
	}
	if len(users) == 0 {
		return "No users found.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d user(s):", len(users))
	for _, u := range users {
		fmt.Fprintf(&b, "\n- [%d] %s <%s>", u.ID, u.Name, u.Email)
	}
	return b.String(), nil
}

// CountUsers reports the total number of users.
func (h *Handler) CountUsers(ctx context.Context) (string, error) {
	n, err := h.store.CountUsers(ctx)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "There are no users yet.", nil
	}
	return fmt.Sprintf("There are %d user(s) in total.", n), nil
}

// CreatePost creates a post for an existing user.
func (h *Handler) CreatePost(ctx context.Context, input CreatePostInput) (string, error) {
	p, err := h.store.CreatePost(ctx, blog.NewPost{
		UserID:    input.UserID,
		Title:     input.Title,
		Content:   input.Content,
		Published: input.Published,
	})
	if err != nil {
		if errors.Is(err, blog.ErrNotFound) {
			return fmt.Sprintf("Cannot create post: no user found with ID %d.", input.UserID), nil
		}
		return "", err
	}

	h.logger.Debug("tool created post", "id", p.ID, "user_id", p.UserID)
	return fmt.Sprintf("Successfully created post: %q (ID: %d) for user %d", p.Title, p.ID, p.UserID), nil
}

// ListPosts lists recent posts with their authors.
func (h *Handler) ListPosts(ctx context.Context, input ListPostsInput) (string, error) {
	posts, err := h.store.ListPosts(ctx, input.Limit)
	if err != nil {
		return "", err
	}
	if len(posts) == 0 {
		return "No posts found.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d post(s):", len(posts))
	for _, p := range posts {
		fmt.Fprintf(&b, "\n- [%d] %s by %s (published: %t)", p.ID, p.Title, p.Author.Name, p.Published)
	}
	return b.String(), nil
}

// ListUserPosts lists all posts by one user.
func (h *Handler) ListUserPosts(ctx context.Context, input ListUserPostsInput) (string, error) {
	posts, err := h.store.ListPostsByUser(ctx, input.UserID)
	if err != nil {
		return "", err
	}
	if len(posts) == 0 {
		return fmt.Sprintf("User %d has no posts.", input.UserID), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "User %d has %d post(s):", input.UserID, len(posts))
	for _, p := range posts {
		fmt.Fprintf(&b, "\n- [%d] %s (published: %t)", p.ID, p.Title, p.Published)
	}
	return b.String(), nil
}
