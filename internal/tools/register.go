package tools

import (
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// toolNames is the single source of truth for registered tool names.
var toolNames = []string{
	"create_user",
	"get_user",
	"list_users",
	"count_users",
	"create_post",
	"list_posts",
	"list_user_posts",
}

// ToolNames returns all registered tool names.
func ToolNames() []string {
	return toolNames
}

// Register registers the blog CRUD tools with Genkit and returns their
// refs for use with ai.WithTools(). The handler holds the store; the
// closures only adapt parameters.
func Register(g *genkit.Genkit, h *Handler) ([]ai.ToolRef, error) {
	if h == nil {
		return nil, fmt.Errorf("handler is required")
	}

	refs := []ai.ToolRef{
		genkit.DefineTool(g, "create_user",
			"Create a new user with a name, a unique email address, and an optional bio. "+
				"Returns a confirmation including the generated user ID.",
			func(ctx *ai.ToolContext, input CreateUserInput) (string, error) {
				return h.CreateUser(ctx, input)
			},
		),
		genkit.DefineTool(g, "get_user",
			"Look up a single user by numeric ID, including the list of their posts. "+
				"Use this when asked about a specific user.",
			func(ctx *ai.ToolContext, input GetUserInput) (string, error) {
				return h.GetUser(ctx, input)
			},
		),
		genkit.DefineTool(g, "list_users",
			"List all users, newest first, with their IDs and email addresses.",
			func(ctx *ai.ToolContext, _ struct{}) (string, error) {
				return h.ListUsers(ctx)
			},
		),
		genkit.DefineTool(g, "count_users",
			"Count how many users exist in total.",
			func(ctx *ai.ToolContext, _ struct{}) (string, error) {
				return h.CountUsers(ctx)
			},
		),
		genkit.DefineTool(g, "create_post",
			"Create a new post for an existing user. Requires the author's user ID, "+
				"a title, and body content. Posts are unpublished unless published is true.",
			func(ctx *ai.ToolContext, input CreatePostInput) (string, error) {
				return h.CreatePost(ctx, input)
			},
		),
		genkit.DefineTool(g, "list_posts",
			"List recent posts with their authors, newest first. "+
				"Accepts an optional limit (default 50, maximum 100).",
			func(ctx *ai.ToolContext, input ListPostsInput) (string, error) {
				return h.ListPosts(ctx, input)
			},
		),
		genkit.DefineTool(g, "list_user_posts",
			"List all posts written by one user, identified by numeric user ID.",
			func(ctx *ai.ToolContext, input ListUserPostsInput) (string, error) {
				return h.ListUserPosts(ctx, input)
			},
		),
	}

	return refs, nil
}
