package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/marmalade-labs/banter/internal/blog"
	"github.com/marmalade-labs/banter/internal/testutil"
)

// fakeEntityStore implements EntityStore with canned values.
type fakeEntityStore struct {
	createUserErr  error
	createUserOut  *blog.User
	getUserErr     error
	getUserOut     *blog.User
	listUsersOut   []*blog.User
	listUsersErr   error
	countUsersOut  int64
	createPostErr  error
	createPostOut  *blog.Post
	listPostsOut   []*blog.Post
	listPostsErr   error
	userPostsOut   []*blog.Post
	userPostsErr   error
	lastNewUser    blog.NewUser
	lastNewPost    blog.NewPost
	lastListLimit  int
	lastUserPostID int64
}

func (f *fakeEntityStore) CreateUser(_ context.Context, nu blog.NewUser) (*blog.User, error) {
	f.lastNewUser = nu
	return f.createUserOut, f.createUserErr
}

func (f *fakeEntityStore) GetUser(_ context.Context, _ int64) (*blog.User, error) {
	return f.getUserOut, f.getUserErr
}

func (f *fakeEntityStore) ListUsers(_ context.Context) ([]*blog.User, error) {
	return f.listUsersOut, f.listUsersErr
}

func (f *fakeEntityStore) CountUsers(_ context.Context) (int64, error) {
	return f.countUsersOut, nil
}

func (f *fakeEntityStore) CreatePost(_ context.Context, np blog.NewPost) (*blog.Post, error) {
	f.lastNewPost = np
	return f.createPostOut, f.createPostErr
}

func (f *fakeEntityStore) ListPosts(_ context.Context, limit int) ([]*blog.Post, error) {
	f.lastListLimit = limit
	return f.listPostsOut, f.listPostsErr
}

func (f *fakeEntityStore) ListPostsByUser(_ context.Context, userID int64) ([]*blog.Post, error) {
	f.lastUserPostID = userID
	return f.userPostsOut, f.userPostsErr
}

func newTestHandler(t *testing.T, store EntityStore) *Handler {
	t.Helper()
	h, err := NewHandler(store, testutil.DiscardLogger())
	if err != nil {
		t.Fatalf("NewHandler() = %v", err)
	}
	return h
}

func TestCreateUserTool(t *testing.T) {
	fake := &fakeEntityStore{
		createUserOut: &blog.User{ID: 7, Name: "Ada", Email: "ada@example.com"},
	}
	h := newTestHandler(t, fake)

	out, err := h.CreateUser(context.Background(), CreateUserInput{
		Name: "Ada", Email: "ada@example.com", Bio: "mathematician",
	})
	if err != nil {
		t.Fatalf("CreateUser() = %v", err)
	}
	if !strings.Contains(out, "ID: 7") {
		t.Errorf("output %q missing id", out)
	}
	if fake.lastNewUser.Bio == nil || *fake.lastNewUser.Bio != "mathematician" {
		t.Error("bio not forwarded to store")
	}

	// empty bio stays nil
	fake.lastNewUser = blog.NewUser{}
	if _, err := h.CreateUser(context.Background(), CreateUserInput{Name: "G", Email: "g@example.com"}); err != nil {
		t.Fatalf("CreateUser() = %v", err)
	}
	if fake.lastNewUser.Bio != nil {
		t.Error("empty bio should be nil in store call")
	}
}

func TestCreateUserToolValidationError(t *testing.T) {
	fake := &fakeEntityStore{createUserErr: blog.ErrValidation}
	h := newTestHandler(t, fake)

	_, err := h.CreateUser(context.Background(), CreateUserInput{Name: "", Email: "bad"})
	if !errors.Is(err, blog.ErrValidation) {
		t.Fatalf("CreateUser(invalid) = %v, want ErrValidation to propagate", err)
	}
}

func TestGetUserToolNotFound(t *testing.T) {
	fake := &fakeEntityStore{getUserErr: blog.ErrNotFound}
	h := newTestHandler(t, fake)

	out, err := h.GetUser(context.Background(), GetUserInput{ID: 42})
	if err != nil {
		t.Fatalf("GetUser(missing) = %v, want nil error", err)
	}
	if out != "No user found with ID 42." {
		t.Errorf("output = %q", out)
	}
}

func TestGetUserToolWithPosts(t *testing.T) {
	fake := &fakeEntityStore{
		getUserOut: &blog.User{
			ID: 1, Name: "Ada", Email: "ada@example.com",
			Posts: []*blog.Post{
				{ID: 10, Title: "First", Published: true},
			},
		},
	}
	h := newTestHandler(t, fake)

	out, err := h.GetUser(context.Background(), GetUserInput{ID: 1})
	if err != nil {
		t.Fatalf("GetUser() = %v", err)
	}
	if !strings.Contains(out, "1 post(s)") || !strings.Contains(out, "First") {
		t.Errorf("output = %q", out)
	}
}

func TestListUsersToolEmpty(t *testing.T) {
	h := newTestHandler(t, &fakeEntityStore{})

	out, err := h.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers() = %v", err)
	}
	if out != "No users found." {
		t.Errorf("output = %q", out)
	}
}

func TestCountUsersTool(t *testing.T) {
	h := newTestHandler(t, &fakeEntityStore{countUsersOut: 3})

	out, err := h.CountUsers(context.Background())
	if err != nil {
		t.Fatalf("CountUsers() = %v", err)
	}
	if out != "There are 3 user(s) in total." {
		t.Errorf("output = %q", out)
	}
}

func TestCreatePostToolMissingUser(t *testing.T) {
	fake := &fakeEntityStore{createPostErr: blog.ErrNotFound}
	h := newTestHandler(t, fake)

	out, err := h.CreatePost(context.Background(), CreatePostInput{UserID: 9, Title: "t", Content: "c"})
	if err != nil {
		t.Fatalf("CreatePost(missing user) = %v, want nil error", err)
	}
	if out != "Cannot create post: no user found with ID 9." {
		t.Errorf("output = %q", out)
	}
}

func TestListPostsTool(t *testing.T) {
	fake := &fakeEntityStore{
		listPostsOut: []*blog.Post{
			{ID: 1, Title: "First", Author: &blog.User{Name: "Ada"}, Published: true},
		},
	}
	h := newTestHandler(t, fake)

	out, err := h.ListPosts(context.Background(), ListPostsInput{Limit: 5})
	if err != nil {
		t.Fatalf("ListPosts() = %v", err)
	}
	if fake.lastListLimit != 5 {
		t.Errorf("limit = %d, want 5", fake.lastListLimit)
	}
	if !strings.Contains(out, "by Ada") {
		t.Errorf("output = %q", out)
	}
}

func TestListUserPostsToolEmpty(t *testing.T) {
	h := newTestHandler(t, &fakeEntityStore{})

	out, err := h.ListUserPosts(context.Background(), ListUserPostsInput{UserID: 4})
	if err != nil {
		t.Fatalf("ListUserPosts() = %v", err)
	}
	if out != "User 4 has no posts." {
		t.Errorf("output = %q", out)
	}
}
