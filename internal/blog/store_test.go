package blog

import (
	"context"
	"errors"
	"testing"

	"github.com/marmalade-labs/banter/internal/testutil"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB, cleanup := testutil.SetupTestDB(t)
	t.Cleanup(cleanup)

	store, err := NewStore(testDB.Pool, testutil.DiscardLogger())
	if err != nil {
		t.Fatalf("NewStore() = %v", err)
	}
	return store
}

func mustCreateUser(t *testing.T, store *Store, name, email string) *User {
	t.Helper()
	user, err := store.CreateUser(context.Background(), NewUser{Name: name, Email: email})
	if err != nil {
		t.Fatalf("CreateUser(%q) = %v", email, err)
	}
	return user
}

func TestCreateUser(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	bio := "mathematician"
	user, err := store.CreateUser(ctx, NewUser{Name: "Ada", Email: "ada@example.com", Bio: &bio})
	if err != nil {
		t.Fatalf("CreateUser() = %v", err)
	}
	if user.ID <= 0 {
		t.Errorf("ID = %d, want positive", user.ID)
	}
	if user.Bio == nil || *user.Bio != bio {
		t.Errorf("Bio = %v, want %q", user.Bio, bio)
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("timestamps not populated")
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	mustCreateUser(t, store, "Ada", "ada@example.com")

	_, err := store.CreateUser(ctx, NewUser{Name: "Another Ada", Email: "ada@example.com"})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("CreateUser(duplicate) = %v, want ErrDuplicateEmail", err)
	}
}

func TestGetUserWithPosts(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	user := mustCreateUser(t, store, "Ada", "ada@example.com")

	if _, err := store.CreatePost(ctx, NewPost{UserID: user.ID, Title: "First", Content: "one"}); err != nil {
		t.Fatalf("CreatePost() = %v", err)
	}
	if _, err := store.CreatePost(ctx, NewPost{UserID: user.ID, Title: "Second", Content: "two", Published: true}); err != nil {
		t.Fatalf("CreatePost() = %v", err)
	}

	got, err := store.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUser() = %v", err)
	}
	if got.Email != "ada@example.com" {
		t.Errorf("Email = %q", got.Email)
	}
	if len(got.Posts) != 2 {
		t.Fatalf("Posts = %d, want 2", len(got.Posts))
	}

	// users without posts get an empty slice, not nil
	other := mustCreateUser(t, store, "Grace", "grace@example.com")
	got, err = store.GetUser(ctx, other.ID)
	if err != nil {
		t.Fatalf("GetUser() = %v", err)
	}
	if got.Posts == nil {
		t.Error("Posts is nil, want empty slice")
	}
}

func TestGetUserNotFound(t *testing.T) {
	store := setupStore(t)

	_, err := store.GetUser(context.Background(), 99999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetUser(missing) = %v, want ErrNotFound", err)
	}
}

func TestUpdateUserPartial(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	user := mustCreateUser(t, store, "Ada", "ada@example.com")

	newName := "Ada Lovelace"
	updated, err := store.UpdateUser(ctx, user.ID, UserUpdate{Name: &newName})
	if err != nil {
		t.Fatalf("UpdateUser() = %v", err)
	}
	if updated.Name != newName {
		t.Errorf("Name = %q, want %q", updated.Name, newName)
	}
	// untouched fields keep their values
	if updated.Email != user.Email {
		t.Errorf("Email changed to %q", updated.Email)
	}
	if updated.UpdatedAt.Before(user.UpdatedAt) {
		t.Error("UpdatedAt not advanced")
	}

	_, err = store.UpdateUser(ctx, 99999, UserUpdate{Name: &newName})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateUser(missing) = %v, want ErrNotFound", err)
	}
}

func TestListAndCountUsers(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	mustCreateUser(t, store, "Ada", "ada@example.com")
	mustCreateUser(t, store, "Grace", "grace@example.com")

	users, err := store.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers() = %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("ListUsers() = %d users, want 2", len(users))
	}

	count, err := store.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers() = %v", err)
	}
	if count != 2 {
		t.Errorf("CountUsers() = %d, want 2", count)
	}
}

func TestCreatePostForMissingUser(t *testing.T) {
	store := setupStore(t)

	_, err := store.CreatePost(context.Background(), NewPost{UserID: 99999, Title: "t", Content: "c"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("CreatePost(missing user) = %v, want ErrNotFound", err)
	}
}

func TestGetPostWithAuthor(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	user := mustCreateUser(t, store, "Ada", "ada@example.com")
	post, err := store.CreatePost(ctx, NewPost{UserID: user.ID, Title: "First", Content: "body"})
	if err != nil {
		t.Fatalf("CreatePost() = %v", err)
	}

	got, err := store.GetPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetPost() = %v", err)
	}
	if got.Author == nil {
		t.Fatal("Author is nil")
	}
	if got.Author.Email != user.Email {
		t.Errorf("Author.Email = %q, want %q", got.Author.Email, user.Email)
	}

	_, err = store.GetPost(ctx, 99999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPost(missing) = %v, want ErrNotFound", err)
	}
}

func TestUpdatePost(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	user := mustCreateUser(t, store, "Ada", "ada@example.com")
	post, err := store.CreatePost(ctx, NewPost{UserID: user.ID, Title: "Draft", Content: "wip"})
	if err != nil {
		t.Fatalf("CreatePost() = %v", err)
	}
	if post.Published {
		t.Error("new post published by default")
	}

	published := true
	updated, err := store.UpdatePost(ctx, post.ID, PostUpdate{Published: &published})
	if err != nil {
		t.Fatalf("UpdatePost() = %v", err)
	}
	if !updated.Published {
		t.Error("post not published after update")
	}
	if updated.Title != "Draft" {
		t.Errorf("Title changed to %q", updated.Title)
	}
}

func TestListPosts(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	user := mustCreateUser(t, store, "Ada", "ada@example.com")
	for _, title := range []string{"one", "two", "three"} {
		if _, err := store.CreatePost(ctx, NewPost{UserID: user.ID, Title: title, Content: "body"}); err != nil {
			t.Fatalf("CreatePost(%q) = %v", title, err)
		}
	}

	posts, err := store.ListPosts(ctx, 0)
	if err != nil {
		t.Fatalf("ListPosts(0) = %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("ListPosts() = %d posts, want 3", len(posts))
	}
	for _, p := range posts {
		if p.Author == nil {
			t.Fatalf("post %d has nil author", p.ID)
		}
	}

	limited, err := store.ListPosts(ctx, 2)
	if err != nil {
		t.Fatalf("ListPosts(2) = %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("ListPosts(2) = %d posts, want 2", len(limited))
	}

	if _, err := store.ListPosts(ctx, MaxPostLimit+1); !errors.Is(err, ErrValidation) {
		t.Errorf("ListPosts(over max) = %v, want ErrValidation", err)
	}
}

func TestListPostsByUser(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	ada := mustCreateUser(t, store, "Ada", "ada@example.com")
	grace := mustCreateUser(t, store, "Grace", "grace@example.com")

	if _, err := store.CreatePost(ctx, NewPost{UserID: ada.ID, Title: "ada's", Content: "x"}); err != nil {
		t.Fatalf("CreatePost() = %v", err)
	}

	posts, err := store.ListPostsByUser(ctx, ada.ID)
	if err != nil {
		t.Fatalf("ListPostsByUser() = %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("ListPostsByUser(ada) = %d posts, want 1", len(posts))
	}

	posts, err = store.ListPostsByUser(ctx, grace.ID)
	if err != nil {
		t.Fatalf("ListPostsByUser(grace) = %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("ListPostsByUser(grace) = %d posts, want 0", len(posts))
	}
}
