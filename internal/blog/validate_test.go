package blog

import (
	"errors"
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestNewUserValidate(t *testing.T) {
	tests := []struct {
		name    string
		user    NewUser
		wantErr bool
	}{
		{
			name: "valid",
			user: NewUser{Name: "Ada Lovelace", Email: "ada@example.com"},
		},
		{
			name: "valid with bio",
			user: NewUser{Name: "Ada", Email: "ada@example.com", Bio: strPtr("mathematician")},
		},
		{
			name:    "empty name",
			user:    NewUser{Name: "", Email: "ada@example.com"},
			wantErr: true,
		},
		{
			name:    "name too long",
			user:    NewUser{Name: strings.Repeat("a", MaxNameLength+1), Email: "ada@example.com"},
			wantErr: true,
		},
		{
			name:    "malformed email",
			user:    NewUser{Name: "Ada", Email: "not-an-email"},
			wantErr: true,
		},
		{
			name:    "email missing domain dot",
			user:    NewUser{Name: "Ada", Email: "ada@example"},
			wantErr: true,
		},
		{
			name:    "email with spaces",
			user:    NewUser{Name: "Ada", Email: "ada lovelace@example.com"},
			wantErr: true,
		},
		{
			name:    "bio too long",
			user:    NewUser{Name: "Ada", Email: "ada@example.com", Bio: strPtr(strings.Repeat("b", MaxBioLength+1))},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.validate()
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("validate() = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("validate() = %v, want nil", err)
			}
		})
	}
}

func TestNewPostValidate(t *testing.T) {
	tests := []struct {
		name    string
		post    NewPost
		wantErr bool
	}{
		{
			name: "valid",
			post: NewPost{UserID: 1, Title: "First", Content: "body"},
		},
		{
			name:    "zero user id",
			post:    NewPost{UserID: 0, Title: "First", Content: "body"},
			wantErr: true,
		},
		{
			name:    "empty title",
			post:    NewPost{UserID: 1, Title: "", Content: "body"},
			wantErr: true,
		},
		{
			name:    "title too long",
			post:    NewPost{UserID: 1, Title: strings.Repeat("t", MaxTitleLength+1), Content: "body"},
			wantErr: true,
		},
		{
			name:    "empty content",
			post:    NewPost{UserID: 1, Title: "First", Content: ""},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.validate()
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("validate() = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("validate() = %v, want nil", err)
			}
		})
	}
}

func TestUpdateValidate(t *testing.T) {
	// nil fields are skipped entirely
	if err := (UserUpdate{}).validate(); err != nil {
		t.Errorf("UserUpdate{}.validate() = %v, want nil", err)
	}
	if err := (PostUpdate{}).validate(); err != nil {
		t.Errorf("PostUpdate{}.validate() = %v, want nil", err)
	}

	if err := (UserUpdate{Email: strPtr("bad")}).validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("UserUpdate bad email = %v, want ErrValidation", err)
	}
	if err := (PostUpdate{Title: strPtr("")}).validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("PostUpdate empty title = %v, want ErrValidation", err)
	}
}
