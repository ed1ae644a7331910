// Package blog provides the User/Post CRUD domain the agent tools operate
// on. It is deliberately small: the entities exist to give the model
// something concrete to manipulate.
package blog

import "time"

// User is an author. Email is unique across the table.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Bio       *string   `json:"bio,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Posts is populated by GetUser; empty slice when the user has none.
	Posts []*Post `json:"posts,omitempty"`
}

// Post belongs to exactly one User. Deleting the user cascades.
type Post struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Author is populated by GetPost and ListPosts.
	Author *User `json:"author,omitempty"`
}

// NewUser carries the fields for CreateUser.
type NewUser struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Bio   *string `json:"bio,omitempty"`
}

// UserUpdate carries a partial update; nil fields are left unchanged.
type UserUpdate struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Bio   *string `json:"bio,omitempty"`
}

// NewPost carries the fields for CreatePost.
type NewPost struct {
	UserID    int64  `json:"userId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

// PostUpdate carries a partial update; nil fields are left unchanged.
type PostUpdate struct {
	Title     *string `json:"title,omitempty"`
	Content   *string `json:"content,omitempty"`
	Published *bool   `json:"published,omitempty"`
}
