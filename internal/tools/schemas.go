package tools

// CreateUserInput defines input for the create_user tool.
type CreateUserInput struct {
	Name  string `json:"name" jsonschema_description:"The user's display name (1-255 characters)"`
	Email string `json:"email" jsonschema_description:"The user's email address; must be unique"`
	Bio   string `json:"bio,omitempty" jsonschema_description:"Optional short biography (up to 1000 characters)"`
}

// GetUserInput defines input for the get_user tool.
type GetUserInput struct {
	ID int64 `json:"id" jsonschema_description:"The numeric ID of the user to look up"`
}

// CreatePostInput defines input for the create_post tool.
type CreatePostInput struct {
	UserID    int64  `json:"userId" jsonschema_description:"The numeric ID of the author"`
	Title     string `json:"title" jsonschema_description:"The post title (1-500 characters)"`
	Content   string `json:"content" jsonschema_description:"The post body text"`
	Published bool   `json:"published,omitempty" jsonschema_description:"Whether the post is published immediately (default false)"`
}

// ListPostsInput defines input for the list_posts tool.
type ListPostsInput struct {
	Limit int `json:"limit,omitempty" jsonschema_description:"Maximum posts to return (1-100, default 50)"`
}

// ListUserPostsInput defines input for the list_user_posts tool.
type ListUserPostsInput struct {
	UserID int64 `json:"userId" jsonschema_description:"The numeric ID of the user whose posts to list"`
}
