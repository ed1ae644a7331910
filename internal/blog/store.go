package blog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// userCols is the standard SELECT column list for scanning users.
const userCols = `id, name, email, bio, created_at, updated_at`

// postCols is the standard SELECT column list for scanning posts.
const postCols = `id, user_id, title, content, published, created_at, updated_at`

// Store manages Users and Posts in PostgreSQL.
//
// Store is safe for concurrent use by multiple goroutines.
type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewStore creates a blog Store.
func NewStore(pool *pgxpool.Pool, logger *slog.Logger) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{pool: pool, logger: logger}, nil
}

// CreateUser inserts a new user. A duplicate email surfaces as
// ErrDuplicateEmail.
func (s *Store) CreateUser(ctx context.Context, nu NewUser) (*User, error) {
	if err := nu.validate(); err != nil {
		return nil, err
	}

	u := &User{Name: nu.Name, Email: nu.Email, Bio: nu.Bio}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, bio) VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		nu.Name, nu.Email, nu.Bio,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, nu.Email)
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	s.logger.Debug("created user", "id", u.ID, "email", u.Email)
	return u, nil
}

// UpdateUser applies a partial update. updated_at is bumped on every call,
// whether or not the provided fields differ from the stored values.
func (s *Store) UpdateUser(ctx context.Context, id int64, upd UserUpdate) (*User, error) {
	if err := upd.validate(); err != nil {
		return nil, err
	}

	u := &User{ID: id}
	err := s.pool.QueryRow(ctx,
		`UPDATE users SET
			name = COALESCE($2, name),
			email = COALESCE($3, email),
			bio = COALESCE($4, bio),
			updated_at = now()
		 WHERE id = $1
		 RETURNING name, email, bio, created_at, updated_at`,
		id, upd.Name, upd.Email, upd.Bio,
	).Scan(&u.Name, &u.Email, &u.Bio, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, *upd.Email)
		}
		return nil, fmt.Errorf("updating user %d: %w", id, err)
	}

	return u, nil
}

// GetUser returns a user with their posts (newest first). The Posts slice
// is empty, never nil, when the user has no posts.
func (s *Store) GetUser(ctx context.Context, id int64) (*User, error) {
	u := &User{ID: id}
	err := s.pool.QueryRow(ctx,
		`SELECT name, email, bio, created_at, updated_at FROM users WHERE id = $1`, id,
	).Scan(&u.Name, &u.Email, &u.Bio, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("getting user %d: %w", id, err)
	}

	posts, err := s.ListPostsByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Posts = posts

	return u, nil
}

// ListUsers returns all users, newest first.
func (s *Store) ListUsers(ctx context.Context) ([]*User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+userCols+` FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return scanUsers(rows)
}

// CountUsers returns the total number of users.
func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return n, nil
}

// CreatePost inserts a new post. A missing author surfaces as ErrNotFound.
func (s *Store) CreatePost(ctx context.Context, np NewPost) (*Post, error) {
	if err := np.validate(); err != nil {
		return nil, err
	}

	p := &Post{UserID: np.UserID, Title: np.Title, Content: np.Content, Published: np.Published}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO posts (user_id, title, content, published) VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		np.UserID, np.Title, np.Content, np.Published,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, np.UserID)
		}
		return nil, fmt.Errorf("inserting post: %w", err)
	}

	s.logger.Debug("created post", "id", p.ID, "user_id", p.UserID)
	return p, nil
}

// UpdatePost applies a partial update. updated_at is bumped on every call.
func (s *Store) UpdatePost(ctx context.Context, id int64, upd PostUpdate) (*Post, error) {
	if err := upd.validate(); err != nil {
		return nil, err
	}

	p := &Post{ID: id}
	err := s.pool.QueryRow(ctx,
		`UPDATE posts SET
			title = COALESCE($2, title),
			content = COALESCE($3, content),
			published = COALESCE($4, published),
			updated_at = now()
		 WHERE id = $1
		 RETURNING user_id, title, content, published, created_at, updated_at`,
		id, upd.Title, upd.Content, upd.Published,
	).Scan(&p.UserID, &p.Title, &p.Content, &p.Published, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: post %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("updating post %d: %w", id, err)
	}

	return p, nil
}

// GetPost returns a post with its author.
func (s *Store) GetPost(ctx context.Context, id int64) (*Post, error) {
	p := &Post{ID: id}
	a := &User{}
	err := s.pool.QueryRow(ctx,
		`SELECT p.user_id, p.title, p.content, p.published, p.created_at, p.updated_at,
		        u.id, u.name, u.email, u.bio, u.created_at, u.updated_at
		 FROM posts p JOIN users u ON u.id = p.user_id
		 WHERE p.id = $1`, id,
	).Scan(&p.UserID, &p.Title, &p.Content, &p.Published, &p.CreatedAt, &p.UpdatedAt,
		&a.ID, &a.Name, &a.Email, &a.Bio, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: post %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("getting post %d: %w", id, err)
	}
	p.Author = a

	return p, nil
}

// ListPosts returns posts with their authors, newest first.
// limit <= 0 applies the default of 50; the maximum is 100.
func (s *Store) ListPosts(ctx context.Context, limit int) ([]*Post, error) {
	if limit <= 0 {
		limit = DefaultPostLimit
	}
	if limit > MaxPostLimit {
		return nil, fmt.Errorf("%w: limit exceeds maximum of %d", ErrValidation, MaxPostLimit)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT p.id, p.user_id, p.title, p.content, p.published, p.created_at, p.updated_at,
		        u.id, u.name, u.email, u.bio, u.created_at, u.updated_at
		 FROM posts p JOIN users u ON u.id = p.user_id
		 ORDER BY p.created_at DESC, p.id DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	defer rows.Close()

	posts := []*Post{}
	for rows.Next() {
		p := &Post{}
		a := &User{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.Published, &p.CreatedAt, &p.UpdatedAt,
			&a.ID, &a.Name, &a.Email, &a.Bio, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning post row: %w", err)
		}
		p.Author = a
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading post rows: %w", err)
	}
	return posts, nil
}

// ListPostsByUser returns all posts by one user, newest first.
// Returns an empty slice, not an error, when the user has no posts.
func (s *Store) ListPostsByUser(ctx context.Context, userID int64) ([]*Post, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+postCols+` FROM posts WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing posts for user %d: %w", userID, err)
	}
	defer rows.Close()

	posts := []*Post{}
	for rows.Next() {
		p := &Post{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.Published, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning post row: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading post rows: %w", err)
	}
	return posts, nil
}

func scanUsers(rows pgx.Rows) ([]*User, error) {
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		u := &User{}
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Bio, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading user rows: %w", err)
	}
	return users, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
