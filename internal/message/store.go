package message

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists conversation turns in PostgreSQL.
//
// Store is safe for concurrent use by multiple goroutines. No in-process
// state is held; concurrent appends interleave under the database's
// read-committed isolation, which is sufficient for the history window.
type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewStore creates a message Store.
func NewStore(pool *pgxpool.Pool, logger *slog.Logger) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{pool: pool, logger: logger}, nil
}

// Append validates and durably inserts one turn, returning the persisted
// row including the server-assigned id and timestamp. There is no
// buffering: once Append returns, the turn is visible to Recent and All.
func (s *Store) Append(ctx context.Context, role Role, content string) (*Message, error) {
	if err := ValidateTurn(role, content); err != nil {
		return nil, err
	}

	m := &Message{Role: role, Content: content}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO messages (role, content) VALUES ($1, $2) RETURNING id, created_at`,
		string(role), content,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting message: %w", err)
	}

	s.logger.Debug("appended message", "id", m.ID, "role", m.Role, "content_len", len(m.Content))
	return m, nil
}

// Recent returns at most limit turns, most-recent-first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Message, error) {
	if limit < 1 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, role, content, created_at FROM messages ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent messages: %w", err)
	}
	return scanMessages(rows)
}

// All returns every turn, oldest-first.
func (s *Store) All(ctx context.Context) ([]*Message, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, role, content, created_at FROM messages ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	return scanMessages(rows)
}

// Clear deletes every turn and returns the number of rows removed.
// Clearing an empty log succeeds with a count of zero.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM messages`)
	if err != nil {
		return 0, fmt.Errorf("clearing messages: %w", err)
	}

	removed := tag.RowsAffected()
	s.logger.Info("cleared conversation log", "removed", removed)
	return removed, nil
}

func scanMessages(rows pgx.Rows) ([]*Message, error) {
	defer rows.Close()

	var out []*Message
	for rows.Next() {
		m := &Message{}
		var role string
		if err := rows.Scan(&m.ID, &role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message row: %w", err)
		}
		m.Role = Role(role)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading message rows: %w", err)
	}
	return out, nil
}
