// store/notes.go
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jotlin/jotlin-server/domain"
)

// NoteStore persists notes. It returns domain.ErrNotFound for absent rows;
// authorization is decided by the access gate in front of it, with one
// exception baked in here: the anonymous read path filters on share_id AND
// is_shared in a single query, so a revoked link can never resolve between
// two separate checks.
type NoteStore struct {
	pool *pgxpool.Pool
}

const noteColumns = `id, owner_id, title, content, content_html, excerpt,
	is_public, is_shared, share_id, is_pinned, is_archived,
	word_count, reading_time, created_at, updated_at, last_viewed_at`

func scanNote(row pgx.Row) (*domain.Note, error) {
	var n domain.Note
	var shareID *string
	err := row.Scan(
		&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.ContentHTML, &n.Excerpt,
		&n.IsPublic, &n.IsShared, &shareID, &n.IsPinned, &n.IsArchived,
		&n.WordCount, &n.ReadingTime, &n.CreatedAt, &n.UpdatedAt, &n.LastViewedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan note: %w", err)
	}
	if shareID != nil {
		n.ShareID = *shareID
	}
	return &n, nil
}

// Create inserts a new note. The note starts Private regardless of what the
// caller put in the visibility fields.
func (s *NoteStore) Create(ctx context.Context, n *domain.Note) error {
	n.IsShared = false
	n.ShareID = ""
	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now

	_, err := s.pool.Exec(ctx, `
		INSERT INTO notes (id, owner_id, title, content, content_html, excerpt,
			is_public, is_pinned, is_archived, word_count, reading_time,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		n.ID, n.OwnerID, n.Title, n.Content, n.ContentHTML, n.Excerpt,
		n.IsPublic, n.IsPinned, n.IsArchived, n.WordCount, n.ReadingTime,
		n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

// GetByID fetches a note by primary key. Owner-or-not is decided by the gate.
func (s *NoteStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = $1`, id)
	return scanNote(row)
}

// GetByShareID resolves a share token to its note. The is_shared filter sits
// in the same WHERE clause as the token equality: there is no window in which
// a revoked link still resolves.
func (s *NoteStore) GetByShareID(ctx context.Context, shareID string) (*domain.Note, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE share_id = $1 AND is_shared = TRUE`,
		shareID)
	return scanNote(row)
}

// ListByOwner returns the owner's notes, pinned first, newest first.
// Archived notes are listed only when archived is true.
func (s *NoteStore) ListByOwner(ctx context.Context, ownerID uuid.UUID, archived bool) ([]*domain.Note, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+noteColumns+` FROM notes
		 WHERE owner_id = $1 AND is_archived = $2
		 ORDER BY is_pinned DESC, updated_at DESC`,
		ownerID, archived)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := []*domain.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// UpdateContent writes the editable fields and the derived metrics.
func (s *NoteStore) UpdateContent(ctx context.Context, n *domain.Note) error {
	n.UpdatedAt = time.Now().UTC()
	tag, err := s.pool.Exec(ctx, `
		UPDATE notes
		SET title = $2, content = $3, content_html = $4, excerpt = $5,
		    word_count = $6, reading_time = $7, updated_at = $8
		WHERE id = $1`,
		n.ID, n.Title, n.Content, n.ContentHTML, n.Excerpt,
		n.WordCount, n.ReadingTime, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetVisibility persists a sharing transition. The flag and the token travel
// in one statement so a failed toggle leaves the previous state intact.
func (s *NoteStore) SetVisibility(ctx context.Context, id uuid.UUID, shared bool, shareID string) error {
	var token *string
	if shareID != "" {
		token = &shareID
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE notes SET is_shared = $2, share_id = $3, updated_at = $4 WHERE id = $1`,
		id, shared, token, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set visibility: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetPinned flips the pin flag.
func (s *NoteStore) SetPinned(ctx context.Context, id uuid.UUID, pinned bool) error {
	return s.setFlag(ctx, id, "is_pinned", pinned)
}

// SetArchived flips the archive flag.
func (s *NoteStore) SetArchived(ctx context.Context, id uuid.UUID, archived bool) error {
	return s.setFlag(ctx, id, "is_archived", archived)
}

func (s *NoteStore) setFlag(ctx context.Context, id uuid.UUID, column string, value bool) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE notes SET `+column+` = $2, updated_at = $3 WHERE id = $1`,
		id, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set %s: %w", column, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// TouchLastViewed records an owner view. Public reads intentionally do not
// call this.
func (s *NoteStore) TouchLastViewed(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE notes SET last_viewed_at = $2 WHERE id = $1`,
		id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("touch last_viewed_at: %w", err)
	}
	return nil
}

// Delete removes the note permanently. There is no trash.
func (s *NoteStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
