// store/profiles.go
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

type ProfileStore struct {
	pool *pgxpool.Pool
}

// Create inserts the profile row made on signup.
func (s *ProfileStore) Create(ctx context.Context, p *domain.Profile) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := s.pool.Exec(ctx, `
		INSERT INTO profiles (user_id, name, phone, notifications, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.UserID, p.Name, p.Phone, p.Notifications, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// Get fetches the profile for a user.
func (s *ProfileStore) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	var p domain.Profile
	err := s.pool.QueryRow(ctx, `
		SELECT user_id, name, phone, notifications, created_at, updated_at
		FROM profiles WHERE user_id = $1`,
		userID).Scan(&p.UserID, &p.Name, &p.Phone, &p.Notifications, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// Update writes the owner-editable fields.
func (s *ProfileStore) Update(ctx context.Context, p *domain.Profile) error {
	p.UpdatedAt = time.Now().UTC()
	tag, err := s.pool.Exec(ctx, `
		UPDATE profiles SET name = $2, phone = $3, notifications = $4, updated_at = $5
		WHERE user_id = $1`,
		p.UserID, p.Name, p.Phone, p.Notifications, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
