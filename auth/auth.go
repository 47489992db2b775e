// auth/auth.go
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jotlin/jotlin-server/domain"
	"github.com/jotlin/jotlin-server/store"
)

const sessionTokenBytes = 32

// HashPassword derives a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a login attempt against the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NewSessionToken mints an opaque session credential.
func NewSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// NewSession builds an unsaved session for a user.
func NewSession(userID uuid.UUID, ttl time.Duration) (*store.Session, error) {
	token, err := NewSessionToken()
	if err != nil {
		return nil, fmt.Errorf("mint session token: %w", err)
	}
	return &store.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}, nil
}

// SessionReader is the slice of the session store the resolver needs.
type SessionReader interface {
	GetSession(ctx context.Context, token string) (*store.Session, error)
}

// Resolver turns a bearer credential into an actor. A missing, malformed or
// expired credential resolves to Anonymous rather than an error, so public
// endpoints degrade gracefully. Only store connectivity failures propagate.
type Resolver struct {
	sessions SessionReader
}

func NewResolver(sessions SessionReader) *Resolver {
	return &Resolver{sessions: sessions}
}

// Resolve maps a raw Authorization header value to an actor.
func (r *Resolver) Resolve(ctx context.Context, header string) (domain.Actor, error) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return domain.AnonymousActor, nil
	}

	sess, err := r.sessions.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.AnonymousActor, nil
		}
		return domain.AnonymousActor, err
	}

	return domain.OwnerActor(sess.UserID), nil
}
