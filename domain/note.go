// domain/note.go
package domain

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/google/uuid"
)

// Note is the central entity. Visibility is a two-state machine over
// IsShared/ShareID: Private (IsShared=false) and Shared (IsShared=true,
// ShareID set). IsPublic is persisted for compatibility but no read path
// branches on it.
type Note struct {
	ID           uuid.UUID  `json:"id"`
	OwnerID      uuid.UUID  `json:"owner_id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	ContentHTML  string     `json:"content_html"`
	Excerpt      string     `json:"excerpt"`
	IsPublic     bool       `json:"is_public"`
	IsShared     bool       `json:"is_shared"`
	ShareID      string     `json:"share_id,omitempty"`
	IsPinned     bool       `json:"is_pinned"`
	IsArchived   bool       `json:"is_archived"`
	WordCount    int        `json:"word_count"`
	ReadingTime  int        `json:"reading_time"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastViewedAt *time.Time `json:"last_viewed_at,omitempty"`
}

// shareTokenBytes gives 192 bits of entropy, enough to treat the token as a
// capability: knowing it is the only credential for public reads.
const shareTokenBytes = 24

// NewShareToken mints an unguessable share token.
func NewShareToken() (string, error) {
	buf := make([]byte, shareTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// EnableSharing moves the note to the Shared state. The token is minted once:
// a note that was shared before keeps its previous ShareID, so an already
// distributed link starts resolving again. That reuse is intentional.
func (n *Note) EnableSharing() error {
	if n.ShareID == "" {
		token, err := NewShareToken()
		if err != nil {
			return err
		}
		n.ShareID = token
	}
	n.IsShared = true
	return nil
}

// DisableSharing moves the note back to Private. ShareID is retained so a
// later EnableSharing reactivates the same link.
func (n *Note) DisableSharing() {
	n.IsShared = false
}

// PublicNote is the projection served to anonymous readers. It carries only
// display fields; in particular no owner id and no organizational flags.
type PublicNote struct {
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html"`
	Excerpt     string    `json:"excerpt"`
	WordCount   int       `json:"word_count"`
	ReadingTime int       `json:"reading_time"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Public returns the anonymous-reader view of the note.
func (n *Note) Public() PublicNote {
	return PublicNote{
		Title:       n.Title,
		Content:     n.Content,
		ContentHTML: n.ContentHTML,
		Excerpt:     n.Excerpt,
		WordCount:   n.WordCount,
		ReadingTime: n.ReadingTime,
		UpdatedAt:   n.UpdatedAt,
	}
}
