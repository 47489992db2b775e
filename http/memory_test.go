// http/memory_test.go
package http

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jotlin/jotlin-server/domain"
	"github.com/jotlin/jotlin-server/store"
)

// memStore is an in-memory stand-in for the Postgres store, mirroring its
// semantics closely enough for handler tests: the anonymous lookup checks
// the token and the shared flag together, and reads return copies.
type memStore struct {
	mu       sync.Mutex
	notes    map[uuid.UUID]*domain.Note
	users    map[uuid.UUID]*store.User
	sessions map[string]*store.Session
	profiles map[uuid.UUID]*domain.Profile
}

func newMemStore() *memStore {
	return &memStore{
		notes:    make(map[uuid.UUID]*domain.Note),
		users:    make(map[uuid.UUID]*store.User),
		sessions: make(map[string]*store.Session),
		profiles: make(map[uuid.UUID]*domain.Profile),
	}
}

func copyNote(n *domain.Note) *domain.Note {
	c := *n
	if n.LastViewedAt != nil {
		t := *n.LastViewedAt
		c.LastViewedAt = &t
	}
	return &c
}

func (m *memStore) Create(_ context.Context, n *domain.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n.IsShared = false
	n.ShareID = ""
	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now
	m.notes[n.ID] = copyNote(n)
	return nil
}

func (m *memStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyNote(n), nil
}

func (m *memStore) GetByShareID(_ context.Context, shareID string) (*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.notes {
		if n.ShareID == shareID && n.IsShared {
			return copyNote(n), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memStore) ListByOwner(_ context.Context, ownerID uuid.UUID, archived bool) ([]*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Note{}
	for _, n := range m.notes {
		if n.OwnerID == ownerID && n.IsArchived == archived {
			out = append(out, copyNote(n))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsPinned != out[j].IsPinned {
			return out[i].IsPinned
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (m *memStore) UpdateContent(_ context.Context, n *domain.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.notes[n.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Title = n.Title
	cur.Content = n.Content
	cur.ContentHTML = n.ContentHTML
	cur.Excerpt = n.Excerpt
	cur.WordCount = n.WordCount
	cur.ReadingTime = n.ReadingTime
	cur.UpdatedAt = time.Now().UTC()
	n.UpdatedAt = cur.UpdatedAt
	return nil
}

func (m *memStore) SetVisibility(_ context.Context, id uuid.UUID, shared bool, shareID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notes[id]
	if !ok {
		return domain.ErrNotFound
	}
	n.IsShared = shared
	n.ShareID = shareID
	n.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *memStore) SetPinned(_ context.Context, id uuid.UUID, pinned bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notes[id]
	if !ok {
		return domain.ErrNotFound
	}
	n.IsPinned = pinned
	n.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *memStore) SetArchived(_ context.Context, id uuid.UUID, archived bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notes[id]
	if !ok {
		return domain.ErrNotFound
	}
	n.IsArchived = archived
	n.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *memStore) TouchLastViewed(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.notes[id]; ok {
		now := time.Now().UTC()
		n.LastViewedAt = &now
	}
	return nil
}

func (m *memStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.notes, id)
	return nil
}

func (m *memStore) CreateUser(_ context.Context, u *store.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return domain.Invalid("email", "already registered")
		}
	}
	u.CreatedAt = time.Now().UTC()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*store.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memStore) CreateSession(_ context.Context, sess *store.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *sess
	m.sessions[sess.Token] = &cp
	return nil
}

func (m *memStore) GetSession(_ context.Context, token string) (*store.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[token]
	if !ok || !sess.ExpiresAt.After(time.Now()) {
		return nil, domain.ErrNotFound
	}
	cp := *sess
	return &cp, nil
}

func (m *memStore) DeleteSession(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

func (m *memStore) CreateProfile(ctx context.Context, p *domain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	m.profiles[p.UserID] = &cp
	return nil
}

func (m *memStore) GetProfile(_ context.Context, userID uuid.UUID) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) UpdateProfile(_ context.Context, p *domain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.profiles[p.UserID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Name = p.Name
	cur.Phone = p.Phone
	cur.Notifications = p.Notifications
	cur.UpdatedAt = time.Now().UTC()
	return nil
}

// profileAdapter renames the memStore profile methods onto the ProfileStore
// interface, whose method names collide with NoteStore's.
type profileAdapter struct{ m *memStore }

func (a profileAdapter) Create(ctx context.Context, p *domain.Profile) error {
	return a.m.CreateProfile(ctx, p)
}

func (a profileAdapter) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return a.m.GetProfile(ctx, userID)
}

func (a profileAdapter) Update(ctx context.Context, p *domain.Profile) error {
	return a.m.UpdateProfile(ctx, p)
}
