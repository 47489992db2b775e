// http/server.go
package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/jotlin/jotlin-server/auth"
	"github.com/jotlin/jotlin-server/domain"
	"github.com/jotlin/jotlin-server/store"
	"github.com/jotlin/jotlin-server/ws"
)

// NoteStore is the persistence the handlers need for notes.
type NoteStore interface {
	Create(ctx context.Context, n *domain.Note) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error)
	GetByShareID(ctx context.Context, shareID string) (*domain.Note, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, archived bool) ([]*domain.Note, error)
	UpdateContent(ctx context.Context, n *domain.Note) error
	SetVisibility(ctx context.Context, id uuid.UUID, shared bool, shareID string) error
	SetPinned(ctx context.Context, id uuid.UUID, pinned bool) error
	SetArchived(ctx context.Context, id uuid.UUID, archived bool) error
	TouchLastViewed(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserStore covers accounts and sessions.
type UserStore interface {
	CreateUser(ctx context.Context, u *store.User) error
	GetUserByEmail(ctx context.Context, email string) (*store.User, error)
	CreateSession(ctx context.Context, sess *store.Session) error
	GetSession(ctx context.Context, token string) (*store.Session, error)
	DeleteSession(ctx context.Context, token string) error
}

// ProfileStore covers the per-account profile row.
type ProfileStore interface {
	Create(ctx context.Context, p *domain.Profile) error
	Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	Update(ctx context.Context, p *domain.Profile) error
}

// Server holds the handlers' dependencies. Everything is injected; nothing
// here is a package-level singleton.
type Server struct {
	notes    NoteStore
	users    UserStore
	profiles ProfileStore
	resolver *auth.Resolver
	hub      *ws.Hub
	sanitize *bluemonday.Policy
	log      zerolog.Logger

	sessionTTL      time.Duration
	maxContentBytes int
}

type Options struct {
	Notes           NoteStore
	Users           UserStore
	Profiles        ProfileStore
	Resolver        *auth.Resolver
	Hub             *ws.Hub
	Log             zerolog.Logger
	SessionTTL      time.Duration
	MaxContentBytes int
}

func NewServer(opts Options) *Server {
	return &Server{
		notes:           opts.Notes,
		users:           opts.Users,
		profiles:        opts.Profiles,
		resolver:        opts.Resolver,
		hub:             opts.Hub,
		sanitize:        bluemonday.UGCPolicy(),
		log:             opts.Log,
		sessionTTL:      opts.SessionTTL,
		maxContentBytes: opts.MaxContentBytes,
	}
}

// App builds the Fiber application with all routes registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          s.errorHandler,
		DisableStartupMessage: true,
	})

	app.Use(s.requestLogger())

	// Public share path. Evaluated as anonymous even for logged-in callers.
	app.Get("/s/:shareID", s.handlePublicNote)

	api := app.Group("/api", auth.Middleware(s.resolver))

	api.Post("/auth/signup", s.handleSignup)
	api.Post("/auth/login", s.handleLogin)
	api.Post("/auth/logout", s.handleLogout)

	api.Get("/notes", auth.RequireOwner, s.handleListNotes)
	api.Post("/notes", auth.RequireOwner, s.handleCreateNote)
	api.Get("/notes/:id", s.handleGetNote)
	api.Put("/notes/:id", s.handleUpdateNote)
	api.Delete("/notes/:id", s.handleDeleteNote)
	api.Post("/notes/:id/toggle", s.handleToggleNote)

	api.Get("/profile", auth.RequireOwner, s.handleGetProfile)
	api.Put("/profile", auth.RequireOwner, s.handleUpdateProfile)

	if s.hub != nil {
		api.Get("/ws", auth.RequireOwner, func(c *fiber.Ctx) error {
			if !websocket.IsWebSocketUpgrade(c) {
				return fiber.ErrUpgradeRequired
			}
			c.Locals("ws_user", auth.ActorFromCtx(c).UserID)
			return c.Next()
		}, websocket.New(func(conn *websocket.Conn) {
			userID, _ := conn.Locals("ws_user").(uuid.UUID)
			s.hub.HandleConnection(conn, userID)
		}))
	}

	return app
}

// errorHandler maps domain errors to wire responses. Access denials arrive
// here already collapsed into domain.ErrNotFound by the handlers, so the
// response never distinguishes revoked, deleted and never-existed.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": domain.ErrNotFound.Error()})
	case domain.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	s.log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

func (s *Server) requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		s.log.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("request")
		return err
	}
}
