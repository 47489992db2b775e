// http/notes.go
package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jotlin/jotlin-server/auth"
	"github.com/jotlin/jotlin-server/domain"
	"github.com/jotlin/jotlin-server/ws"
)

type noteRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	ContentHTML string `json:"content_html"`
	IsPublic    bool   `json:"is_public"`
}

func (s *Server) validateNoteRequest(req *noteRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return domain.Invalid("title", "must not be empty")
	}
	if len(req.Content) > s.maxContentBytes || len(req.ContentHTML) > s.maxContentBytes {
		return domain.Invalid("content", "too large")
	}
	return nil
}

// applyContent writes request fields onto the note, sanitizing the HTML and
// recomputing the derived metrics.
func (s *Server) applyContent(n *domain.Note, req *noteRequest) {
	n.Title = strings.TrimSpace(req.Title)
	n.Content = req.Content
	n.ContentHTML = s.sanitize.Sanitize(req.ContentHTML)
	n.Excerpt = domain.Excerpt(req.Content)
	n.WordCount = domain.WordCount(req.Content)
	n.ReadingTime = domain.ReadingTime(n.WordCount)
}

// fetchForAccess loads a note and runs the access gate. Any denial comes back
// as domain.ErrNotFound so the response never reveals that the note exists.
func (s *Server) fetchForAccess(c *fiber.Ctx, op domain.Operation) (*domain.Note, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		// Share tokens and other non-uuid strings never resolve here; the
		// owner path only speaks note ids.
		return nil, domain.ErrNotFound
	}

	note, err := s.notes.GetByID(c.UserContext(), id)
	if err != nil {
		return nil, err
	}

	if !domain.CanAccess(auth.ActorFromCtx(c), note, op, "") {
		return nil, domain.ErrNotFound
	}
	return note, nil
}

func (s *Server) handleListNotes(c *fiber.Ctx) error {
	actor := auth.ActorFromCtx(c)
	archived := c.QueryBool("archived", false)

	notes, err := s.notes.ListByOwner(c.UserContext(), actor.UserID, archived)
	if err != nil {
		return err
	}
	return c.JSON(notes)
}

func (s *Server) handleCreateNote(c *fiber.Ctx) error {
	var req noteRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.Invalid("body", "not valid JSON")
	}
	if err := s.validateNoteRequest(&req); err != nil {
		return err
	}

	note := &domain.Note{
		ID:       uuid.New(),
		OwnerID:  auth.ActorFromCtx(c).UserID,
		IsPublic: req.IsPublic,
	}
	s.applyContent(note, &req)

	if err := s.notes.Create(c.UserContext(), note); err != nil {
		return err
	}

	s.notify(note.OwnerID, ws.EventNoteCreated, note)
	return c.Status(fiber.StatusCreated).JSON(note)
}

func (s *Server) handleGetNote(c *fiber.Ctx) error {
	note, err := s.fetchForAccess(c, domain.OpRead)
	if err != nil {
		return err
	}

	// Owner views bump last_viewed_at; the public path never does.
	if err := s.notes.TouchLastViewed(c.UserContext(), note.ID); err != nil {
		s.log.Warn().Err(err).Msg("touch last_viewed_at failed")
	}

	return c.JSON(note)
}

func (s *Server) handleUpdateNote(c *fiber.Ctx) error {
	note, err := s.fetchForAccess(c, domain.OpWrite)
	if err != nil {
		return err
	}

	var req noteRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.Invalid("body", "not valid JSON")
	}
	if err := s.validateNoteRequest(&req); err != nil {
		return err
	}

	s.applyContent(note, &req)
	if err := s.notes.UpdateContent(c.UserContext(), note); err != nil {
		return err
	}

	s.notify(note.OwnerID, ws.EventNoteUpdated, note)
	return c.JSON(note)
}

func (s *Server) handleDeleteNote(c *fiber.Ctx) error {
	note, err := s.fetchForAccess(c, domain.OpDelete)
	if err != nil {
		return err
	}

	if err := s.notes.Delete(c.UserContext(), note.ID); err != nil {
		return err
	}

	s.notify(note.OwnerID, ws.EventNoteDeleted, note)
	return c.SendStatus(fiber.StatusNoContent)
}

// handleToggleNote is the single mutation path for the flag toggles. Every
// toggle goes through the same gate check as a content write.
func (s *Server) handleToggleNote(c *fiber.Ctx) error {
	var req struct {
		Op domain.ToggleOp `json:"op"`
	}
	if err := c.BodyParser(&req); err != nil {
		return domain.Invalid("body", "not valid JSON")
	}
	if !req.Op.Valid() {
		return domain.Invalid("op", "must be pin, archive or share")
	}

	note, err := s.fetchForAccess(c, domain.OpWrite)
	if err != nil {
		return err
	}

	ctx := c.UserContext()
	switch req.Op {
	case domain.TogglePin:
		note.IsPinned = !note.IsPinned
		err = s.notes.SetPinned(ctx, note.ID, note.IsPinned)

	case domain.ToggleArchive:
		note.IsArchived = !note.IsArchived
		err = s.notes.SetArchived(ctx, note.ID, note.IsArchived)

	case domain.ToggleShare:
		if note.IsShared {
			note.DisableSharing()
		} else {
			if err := note.EnableSharing(); err != nil {
				return err
			}
		}
		// Flag and token are written together; a failed toggle leaves the
		// prior state in place.
		err = s.notes.SetVisibility(ctx, note.ID, note.IsShared, note.ShareID)
	}
	if err != nil {
		return err
	}

	s.notify(note.OwnerID, ws.EventNoteUpdated, note)
	return c.JSON(note)
}

// handlePublicNote serves {origin}/s/{share_id}. The lookup filters on the
// token and is_shared in one query, and the gate is evaluated as Anonymous
// regardless of any session the caller may hold.
func (s *Server) handlePublicNote(c *fiber.Ctx) error {
	token := c.Params("shareID")
	if token == "" {
		return domain.ErrNotFound
	}

	note, err := s.notes.GetByShareID(c.UserContext(), token)
	if err != nil {
		return err
	}

	if !domain.CanAccess(domain.AnonymousActor, note, domain.OpRead, token) {
		return domain.ErrNotFound
	}

	return c.JSON(note.Public())
}

func (s *Server) notify(ownerID uuid.UUID, eventType string, note *domain.Note) {
	if s.hub != nil {
		s.hub.NotifyOwner(ownerID, eventType, note)
	}
}
