// http/account.go
package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jotlin/jotlin-server/auth"
	"github.com/jotlin/jotlin-server/domain"
	"github.com/jotlin/jotlin-server/store"
)

const minPasswordLen = 8

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

type sessionResponse struct {
	Token  string    `json:"token"`
	UserID uuid.UUID `json:"user_id"`
}

func (s *Server) handleSignup(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.Invalid("body", "not valid JSON")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.Invalid("email", "must be an email address")
	}
	if len(req.Password) < minPasswordLen {
		return domain.Invalid("password", "must be at least 8 characters")
	}

	phone, err := domain.NormalizePhone(req.Phone)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := &store.User{ID: uuid.New(), Email: email, PasswordHash: hash}
	if err := s.users.CreateUser(c.UserContext(), user); err != nil {
		return err
	}

	profile := &domain.Profile{UserID: user.ID, Name: strings.TrimSpace(req.Name), Phone: phone}
	if err := s.profiles.Create(c.UserContext(), profile); err != nil {
		return err
	}

	sess, err := s.issueSession(c, user.ID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(sess)
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.Invalid("body", "not valid JSON")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.users.GetUserByEmail(c.UserContext(), email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Same response as a bad password: no account enumeration.
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}
		return err
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	sess, err := s.issueSession(c, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(sess)
}

func (s *Server) handleLogout(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return c.SendStatus(fiber.StatusNoContent)
	}
	if err := s.users.DeleteSession(c.UserContext(), token); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) issueSession(c *fiber.Ctx, userID uuid.UUID) (*sessionResponse, error) {
	sess, err := auth.NewSession(userID, s.sessionTTL)
	if err != nil {
		return nil, err
	}
	if err := s.users.CreateSession(c.UserContext(), sess); err != nil {
		return nil, err
	}
	return &sessionResponse{Token: sess.Token, UserID: userID}, nil
}

func (s *Server) handleGetProfile(c *fiber.Ctx) error {
	actor := auth.ActorFromCtx(c)
	profile, err := s.profiles.Get(c.UserContext(), actor.UserID)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

func (s *Server) handleUpdateProfile(c *fiber.Ctx) error {
	actor := auth.ActorFromCtx(c)

	var req struct {
		Name          string `json:"name"`
		Phone         string `json:"phone"`
		Notifications bool   `json:"notifications"`
	}
	if err := c.BodyParser(&req); err != nil {
		return domain.Invalid("body", "not valid JSON")
	}

	phone, err := domain.NormalizePhone(req.Phone)
	if err != nil {
		return err
	}

	profile, err := s.profiles.Get(c.UserContext(), actor.UserID)
	if err != nil {
		return err
	}

	profile.Name = strings.TrimSpace(req.Name)
	profile.Phone = phone
	profile.Notifications = req.Notifications

	if err := s.profiles.Update(c.UserContext(), profile); err != nil {
		return err
	}
	return c.JSON(profile)
}
