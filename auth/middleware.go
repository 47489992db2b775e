// auth/middleware.go
package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jotlin/jotlin-server/domain"
)

const actorKey = "actor"

// Middleware resolves the request's actor and stashes it in locals. It never
// rejects a request itself: unauthenticated callers continue as Anonymous and
// each handler decides what that means. A session-store outage is the one
// thing that stops the request here.
func Middleware(resolver *Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := resolver.Resolve(c.UserContext(), c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "session lookup failed")
		}
		c.Locals(actorKey, actor)
		return c.Next()
	}
}

// ActorFromCtx returns the actor placed by Middleware, or Anonymous when the
// route runs without it.
func ActorFromCtx(c *fiber.Ctx) domain.Actor {
	if actor, ok := c.Locals(actorKey).(domain.Actor); ok {
		return actor
	}
	return domain.AnonymousActor
}

// RequireOwner aborts anonymous requests. Used on routes that make no sense
// without an account, like profile and note listing.
func RequireOwner(c *fiber.Ctx) error {
	if ActorFromCtx(c).Anonymous {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}
	return c.Next()
}
