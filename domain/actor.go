// domain/actor.go
package domain

import "github.com/google/uuid"

// Actor is the resolved identity of a request: the owner of an account, or
// an anonymous visitor. There is nothing in between.
type Actor struct {
	UserID    uuid.UUID
	Anonymous bool
}

// AnonymousActor is the actor used whenever session resolution fails.
var AnonymousActor = Actor{Anonymous: true}

// OwnerActor returns an actor authenticated as the given user.
func OwnerActor(userID uuid.UUID) Actor {
	return Actor{UserID: userID}
}
