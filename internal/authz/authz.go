package authz

import (
	"github.com/google/uuid"

	"moviematrix/internal/data/entity"
)

type Action string

const (
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type ResourceType string

const (
	ResourceUser   ResourceType = "user"
	ResourceMovie  ResourceType = "movie"
	ResourceReview ResourceType = "review"
)

// Actor is the acting identity resolved by the auth middleware.
type Actor struct {
	ID   uuid.UUID
	Role entity.UserRole
}

// Resource identifies the target of a mutation. OwnerID is the user who
// controls it: the user itself, the movie's owner, or the review's author.
type Resource struct {
	Type    ResourceType
	OwnerID uuid.UUID
}

// Can reports whether the actor may perform the action on the resource.
// Rules: admins may do anything; everyone else only mutates resources they
// own. Reads are public and never routed through here.
func Can(actor Actor, action Action, res Resource) bool {
	if actor.ID == uuid.Nil {
		return false
	}
	if actor.Role == entity.RoleAdmin {
		return true
	}
	switch action {
	case ActionUpdate, ActionDelete:
		return actor.ID == res.OwnerID
	default:
		return false
	}
}
