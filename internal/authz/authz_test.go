package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"moviematrix/internal/data/entity"
)

func TestCan_OwnerMayMutateOwnResources(t *testing.T) {
	owner := Actor{ID: uuid.New(), Role: entity.RoleMember}

	for _, resType := range []ResourceType{ResourceUser, ResourceMovie, ResourceReview} {
		res := Resource{Type: resType, OwnerID: owner.ID}
		assert.True(t, Can(owner, ActionUpdate, res), "owner update %s", resType)
		assert.True(t, Can(owner, ActionDelete, res), "owner delete %s", resType)
	}
}

func TestCan_NonOwnerDenied(t *testing.T) {
	actor := Actor{ID: uuid.New(), Role: entity.RoleMember}
	other := uuid.New()

	for _, resType := range []ResourceType{ResourceUser, ResourceMovie, ResourceReview} {
		res := Resource{Type: resType, OwnerID: other}
		assert.False(t, Can(actor, ActionUpdate, res), "non-owner update %s", resType)
		assert.False(t, Can(actor, ActionDelete, res), "non-owner delete %s", resType)
	}
}

func TestCan_AdminMayMutateAnything(t *testing.T) {
	admin := Actor{ID: uuid.New(), Role: entity.RoleAdmin}
	res := Resource{Type: ResourceMovie, OwnerID: uuid.New()}

	assert.True(t, Can(admin, ActionUpdate, res))
	assert.True(t, Can(admin, ActionDelete, res))
}

func TestCan_AnonymousDenied(t *testing.T) {
	var anonymous Actor
	res := Resource{Type: ResourceReview, OwnerID: uuid.New()}

	assert.False(t, Can(anonymous, ActionUpdate, res))
	assert.False(t, Can(anonymous, ActionDelete, res))
}

func TestCan_UnknownActionDenied(t *testing.T) {
	actor := Actor{ID: uuid.New(), Role: entity.RoleMember}
	res := Resource{Type: ResourceMovie, OwnerID: actor.ID}

	assert.False(t, Can(actor, Action("read"), res))
}
