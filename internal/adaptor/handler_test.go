package adaptor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"moviematrix/internal/data/entity"
	"moviematrix/pkg/apperrors"
	"moviematrix/pkg/utils"
)

func TestHandleServiceError_StatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperrors.Validation("bad input"), http.StatusBadRequest},
		{"unauthenticated", apperrors.Unauthenticated("who"), http.StatusUnauthorized},
		{"forbidden", apperrors.Forbidden("no"), http.StatusForbidden},
		{"not found", apperrors.NotFound("missing"), http.StatusNotFound},
		{"conflict", apperrors.Conflict("dup"), http.StatusConflict},
		{"upstream", apperrors.UpstreamUnavailable("omdb", nil), http.StatusBadGateway},
		{"unknown", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(rec, zap.NewNop(), tc.err, "test op")
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestActorFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	// No auth context means an anonymous actor
	actor := actorFromContext(req)
	assert.Equal(t, uuid.Nil, actor.ID)

	userID := uuid.New()
	ctx := utils.SetUserContext(context.Background(), userID, "admin")
	actor = actorFromContext(req.WithContext(ctx))

	assert.Equal(t, userID, actor.ID)
	assert.Equal(t, entity.RoleAdmin, actor.Role)
}
