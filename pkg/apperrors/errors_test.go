package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindConflict, KindOf(Conflict("duplicate")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing")))
	assert.Equal(t, KindForbidden, KindOf(Forbidden("denied")))
	assert.Equal(t, KindUnauthenticated, KindOf(Unauthenticated("who are you")))
	assert.Equal(t, KindUpstreamUnavailable, KindOf(UpstreamUnavailable("omdb down", errors.New("timeout"))))

	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("create review: %w", Conflict("already reviewed"))
	assert.Equal(t, KindConflict, KindOf(err))
	assert.True(t, IsConflict(err))
	assert.False(t, IsNotFound(err))
}

func TestError_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := UpstreamUnavailable("metadata lookup failed", cause)

	assert.Equal(t, "metadata lookup failed: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	plain := NotFound("movie %s not found", "abc")
	assert.Equal(t, "movie abc not found", plain.Error())
	assert.Nil(t, plain.Unwrap())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}
