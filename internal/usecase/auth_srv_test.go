package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"moviematrix/internal/data/entity"
	"moviematrix/internal/data/repository"
	"moviematrix/internal/dto/request"
	"moviematrix/pkg/apperrors"
	"moviematrix/pkg/utils"
)

func testConfig() *utils.Config {
	return &utils.Config{
		Session: utils.SessionConfig{ExpiryHours: 24},
	}
}

func newAuthService(t *testing.T) (AuthService, *repository.Repository) {
	t.Helper()
	repo := newFakeRepository()
	return NewAuthService(repo, testConfig(), zap.NewNop()), repo
}

func registerReq(username, email string) *request.RegisterRequest {
	return &request.RegisterRequest{
		Username:  username,
		Email:     email,
		Password:  "secret123",
		FirstName: "Alice",
	}
}

func TestRegister_Success(t *testing.T) {
	svc, repo := newAuthService(t)

	resp, err := svc.Register(context.Background(), registerReq("alice", "alice@example.com"))
	require.NoError(t, err)

	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.Equal(t, entity.RoleMember, resp.Role)
	assert.NotEmpty(t, resp.Token, "register should auto-login")

	user, err := repo.User.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEqual(t, "secret123", user.PasswordHash, "password must be stored hashed")
	assert.True(t, utils.CheckPasswordHash("secret123", user.PasswordHash))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), registerReq("alice", "alice@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerReq("alice", "other@example.com"))
	assert.True(t, apperrors.IsConflict(err), "got: %v", err)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), registerReq("alice", "alice@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerReq("alice2", "alice@example.com"))
	assert.True(t, apperrors.IsConflict(err), "got: %v", err)
}

func TestRegister_InvalidInput(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username:  "a",
		Email:     "not-an-email",
		Password:  "123",
		FirstName: "",
	})
	assert.True(t, apperrors.IsValidation(err), "got: %v", err)
}

func TestLogin_WithUsernameAndEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), registerReq("alice", "alice@example.com"))
	require.NoError(t, err)

	byUsername, err := svc.Login(context.Background(), &request.LoginRequest{
		Username: "alice",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, byUsername.Token)

	byEmail, err := svc.Login(context.Background(), &request.LoginRequest{
		Username: "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, byEmail.Token)
	assert.NotEqual(t, byUsername.Token, byEmail.Token, "each login creates its own session")
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), registerReq("alice", "alice@example.com"))
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &request.LoginRequest{
		Username: "alice",
		Password: "wrongpass",
	})
	assert.True(t, apperrors.IsUnauthenticated(err), "got: %v", err)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Login(context.Background(), &request.LoginRequest{
		Username: "nobody",
		Password: "secret123",
	})
	assert.True(t, apperrors.IsUnauthenticated(err), "got: %v", err)
}

func TestLogout_RevokesSession(t *testing.T) {
	svc, repo := newAuthService(t)

	resp, err := svc.Register(context.Background(), registerReq("alice", "alice@example.com"))
	require.NoError(t, err)

	session, err := repo.Session.FindValidSession(context.Background(), resp.Token)
	require.NoError(t, err)
	require.NotNil(t, session)

	require.NoError(t, svc.Logout(context.Background(), resp.Token))

	session, err = repo.Session.FindValidSession(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Nil(t, session, "revoked session must no longer validate")
}

func TestLogout_MalformedToken(t *testing.T) {
	svc, _ := newAuthService(t)

	err := svc.Logout(context.Background(), "not-a-uuid")
	assert.True(t, apperrors.IsUnauthenticated(err), "got: %v", err)
}
