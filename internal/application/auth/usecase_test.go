package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockroom-api/internal/application/auth"
	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/testutil/memstore"
	"github.com/jhoicas/stockroom-api/pkg/jwt"
)

const secret = "test-secret"

func newUseCase(t *testing.T) (*auth.AuthUseCase, *dto.UserResponse) {
	t.Helper()
	uc := auth.NewAuthUseCase(memstore.New().Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"})
	u, err := uc.SaveUser(context.Background(), "  Admin ", "correcta-123", "admin@example.com")
	require.NoError(t, err)
	return uc, u
}

func TestLogin_Success(t *testing.T) {
	uc, user := newUseCase(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ADMIN", Password: "correcta-123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, username, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, "admin", username)

	me, err := uc.Me(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, &dto.UserResponse{ID: user.ID, Username: "admin", Email: "admin@example.com"}, me)
}

func TestLogin_WrongPasswordAndUnknownUser(t *testing.T) {
	uc, _ := newUseCase(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Nil(t, out)

	out, err = uc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "correcta-123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Nil(t, out)
}

func TestMe_UserNotFound(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.Me(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSaveUser_UpdatesExistingUser(t *testing.T) {
	uc, first := newUseCase(t)

	second, err := uc.SaveUser(context.Background(), "admin", "nueva-clave-9", "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "correcta-123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "nueva-clave-9"})
	assert.NoError(t, err)
}

func TestSaveUser_RejectsShortPassword(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.SaveUser(context.Background(), "otro", "corta", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
