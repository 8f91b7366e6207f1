package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/momentum-hr/performance-backend-go/internal/domain/auth"
	"github.com/momentum-hr/performance-backend-go/internal/domain/user"
	"github.com/momentum-hr/performance-backend-go/internal/pkg/jwt"
	"github.com/momentum-hr/performance-backend-go/internal/testutil"
)

const testSecret = "test-secret-key-for-jwt"

func seedLogin(t *testing.T, store *testutil.Store, username, password string, role user.Role) user.UserAccount {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	account, err := store.Users.Create(context.Background(), user.UserAccount{
		EmployeeID:   testutil.NewID(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		IsFirstLogin: true,
	})
	require.NoError(t, err)
	return account
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore()
	account := seedLogin(t, store, "sam", "s3cret-pass", user.RoleSupervisor)
	jwtSvc := jwt.NewJWTService(testSecret, "1h")
	svc := NewAuthService(store.Users, jwtSvc).(*AuthServiceImpl)
	loginAt := time.Date(2025, time.October, 5, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return loginAt }

	resp, err := svc.Login(ctx, auth.LoginRequest{Username: "sam", Password: "s3cret-pass"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, account.ID, resp.AccountID)
	assert.Equal(t, account.EmployeeID, resp.EmployeeID)
	assert.Equal(t, int(user.RoleSupervisor), resp.Role)
	assert.True(t, resp.IsFirstLogin)
	assert.NotEmpty(t, resp.AccessToken)

	decoded, err := jwtSvc.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	m, err := decoded.AsMap(ctx)
	require.NoError(t, err)
	claims, err := jwt.ClaimsFromMap(m)
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.AccountID)
	assert.Equal(t, user.RoleSupervisor, claims.Role)

	stored, err := store.Users.GetByID(ctx, account.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLogin)
	assert.Equal(t, loginAt, *stored.LastLogin)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore()
	seedLogin(t, store, "sam", "s3cret-pass", user.RoleSupervisor)
	svc := NewAuthService(store.Users, jwt.NewJWTService(testSecret, "1h"))

	_, err := svc.Login(ctx, auth.LoginRequest{Username: "sam", Password: "wrong-pass"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, auth.LoginRequest{Username: "nobody", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, auth.LoginRequest{Username: "sam"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
}
