package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shop-auth/internal/core/domain"
	"github.com/custodia-labs/shop-auth/internal/core/ports/driven/mocks"
)

type authFixture struct {
	store   *mocks.MockCredentialStore
	ledger  *mocks.MockRevocationLedger
	adapter *mocks.MockAuthAdapter
	svc     *authService
}

func newTestAuthService() *authFixture {
	store := mocks.NewMockCredentialStore()
	ledger := mocks.NewMockRevocationLedger()
	adapter := mocks.NewMockAuthAdapter()
	svc := NewAuthService(AuthServiceConfig{
		Store:       store,
		TxManager:   store,
		Ledger:      ledger,
		AuthAdapter: adapter,
	}).(*authService)
	return &authFixture{store: store, ledger: ledger, adapter: adapter, svc: svc}
}

func (f *authFixture) register(t *testing.T, name, email, password string) {
	t.Helper()
	_, err := f.svc.Register(context.Background(), domain.RegisterRequest{
		ShopName: name,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
}

func (f *authFixture) claims(t *testing.T, token string) *domain.TokenClaims {
	t.Helper()
	claims, err := f.adapter.ParseToken(token)
	require.NoError(t, err)
	return claims
}

func (f *authFixture) shopSession(t *testing.T) *domain.AuthContext {
	t.Helper()
	f.register(t, "Acme", "owner@acme.test", "p1")
	resp, err := f.svc.LoginShop(context.Background(), domain.ShopLoginRequest{Email: "owner@acme.test", Password: "p1"})
	require.NoError(t, err)
	authCtx, err := f.svc.ValidateToken(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	return authCtx
}

func TestNewAuthService_Defaults(t *testing.T) {
	f := newTestAuthService()

	assert.Equal(t, defaultAccessTTL, f.svc.accessTTL)
	assert.Equal(t, defaultRefreshTTL, f.svc.refreshTTL)
	assert.NotNil(t, f.svc.logger)
	assert.NotEqual(t, f.svc.newID(), f.svc.newID())
}

func TestAuthService_Register(t *testing.T) {
	f := newTestAuthService()
	ctx := context.Background()

	resp, err := f.svc.Register(ctx, domain.RegisterRequest{
		ShopName: "Acme",
		Email:    "a@x.com",
		Password: "p1",
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme", resp.ShopName)
	assert.Contains(t, resp.Message, domain.DefaultManagerPassword)
	assert.Equal(t, 1, f.store.ShopCount())
	assert.Equal(t, 1, f.store.ManagerCount())
	assert.Equal(t, 1, f.store.Commits())

	shop, err := f.store.GetShopByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "p1", shop.PasswordHash, "password must be stored hashed")
	assert.True(t, f.adapter.VerifyPassword("p1", shop.PasswordHash))

	managers, err := f.store.ListManagersByLookupKey(ctx, f.adapter.PasswordLookupKey(domain.DefaultManagerPassword))
	require.NoError(t, err)
	require.Len(t, managers, 1)
	assert.True(t, f.adapter.VerifyPassword(domain.DefaultManagerPassword, managers[0].PasswordHash))
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	f := newTestAuthService()
	f.register(t, "Acme", "a@x.com", "p1")

	_, err := f.svc.Register(context.Background(), domain.RegisterRequest{
		ShopName: "Other",
		Email:    "a@x.com",
		Password: "p2",
	})

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.Equal(t, 1, f.store.ShopCount())
	assert.Equal(t, 1, f.store.ManagerCount())
}

func TestAuthService_Register_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  domain.RegisterRequest
	}{
		{"missing shop name", domain.RegisterRequest{Email: "a@x.com", Password: "p1"}},
		{"missing email", domain.RegisterRequest{ShopName: "Acme", Password: "p1"}},
		{"missing password", domain.RegisterRequest{ShopName: "Acme", Email: "a@x.com"}},
		{"malformed email", domain.RegisterRequest{ShopName: "Acme", Email: "not-an-email", Password: "p1"}},
		{"empty request", domain.RegisterRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestAuthService()
			f.store.FailOn("GetShopByEmail", errors.New("store must not be touched"))

			_, err := f.svc.Register(context.Background(), tt.req)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, 0, f.store.Commits()+f.store.Rollbacks())
		})
	}
}

func TestAuthService_Register_ValidationMessageNamesFields(t *testing.T) {
	f := newTestAuthService()

	_, err := f.svc.Register(context.Background(), domain.RegisterRequest{Email: "bad"})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "shop_name is required")
	assert.Contains(t, err.Error(), "email must be a valid email address")
	assert.Contains(t, err.Error(), "password is required")
}

func TestAuthService_PasswordTooLong(t *testing.T) {
	long := strings.Repeat("x", 80)
	shop := &domain.AuthContext{Role: domain.RoleShop, TokenID: "t1"}

	tests := []struct {
		name string
		call func(f *authFixture) error
	}{
		{"register", func(f *authFixture) error {
			_, err := f.svc.Register(context.Background(), domain.RegisterRequest{ShopName: "Acme", Email: "a@x.com", Password: long})
			return err
		}},
		{"create attendant", func(f *authFixture) error {
			_, err := f.svc.CreateAttendant(context.Background(), shop, domain.AttendantRequest{Name: "ann", Password: long})
			return err
		}},
		{"reset manager password", func(f *authFixture) error {
			_, err := f.svc.ResetManagerPassword(context.Background(), domain.ResetPasswordRequest{
				OldPassword: domain.DefaultManagerPassword,
				NewPassword: long,
			})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestAuthService()

			err := tt.call(f)

			require.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.NotErrorIs(t, err, domain.ErrStore)
			assert.Contains(t, err.Error(), "at most 72 characters")
			assert.Equal(t, 0, f.store.Commits()+f.store.Rollbacks())
		})
	}
}

func TestAuthService_CreateAttendant_HashError(t *testing.T) {
	shop := &domain.AuthContext{Role: domain.RoleShop, TokenID: "t1"}

	tests := []struct {
		name    string
		hashErr error
		want    error
	}{
		{"rejected password", fmt.Errorf("%w: password must be at most 72 bytes", domain.ErrInvalidInput), domain.ErrInvalidInput},
		{"hasher failure", errors.New("entropy exhausted"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestAuthService()
			f.adapter.HashErr = tt.hashErr

			_, err := f.svc.CreateAttendant(context.Background(), shop, domain.AttendantRequest{Name: "ann", Password: "pw"})

			require.ErrorIs(t, err, tt.hashErr)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
			assert.NotErrorIs(t, err, domain.ErrStore, "hash failures are not persistence failures")
			assert.Equal(t, 0, f.store.Commits()+f.store.Rollbacks())
		})
	}
}

func TestAuthService_Register_RollsBackOnStoreError(t *testing.T) {
	f := newTestAuthService()
	storeErr := errors.New("connection reset")
	f.store.FailOn("CreateManager", storeErr)

	_, err := f.svc.Register(context.Background(), domain.RegisterRequest{
		ShopName: "Acme",
		Email:    "a@x.com",
		Password: "p1",
	})

	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, 0, f.store.ShopCount(), "shop insert must be rolled back")
	assert.Equal(t, 0, f.store.ManagerCount())
	assert.Equal(t, 1, f.store.Rollbacks())
}

func TestAuthService_Register_ConcurrentDuplicates(t *testing.T) {
	f := newTestAuthService()
	const racers = 8

	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Register(context.Background(), domain.RegisterRequest{
				ShopName: "Acme",
				Email:    "race@x.com",
				Password: "p1",
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, f.store.ShopCount())
	assert.Equal(t, 1, f.store.ManagerCount())
}

func TestAuthService_LoginShop(t *testing.T) {
	f := newTestAuthService()
	f.register(t, "Acme", "a@x.com", "secret")

	tests := []struct {
		name    string
		req     domain.ShopLoginRequest
		wantErr error
	}{
		{"valid credentials", domain.ShopLoginRequest{Email: "a@x.com", Password: "secret"}, nil},
		{"changed last character", domain.ShopLoginRequest{Email: "a@x.com", Password: "secreT"}, domain.ErrInvalidCredentials},
		{"extra character", domain.ShopLoginRequest{Email: "a@x.com", Password: "secrets"}, domain.ErrInvalidCredentials},
		{"dropped character", domain.ShopLoginRequest{Email: "a@x.com", Password: "secre"}, domain.ErrInvalidCredentials},
		{"unknown email", domain.ShopLoginRequest{Email: "b@x.com", Password: "secret"}, domain.ErrInvalidCredentials},
		{"missing password", domain.ShopLoginRequest{Email: "a@x.com"}, domain.ErrInvalidInput},
		{"malformed email", domain.ShopLoginRequest{Email: "ax.com", Password: "secret"}, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.svc.LoginShop(context.Background(), tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Acme", resp.ShopName)

			access := f.claims(t, resp.AccessToken)
			refresh := f.claims(t, resp.RefreshToken)
			assert.Equal(t, domain.RoleShop, access.Role)
			assert.Equal(t, domain.TokenTypeAccess, access.Type)
			assert.Equal(t, domain.RoleShop, refresh.Role)
			assert.Equal(t, domain.TokenTypeRefresh, refresh.Type)
			assert.NotEqual(t, access.TokenID, refresh.TokenID)
			assert.Greater(t, refresh.ExpiresAt, access.ExpiresAt)
		})
	}
}

func TestAuthService_LoginShop_UniformFailure(t *testing.T) {
	f := newTestAuthService()
	f.register(t, "Acme", "a@x.com", "secret")

	_, unknownErr := f.svc.LoginShop(context.Background(), domain.ShopLoginRequest{Email: "nobody@x.com", Password: "secret"})
	_, wrongErr := f.svc.LoginShop(context.Background(), domain.ShopLoginRequest{Email: "a@x.com", Password: "wrong"})

	assert.Equal(t, unknownErr, wrongErr)
}

func TestAuthService_LoginShop_StoreError(t *testing.T) {
	f := newTestAuthService()
	storeErr := errors.New("db down")
	f.store.FailOn("GetShopByEmail", storeErr)

	_, err := f.svc.LoginShop(context.Background(), domain.ShopLoginRequest{Email: "a@x.com", Password: "p"})

	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_LoginManager(t *testing.T) {
	f := newTestAuthService()
	f.register(t, "Acme", "a@x.com", "p1")

	resp, err := f.svc.LoginManager(context.Background(), domain.ManagerLoginRequest{Password: domain.DefaultManagerPassword})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, resp.User)
	assert.Equal(t, domain.RoleManager, f.claims(t, resp.AccessToken).Role)

	_, err = f.svc.LoginManager(context.Background(), domain.ManagerLoginRequest{Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.svc.LoginManager(context.Background(), domain.ManagerLoginRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAuthService_LoginManager_VerifiesOnlyLookupMatches(t *testing.T) {
	f := newTestAuthService()
	ctx := context.Background()
	for i := 0; i < 40; i++ {
		f.register(t, "Shop", fmt.Sprintf("owner%d@shop.test", i), "p1")
	}
	_, err := f.svc.ResetManagerPassword(ctx, domain.ResetPasswordRequest{
		OldPassword: domain.DefaultManagerPassword,
		NewPassword: "custom",
	})
	require.NoError(t, err)

	tests := []struct {
		name        string
		password    string
		wantErr     error
		maxVerifies int64
	}{
		{"wrong password", "wrong", domain.ErrInvalidCredentials, 0},
		{"default password", domain.DefaultManagerPassword, nil, 1},
		{"reset password", "custom", nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := f.adapter.VerifyCalls()

			_, err := f.svc.LoginManager(ctx, domain.ManagerLoginRequest{Password: tt.password})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.LessOrEqual(t, f.adapter.VerifyCalls()-before, tt.maxVerifies)
		})
	}
}

func TestAuthService_LoginManager_EmptyPool(t *testing.T) {
	f := newTestAuthService()

	_, err := f.svc.LoginManager(context.Background(), domain.ManagerLoginRequest{Password: domain.DefaultManagerPassword})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_CreateAttendant(t *testing.T) {
	f := newTestAuthService()
	shop := &domain.AuthContext{Role: domain.RoleShop, TokenID: "t1"}
	manager := &domain.AuthContext{Role: domain.RoleManager, TokenID: "t2"}
	attendant := &domain.AuthContext{Role: domain.RoleAttendant, TokenID: "t3"}

	resp, err := f.svc.CreateAttendant(context.Background(), shop, domain.AttendantRequest{Name: "ann", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "Successfully created attendant", resp.Message)

	_, err = f.svc.CreateAttendant(context.Background(), manager, domain.AttendantRequest{Name: "bob", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, 2, f.store.AttendantCount())

	_, err = f.svc.CreateAttendant(context.Background(), attendant, domain.AttendantRequest{Name: "cat", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.CreateAttendant(context.Background(), nil, domain.AttendantRequest{Name: "cat", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.svc.CreateAttendant(context.Background(), shop, domain.AttendantRequest{Name: "ann", Password: "other"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	_, err = f.svc.CreateAttendant(context.Background(), shop, domain.AttendantRequest{Name: "dan"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, 2, f.store.AttendantCount())
}

func TestAuthService_CreateAttendant_StoreError(t *testing.T) {
	f := newTestAuthService()
	f.store.FailOn("CreateAttendant", errors.New("disk full"))
	shop := &domain.AuthContext{Role: domain.RoleShop, TokenID: "t1"}

	_, err := f.svc.CreateAttendant(context.Background(), shop, domain.AttendantRequest{Name: "ann", Password: "pw"})

	require.ErrorIs(t, err, domain.ErrStore)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 1, f.store.Rollbacks())
	assert.Equal(t, 0, f.store.AttendantCount())
}

func TestAuthService_LoginAttendant(t *testing.T) {
	f := newTestAuthService()
	shop := &domain.AuthContext{Role: domain.RoleShop, TokenID: "t1"}
	_, err := f.svc.CreateAttendant(context.Background(), shop, domain.AttendantRequest{Name: "ann", Password: "pw"})
	require.NoError(t, err)

	resp, err := f.svc.LoginAttendant(context.Background(), shop, domain.AttendantRequest{Name: "ann", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "ann", resp.Username)
	assert.Equal(t, domain.RoleAttendant, f.claims(t, resp.AccessToken).Role)

	_, err = f.svc.LoginAttendant(context.Background(), shop, domain.AttendantRequest{Name: "ann", Password: "px"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.svc.LoginAttendant(context.Background(), shop, domain.AttendantRequest{Name: "nobody", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	attendantCaller := &domain.AuthContext{Role: domain.RoleAttendant, TokenID: "t9"}
	_, err = f.svc.LoginAttendant(context.Background(), attendantCaller, domain.AttendantRequest{Name: "ann", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAuthService_ResetManagerPassword(t *testing.T) {
	f := newTestAuthService()
	f.register(t, "Acme", "a@x.com", "p1")
	ctx := context.Background()

	_, err := f.svc.ResetManagerPassword(ctx, domain.ResetPasswordRequest{OldPassword: "wrong", NewPassword: "n3w"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.svc.ResetManagerPassword(ctx, domain.ResetPasswordRequest{OldPassword: domain.DefaultManagerPassword})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	resp, err := f.svc.ResetManagerPassword(ctx, domain.ResetPasswordRequest{
		OldPassword: domain.DefaultManagerPassword,
		NewPassword: "n3w",
	})
	require.NoError(t, err)
	assert.Equal(t, "Password successfully reset", resp.Message)

	_, err = f.svc.LoginManager(ctx, domain.ManagerLoginRequest{Password: domain.DefaultManagerPassword})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "old password must stop working")

	_, err = f.svc.LoginManager(ctx, domain.ManagerLoginRequest{Password: "n3w"})
	assert.NoError(t, err, "new password must work")

	moved, err := f.store.ListManagersByLookupKey(ctx, f.adapter.PasswordLookupKey("n3w"))
	require.NoError(t, err)
	assert.Len(t, moved, 1, "reset must rekey the manager")
	stale, err := f.store.ListManagersByLookupKey(ctx, f.adapter.PasswordLookupKey(domain.DefaultManagerPassword))
	require.NoError(t, err)
	assert.Empty(t, stale)
}

func TestAuthService_ResetManagerPassword_RollsBack(t *testing.T) {
	f := newTestAuthService()
	f.register(t, "Acme", "a@x.com", "p1")
	f.store.FailOn("UpdateManagerPassword", errors.New("write failed"))

	_, err := f.svc.ResetManagerPassword(context.Background(), domain.ResetPasswordRequest{
		OldPassword: domain.DefaultManagerPassword,
		NewPassword: "n3w",
	})
	require.Error(t, err)
	f.store.FailOn("UpdateManagerPassword", nil)

	_, err = f.svc.LoginManager(context.Background(), domain.ManagerLoginRequest{Password: domain.DefaultManagerPassword})
	assert.NoError(t, err)
}

func TestAuthService_ValidateToken(t *testing.T) {
	f := newTestAuthService()
	f.register(t, "Acme", "a@x.com", "p1")
	login, err := f.svc.LoginShop(context.Background(), domain.ShopLoginRequest{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)

	expired, _ := f.adapter.GenerateToken(&domain.TokenClaims{
		TokenID:   "old",
		Role:      domain.RoleShop,
		Type:      domain.TokenTypeAccess,
		IssuedAt:  time.Now().Add(-2 * time.Hour).Unix(),
		ExpiresAt: time.Now().Add(-1 * time.Hour).Unix(),
	})
	unknownRole, _ := f.adapter.GenerateToken(&domain.TokenClaims{
		TokenID:   "x",
		Role:      domain.Role("admin"),
		Type:      domain.TokenTypeAccess,
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"access token", login.AccessToken, nil},
		{"refresh token", login.RefreshToken, domain.ErrTokenInvalid},
		{"empty token", "", domain.ErrTokenInvalid},
		{"garbage", "not-a-token!", domain.ErrTokenInvalid},
		{"expired", expired, domain.ErrTokenExpired},
		{"unknown role", unknownRole, domain.ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authCtx, err := f.svc.ValidateToken(context.Background(), tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.RoleShop, authCtx.Role)
			assert.NotEmpty(t, authCtx.TokenID)
		})
	}
}

func TestAuthService_ValidateToken_LedgerError(t *testing.T) {
	f := newTestAuthService()
	authCtx := f.shopSession(t)
	token, _ := f.adapter.GenerateToken(&domain.TokenClaims{
		TokenID:   authCtx.TokenID,
		Role:      domain.RoleShop,
		Type:      domain.TokenTypeAccess,
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	})
	f.ledger.SetError(domain.ErrStore)

	_, err := f.svc.ValidateToken(context.Background(), token)

	assert.ErrorIs(t, err, domain.ErrStore)
}

func TestAuthService_Logout(t *testing.T) {
	f := newTestAuthService()
	f.register(t, "Acme", "a@x.com", "p1")
	login, err := f.svc.LoginShop(context.Background(), domain.ShopLoginRequest{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)

	authCtx, err := f.svc.ValidateToken(context.Background(), login.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(context.Background(), authCtx))

	_, err = f.svc.ValidateToken(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)

	// Signature and expiry are still fine; only the ledger rejects it.
	claims := f.claims(t, login.AccessToken)
	assert.False(t, claims.IsExpired())
}

func TestAuthService_Logout_Idempotent(t *testing.T) {
	f := newTestAuthService()
	authCtx := f.shopSession(t)

	require.NoError(t, f.svc.Logout(context.Background(), authCtx))
	require.NoError(t, f.svc.Logout(context.Background(), authCtx))

	assert.Equal(t, 1, f.ledger.Len())
}

func TestAuthService_Logout_LeavesRefreshTokenAlone(t *testing.T) {
	f := newTestAuthService()
	f.register(t, "Acme", "a@x.com", "p1")
	login, err := f.svc.LoginShop(context.Background(), domain.ShopLoginRequest{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)
	authCtx, err := f.svc.ValidateToken(context.Background(), login.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(context.Background(), authCtx))

	refresh := f.claims(t, login.RefreshToken)
	revoked, err := f.ledger.IsRevoked(context.Background(), refresh.TokenID)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestAuthService_Logout_Errors(t *testing.T) {
	f := newTestAuthService()

	assert.ErrorIs(t, f.svc.Logout(context.Background(), nil), domain.ErrUnauthorized)

	f.ledger.SetError(domain.ErrStore)
	err := f.svc.Logout(context.Background(), &domain.AuthContext{Role: domain.RoleShop, TokenID: "t1"})
	assert.ErrorIs(t, err, domain.ErrStore)
}
