package driving

import (
	"context"

	"github.com/custodia-labs/shop-auth/internal/core/domain"
)

// AuthService handles shop, manager and attendant authentication
type AuthService interface {
	// Register creates a shop account and seeds one manager with the default passphrase
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error)

	// LoginShop validates shop email and password and issues a shop session
	LoginShop(ctx context.Context, req domain.ShopLoginRequest) (*domain.ShopLoginResponse, error)

	// LoginManager validates a manager password and issues a manager session
	LoginManager(ctx context.Context, req domain.ManagerLoginRequest) (*domain.ManagerLoginResponse, error)

	// CreateAttendant creates an attendant account on behalf of an authenticated caller
	CreateAttendant(ctx context.Context, caller *domain.AuthContext, req domain.AttendantRequest) (*domain.MessageResponse, error)

	// LoginAttendant validates attendant credentials and issues an attendant session
	LoginAttendant(ctx context.Context, caller *domain.AuthContext, req domain.AttendantRequest) (*domain.AttendantLoginResponse, error)

	// ResetManagerPassword replaces the password of the manager matching OldPassword
	ResetManagerPassword(ctx context.Context, req domain.ResetPasswordRequest) (*domain.MessageResponse, error)

	// ValidateToken verifies signature, expiry and revocation of an access token
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)

	// Logout revokes the presented access token
	Logout(ctx context.Context, caller *domain.AuthContext) error
}
