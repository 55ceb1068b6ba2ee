package domain

import "time"

// Role identifies which credential scheme a session was issued for
type Role string

const (
	RoleShop      Role = "shop"      // Shop owner, email + password
	RoleManager   Role = "manager"   // Manager pool, password only
	RoleAttendant Role = "attendant" // Attendant, name + password
)

// IsValid reports whether r is one of the fixed roles
func (r Role) IsValid() bool {
	switch r {
	case RoleShop, RoleManager, RoleAttendant:
		return true
	}
	return false
}

// TokenType distinguishes access tokens from refresh tokens
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// TokenClaims represents the JWT token payload
type TokenClaims struct {
	TokenID   string    `json:"jti"`
	Role      Role      `json:"role"`
	Type      TokenType `json:"typ"`
	IssuedAt  int64     `json:"iat"`
	ExpiresAt int64     `json:"exp"`
}

// IsExpired checks if the claims are past their expiry
func (c *TokenClaims) IsExpired() bool {
	return time.Now().Unix() > c.ExpiresAt
}

// TokenPair is minted on every successful login
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthContext contains the authenticated token info for request context
type AuthContext struct {
	Role      Role      `json:"role"`
	TokenID   string    `json:"token_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CanManageAttendants checks if the caller may create attendants or
// open attendant sessions
func (a *AuthContext) CanManageAttendants() bool {
	return a.Role == RoleShop || a.Role == RoleManager
}

// RegisterRequest creates a shop account
type RegisterRequest struct {
	ShopName string `json:"shop_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

// RegisterResponse is returned after a shop account is created
type RegisterResponse struct {
	ShopName string `json:"shop_name"`
	Message  string `json:"msg"`
}

// ShopLoginRequest represents a shop login attempt
type ShopLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ShopLoginResponse is returned after a successful shop login
type ShopLoginResponse struct {
	ShopName string `json:"shop_name"`
	TokenPair
}

// ManagerLoginRequest represents a manager login attempt
type ManagerLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// ManagerLoginResponse is returned after a successful manager login
type ManagerLoginResponse struct {
	User Role `json:"user"`
	TokenPair
}

// AttendantRequest carries attendant credentials, for creation and login
type AttendantRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,max=72"`
}

// AttendantLoginResponse is returned after a successful attendant login
type AttendantLoginResponse struct {
	Username string `json:"username"`
	TokenPair
}

// ResetPasswordRequest replaces a manager password
type ResetPasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,max=72"`
}

// MessageResponse is a plain acknowledgement
type MessageResponse struct {
	Message string `json:"msg"`
}
