package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/custodia-labs/shop-auth/internal/core/domain"
	"github.com/custodia-labs/shop-auth/internal/core/ports/driven"
	"github.com/custodia-labs/shop-auth/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 30 * 24 * time.Hour
)

// AuthServiceConfig holds the dependencies of the auth service
type AuthServiceConfig struct {
	Store       driven.CredentialStore
	TxManager   driven.TxManager
	Ledger      driven.RevocationLedger
	AuthAdapter driven.AuthAdapter
	Logger      *slog.Logger
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
}

// authService implements the AuthService interface
type authService struct {
	store       driven.CredentialStore
	txManager   driven.TxManager
	ledger      driven.RevocationLedger
	authAdapter driven.AuthAdapter
	validator   *requestValidator
	logger      *slog.Logger
	accessTTL   time.Duration
	refreshTTL  time.Duration
	newID       func() string
}

// NewAuthService creates a new AuthService
func NewAuthService(cfg AuthServiceConfig) driving.AuthService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	accessTTL := cfg.AccessTTL
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	refreshTTL := cfg.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}

	return &authService{
		store:       cfg.Store,
		txManager:   cfg.TxManager,
		ledger:      cfg.Ledger,
		authAdapter: cfg.AuthAdapter,
		validator:   newRequestValidator(),
		logger:      logger.With("service", "auth"),
		accessTTL:   accessTTL,
		refreshTTL:  refreshTTL,
		newID:       generateID,
	}
}

// Register creates a shop account together with its seeded manager
func (s *authService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	// Fast path; the unique constraint still decides concurrent registrations.
	if _, err := s.store.GetShopByEmail(ctx, req.Email); err == nil {
		return nil, domain.ErrAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	shopHash, err := s.authAdapter.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash shop password: %w", err)
	}
	managerHash, err := s.authAdapter.HashPassword(domain.DefaultManagerPassword)
	if err != nil {
		return nil, fmt.Errorf("hash manager password: %w", err)
	}

	now := time.Now()
	shop := &domain.Shop{
		ID:           s.newID(),
		ShopName:     req.ShopName,
		Email:        req.Email,
		PasswordHash: shopHash,
		CreatedAt:    now,
	}
	manager := &domain.Manager{
		ID:           s.newID(),
		PasswordHash: managerHash,
		LookupKey:    s.authAdapter.PasswordLookupKey(domain.DefaultManagerPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.txManager.WithinTx(ctx, func(store driven.CredentialStore) error {
		if err := store.CreateShop(ctx, shop); err != nil {
			return err
		}
		return store.CreateManager(ctx, manager)
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.ErrAlreadyExists
		}
		s.logger.Error("register shop failed", "error", err)
		return nil, err
	}

	s.logger.Info("shop registered", "shop_id", shop.ID)

	return &domain.RegisterResponse{
		ShopName: shop.ShopName,
		Message: fmt.Sprintf(
			"Shop account successfully created. Your temporary manager pass key is %s. You are advised to set a stronger one in the settings option.",
			domain.DefaultManagerPassword,
		),
	}, nil
}

// LoginShop validates shop credentials and issues a shop session
func (s *authService) LoginShop(ctx context.Context, req domain.ShopLoginRequest) (*domain.ShopLoginResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	shop, err := s.store.GetShopByEmail(ctx, req.Email)
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.Warn("shop login rejected")
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !s.authAdapter.VerifyPassword(req.Password, shop.PasswordHash) {
		s.logger.Warn("shop login rejected", "shop_id", shop.ID)
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issueSession(domain.RoleShop)
	if err != nil {
		return nil, err
	}

	s.logger.Info("shop logged in", "shop_id", shop.ID)

	return &domain.ShopLoginResponse{
		ShopName:  shop.ShopName,
		TokenPair: *pair,
	}, nil
}

// LoginManager authenticates against the manager pool
func (s *authService) LoginManager(ctx context.Context, req domain.ManagerLoginRequest) (*domain.ManagerLoginResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	managers, err := s.store.ListManagersByLookupKey(ctx, s.authAdapter.PasswordLookupKey(req.Password))
	if err != nil {
		return nil, err
	}

	manager := s.matchManager(managers, req.Password)
	if manager == nil {
		s.logger.Warn("manager login rejected")
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issueSession(domain.RoleManager)
	if err != nil {
		return nil, err
	}

	s.logger.Info("manager logged in", "manager_id", manager.ID)

	return &domain.ManagerLoginResponse{
		User:      domain.RoleManager,
		TokenPair: *pair,
	}, nil
}

// CreateAttendant creates an attendant account for a shop or manager caller
func (s *authService) CreateAttendant(ctx context.Context, caller *domain.AuthContext, req domain.AttendantRequest) (*domain.MessageResponse, error) {
	if err := s.authorizeAttendantAccess(caller); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	hash, err := s.authAdapter.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash attendant password: %w", err)
	}

	attendant := &domain.Attendant{
		ID:           s.newID(),
		Name:         req.Name,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	err = s.txManager.WithinTx(ctx, func(store driven.CredentialStore) error {
		return store.CreateAttendant(ctx, attendant)
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.ErrAlreadyExists
		}
		s.logger.Error("create attendant failed", "error", err, "caller_role", caller.Role)
		if !errors.Is(err, domain.ErrStore) {
			err = fmt.Errorf("%w: %v", domain.ErrStore, err)
		}
		return nil, err
	}

	s.logger.Info("attendant created", "attendant_id", attendant.ID, "caller_role", caller.Role)

	return &domain.MessageResponse{Message: "Successfully created attendant"}, nil
}

// LoginAttendant validates attendant credentials and issues an attendant session
func (s *authService) LoginAttendant(ctx context.Context, caller *domain.AuthContext, req domain.AttendantRequest) (*domain.AttendantLoginResponse, error) {
	if err := s.authorizeAttendantAccess(caller); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	attendant, err := s.store.GetAttendantByName(ctx, req.Name)
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.Warn("attendant login rejected")
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !s.authAdapter.VerifyPassword(req.Password, attendant.PasswordHash) {
		s.logger.Warn("attendant login rejected", "attendant_id", attendant.ID)
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issueSession(domain.RoleAttendant)
	if err != nil {
		return nil, err
	}

	s.logger.Info("attendant logged in", "attendant_id", attendant.ID)

	return &domain.AttendantLoginResponse{
		Username:  attendant.Name,
		TokenPair: *pair,
	}, nil
}

// ResetManagerPassword replaces the hash of the manager matching OldPassword
func (s *authService) ResetManagerPassword(ctx context.Context, req domain.ResetPasswordRequest) (*domain.MessageResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	newHash, err := s.authAdapter.HashPassword(req.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("hash manager password: %w", err)
	}

	newKey := s.authAdapter.PasswordLookupKey(req.NewPassword)

	var managerID string
	err = s.txManager.WithinTx(ctx, func(store driven.CredentialStore) error {
		managers, err := store.ListManagersByLookupKey(ctx, s.authAdapter.PasswordLookupKey(req.OldPassword))
		if err != nil {
			return err
		}

		manager := s.matchManager(managers, req.OldPassword)
		if manager == nil {
			return domain.ErrInvalidCredentials
		}
		managerID = manager.ID

		return store.UpdateManagerPassword(ctx, manager.ID, newHash, newKey)
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			s.logger.Warn("manager password reset rejected")
			return nil, domain.ErrInvalidCredentials
		}
		s.logger.Error("manager password reset failed", "error", err)
		return nil, err
	}

	s.logger.Info("manager password reset", "manager_id", managerID)

	return &domain.MessageResponse{Message: "Password successfully reset"}, nil
}

// ValidateToken verifies an access token and checks the revocation ledger
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}

	// Parse and validate JWT
	claims, err := s.authAdapter.ParseToken(token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	if claims.TokenID == "" || !claims.Role.IsValid() || claims.Type != domain.TokenTypeAccess {
		return nil, domain.ErrTokenInvalid
	}

	// Check expiration
	if claims.IsExpired() {
		return nil, domain.ErrTokenExpired
	}

	revoked, err := s.ledger.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}

	return &domain.AuthContext{
		Role:      claims.Role,
		TokenID:   claims.TokenID,
		ExpiresAt: time.Unix(claims.ExpiresAt, 0),
	}, nil
}

// Logout revokes the presented access token. The refresh token issued
// alongside it is not touched.
func (s *authService) Logout(ctx context.Context, caller *domain.AuthContext) error {
	if caller == nil || caller.TokenID == "" {
		return domain.ErrUnauthorized
	}

	if err := s.ledger.Revoke(ctx, caller.TokenID, caller.ExpiresAt); err != nil {
		s.logger.Error("revoke token failed", "error", err)
		return err
	}

	s.logger.Info("token revoked", "role", caller.Role)
	return nil
}

// issueSession mints the access and refresh tokens for role
func (s *authService) issueSession(role domain.Role) (*domain.TokenPair, error) {
	now := time.Now()

	access, err := s.authAdapter.GenerateToken(&domain.TokenClaims{
		TokenID:   s.newID(),
		Role:      role,
		Type:      domain.TokenTypeAccess,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.accessTTL).Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refresh, err := s.authAdapter.GenerateToken(&domain.TokenClaims{
		TokenID:   s.newID(),
		Role:      role,
		Type:      domain.TokenTypeRefresh,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.refreshTTL).Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// matchManager returns the first manager whose hash verifies password.
// managers are the lookup key candidates, so a miss usually verifies nothing.
func (s *authService) matchManager(managers []*domain.Manager, password string) *domain.Manager {
	for _, m := range managers {
		if s.authAdapter.VerifyPassword(password, m.PasswordHash) {
			return m
		}
	}
	return nil
}

func (s *authService) authorizeAttendantAccess(caller *domain.AuthContext) error {
	if caller == nil {
		return domain.ErrUnauthorized
	}
	if !caller.CanManageAttendants() {
		return domain.ErrForbidden
	}
	return nil
}

// Helper functions

func generateID() string {
	return ulid.Make().String()
}
