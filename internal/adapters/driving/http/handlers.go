package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/custodia-labs/shop-auth/internal/core/domain"
)

// maxBodyBytes caps request bodies; credentials payloads are tiny
const maxBodyBytes = 1 << 16

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Pings PostgreSQL and, when configured, Redis
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "Dependency unavailable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			s.logger.Warn("readiness check failed", "dependency", "postgres", "error", err)
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			s.logger.Warn("readiness check failed", "dependency", "redis", "error", err)
			writeError(w, http.StatusServiceUnavailable, "redis unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: s.version})
}

// Registration and login

// handleRegister godoc
// @Summary      Register shop
// @Description  Create a shop account and seed a manager with the default passkey
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.RegisterRequest  true  "Shop details"
// @Success      201      {object}  domain.RegisterResponse
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      409      {object}  ErrorResponse  "Email already registered"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /api/auth/register [post]
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.authService.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrAlreadyExists):
			writeError(w, http.StatusConflict, "a shop with this email already exists")
		default:
			writeError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// handleLoginShop godoc
// @Summary      Shop login
// @Description  Authenticate with email and password to receive shop tokens
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ShopLoginRequest  true  "Shop credentials"
// @Success      200      {object}  domain.ShopLoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      401      {object}  ErrorResponse  "Invalid credentials"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /api/auth/loginasshop [post]
func (s *Server) handleLoginShop(w http.ResponseWriter, r *http.Request) {
	var req domain.ShopLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.authService.LoginShop(r.Context(), req)
	if err != nil {
		writeLoginError(w, err, "invalid email or password")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleLoginManager godoc
// @Summary      Manager login
// @Description  Authenticate with a manager passkey to receive manager tokens
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ManagerLoginRequest  true  "Manager passkey"
// @Success      200      {object}  domain.ManagerLoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      401      {object}  ErrorResponse  "Invalid password"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /api/auth/loginasmanager [post]
func (s *Server) handleLoginManager(w http.ResponseWriter, r *http.Request) {
	var req domain.ManagerLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.authService.LoginManager(r.Context(), req)
	if err != nil {
		writeLoginError(w, err, "invalid password")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Attendant endpoints

// handleCreateAttendant godoc
// @Summary      Create attendant
// @Description  Create an attendant account. Requires a shop or manager token.
// @Tags         Attendants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.AttendantRequest  true  "Attendant credentials"
// @Success      201      {object}  domain.MessageResponse
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      403      {object}  ErrorResponse  "Shop or manager role required"
// @Failure      409      {object}  ErrorResponse  "Attendant name taken"
// @Failure      500      {object}  ErrorResponse  "Store error, with detail"
// @Router       /api/auth/attendantaccount [post]
func (s *Server) handleCreateAttendant(w http.ResponseWriter, r *http.Request) {
	var req domain.AttendantRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.authService.CreateAttendant(r.Context(), GetAuthContext(r.Context()), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, "unauthorized")
		case errors.Is(err, domain.ErrForbidden):
			writeError(w, http.StatusForbidden, "insufficient permissions")
		case errors.Is(err, domain.ErrAlreadyExists):
			writeError(w, http.StatusConflict, "an attendant with this name already exists")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// handleLoginAttendant godoc
// @Summary      Attendant login
// @Description  Open an attendant session. Requires a shop or manager token.
// @Tags         Attendants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.AttendantRequest  true  "Attendant credentials"
// @Success      200      {object}  domain.AttendantLoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      401      {object}  ErrorResponse  "Invalid credentials"
// @Failure      403      {object}  ErrorResponse  "Shop or manager role required"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /api/auth/loginasattendant [post]
func (s *Server) handleLoginAttendant(w http.ResponseWriter, r *http.Request) {
	var req domain.AttendantRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.authService.LoginAttendant(r.Context(), GetAuthContext(r.Context()), req)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			writeError(w, http.StatusForbidden, "insufficient permissions")
			return
		}
		writeLoginError(w, err, "invalid username or password")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Session endpoints

// handleResetPassword godoc
// @Summary      Reset manager passkey
// @Description  Replace the manager passkey matching old_password
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.ResetPasswordRequest  true  "Old and new passkey"
// @Success      200      {object}  domain.MessageResponse
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      401      {object}  ErrorResponse  "Old password is incorrect"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /api/auth/reset [post]
func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ResetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.authService.ResetManagerPassword(r.Context(), req)
	if err != nil {
		writeLoginError(w, err, "old password is incorrect")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleLogout godoc
// @Summary      Logout
// @Description  Revoke the presented access token. Repeating it with an already revoked token also succeeds.
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.MessageResponse
// @Failure      401  {object}  ErrorResponse  "Invalid token"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /api/auth/logout [get]
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.authService.Logout(r.Context(), GetAuthContext(r.Context())); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		writeError(w, http.StatusInternalServerError, "logout failed")
		return
	}

	writeJSON(w, http.StatusOK, domain.MessageResponse{Message: "Successfully logged out"})
}

// handleRepeatLogout answers a logout whose token is already in the ledger.
// There is nothing left to revoke.
func (s *Server) handleRepeatLogout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.MessageResponse{Message: "Successfully logged out"})
}

// Helper functions

// decodeJSON reads the request body into dst, writing a 400 on failure
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeLoginError maps credential check failures. invalidMsg is the uniform
// 401 message, so callers learn nothing about which field was wrong.
func writeLoginError(w http.ResponseWriter, err error, invalidMsg string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, invalidMsg)
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
