package transport

import (
	"errors"
	"net/http"
	"time"

	"wardrobe/internal/domain"
	"wardrobe/internal/middleware"
	"wardrobe/internal/repository"
	"wardrobe/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries a session token with the user's public fields
type AuthResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// UserProfile represents a user's public fields; the password hash
// never leaves the service layer
type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthHandler handles HTTP requests for registration, login and
// identity resolution
type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// RegisterRoutes registers all auth routes. The rate limiter guards
// the credential-accepting endpoints only.
func (h *AuthHandler) RegisterRoutes(r chi.Router, rateLimiter func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if rateLimiter != nil {
				r.Use(rateLimiter)
			}
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
		})

		r.Get("/me", h.Me)
	})
}

// Register handles user registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Registration validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.authService.Register(r.Context(), req.Email, req.Username, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			middleware.RespondWithError(w, http.StatusConflict, "email already in use")
		case errors.Is(err, repository.ErrUsernameTaken):
			middleware.RespondWithError(w, http.StatusConflict, "username already in use")
		default:
			h.logger.Error("Registration failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to register user")
		}
		return
	}

	h.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, AuthResponse{
		Token: token,
		User:  toUserProfile(user),
	})
}

// Login handles user authentication
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Login validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid credentials")
			return
		}

		h.logger.Error("Login failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to login")
		return
	}

	h.logger.Info("User logged in", zap.String("user_id", user.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, AuthResponse{
		Token: token,
		User:  toUserProfile(user),
	})
}

// Me resolves the identity behind the bearer token. Verification is
// self-contained: signature and expiry come from the token, only the
// user's public fields come from storage.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	tokenString, ok := middleware.BearerToken(r)
	if !ok {
		middleware.RespondWithErrorCode(w, http.StatusUnauthorized, middleware.CodeTokenInvalid, "missing bearer token")
		return
	}

	user, err := h.authService.Verify(r.Context(), tokenString)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenExpired):
			middleware.RespondWithErrorCode(w, http.StatusUnauthorized, middleware.CodeTokenExpired, "token expired")
		case errors.Is(err, service.ErrTokenInvalid):
			middleware.RespondWithErrorCode(w, http.StatusUnauthorized, middleware.CodeTokenInvalid, "invalid token")
		default:
			h.logger.Error("Token verification failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to verify token")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toUserProfile(user))
}

func toUserProfile(user *domain.User) UserProfile {
	return UserProfile{
		ID:        user.ID.String(),
		Email:     user.Email,
		Username:  user.Username,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}
