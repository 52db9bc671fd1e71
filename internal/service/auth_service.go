package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wardrobe/internal/domain"
	"wardrobe/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 10

	// TokenExpiration is the session token lifetime
	TokenExpiration = 7 * 24 * time.Hour
)

// dummyHash keeps login timing uniform when the email is unknown: the
// bcrypt comparison runs either way.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token has expired")
)

// Claims represents the session token claims
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// AuthService defines the interface for registration, login and
// session token verification. Tokens are self-contained; no session
// state is held server-side.
type AuthService interface {
	Register(ctx context.Context, email, username, name, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Verify(ctx context.Context, tokenString string) (*domain.User, error)
}

type authService struct {
	userRepo  repository.UserRepository
	jwtSecret string
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(userRepo repository.UserRepository, jwtSecret string) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

// Register creates a new account with a hashed password and returns
// it with an issued session token. Email and username are each
// checked for prior use so the caller learns which one conflicted.
func (s *authService) Register(ctx context.Context, email, username, name, password string) (*domain.User, string, error) {
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, "", repository.ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, "", repository.ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, "", fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		Name:         name,
		PasswordHash: string(hashedPassword),
		Role:         "user",
		CreatedAt:    time.Now(),
	}

	// The unique constraints back this up against a concurrent
	// registration racing the checks above.
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) || errors.Is(err, repository.ErrUsernameTaken) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password yield the same error.
func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// Verify checks the token's signature and expiry, then resolves the
// referenced user. A token referencing a user that no longer exists
// is invalid, not expired.
func (s *authService) Verify(ctx context.Context, tokenString string) (*domain.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	return user, nil
}

func (s *authService) generateToken(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(TokenExpiration)
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
