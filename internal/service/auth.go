package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pageza/recipes/backend/internal/database"
	"github.com/pageza/recipes/backend/internal/logging"
	"github.com/pageza/recipes/backend/internal/models"
	"github.com/pageza/recipes/backend/internal/types"
	"github.com/pageza/recipes/backend/internal/validator"
	"golang.org/x/crypto/bcrypt"
)

// AuthService registers accounts and verifies credentials and tokens
type AuthService struct {
	users     UserStore
	validator *validator.Validator
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// NewAuthService creates a new AuthService instance
func NewAuthService(users UserStore, v *validator.Validator, jwtSecret string, tokenTTL time.Duration, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		validator: v,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		logger:    logger,
		now:       time.Now,
	}
}

// Register creates an account with a bcrypt hashed password and the user role
func (s *AuthService) Register(ctx context.Context, email, password string) error {
	if !s.validator.ValidateEmail(email) || !s.validator.ValidatePassword(password) {
		return ErrBadInput
	}

	exists, err := s.users.Exists(ctx, email)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if exists {
		return ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return fmt.Errorf("register: %w", err)
	}

	logging.FromContext(ctx, s.logger).Info("user registered", "email", email)
	return nil
}

// Authenticate checks an email and password pair
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, database.ErrRecordNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// Login authenticates the account and issues a signed token for it
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}
	return s.GenerateToken(user)
}

// GenerateToken issues an HS256 token whose subject is the account email
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := s.now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		Role: user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a token issued by GenerateToken
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}
	if claims.Email() == "" {
		return nil, ErrUnauthorized
	}
	return claims, nil
}
