package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/saifaleee/MetroArt/internal/user"
)

// ErrInvalidCredentials is returned when the email/password pair does not match.
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserStore is the identity persistence surface the service needs.
// *user.Service satisfies it.
type UserStore interface {
	Create(ctx context.Context, username, email, passwordHash string) (*user.User, error)
	GetByID(ctx context.Context, id string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// Service contains the business logic for password-based authentication.
type Service struct {
	userSvc UserStore
	tokens  *TokenManager
}

// NewService creates a new auth Service.
func NewService(userSvc UserStore, tokens *TokenManager) *Service {
	return &Service{userSvc: userSvc, tokens: tokens}
}

// Register creates a new user account and issues a bearer token.
func (s *Service) Register(ctx context.Context, username, email, password string) (string, *user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.userSvc.Create(ctx, username, email, string(hash))
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(u.ID, u.Username)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, u, nil
}

// Login validates the credentials and issues a bearer token.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	u, err := s.userSvc.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Username)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, u, nil
}

// CurrentUser re-checks a verified token subject against the live user store.
// Tokens outlive account deletion, so mutating callers must use this lookup
// rather than trusting the claims alone.
func (s *Service) CurrentUser(ctx context.Context, userID string) (*user.User, error) {
	return s.userSvc.GetByID(ctx, userID)
}
