package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Column and bcrypt limits.
const (
	MaxUsernameLen = 150
	MaxPasswordLen = 72
)

var (
	ErrInvalidInput       = errors.New("username and password are required")
	ErrUsernameTooLong    = errors.New("username is too long")
	ErrPasswordTooLong    = errors.New("password is too long")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register stores a new account with a bcrypt hash of password. Unknown roles become buyer.
func (s *Service) Register(ctx context.Context, username, password, role string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}
	if utf8.RuneCountInString(username) > MaxUsernameLen {
		return nil, ErrUsernameTooLong
	}
	// bcrypt only looks at the first 72 bytes and refuses anything longer.
	if len(password) > MaxPasswordLen {
		return nil, ErrPasswordTooLong
	}
	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return nil, ErrAlreadyExist
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash error: %w", err)
	}
	u := &User{
		Username:     username,
		PasswordHash: hash,
		Role:         ParseRole(role),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate reports ErrInvalidCredentials for both an unknown user and a wrong password.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
