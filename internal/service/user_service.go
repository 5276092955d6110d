package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"todo-server/internal/auth"
	"todo-server/internal/domain"
	"todo-server/internal/repository"
	"todo-server/internal/worker"
)

// AuthResult is returned by both Register and Login so a client can
// authenticate immediately after registering.
type AuthResult struct {
	ID       int64
	Username string
	Token    string
}

// UserService handles account lifecycle: registration and login.
type UserService interface {
	Register(ctx context.Context, username, password string) (*AuthResult, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
}

type userService struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
	tokens *auth.TokenService
	pool   *worker.Pool
}

func NewUserService(users repository.UserRepository, hasher auth.PasswordHasher, tokens *auth.TokenService, pool *worker.Pool) UserService {
	return &userService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		pool:   pool,
	}
}

func (s *userService) Register(ctx context.Context, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}

	var id int64
	err := s.pool.Do(ctx, func() error {
		hash, err := s.hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		id, err = s.users.Create(ctx, username, hash)
		return err
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(id, username)
	if err != nil {
		return nil, err
	}
	return &AuthResult{ID: id, Username: username, Token: token}, nil
}

// Login authenticates a username/password pair. An unknown username and
// a wrong password both fail with domain.ErrInvalidCredentials and
// nothing else, so the caller cannot tell which one it was.
func (s *userService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	var user *domain.User
	err := s.pool.Do(ctx, func() error {
		found, err := s.users.GetByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrInvalidCredentials
			}
			return err
		}

		ok, err := s.hasher.Verify(password, found.PasswordHash)
		if err != nil {
			return fmt.Errorf("verify password: %w", err)
		}
		if !ok {
			return domain.ErrInvalidCredentials
		}
		user = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &AuthResult{ID: user.ID, Username: user.Username, Token: token}, nil
}
