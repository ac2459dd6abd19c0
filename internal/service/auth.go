package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/pkordes/panda-market/internal/domain"
	"github.com/pkordes/panda-market/internal/repo"
)

// bcryptCost is the work factor for password hashing.
const bcryptCost = 12

// TokenIssuer issues and verifies the JWT pairs used by the auth flow.
// Satisfied by *token.Manager; declared here so tests can stub it.
type TokenIssuer interface {
	IssuePair(userID int64) (access, refresh string, err error)
	ParseRefresh(raw string) (int64, error)
}

// TokenPair is an issued access/refresh pair.
type TokenPair struct {
	Access  string
	Refresh string
}

// AuthService implements signup, login, refresh rotation, and logout.
type AuthService struct {
	store  Store
	users  repo.UserRepo
	tokens repo.TokenRepo
	issuer TokenIssuer
}

// NewAuthService constructs an AuthService backed by the provided repos and
// token issuer.
func NewAuthService(store Store, users repo.UserRepo, tokens repo.TokenRepo, issuer TokenIssuer) *AuthService {
	return &AuthService{store: store, users: users, tokens: tokens, issuer: issuer}
}

// SignupInput carries the fields for a new account.
type SignupInput struct {
	Email    string
	Nickname string
	Password string
	Image    string
}

// Signup registers a new user. The password is bcrypt-hashed before it
// touches the store. A duplicate email surfaces as domain.ErrConflict, with
// the email unique constraint as the backstop for concurrent signups.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (domain.User, error) {
	if err := validateSignup(in); err != nil {
		return domain.User{}, err
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Signup: email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, fmt.Errorf("service.AuthService.Signup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Signup: hash: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{
		Email:    in.Email,
		Nickname: in.Nickname,
		Password: string(hash),
		Image:    in.Image,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Signup: %w", err)
	}
	return user, nil
}

// Login verifies credentials and returns the user with a fresh token pair.
// The refresh token is persisted so it can be rotated and revoked. Unknown
// email and wrong password both map to domain.ErrUnauthorized — the caller
// cannot distinguish which was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, TokenPair, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return domain.User{}, TokenPair{}, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, TokenPair{}, fmt.Errorf("service.AuthService.Login: %w", domain.ErrUnauthorized)
		}
		return domain.User{}, TokenPair{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return domain.User{}, TokenPair{}, fmt.Errorf("service.AuthService.Login: %w", domain.ErrUnauthorized)
	}

	pair, err := s.issuePersistedPair(ctx, s.tokens, user.ID)
	if err != nil {
		return domain.User{}, TokenPair{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}
	return user, pair, nil
}

// Refresh rotates a refresh token: the presented token must verify and
// still exist in the store; it is then deleted and the replacement inserted
// in the same transaction, so a token can never be redeemed twice.
func (s *AuthService) Refresh(ctx context.Context, refresh string) (TokenPair, error) {
	userID, err := s.issuer.ParseRefresh(refresh)
	if err != nil {
		return TokenPair{}, fmt.Errorf("service.AuthService.Refresh: %w", err)
	}

	var pair TokenPair
	err = s.store.InTx(ctx, func(r repo.Repos) error {
		if _, err := r.Tokens.Get(ctx, refresh); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("refresh token revoked: %w", domain.ErrUnauthorized)
			}
			return err
		}
		if err := r.Tokens.Delete(ctx, refresh); err != nil {
			return err
		}
		pair, err = s.issuePersistedPair(ctx, r.Tokens, userID)
		return err
	})
	if err != nil {
		return TokenPair{}, fmt.Errorf("service.AuthService.Refresh: %w", err)
	}
	return pair, nil
}

// Logout revokes a refresh token. Revoking an unknown token is a no-op, so
// logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, refresh string) error {
	if refresh == "" {
		return nil
	}
	if err := s.tokens.Delete(ctx, refresh); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("service.AuthService.Logout: %w", err)
	}
	return nil
}

// issuePersistedPair issues a pair and stores its refresh half.
func (s *AuthService) issuePersistedPair(ctx context.Context, tokens repo.TokenRepo, userID int64) (TokenPair, error) {
	access, refresh, err := s.issuer.IssuePair(userID)
	if err != nil {
		return TokenPair{}, err
	}
	if err := tokens.Save(ctx, refresh, userID); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

func validateSignup(in SignupInput) error {
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return fmt.Errorf("%w: a valid email is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Nickname) == "" {
		return fmt.Errorf("%w: nickname is required", domain.ErrValidation)
	}
	if len(in.Password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", domain.ErrValidation)
	}
	return nil
}
