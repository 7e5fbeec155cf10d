package service

import (
	"context"
	"errors"
	"time"

	"github.com/sakshamkanojia19/wishlist-server/internal/apierr"
	"github.com/sakshamkanojia19/wishlist-server/internal/auth"
	"github.com/sakshamkanojia19/wishlist-server/internal/data"
)

// Accounts handles signup and login on top of the opaque hash/verify
// and signed-credential capabilities.
type Accounts struct {
	users  UsersStore
	tokens *auth.JWTManager
}

// NewAccounts returns an account service over the given store and token
// manager.
func NewAccounts(users UsersStore, tokens *auth.JWTManager) *Accounts {
	return &Accounts{users: users, tokens: tokens}
}

// Session is the result of a successful signup or login.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserView  `json:"user"`
}

// Signup registers a new user and issues a token. Email uniqueness is
// backed by the unique index, surfaced here as Conflict.
func (s *Accounts) Signup(ctx context.Context, email, password, name string) (*Session, error) {
	if email == "" || password == "" {
		return nil, apierr.BadRequest("email and password required")
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, apierr.Internal("failed to hash password", err)
	}

	user, err := s.users.CreateUser(ctx, email, hashed, name)
	if err != nil {
		if errors.Is(err, data.ErrDuplicate) {
			return nil, apierr.Conflict("email already registered")
		}
		return nil, apierr.Internal("failed to create user", err)
	}

	return s.session(user)
}

// Login verifies credentials and issues a token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Accounts) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, apierr.BadRequest("email and password required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return nil, apierr.BadRequest("invalid credentials")
		}
		return nil, apierr.Internal("failed to look up user", err)
	}

	if err := auth.CheckPassword(user.Password, password); err != nil {
		return nil, apierr.BadRequest("invalid credentials")
	}

	return s.session(user)
}

// Profile returns the caller-facing view of an already-authenticated user.
func (s *Accounts) Profile(user *data.User) UserView {
	return UserView{
		ID:        user.ID.Hex(),
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}

func (s *Accounts) session(user *data.User) (*Session, error) {
	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, apierr.Internal("failed to generate token", err)
	}
	return &Session{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      s.Profile(user),
	}, nil
}
