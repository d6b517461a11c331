package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/PaulBabatuyi/msgBoard-REST/internal/data"
	"github.com/PaulBabatuyi/msgBoard-REST/internal/normalize"
)

// Fixed error messages of the user operations. These exact strings are
// the service contract; anything else a store produces is logged and
// replaced.
const (
	errUsernameExists   = "Username already exists"
	errUserNotFound     = "User not found"
	errInvalidCreds     = "Invalid credentials"
	errCreateUserFailed = "Failed to create user"
	errGetUserFailed    = "Failed to get user"
	errLoginFailed      = "Failed to login"
	errDeleteUserFailed = "Failed to delete user"
	errUpdateUserFailed = "Failed to update user"
)

// UserStore is the persistence port the user service depends on.
// *data.UsersStore satisfies it; tests substitute fakes.
type UserStore interface {
	CreateUser(ctx context.Context, username, password string) (*data.User, error)
	GetUserByUsername(ctx context.Context, username string) (*data.User, error)
	DeleteUserByUsername(ctx context.Context, username string) (*data.User, error)
	UpdateUser(ctx context.Context, username string, patch data.UserPatch) (*data.User, error)
}

// Credentials is the inbound username/password pair, raw as received.
type Credentials struct {
	Username string
	Password string
}

// UserService implements the user account operations over an injected
// store.
type UserService struct {
	users UserStore
}

// NewUserService returns a UserService backed by the given store.
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// SaveUser creates a new account from the candidate credentials.
// Username and password are trimmed before storage; a taken username
// yields "Username already exists".
func (s *UserService) SaveUser(ctx context.Context, cand Credentials) Result[data.SafeUser] {
	username := normalize.Field(cand.Username)
	password := normalize.Field(cand.Password)

	user, err := s.users.CreateUser(ctx, username, password)
	if err != nil {
		if errors.Is(err, data.ErrDuplicate) {
			return Fail[data.SafeUser](errUsernameExists)
		}
		log.Error().Err(err).Str("username", username).Msg("create user failed")
		return Fail[data.SafeUser](errCreateUserFailed)
	}

	return OK(user.Safe())
}

// GetUserByUsername looks up an account and returns its safe projection.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) Result[data.SafeUser] {
	username = normalize.Field(username)

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return Fail[data.SafeUser](errUserNotFound)
		}
		log.Error().Err(err).Str("username", username).Msg("get user failed")
		return Fail[data.SafeUser](errGetUserFailed)
	}

	return OK(user.Safe())
}

// LoginUser checks the candidate credentials against the stored record.
// The stored password must exactly equal the supplied trimmed password.
// A username or password that is blank after trimming is treated as no
// match and never reaches the store.
func (s *UserService) LoginUser(ctx context.Context, cand Credentials) Result[data.SafeUser] {
	username := normalize.Field(cand.Username)
	password := normalize.Field(cand.Password)

	if username == "" || password == "" {
		return Fail[data.SafeUser](errInvalidCreds)
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return Fail[data.SafeUser](errInvalidCreds)
		}
		log.Error().Err(err).Str("username", username).Msg("login lookup failed")
		return Fail[data.SafeUser](errLoginFailed)
	}

	if user.Password != password {
		return Fail[data.SafeUser](errInvalidCreds)
	}

	return OK(user.Safe())
}

// DeleteUserByUsername removes an account and returns the safe
// projection of the removed record.
func (s *UserService) DeleteUserByUsername(ctx context.Context, username string) Result[data.SafeUser] {
	username = normalize.Field(username)

	user, err := s.users.DeleteUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return Fail[data.SafeUser](errUserNotFound)
		}
		log.Error().Err(err).Str("username", username).Msg("delete user failed")
		return Fail[data.SafeUser](errDeleteUserFailed)
	}

	return OK(user.Safe())
}

// UpdateUser applies the recognized present fields of the patch
// (username, password), each trimmed, and returns the post-update safe
// projection.
func (s *UserService) UpdateUser(ctx context.Context, username string, patch data.UserPatch) Result[data.SafeUser] {
	username = normalize.Field(username)

	if patch.Username != nil {
		trimmed := normalize.Field(*patch.Username)
		patch.Username = &trimmed
	}
	if patch.Password != nil {
		trimmed := normalize.Field(*patch.Password)
		patch.Password = &trimmed
	}

	user, err := s.users.UpdateUser(ctx, username, patch)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return Fail[data.SafeUser](errUserNotFound)
		}
		log.Error().Err(err).Str("username", username).Msg("update user failed")
		return Fail[data.SafeUser](errUpdateUserFailed)
	}

	return OK(user.Safe())
}
