// Package auth implements the session-backed access gate: login, logout
// and per-request authorization of the two bookkeeping roles.
package auth

import (
	"context"
	"errors"
	"fmt"

	"invoicebook/internal/database"
	"invoicebook/internal/models"
	"invoicebook/internal/password"

	"github.com/gin-contrib/sessions"
)

const (
	sessionUserKey = "user_id"
	// sessionRoleKey is informational only; Authorize always takes the
	// role from the user store.
	sessionRoleKey = "role"
)

var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserStore is the part of the user repository the gate needs.
type UserStore interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type Gate struct {
	users UserStore
}

func NewGate(users UserStore) *Gate {
	return &Gate{users: users}
}

// Login binds sess to the user on success. A failed attempt leaves the
// session as it was.
func (g *Gate) Login(ctx context.Context, sess sessions.Session, username, plain string) (*models.User, error) {
	user, err := g.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !password.Verify(plain, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	sess.Clear()
	sess.Set(sessionUserKey, user.ID)
	sess.Set(sessionRoleKey, string(user.Role))
	if err := sess.Save(); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return user, nil
}

// Logout always succeeds from the caller's point of view; an absent
// session is already logged out.
func (g *Gate) Logout(sess sessions.Session) error {
	sess.Clear()
	return sess.Save()
}

// Authorize resolves the session's user and checks it against roles.
// No roles means any authenticated user.
func (g *Gate) Authorize(ctx context.Context, sess sessions.Session, roles ...models.UserRole) (*models.User, error) {
	userID, ok := sess.Get(sessionUserKey).(uint)
	if !ok || userID == 0 {
		return nil, ErrUnauthenticated
	}

	user, err := g.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user %d: %w", userID, err)
	}

	if err := CheckRole(user, roles...); err != nil {
		return nil, err
	}
	return user, nil
}

func CheckRole(user *models.User, roles ...models.UserRole) error {
	if len(roles) == 0 {
		return nil
	}
	for _, r := range roles {
		if user.Role == r {
			return nil
		}
	}
	return ErrForbidden
}
