package newsportal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user account with a bcrypt-hashed password.
// A taken email yields ErrDuplicate.
func (u *Manager) Register(ctx context.Context, email, password, name string) (*User, error) {
	email = normalizeEmail(email)

	existing, err := u.db.UserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("db get user by email: %w", err)
	} else if existing != nil {
		return nil, fmt.Errorf("email %q: %w", email, ErrDuplicate)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := u.db.CreateUser(ctx, User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		CreatedAt:    u.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("db create user: %w", err)
	}

	return user, nil
}

// Authenticate checks the credentials and returns the user, or ErrUnauthorized
// for an unknown email or a wrong password.
func (u *Manager) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := u.db.UserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("db get user by email: %w", err)
	} else if user == nil {
		return nil, ErrUnauthorized
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return nil, ErrUnauthorized
	} else if err != nil {
		return nil, fmt.Errorf("compare password: %w", err)
	}

	return user, nil
}

func (u *Manager) UserByEmail(ctx context.Context, email string) (*User, error) {
	user, err := u.db.UserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("db get user by email: %w", err)
	}

	return user, nil
}

func (u *Manager) UserByID(ctx context.Context, id int) (*User, error) {
	user, err := u.db.UserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("db get user by id: %w", err)
	}

	return user, nil
}
