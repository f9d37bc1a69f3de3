// Package auth is the mock account layer: an in-memory user directory and
// a login kept in the browser session.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`

	passwordHash []byte
}

type UserNew struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Directory keeps accounts in memory. They are lost on restart.
type Directory struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byEmail map[string]*User
	cost    int
}

// NewDirectory returns an empty directory hashing passwords with the given
// bcrypt cost; zero means bcrypt.DefaultCost.
func NewDirectory(cost int) *Directory {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Directory{
		byID:    make(map[string]*User),
		byEmail: make(map[string]*User),
		cost:    cost,
	}
}

func (d *Directory) Create(_ context.Context, nu UserNew, role string) (User, error) {
	email := normalize(nu.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(nu.Password), d.cost)
	if err != nil {
		return User{}, fmt.Errorf("hashing password: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.byEmail[email]; ok {
		return User{}, ErrEmailTaken
	}

	u := &User{
		ID:           uuid.NewString(),
		Name:         nu.Name,
		Email:        email,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
		passwordHash: hash,
	}
	d.byID[u.ID] = u
	d.byEmail[email] = u

	return *u, nil
}

func (d *Directory) Authenticate(_ context.Context, cred Credentials) (User, error) {
	d.mu.RLock()
	u, ok := d.byEmail[normalize(cred.Email)]
	d.mu.RUnlock()

	if !ok {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(cred.Password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return *u, nil
}

func (d *Directory) Fetch(_ context.Context, id string) (User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	u, ok := d.byID[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return *u, nil
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
