package user

import (
	"strings"
	"time"

	"github.com/gearshare/service-rental/internal/domain"
	"github.com/google/uuid"
)

// User is the aggregate root for a marketplace account. The same account
// acts as host when it lists items and as renter when it books them.
type User struct {
	id           uuid.UUID
	email        string
	name         string
	avatarURL    string
	passwordHash string

	averageRating float64
	reviewCount   int

	isAdmin   bool
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a new User with zeroed rating aggregates. The password
// hash is produced by the auth layer; the aggregate never sees plaintext.
func NewUser(email, name, avatarURL, passwordHash string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("a valid email is required")
	}
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	if passwordHash == "" {
		return nil, domain.NewValidationError("password hash is required")
	}

	now := time.Now().UTC()
	return &User{
		id:           uuid.New(),
		email:        email,
		name:         name,
		avatarURL:    avatarURL,
		passwordHash: passwordHash,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser rebuilds a User from persistence data (no validation).
func ReconstructUser(
	id uuid.UUID,
	email, name, avatarURL, passwordHash string,
	averageRating float64,
	reviewCount int,
	isAdmin bool,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:            id,
		email:         email,
		name:          name,
		avatarURL:     avatarURL,
		passwordHash:  passwordHash,
		averageRating: averageRating,
		reviewCount:   reviewCount,
		isAdmin:       isAdmin,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// ID returns the user's unique identifier.
func (u *User) ID() uuid.UUID { return u.id }

// Email returns the user's email address.
func (u *User) Email() string { return u.email }

// Name returns the user's display name.
func (u *User) Name() string { return u.name }

// AvatarURL returns the user's avatar URL, or "" if unset.
func (u *User) AvatarURL() string { return u.avatarURL }

// PasswordHash returns the bcrypt hash of the user's password.
func (u *User) PasswordHash() string { return u.passwordHash }

// AverageRating returns the externally maintained rating aggregate.
func (u *User) AverageRating() float64 { return u.averageRating }

// ReviewCount returns the externally maintained review count.
func (u *User) ReviewCount() int { return u.reviewCount }

// IsAdmin returns true if the user holds the admin role.
func (u *User) IsAdmin() bool { return u.isAdmin }

// CreatedAt returns the creation timestamp.
func (u *User) CreatedAt() time.Time { return u.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// UpdateProfile replaces the user's display name and avatar.
func (u *User) UpdateProfile(name, avatarURL string) error {
	if name == "" {
		return domain.NewValidationError("name is required")
	}
	u.name = name
	u.avatarURL = avatarURL
	u.updatedAt = time.Now().UTC()
	return nil
}
