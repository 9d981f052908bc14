// Package user contains the user entity and repository contract.
package user

import (
	"strings"
	"time"

	"iothub/internal/shared/errors"
)

// Role is the user's authorization role.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole maps a wire value onto a known role. An empty value defaults to
// RoleUser; anything else unknown is rejected.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case "":
		return RoleUser, nil
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", errors.NewValidationError("Unknown role", value)
	}
}

// User is an account holder. Accounts start disabled and become usable only
// after activation code verification.
type User struct {
	id           uint
	name         string
	lastName     string
	email        string
	passwordHash string
	role         Role
	enabled      bool
	createdAt    time.Time
}

// NewUser creates a disabled user with the given password hash.
func NewUser(name, lastName, email, passwordHash string) (*User, error) {
	name = strings.TrimSpace(name)
	lastName = strings.TrimSpace(lastName)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, errors.NewValidationError("Name is required")
	}
	if email == "" {
		return nil, errors.NewValidationError("Email is required")
	}
	if passwordHash == "" {
		return nil, errors.NewValidationError("Password hash is required")
	}

	return &User{
		name:         name,
		lastName:     lastName,
		email:        email,
		passwordHash: passwordHash,
		role:         RoleUser,
		enabled:      false,
		createdAt:    time.Now().UTC(),
	}, nil
}

// ReconstructUser rebuilds a user from persisted state.
func ReconstructUser(id uint, name, lastName, email, passwordHash string, role Role, enabled bool, createdAt time.Time) *User {
	return &User{
		id:           id,
		name:         name,
		lastName:     lastName,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		enabled:      enabled,
		createdAt:    createdAt,
	}
}

func (u *User) ID() uint             { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) LastName() string     { return u.lastName }
func (u *User) Email() string        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) Enabled() bool        { return u.enabled }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// AssignRole replaces the user's role.
func (u *User) AssignRole(role Role) error {
	if role != RoleUser && role != RoleAdmin {
		return errors.NewValidationError("Unknown role", string(role))
	}
	u.role = role
	return nil
}

// Enable marks the account as activated. Enabling twice is a no-op.
func (u *User) Enable() {
	u.enabled = true
}

// ChangePasswordHash replaces the stored password hash.
func (u *User) ChangePasswordHash(hash string) error {
	if hash == "" {
		return errors.NewValidationError("Password hash is required")
	}
	u.passwordHash = hash
	return nil
}

// SetID assigns the persistence identity after the first insert.
func (u *User) SetID(id uint) {
	u.id = id
}
