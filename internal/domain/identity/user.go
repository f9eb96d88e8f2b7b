package identity

import (
	"time"

	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role represents a user's role within an agency
type Role string

const (
	// RoleAgent is a field-sales agent: creates orders, invoices, returns.
	RoleAgent Role = "AGENT"
	// RoleSuperuser can additionally approve or reject pending orders.
	RoleSuperuser Role = "SUPERUSER"
)

// IsValid checks if the role is a valid Role
func (r Role) IsValid() bool {
	return r == RoleAgent || r == RoleSuperuser
}

// User represents an authenticated actor belonging to an agency
type User struct {
	shared.AgencyAggregateRoot
	Username     string
	PasswordHash string
	DisplayName  string
	Role         Role
	Active       bool
	LastLoginAt  *time.Time
}

// NewUser creates a new user with a bcrypt-hashed password
func NewUser(agencyID uuid.UUID, username, password, displayName string, role Role) (*User, error) {
	if username == "" {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		AgencyAggregateRoot: shared.NewAgencyAggregateRoot(agencyID),
		Username:            username,
		PasswordHash:        string(hash),
		DisplayName:         displayName,
		Role:                role,
		Active:              true,
	}, nil
}

// VerifyPassword checks the given password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RecordLogin stamps the last successful login time
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// IsSuperuser reports whether the user can approve pending orders
func (u *User) IsSuperuser() bool {
	return u.Role == RoleSuperuser
}

// Deactivate disables the account
func (u *User) Deactivate() {
	u.Active = false
	u.UpdatedAt = time.Now()
}
