package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the credential-store document. PasswordHash is the only secret
// field and is always written through the service hashing funnel; plaintext
// never reaches this struct.
type User struct {
	ID           string `bson:"_id"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash"`

	Username  string `bson:"username,omitempty"`
	FirstName string `bson:"first_name,omitempty"`
	LastName  string `bson:"last_name,omitempty"`

	IsAdmin     bool `bson:"is_admin"`
	IsActive    bool `bson:"is_active"`
	IsStaff     bool `bson:"is_staff"`
	IsSuperuser bool `bson:"is_superuser"`

	// VerificationPending is set exactly once at construction and cleared
	// exactly once after the verification dispatch attempt. It is never
	// re-derived from other fields.
	VerificationPending bool `bson:"verification_pending"`

	LastLogin *time.Time `bson:"last_login,omitempty"`

	Groups          []string `bson:"groups,omitempty"`
	UserPermissions []string `bson:"user_permissions,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewUser builds an unverified user. The display name is split the way the
// register flow always has: first token becomes the last name, second token
// the first name.
func NewUser(name, email, passwordHash string, now time.Time) *User {
	user := &User{
		ID:                  uuid.New().String(),
		Email:               strings.TrimSpace(email),
		PasswordHash:        passwordHash,
		Username:            name,
		IsActive:            false,
		VerificationPending: true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	parts := strings.Fields(name)
	if len(parts) > 0 {
		user.LastName = parts[0]
	}
	if len(parts) > 1 {
		user.FirstName = parts[1]
	}
	return user
}
