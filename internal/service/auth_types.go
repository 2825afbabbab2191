package service

import (
	"context"
	"time"

	"authcore/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

type AuthConfig struct {
	CodeLength int
	CodeTTL    time.Duration
	AppBaseURL string
}

// EmailSender is the notification gateway: an abstract send-message
// capability. Delivery mechanics live behind it.
type EmailSender interface {
	SendVerificationCode(ctx context.Context, email string, code string) error
	SendResetLink(ctx context.Context, email string, link string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

// TokenIssuer mints and checks signed bearer tokens. utils.TokenManager is
// the production implementation.
type TokenIssuer interface {
	IssueSessionToken(userID, email string, isAdmin bool) (string, error)
	IssueResetToken(userID, email string, isAdmin bool) (string, error)
	VerifyResetToken(token string) (*utils.AuthClaims, error)
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

type BcryptPasswordHasher struct {
	Cost int
}

func (h BcryptPasswordHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h BcryptPasswordHasher) Verify(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
