package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

const (
	TokenKindSession = "session"
	TokenKindReset   = "reset"
)

// AuthClaims is the payload carried by both token kinds. The typ claim keeps
// session and reset tokens non-interoperable: a reset token is never
// accepted where a session token is expected and vice versa.
type AuthClaims struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	Kind    string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 bearer tokens. Session tokens carry
// no expiry; reset tokens expire after ResetTTL.
type TokenManager struct {
	Secret   []byte
	Issuer   string
	ResetTTL time.Duration
}

func (m TokenManager) IssueSessionToken(userID, email string, isAdmin bool) (string, error) {
	return m.issue(userID, email, isAdmin, TokenKindSession, 0)
}

func (m TokenManager) IssueResetToken(userID, email string, isAdmin bool) (string, error) {
	ttl := m.ResetTTL
	if ttl == 0 {
		ttl = 11 * time.Minute
	}
	return m.issue(userID, email, isAdmin, TokenKindReset, ttl)
}

func (m TokenManager) issue(userID, email string, isAdmin bool, kind string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := AuthClaims{
		Email:   email,
		IsAdmin: isAdmin,
		Kind:    kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   m.Issuer,
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.Secret)
}

func (m TokenManager) VerifySessionToken(token string) (*AuthClaims, error) {
	return m.verify(token, TokenKindSession)
}

func (m TokenManager) VerifyResetToken(token string) (*AuthClaims, error) {
	return m.verify(token, TokenKindReset)
}

// verify checks the signature before trusting any claim. Past-expiry is
// reported as ErrTokenExpired; malformed or mis-signed input, or a token of
// the wrong kind, is ErrTokenInvalid.
func (m TokenManager) verify(tokenString string, kind string) (*AuthClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := parsed.Claims.(*AuthClaims)
	if !ok || !parsed.Valid || claims.Kind != kind {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
