package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"authcore/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	svc    *AuthService
	users  *fakeUserRepo
	codes  *fakeVerificationRepo
	sender *recordingSender
	clock  *fakeClock
	tokens utils.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	users := newFakeUserRepo()
	codes := newFakeVerificationRepo()
	sender := newRecordingSender()
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	tokens := utils.TokenManager{Secret: []byte("test-secret"), Issuer: "authcore-test"}

	svc := NewAuthService(
		users,
		codes,
		&fakeGroupRepo{},
		sender,
		BcryptPasswordHasher{Cost: bcrypt.MinCost},
		tokens,
		clock,
		nil,
		AuthConfig{CodeLength: 6, CodeTTL: 10 * time.Minute, AppBaseURL: "http://localhost:8080"},
	)
	return &testEnv{svc: svc, users: users, codes: codes, sender: sender, clock: clock, tokens: tokens}
}

func (e *testEnv) register(t *testing.T, name, email, password string) string {
	t.Helper()
	userID, err := e.svc.Register(context.Background(), RegisterInput{Name: name, Email: email, Password: password})
	require.NoError(t, err)
	require.NotEmpty(t, userID)
	return userID
}

func TestRegisterCreatesUnverifiedUser(t *testing.T) {
	env := newTestEnv(t)
	userID := env.register(t, "Ada Lovelace", "ada@x.com", "pw123456")

	user, err := env.users.FindByID(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.False(t, user.IsActive, "fresh users are never active")
	assert.False(t, user.VerificationPending, "pending flag cleared after dispatch")
	assert.Equal(t, "Ada", user.LastName)
	assert.Equal(t, "Lovelace", user.FirstName)
	assert.NotEqual(t, "pw123456", user.PasswordHash, "plaintext must never be stored")

	record, ok := env.codes.records[userID]
	require.True(t, ok, "exactly one verification record after registration")
	assert.Equal(t, env.sender.codes["ada@x.com"], record.Code)
	assert.Equal(t, env.clock.now.Add(10*time.Minute), record.ExpiresAt)
}

func TestRegisterMissingFields(t *testing.T) {
	env := newTestEnv(t)
	cases := []RegisterInput{
		{Email: "ada@x.com", Password: "pw123456"},
		{Name: "Ada", Password: "pw123456"},
		{Name: "Ada", Email: "ada@x.com"},
		{Name: "   ", Email: "ada@x.com", Password: "pw123456"},
	}
	for _, input := range cases {
		_, err := env.svc.Register(context.Background(), input)
		assert.ErrorIs(t, err, ErrMissingFields)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Ada Lovelace", "ada@x.com", "pw123456")

	_, err := env.svc.Register(context.Background(), RegisterInput{
		Name: "Someone Else", Email: "ada@x.com", Password: "different1",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterSucceedsWhenDispatchFails(t *testing.T) {
	env := newTestEnv(t)
	env.sender.fail = true

	userID, err := env.svc.Register(context.Background(), RegisterInput{
		Name: "Ada Lovelace", Email: "ada@x.com", Password: "pw123456",
	})
	require.NoError(t, err, "notification failure must not fail registration")

	_, ok := env.codes.records[userID]
	assert.True(t, ok, "verification record persists despite dispatch failure")

	user, err := env.users.FindByID(context.Background(), userID)
	require.NoError(t, err)
	assert.False(t, user.VerificationPending, "flag cleared even when dispatch fails")
}

func TestConfirmEmailActivatesUser(t *testing.T) {
	env := newTestEnv(t)
	userID := env.register(t, "Ada Lovelace", "ada@x.com", "pw123456")
	code := env.sender.codes["ada@x.com"]

	err := env.svc.ConfirmEmail(context.Background(), userID, "WRONG1")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)

	require.NoError(t, env.svc.ConfirmEmail(context.Background(), userID, code))

	user, err := env.users.FindByID(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, user.IsActive)

	// Single-use: the same code fails the second time.
	err = env.svc.ConfirmEmail(context.Background(), userID, code)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)
}

func TestReissueInvalidatesPriorCode(t *testing.T) {
	env := newTestEnv(t)
	userID := env.register(t, "Ada Lovelace", "ada@x.com", "pw123456")
	first := env.sender.codes["ada@x.com"]

	require.NoError(t, env.svc.ForgotPassword(context.Background(), "ada@x.com"))
	second := env.sender.codes["ada@x.com"]

	require.NotEqual(t, first, second)

	err := env.svc.ConfirmEmail(context.Background(), userID, first)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode, "first code invalid once second issued")

	require.NoError(t, env.svc.ConfirmEmail(context.Background(), userID, second))
}

func TestCodeRejectedAfterExpiry(t *testing.T) {
	env := newTestEnv(t)
	userID := env.register(t, "Ada Lovelace", "ada@x.com", "pw123456")
	code := env.sender.codes["ada@x.com"]

	env.clock.Advance(10 * time.Minute)

	err := env.svc.ConfirmEmail(context.Background(), userID, code)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)
}

func TestLoginEnumerationResistance(t *testing.T) {
	env := newTestEnv(t)
	userID := env.register(t, "Ada Lovelace", "ada@x.com", "pw123456")
	require.NoError(t, env.svc.ConfirmEmail(context.Background(), userID, env.sender.codes["ada@x.com"]))

	_, badPassword := env.svc.Login(context.Background(), LoginInput{Email: "ada@x.com", Password: "wrong-pw"})
	_, unknownEmail := env.svc.Login(context.Background(), LoginInput{Email: "nobody@x.com", Password: "pw123456"})

	assert.ErrorIs(t, badPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, badPassword.Error(), unknownEmail.Error(), "same error shape for both factors")
}

func TestLoginRequiresActiveAccount(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Ada Lovelace", "ada@x.com", "pw123456")

	_, err := env.svc.Login(context.Background(), LoginInput{Email: "ada@x.com", Password: "pw123456"})
	assert.ErrorIs(t, err, ErrAccountNotVerified)
}

func TestLoginIssuesSessionToken(t *testing.T) {
	env := newTestEnv(t)
	userID := env.register(t, "Ada Lovelace", "ada@x.com", "pw123456")
	require.NoError(t, env.svc.ConfirmEmail(context.Background(), userID, env.sender.codes["ada@x.com"]))

	token, err := env.svc.Login(context.Background(), LoginInput{Email: "ada@x.com", Password: "pw123456"})
	require.NoError(t, err)

	claims, err := env.tokens.VerifySessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.Subject)
	assert.Equal(t, "ada@x.com", claims.Email)

	user, err := env.users.FindByID(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, user.LastLogin)
	assert.Equal(t, env.clock.now, *user.LastLogin)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	env := newTestEnv(t)
	err := env.svc.ForgotPassword(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, ErrUnknownEmail)
}

func TestResetPasswordCodeFlow(t *testing.T) {
	env := newTestEnv(t)
	userID := env.register(t, "Ada Lovelace", "ada@x.com", "pw123456")
	require.NoError(t, env.svc.ConfirmEmail(context.Background(), userID, env.sender.codes["ada@x.com"]))

	require.NoError(t, env.svc.ForgotPassword(context.Background(), "ada@x.com"))
	code := env.sender.codes["ada@x.com"]

	err := env.svc.ResetPassword(context.Background(), "ada@x.com", "WRONG1", "newpw1234")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode, "reset requires a valid code")

	require.NoError(t, env.svc.ResetPassword(context.Background(), "ada@x.com", code, "newpw1234"))

	_, err = env.svc.Login(context.Background(), LoginInput{Email: "ada@x.com", Password: "pw123456"})
	assert.ErrorIs(t, err, ErrInvalidCredentials, "old password no longer valid")

	_, err = env.svc.Login(context.Background(), LoginInput{Email: "ada@x.com", Password: "newpw1234"})
	assert.NoError(t, err, "new password validates")

	err = env.svc.ResetPassword(context.Background(), "ada@x.com", code, "anotherpw1")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode, "code is single-use")
}

func TestResetPasswordTokenFlow(t *testing.T) {
	env := newTestEnv(t)
	userID := env.register(t, "Ada Lovelace", "ada@x.com", "pw123456")
	require.NoError(t, env.svc.ConfirmEmail(context.Background(), userID, env.sender.codes["ada@x.com"]))

	require.NoError(t, env.svc.ForgotPasswordLink(context.Background(), "ada@x.com"))
	link := env.sender.links["ada@x.com"]
	require.NotEmpty(t, link)
	token := link[strings.LastIndex(link, "/")+1:]

	require.NoError(t, env.svc.ResetPasswordWithToken(context.Background(), token, "newpw1234"))

	_, err := env.svc.Login(context.Background(), LoginInput{Email: "ada@x.com", Password: "newpw1234"})
	assert.NoError(t, err)
}

func TestResetPasswordTokenFlowRejectsSessionToken(t *testing.T) {
	env := newTestEnv(t)
	userID := env.register(t, "Ada Lovelace", "ada@x.com", "pw123456")
	require.NoError(t, env.svc.ConfirmEmail(context.Background(), userID, env.sender.codes["ada@x.com"]))

	session, err := env.svc.Login(context.Background(), LoginInput{Email: "ada@x.com", Password: "pw123456"})
	require.NoError(t, err)

	err = env.svc.ResetPasswordWithToken(context.Background(), session, "newpw1234")
	assert.ErrorIs(t, err, ErrResetTokenInvalid, "session tokens cannot complete a reset")
}

func TestResetPasswordTokenFlowExpired(t *testing.T) {
	env := newTestEnv(t)
	userID := env.register(t, "Ada Lovelace", "ada@x.com", "pw123456")
	require.NoError(t, env.svc.ConfirmEmail(context.Background(), userID, env.sender.codes["ada@x.com"]))

	expiring := utils.TokenManager{Secret: []byte("test-secret"), Issuer: "authcore-test", ResetTTL: time.Millisecond}
	token, err := expiring.IssueResetToken(userID, "ada@x.com", false)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	err = env.svc.ResetPasswordWithToken(context.Background(), token, "newpw1234")
	assert.ErrorIs(t, err, ErrResetTokenExpired)
}

func TestResetPasswordTokenFlowGarbage(t *testing.T) {
	env := newTestEnv(t)
	err := env.svc.ResetPasswordWithToken(context.Background(), "not-a-token", "newpw1234")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestCreateGroup(t *testing.T) {
	env := newTestEnv(t)
	group, err := env.svc.CreateGroup(context.Background(), "editors")
	require.NoError(t, err)
	assert.Equal(t, "editors", group.Name)

	_, err = env.svc.CreateGroup(context.Background(), "editors")
	assert.ErrorIs(t, err, ErrNameTaken)

	groups, err := env.svc.ListGroups(context.Background())
	require.NoError(t, err)
	assert.Len(t, groups, 1)
}

func TestCreatePermission(t *testing.T) {
	env := newTestEnv(t)
	permission, err := env.svc.CreatePermission(context.Background(), "users.read")
	require.NoError(t, err)
	assert.Equal(t, "users.read", permission.Name)
	assert.NotEmpty(t, permission.ID)

	_, err = env.svc.CreatePermission(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrMissingFields)

	permissions, err := env.svc.ListPermissions(context.Background())
	require.NoError(t, err)
	assert.Len(t, permissions, 1)
}
