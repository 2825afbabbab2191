package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"authcore/internal/entity"
	"authcore/internal/repository"
	"authcore/internal/utils"

	"github.com/sirupsen/logrus"
)

const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

// AuthService is the account lifecycle orchestrator: registration, email
// verification, login, and both password-reset flows. All secret mutation
// funnels through the PasswordHasher before anything is persisted.
type AuthService struct {
	users         repository.UserRepository
	verifications repository.VerificationRepository
	groups        repository.GroupRepository

	emailSender  EmailSender
	passwordHash PasswordHasher
	tokens       TokenIssuer
	clock        Clock
	logger       *logrus.Logger
	config       AuthConfig
}

func NewAuthService(
	users repository.UserRepository,
	verifications repository.VerificationRepository,
	groups repository.GroupRepository,
	emailSender EmailSender,
	passwordHash PasswordHasher,
	tokens TokenIssuer,
	clock Clock,
	logger *logrus.Logger,
	config AuthConfig,
) *AuthService {
	return &AuthService{
		users:         users,
		verifications: verifications,
		groups:        groups,
		emailSender:   emailSender,
		passwordHash:  passwordHash,
		tokens:        tokens,
		clock:         clock,
		logger:        logger,
		config:        config,
	}
}

// Register creates an unverified user and dispatches a verification code.
// The dispatch is at-least-attempted: a send failure is logged but never
// fails the registration, and the pending flag is cleared either way.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (string, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return "", ErrMissingFields
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrEmailTaken
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return "", err
	}

	user := entity.NewUser(name, email, hash, s.now())
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	if err := s.sendVerificationCode(ctx, user.ID, user.Email); err != nil {
		return "", err
	}
	if err := s.users.ClearVerificationPending(ctx, user.ID); err != nil {
		s.log().WithError(err).WithField("user_id", user.ID).Error("clear verification pending")
	}
	return user.ID, nil
}

// ConfirmEmail consumes the presented code and activates the account.
// A stale or reused code fails cleanly without touching the user.
func (s *AuthService) ConfirmEmail(ctx context.Context, userID string, code string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(code) == "" {
		return ErrInvalidOrExpiredCode
	}

	if err := s.verifications.Consume(ctx, userID, code, s.now()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidOrExpiredCode
		}
		return err
	}

	if err := s.users.SetActive(ctx, userID, true); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// Login checks credentials and returns a session token. Unknown email and
// wrong password produce the same error, with a dummy hash comparison on the
// unknown-email path so the two cannot be told apart by timing either.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return "", ErrMissingFields
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		_ = s.passwordHash.Verify(dummyPasswordHash, input.Password)
		s.log().WithField("email", email).Info("login failed")
		return "", ErrInvalidCredentials
	}

	if !s.passwordHash.Verify(user.PasswordHash, input.Password) {
		s.log().WithField("user_id", user.ID).Info("login failed")
		return "", ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", ErrAccountNotVerified
	}

	if err := s.users.StampLastLogin(ctx, user.ID, s.now()); err != nil {
		s.log().WithError(err).WithField("user_id", user.ID).Error("stamp last login")
	}

	token, err := s.tokens.IssueSessionToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return "", err
	}
	s.log().WithField("user_id", user.ID).Info("login success")
	return token, nil
}

// ForgotPassword issues a fresh verification code for the reset flow,
// invalidating any outstanding one.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.findByEmailRequired(ctx, email)
	if err != nil {
		return err
	}
	return s.sendVerificationCode(ctx, user.ID, user.Email)
}

// ForgotPasswordLink is the signed-link variant: a short-lived reset token
// embedded in a URL instead of an emailed code. The two flows do not
// interoperate; this token is useless on the code path and vice versa.
func (s *AuthService) ForgotPasswordLink(ctx context.Context, email string) error {
	user, err := s.findByEmailRequired(ctx, email)
	if err != nil {
		return err
	}

	token, err := s.tokens.IssueResetToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return err
	}
	link := strings.TrimRight(s.config.AppBaseURL, "/") + "/auth/reset-password/link/" + token
	if s.emailSender == nil {
		return nil
	}
	return s.emailSender.SendResetLink(ctx, user.Email, link)
}

// ResetPassword is the canonical code flow: the caller must present a valid,
// unexpired code along with the new password. The code is consumed before
// the secret is replaced.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if strings.TrimSpace(code) == "" || newPassword == "" {
		return ErrMissingFields
	}

	user, err := s.findByEmailRequired(ctx, email)
	if err != nil {
		return err
	}

	if err := s.verifications.Consume(ctx, user.ID, code, s.now()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidOrExpiredCode
		}
		return err
	}

	return s.replaceSecret(ctx, user.ID, newPassword)
}

// ResetPasswordWithToken is the signed-link flow. Expired and malformed
// tokens are distinguished so callers can message accordingly.
func (s *AuthService) ResetPasswordWithToken(ctx context.Context, token, newPassword string) error {
	if strings.TrimSpace(token) == "" || newPassword == "" {
		return ErrMissingFields
	}

	claims, err := s.tokens.VerifyResetToken(token)
	if err != nil {
		if errors.Is(err, utils.ErrTokenExpired) {
			return ErrResetTokenExpired
		}
		return ErrResetTokenInvalid
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	return s.replaceSecret(ctx, user.ID, newPassword)
}

func (s *AuthService) GetUser(ctx context.Context, id string) (*entity.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *AuthService) ListUsers(ctx context.Context, limit, offset int) ([]entity.User, error) {
	return s.users.List(ctx, limit, offset)
}

func (s *AuthService) CreateGroup(ctx context.Context, name string) (*entity.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingFields
	}
	group := entity.NewGroup(name, s.now())
	if err := s.groups.CreateGroup(ctx, group); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return group, nil
}

func (s *AuthService) ListGroups(ctx context.Context) ([]entity.Group, error) {
	return s.groups.ListGroups(ctx)
}

func (s *AuthService) CreatePermission(ctx context.Context, name string) (*entity.Permission, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingFields
	}
	permission := entity.NewPermission(name, s.now())
	if err := s.groups.CreatePermission(ctx, permission); err != nil {
		return nil, err
	}
	return permission, nil
}

func (s *AuthService) ListPermissions(ctx context.Context) ([]entity.Permission, error) {
	return s.groups.ListPermissions(ctx)
}

// sendVerificationCode mints a code, atomically replaces any outstanding
// record for the user, and dispatches it. Dispatch failure is logged, not
// propagated: the persisted record stands and the caller's request succeeds.
func (s *AuthService) sendVerificationCode(ctx context.Context, userID, email string) error {
	code, err := utils.GenerateVerificationCode(s.config.CodeLength)
	if err != nil {
		return err
	}

	record := entity.NewVerificationRecord(userID, code, s.now(), s.codeTTL())
	if err := s.verifications.Issue(ctx, record); err != nil {
		return err
	}

	if s.emailSender == nil {
		return nil
	}
	if err := s.emailSender.SendVerificationCode(ctx, email, code); err != nil {
		s.log().WithError(err).WithField("user_id", userID).Error("send verification email")
	}
	return nil
}

func (s *AuthService) findByEmailRequired(ctx context.Context, email string) (*entity.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrMissingFields
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownEmail
	}
	return user, nil
}

func (s *AuthService) replaceSecret(ctx context.Context, userID, newPassword string) error {
	hash, err := s.passwordHash.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.ReplaceSecret(ctx, userID, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *AuthService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}

func (s *AuthService) codeTTL() time.Duration {
	if s.config.CodeTTL > 0 {
		return s.config.CodeTTL
	}
	return 10 * time.Minute
}

func (s *AuthService) log() *logrus.Logger {
	if s.logger == nil {
		return logrus.StandardLogger()
	}
	return s.logger
}
