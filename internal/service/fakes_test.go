package service

import (
	"context"
	"time"

	"authcore/internal/entity"
	"authcore/internal/repository"
)

// In-memory repository fakes honoring the same contracts as the mongo
// implementations, including the keyed-by-user single-outstanding-code
// behavior of the verification ledger.

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) SetActive(_ context.Context, id string, active bool) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.IsActive = active
	return nil
}

func (r *fakeUserRepo) ReplaceSecret(_ context.Context, id string, passwordHash string) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) StampLastLogin(_ context.Context, id string, at time.Time) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.LastLogin = &at
	return nil
}

func (r *fakeUserRepo) ClearVerificationPending(_ context.Context, id string) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.VerificationPending = false
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, limit, offset int) ([]entity.User, error) {
	users := []entity.User{}
	for _, user := range r.users {
		users = append(users, *user)
	}
	return users, nil
}

type fakeVerificationRepo struct {
	records map[string]*entity.VerificationRecord
}

func newFakeVerificationRepo() *fakeVerificationRepo {
	return &fakeVerificationRepo{records: make(map[string]*entity.VerificationRecord)}
}

func (r *fakeVerificationRepo) Issue(_ context.Context, record *entity.VerificationRecord) error {
	copied := *record
	r.records[record.UserID] = &copied
	return nil
}

func (r *fakeVerificationRepo) Consume(_ context.Context, userID, code string, now time.Time) error {
	record, ok := r.records[userID]
	if !ok || record.Code != code || !record.ExpiresAt.After(now) {
		return repository.ErrNotFound
	}
	delete(r.records, userID)
	return nil
}

type fakeGroupRepo struct {
	groups      []entity.Group
	permissions []entity.Permission
}

func (r *fakeGroupRepo) CreateGroup(_ context.Context, group *entity.Group) error {
	for _, existing := range r.groups {
		if existing.Name == group.Name {
			return repository.ErrDuplicate
		}
	}
	r.groups = append(r.groups, *group)
	return nil
}

func (r *fakeGroupRepo) ListGroups(_ context.Context) ([]entity.Group, error) {
	return append([]entity.Group{}, r.groups...), nil
}

func (r *fakeGroupRepo) CreatePermission(_ context.Context, permission *entity.Permission) error {
	r.permissions = append(r.permissions, *permission)
	return nil
}

func (r *fakeGroupRepo) ListPermissions(_ context.Context) ([]entity.Permission, error) {
	return append([]entity.Permission{}, r.permissions...), nil
}

// fakeClock lets tests move time past code expiry.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// recordingSender captures dispatched codes and links.
type recordingSender struct {
	codes map[string]string
	links map[string]string
	fail  bool
}

func newRecordingSender() *recordingSender {
	return &recordingSender{codes: make(map[string]string), links: make(map[string]string)}
}

func (s *recordingSender) SendVerificationCode(_ context.Context, email string, code string) error {
	if s.fail {
		return context.DeadlineExceeded
	}
	s.codes[email] = code
	return nil
}

func (s *recordingSender) SendResetLink(_ context.Context, email string, link string) error {
	if s.fail {
		return context.DeadlineExceeded
	}
	s.links[email] = link
	return nil
}
