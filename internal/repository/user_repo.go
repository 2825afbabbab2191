package repository

import (
	"context"
	"time"

	"authcore/internal/entity"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// UserRepository is the credential store. It only ever sees password
// digests; hashing happens in the service layer, exactly once per mutation.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	SetActive(ctx context.Context, id string, active bool) error
	ReplaceSecret(ctx context.Context, id string, passwordHash string) error
	StampLastLogin(ctx context.Context, id string, at time.Time) error
	ClearVerificationPending(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]entity.User, error)
}

type userRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{col: db.Collection(ColUsers)}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	_, err := r.col.InsertOne(ctx, user)
	return wrapError(err)
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return findOne[entity.User](ctx, r.col, bson.D{{Key: "_id", Value: id}})
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return findOne[entity.User](ctx, r.col, bson.D{{Key: "email", Value: email}})
}

func (r *userRepository) SetActive(ctx context.Context, id string, active bool) error {
	return updateByID(ctx, r.col, id, bson.D{
		{Key: "is_active", Value: active},
		{Key: "updated_at", Value: time.Now()},
	})
}

func (r *userRepository) ReplaceSecret(ctx context.Context, id string, passwordHash string) error {
	return updateByID(ctx, r.col, id, bson.D{
		{Key: "password_hash", Value: passwordHash},
		{Key: "updated_at", Value: time.Now()},
	})
}

func (r *userRepository) StampLastLogin(ctx context.Context, id string, at time.Time) error {
	return updateByID(ctx, r.col, id, bson.D{{Key: "last_login", Value: at}})
}

func (r *userRepository) ClearVerificationPending(ctx context.Context, id string) error {
	return updateByID(ctx, r.col, id, bson.D{{Key: "verification_pending", Value: false}})
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]entity.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	if offset > 0 {
		opts = opts.SetSkip(int64(offset))
	}
	return findMany[entity.User](ctx, r.col, bson.D{}, opts)
}
