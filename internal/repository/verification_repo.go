package repository

import (
	"context"
	"time"

	"authcore/internal/entity"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// VerificationRepository is the verification ledger. Records are keyed by
// user id, so the upsert in Issue enforces the single-outstanding-code
// invariant atomically; the TTL index on expires_at removes abandoned codes.
type VerificationRepository interface {
	// Issue replaces any outstanding record for the user with the new one.
	Issue(ctx context.Context, record *entity.VerificationRecord) error
	// Consume atomically removes the record matching user and code provided
	// it has not expired. ErrNotFound covers absent, stale and expired codes
	// alike; callers cannot tell which, per the ledger contract.
	Consume(ctx context.Context, userID, code string, now time.Time) error
}

type verificationRepository struct {
	col *mongo.Collection
}

func NewVerificationRepository(db *mongo.Database) VerificationRepository {
	return &verificationRepository{col: db.Collection(ColVerifications)}
}

func (r *verificationRepository) Issue(ctx context.Context, record *entity.VerificationRecord) error {
	filter := bson.D{{Key: "_id", Value: record.UserID}}
	_, err := r.col.ReplaceOne(ctx, filter, record, options.Replace().SetUpsert(true))
	return wrapError(err)
}

func (r *verificationRepository) Consume(ctx context.Context, userID, code string, now time.Time) error {
	filter := bson.D{
		{Key: "_id", Value: userID},
		{Key: "code", Value: code},
		{Key: "expires_at", Value: bson.D{{Key: "$gt", Value: now}}},
	}
	err := r.col.FindOneAndDelete(ctx, filter).Err()
	return wrapError(err)
}
