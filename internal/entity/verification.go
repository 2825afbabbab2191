package entity

import "time"

// VerificationRecord is a short-lived, single-use code proving control of an
// email address. The document is keyed by the owning user id, so at most one
// record can exist per user: issuing a new code replaces any outstanding one
// in a single write. Expired records are garbage-collected by a TTL index on
// expires_at.
type VerificationRecord struct {
	UserID    string    `bson:"_id"`
	Code      string    `bson:"code"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

func NewVerificationRecord(userID, code string, now time.Time, ttl time.Duration) *VerificationRecord {
	return &VerificationRecord{
		UserID:    userID,
		Code:      code,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}
