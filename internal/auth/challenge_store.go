package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ChallengeStore keeps password reset challenges keyed by email.
//
//go:generate mockgen -source=challenge_store.go -destination=mock/challenge_store_mock.go -package=mock
type ChallengeStore interface {
	// Replace drops any earlier challenge for the email and stores c.
	Replace(ctx context.Context, c PasswordResetChallenge) error
	// Find returns nil, nil when the email has no challenge.
	Find(ctx context.Context, email string) (*PasswordResetChallenge, error)
	Delete(ctx context.Context, email string) error
}

type gormChallengeStore struct {
	db *gorm.DB
}

func NewGormChallengeStore(db *gorm.DB) ChallengeStore {
	return &gormChallengeStore{db: db}
}

func (s *gormChallengeStore) Replace(ctx context.Context, c PasswordResetChallenge) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", c.Email).Delete(&PasswordResetChallenge{}).Error; err != nil {
			return err
		}
		return tx.Create(&c).Error
	})
}

func (s *gormChallengeStore) Find(ctx context.Context, email string) (*PasswordResetChallenge, error) {
	var c PasswordResetChallenge
	err := s.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *gormChallengeStore) Delete(ctx context.Context, email string) error {
	return s.db.WithContext(ctx).Where("email = ?", email).Delete(&PasswordResetChallenge{}).Error
}

const challengeKeyPrefix = "pwreset:"

// expired entries outlive their validity briefly so a late attempt is reported
// as expired rather than invalid
const challengeGrace = time.Hour

type redisChallengeStore struct {
	rdb *redis.Client
}

func NewRedisChallengeStore(rdb *redis.Client) ChallengeStore {
	return &redisChallengeStore{rdb: rdb}
}

func ChallengeKey(email string) string {
	return challengeKeyPrefix + email
}

func (s *redisChallengeStore) Replace(ctx context.Context, c PasswordResetChallenge) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return err
	}
	ttl := time.Until(c.ExpiresAt) + challengeGrace
	return s.rdb.Set(ctx, ChallengeKey(c.Email), payload, ttl).Err()
}

func (s *redisChallengeStore) Find(ctx context.Context, email string) (*PasswordResetChallenge, error) {
	val, err := s.rdb.Get(ctx, ChallengeKey(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var c PasswordResetChallenge
	if err := json.Unmarshal(val, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *redisChallengeStore) Delete(ctx context.Context, email string) error {
	return s.rdb.Del(ctx, ChallengeKey(email)).Err()
}
