package auth

import (
	"time"

	"github.com/google/uuid"
)

const ChallengeValidity = 10 * time.Minute

// PasswordResetChallenge is a one-time code; at most one per email is live.
type PasswordResetChallenge struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"-"`
	Email     string    `gorm:"column:email;type:varchar(255);not null;index" json:"email"`
	Code      string    `gorm:"column:code;type:varchar(6);not null" json:"code"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
}

func (PasswordResetChallenge) TableName() string {
	return "password_reset_challenges"
}

func (c PasswordResetChallenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
