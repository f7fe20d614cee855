package app

import (
	"go-attendance/internal/attendance"
	"go-attendance/internal/auth"
	"go-attendance/internal/holiday"
	"go-attendance/internal/leave"
	"go-attendance/internal/user"

	"gorm.io/gorm"
)

// outbox_events and id_counters are written through raw SQL, so their
// schema is kept here rather than derived from a model.
var rawDDL = []string{
	`CREATE TABLE IF NOT EXISTS outbox_events (
	id UUID PRIMARY KEY,
	request_id VARCHAR(100),
	aggregate_type VARCHAR(50) NOT NULL,
	aggregate_id VARCHAR(100) NOT NULL,
	event_type VARCHAR(100) NOT NULL,
	topic VARCHAR(200) NOT NULL,
	payload JSONB NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'pending',
	retry_count INT NOT NULL DEFAULT 0,
	next_retry_at TIMESTAMPTZ,
	error_message TEXT,
	processed_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_events_status_created ON outbox_events (status, created_at)`,
	`CREATE TABLE IF NOT EXISTS id_counters (
	counter_type VARCHAR(50) PRIMARY KEY,
	last_value BIGINT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&user.User{},
		&attendance.Attendance{},
		&leave.Leave{},
		&holiday.Holiday{},
		&auth.PasswordResetChallenge{},
	); err != nil {
		return err
	}
	for _, stmt := range rawDDL {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
