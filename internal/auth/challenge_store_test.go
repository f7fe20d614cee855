package auth

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisChallengeStore(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	store := NewRedisChallengeStore(db)

	t.Run("find missing", func(t *testing.T) {
		mock.ExpectGet("pwreset:john@priacc.com").RedisNil()

		c, err := store.Find(ctx, "john@priacc.com")
		assert.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("find existing", func(t *testing.T) {
		stored := PasswordResetChallenge{
			Email:     "john@priacc.com",
			Code:      "123456",
			CreatedAt: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
			ExpiresAt: time.Date(2024, 3, 4, 9, 10, 0, 0, time.UTC),
		}
		raw, _ := json.Marshal(stored)
		mock.ExpectGet("pwreset:john@priacc.com").SetVal(string(raw))

		c, err := store.Find(ctx, "john@priacc.com")
		assert.NoError(t, err)
		assert.Equal(t, "123456", c.Code)
		assert.True(t, c.Expired(time.Date(2024, 3, 4, 9, 11, 0, 0, time.UTC)))
		assert.False(t, c.Expired(time.Date(2024, 3, 4, 9, 5, 0, 0, time.UTC)))
	})

	t.Run("delete", func(t *testing.T) {
		mock.ExpectDel("pwreset:john@priacc.com").SetVal(1)
		assert.NoError(t, store.Delete(ctx, "john@priacc.com"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
