package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestGeneration(t *testing.T) {
	ctx := context.Background()

	t.Run("missing counter is zero", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet("items:generation").RedisNil()

		gen, ok := Generation(ctx, rdb, "items:generation")

		assert.True(t, ok)
		assert.Equal(t, int64(0), gen)
	})

	t.Run("stored counter", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet("items:generation").SetVal("7")

		gen, ok := Generation(ctx, rdb, "items:generation")

		assert.True(t, ok)
		assert.Equal(t, int64(7), gen)
	})

	t.Run("redis error disables cache", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet("items:generation").SetErr(errors.New("connection refused"))

		_, ok := Generation(ctx, rdb, "items:generation")

		assert.False(t, ok)
	})
}

func TestBump(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectIncr("items:generation").SetVal(3)

	assert.NoError(t, Bump(context.Background(), rdb, "items:generation"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVersionedKey(t *testing.T) {
	assert.Equal(t, "holidays:v3:year:2024", VersionedKey("holidays", 3, "year:2024"))
}
