package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextHelpers(t *testing.T) {
	t.Run("FromContext falls back to a no-op logger", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))

		ctx := context.WithValue(context.Background(), LoggerKey, "not a logger")
		assert.NotNil(t, FromContext(ctx))
	})

	t.Run("WithContext stores the logger", func(t *testing.T) {
		log := zap.NewExample()
		ctx := WithContext(context.Background(), log)
		assert.Same(t, log, FromContext(ctx))
	})

	t.Run("request and restaurant ids chain", func(t *testing.T) {
		ctx, log := WithRequestID(context.Background(), zap.NewNop(), "req-1")
		ctx, log = WithRestaurantID(ctx, log, "rest-1")

		assert.Equal(t, "req-1", GetRequestID(ctx))
		assert.Equal(t, "rest-1", GetRestaurantID(ctx))
		assert.Same(t, log, FromContext(ctx))
	})

	t.Run("missing ids are empty", func(t *testing.T) {
		assert.Empty(t, GetRequestID(context.Background()))
		assert.Empty(t, GetRestaurantID(context.Background()))
	})
}

func TestFields(t *testing.T) {
	assert.Empty(t, Fields(context.Background()))

	ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-3")
	ctx, _ = WithRestaurantID(ctx, zap.NewNop(), "rest-3")

	core, recorded := observer.New(zapcore.DebugLevel)
	zap.New(core).Info("kitchen board", Fields(ctx)...)

	require.Len(t, recorded.All(), 1)
	fields := recorded.All()[0].ContextMap()
	assert.Equal(t, "req-3", fields["request_id"])
	assert.Equal(t, "rest-3", fields["restaurant_id"])
}
