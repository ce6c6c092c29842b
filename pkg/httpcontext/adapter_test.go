package httpcontext

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	appLogger "github.com/taskloop/backend/pkg/logger"
)

func TestAttachCarriesRequestID(t *testing.T) {
	adapter := NewAdapter(time.Second)

	ctx := &fasthttp.RequestCtx{}
	ctx.SetUserValue(UserValueRequestID, "abc-123")

	stdCtx, cancel := adapter.Attach(ctx)
	defer cancel()

	assert.Equal(t, "abc-123", appLogger.RequestIDFromContext(stdCtx))

	deadline, ok := stdCtx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 100*time.Millisecond)
}

func TestAttachGeneratesFallbackID(t *testing.T) {
	adapter := NewAdapter(time.Second)

	stdCtx, cancel := adapter.Attach(&fasthttp.RequestCtx{})
	defer cancel()

	assert.NotEmpty(t, appLogger.RequestIDFromContext(stdCtx))
}

func TestRequestIDFromCtxMissing(t *testing.T) {
	assert.Empty(t, RequestIDFromCtx(nil))
	assert.Empty(t, RequestIDFromCtx(&fasthttp.RequestCtx{}))
}
