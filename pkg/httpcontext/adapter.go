package httpcontext

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	appLogger "github.com/taskloop/backend/pkg/logger"
)

// Key represents a context value key exported for reuse.
type Key string

const (
	KeyRemoteAddr Key = "remote_addr"
	KeyUserAgent  Key = "user_agent"
)

// UserValueRequestID keys the correlation identifier on the fasthttp
// RequestCtx. The ingress middleware writes it; later stages only read it.
const UserValueRequestID = "request_id"

// RequestIDFromCtx returns the correlation identifier chosen at ingress, or
// "" when no identifier was attached to this request.
func RequestIDFromCtx(ctx *fasthttp.RequestCtx) string {
	if ctx == nil {
		return ""
	}
	if reqID, ok := ctx.UserValue(UserValueRequestID).(string); ok {
		return reqID
	}
	return ""
}

// Adapter converts fasthttp.RequestCtx into a stdlib context with deadlines and metadata.
type Adapter struct {
	timeout time.Duration
}

// NewAdapter constructs a new Adapter using the provided timeout.
func NewAdapter(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{
		timeout: timeout,
	}
}

// Attach creates a context with timeout derived from the adapter and enriches
// it with request metadata, including the correlation identifier so
// persistence-layer logs stay traceable to the request.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	base := context.Background()

	stdCtx, cancel := context.WithTimeout(base, a.timeout)

	reqID := RequestIDFromCtx(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	stdCtx = appLogger.ContextWithRequestID(stdCtx, reqID)

	if remoteAddr := ctx.RemoteAddr(); remoteAddr != nil {
		stdCtx = context.WithValue(stdCtx, KeyRemoteAddr, remoteAddr.String())
	}
	if ua := string(ctx.Request.Header.UserAgent()); ua != "" {
		stdCtx = context.WithValue(stdCtx, KeyUserAgent, ua)
	}

	return stdCtx, cancel
}
