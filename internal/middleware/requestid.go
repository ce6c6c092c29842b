package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskloop/backend/pkg/httpcontext"
)

// Header names carrying the correlation identifier. The request header is set
// at ingress, before any business logic; the transaction header is set by the
// response decoration stage once a handler serializes its result.
const (
	HeaderRequestID     = "X-Request-Id"
	HeaderTransactionID = "X-Transaction-Id"
)

// RequestID is the ingress correlation stage. It chooses exactly one
// identifier per request (inbound header reused verbatim, else a fresh uuid),
// attaches it to the request context, mirrors it onto the response header
// before downstream logic runs, and emits the [REQ]/[RES] log pair around the
// wrapped handler.
func RequestID(logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			reqID := incomingRequestID(ctx)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			// User values live on the RequestCtx, so concurrent requests never
			// observe each other's identifier.
			ctx.SetUserValue(httpcontext.UserValueRequestID, reqID)

			start := time.Now()
			method := string(ctx.Method())
			path := string(ctx.Path())

			logger.Info(fmt.Sprintf("[REQ] %s %s id=%s", method, path, reqID))

			// Set before business logic so the header survives handler failures.
			ctx.Response.Header.Set(HeaderRequestID, reqID)

			next(ctx)

			elapsed := time.Since(start).Milliseconds()
			logger.Info(fmt.Sprintf("[RES] %s %s id=%s status=%d %dms",
				method, path, reqID, ctx.Response.StatusCode(), elapsed))
		}
	}
}

// incomingRequestID returns the client-supplied identifier, or "" when the
// header is missing, blank, or repeated. Repeated headers are ambiguous, so
// they count as absent rather than picking one arbitrarily.
func incomingRequestID(ctx *fasthttp.RequestCtx) string {
	values := ctx.Request.Header.PeekAll(HeaderRequestID)
	if len(values) != 1 {
		return ""
	}
	header := string(values[0])
	if strings.TrimSpace(header) == "" {
		return ""
	}
	return header
}
