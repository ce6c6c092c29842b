package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/taskloop/backend/api/handler"
	"github.com/taskloop/backend/domain"
	"github.com/taskloop/backend/internal/infrastructure/monitor"
	"github.com/taskloop/backend/internal/middleware"
	"github.com/taskloop/backend/internal/router"
	"github.com/taskloop/backend/pkg/httpcontext"
	"github.com/taskloop/backend/repository"
	"github.com/taskloop/backend/repository/memory"
	taskUC "github.com/taskloop/backend/usecase/task"
)

// newTestHandler wires the full request pipeline (correlation middleware,
// router, handlers, use case) over an in-memory repository.
func newTestHandler(t *testing.T) fasthttp.RequestHandler {
	t.Helper()
	return newTestHandlerWithRepo(t, memory.NewTaskRepository(), nil)
}

func newTestHandlerWithRepo(t *testing.T, repo repository.TaskRepository, logger *zap.Logger) fasthttp.RequestHandler {
	t.Helper()

	adapter := httpcontext.NewAdapter(time.Second)
	uc := taskUC.New(repo, nil, nil)
	mon := monitor.New(nil, nil, nil, time.Minute, nil)

	r := router.New(router.Handlers{
		Task:   handler.NewTaskHandler(uc, adapter, logger),
		Health: handler.NewHealthHandler(mon, adapter, logger),
	})
	return middleware.RequestID(nil)(r.Handler)
}

func serve(handler fasthttp.RequestHandler, method, uri, body string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	if body != "" {
		ctx.Request.Header.SetContentType("application/json")
		ctx.Request.SetBodyString(body)
	}
	handler(ctx)
	return ctx
}

func decodeTask(t *testing.T, ctx *fasthttp.RequestCtx) domain.Task {
	t.Helper()
	var task domain.Task
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &task))
	return task
}

func TestTaskLifecycle(t *testing.T) {
	handler := newTestHandler(t)

	// Create
	ctx := serve(handler, http.MethodPost, "/tasks", `{"title":"A"}`)
	require.Equal(t, http.StatusCreated, ctx.Response.StatusCode())
	created := decodeTask(t, ctx)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "A", created.Title)
	assert.False(t, created.Done)

	// List
	ctx = serve(handler, http.MethodGet, "/tasks", "")
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	var tasks []domain.Task
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, int64(1), tasks[0].ID)

	// Toggle done
	ctx = serve(handler, http.MethodPatch, "/tasks/1/done", "")
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.True(t, decodeTask(t, ctx).Done)

	// Delete
	ctx = serve(handler, http.MethodDelete, "/tasks/1", "")
	require.Equal(t, http.StatusNoContent, ctx.Response.StatusCode())

	// Gone
	ctx = serve(handler, http.MethodGet, "/tasks/1", "")
	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
}

func TestCorrelationHeadersAgree(t *testing.T) {
	handler := newTestHandler(t)

	ctx := serve(handler, http.MethodGet, "/tasks", "")

	reqID := string(ctx.Response.Header.Peek(middleware.HeaderRequestID))
	txID := string(ctx.Response.Header.Peek(middleware.HeaderTransactionID))
	require.NotEmpty(t, reqID)
	assert.Equal(t, reqID, txID)
}

func TestCorrelationEchoesClientIdentifier(t *testing.T) {
	handler := newTestHandler(t)

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(http.MethodGet)
	ctx.Request.SetRequestURI("/tasks")
	ctx.Request.Header.Set(middleware.HeaderRequestID, "trace-me-123")
	handler(ctx)

	assert.Equal(t, "trace-me-123", string(ctx.Response.Header.Peek(middleware.HeaderRequestID)))
	assert.Equal(t, "trace-me-123", string(ctx.Response.Header.Peek(middleware.HeaderTransactionID)))
}

func TestCreateTaskValidation(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "missing title", body: `{"description":"no title"}`, status: http.StatusBadRequest},
		{name: "malformed json", body: `{"title":`, status: http.StatusBadRequest},
		{name: "valid with description", body: `{"title":"ok","description":"d","done":true}`, status: http.StatusCreated},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := serve(handler, http.MethodPost, "/tasks", tc.body)
			assert.Equal(t, tc.status, ctx.Response.StatusCode())
		})
	}
}

func TestListFilterValidation(t *testing.T) {
	handler := newTestHandler(t)
	serve(handler, http.MethodPost, "/tasks", `{"title":"open"}`)
	serve(handler, http.MethodPost, "/tasks", `{"title":"closed","done":true}`)

	ctx := serve(handler, http.MethodGet, "/tasks?done=true", "")
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	var tasks []domain.Task
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &tasks))
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Done)

	ctx = serve(handler, http.MethodGet, "/tasks?done=banana", "")
	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
}

func TestPartialUpdateKeepsUnsetFields(t *testing.T) {
	handler := newTestHandler(t)
	serve(handler, http.MethodPost, "/tasks", `{"title":"original","description":"keep me"}`)

	ctx := serve(handler, http.MethodPatch, "/tasks/1", `{"done":true}`)
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())

	updated := decodeTask(t, ctx)
	assert.True(t, updated.Done)
	assert.Equal(t, "original", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "keep me", *updated.Description)
}

func TestInvalidTaskIDRejected(t *testing.T) {
	handler := newTestHandler(t)

	ctx := serve(handler, http.MethodGet, "/tasks/abc", "")
	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
}

func TestDeleteMissingTaskReturnsNotFound(t *testing.T) {
	handler := newTestHandler(t)

	ctx := serve(handler, http.MethodDelete, "/tasks/77", "")
	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
}

// downRepo simulates an unreachable primary store.
type downRepo struct{}

var errConnRefused = errors.New("dial tcp: connect: connection refused")

func (downRepo) GetByID(context.Context, int64) (*domain.Task, error) { return nil, errConnRefused }
func (downRepo) List(context.Context, repository.TaskFilter) ([]domain.Task, error) {
	return nil, errConnRefused
}
func (downRepo) Create(context.Context, *domain.Task) (*domain.Task, error) {
	return nil, errConnRefused
}
func (downRepo) Update(context.Context, int64, repository.TaskPatch) (*domain.Task, error) {
	return nil, errConnRefused
}
func (downRepo) Delete(context.Context, int64) error { return errConnRefused }

func TestPersistenceFailureIsGenericAndLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	handler := newTestHandlerWithRepo(t, downRepo{}, zap.New(core))

	ctx := serve(handler, http.MethodGet, "/tasks", "")
	require.Equal(t, http.StatusInternalServerError, ctx.Response.StatusCode())

	// The client sees a generic failure, never the infrastructure detail.
	var resp struct {
		Code  string `json:"code"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, string(domain.ErrCodeInternal), resp.Code)
	assert.Equal(t, "internal error", resp.Error)
	assert.NotContains(t, string(ctx.Response.Body()), "connection refused")

	// The underlying error is logged with the request's correlation identifier.
	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, string(ctx.Response.Header.Peek(middleware.HeaderRequestID)), fields["request_id"])
	assert.Contains(t, fields["error"], "connection refused")
}
