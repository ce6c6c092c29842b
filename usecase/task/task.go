package task

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/taskloop/backend/domain"
	"github.com/taskloop/backend/repository"
	"github.com/taskloop/backend/usecase"
)

// CreateInput carries the fields accepted at task creation. Description and
// Done are optional; Done defaults to false.
type CreateInput struct {
	Title       string
	Description *string
	Done        *bool
}

type UseCase struct {
	tasks  repository.TaskRepository
	buffer usecase.OperationBuffer
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		buffer: buffer,
		logger: logger,
	}
}

func (uc *UseCase) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return uc.tasks.List(ctx, filter)
}

func (uc *UseCase) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

func (uc *UseCase) CreateTask(ctx context.Context, input CreateInput) (*domain.Task, error) {
	if err := domain.ValidateTitle(input.Title); err != nil {
		return nil, err
	}

	task := &domain.Task{
		Title:       input.Title,
		Description: input.Description,
	}
	if input.Done != nil {
		task.Done = *input.Done
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		if uc.shouldBufferCreate(ctx, err, task) {
			return task, nil
		}
		return nil, err
	}
	return created, nil
}

// UpdateTask applies the supplied fields only; nil fields keep their stored
// value. A supplied title is re-validated against the creation constraints.
func (uc *UseCase) UpdateTask(ctx context.Context, id int64, patch repository.TaskPatch) (*domain.Task, error) {
	if patch.Empty() {
		return nil, domain.ErrEmptyPatch
	}
	if patch.Title != nil {
		if err := domain.ValidateTitle(*patch.Title); err != nil {
			return nil, err
		}
	}

	updated, err := uc.tasks.Update(ctx, id, patch)
	if err != nil {
		// The patch is queued for replay, but without the stored row there is
		// no record to return, so the caller still sees the failure.
		uc.shouldBufferPatch(ctx, err, id, patch)
		return nil, err
	}
	return updated, nil
}

// MarkDone sets done=true regardless of the current value.
func (uc *UseCase) MarkDone(ctx context.Context, id int64) (*domain.Task, error) {
	return uc.toggleDone(ctx, id, true)
}

// MarkUndone sets done=false regardless of the current value.
func (uc *UseCase) MarkUndone(ctx context.Context, id int64) (*domain.Task, error) {
	return uc.toggleDone(ctx, id, false)
}

func (uc *UseCase) toggleDone(ctx context.Context, id int64, done bool) (*domain.Task, error) {
	return uc.UpdateTask(ctx, id, repository.TaskPatch{Done: &done})
}

func (uc *UseCase) DeleteTask(ctx context.Context, id int64) error {
	if err := uc.tasks.Delete(ctx, id); err != nil {
		if uc.shouldBufferDelete(ctx, err, id) {
			return nil
		}
		return err
	}
	return nil
}

// Infrastructure failures are buffered for later replay; domain outcomes like
// not-found or validation errors are surfaced immediately.
func (uc *UseCase) bufferable(err error) bool {
	if uc.buffer == nil {
		return false
	}
	var dErr *domain.Error
	return !errors.As(err, &dErr)
}

func (uc *UseCase) shouldBufferCreate(ctx context.Context, cause error, task *domain.Task) bool {
	if !uc.bufferable(cause) {
		return false
	}
	if err := uc.buffer.BufferCreate(ctx, task); err != nil {
		uc.logger.Error("failed to buffer task create", zap.Error(err))
		return false
	}
	uc.logger.Warn("task create buffered", zap.Error(cause))
	return true
}

func (uc *UseCase) shouldBufferPatch(ctx context.Context, cause error, id int64, patch repository.TaskPatch) bool {
	if !uc.bufferable(cause) {
		return false
	}
	if err := uc.buffer.BufferPatch(ctx, id, patch); err != nil {
		uc.logger.Error("failed to buffer task update", zap.Int64("task_id", id), zap.Error(err))
		return false
	}
	uc.logger.Warn("task update buffered", zap.Int64("task_id", id), zap.Error(cause))
	return true
}

func (uc *UseCase) shouldBufferDelete(ctx context.Context, cause error, id int64) bool {
	if !uc.bufferable(cause) {
		return false
	}
	if err := uc.buffer.BufferDelete(ctx, id); err != nil {
		uc.logger.Error("failed to buffer task delete", zap.Int64("task_id", id), zap.Error(err))
		return false
	}
	uc.logger.Warn("task delete buffered", zap.Int64("task_id", id), zap.Error(cause))
	return true
}
