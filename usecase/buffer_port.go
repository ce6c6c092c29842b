package usecase

import (
	"context"

	"github.com/taskloop/backend/domain"
	"github.com/taskloop/backend/repository"
)

// OperationBuffer abstracts the write-behind buffer so use cases stay
// storage-agnostic.
type OperationBuffer interface {
	BufferCreate(ctx context.Context, task *domain.Task) error
	BufferPatch(ctx context.Context, id int64, patch repository.TaskPatch) error
	BufferDelete(ctx context.Context, id int64) error
}
