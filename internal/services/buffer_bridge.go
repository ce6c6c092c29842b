package services

import (
	"context"
	"encoding/json"

	"github.com/taskloop/backend/domain"
	"github.com/taskloop/backend/internal/infrastructure/buffer"
	"github.com/taskloop/backend/repository"
	"github.com/taskloop/backend/usecase"
)

// BufferBridge adapts the buffer processor to the use-case buffer port.
type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferCreate(ctx context.Context, task *domain.Task) error {
	if b.processor == nil || task == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}
	item := buffer.Item{
		Operation: buffer.OperationCreate,
		Data:      payload,
		Priority:  4,
	}
	return b.processor.BufferOperation(ctx, item)
}

func (b *BufferBridge) BufferPatch(ctx context.Context, id int64, patch repository.TaskPatch) error {
	if b.processor == nil || patch.Empty() {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(patch)
	if err != nil {
		return err
	}
	item := buffer.Item{
		TaskID:    id,
		Operation: buffer.OperationUpdate,
		Data:      payload,
		Priority:  3,
	}
	return b.processor.BufferOperation(ctx, item)
}

func (b *BufferBridge) BufferDelete(ctx context.Context, id int64) error {
	if b.processor == nil {
		return domain.ErrInvalidPayload
	}
	item := buffer.Item{
		TaskID:    id,
		Operation: buffer.OperationDelete,
		Priority:  2,
	}
	return b.processor.BufferOperation(ctx, item)
}

var _ usecase.OperationBuffer = (*BufferBridge)(nil)
