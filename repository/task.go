package repository

import (
	"context"

	"github.com/taskloop/backend/domain"
)

// TaskFilter narrows a listing. A nil Done means "no filter", which is
// distinct from filtering on false.
type TaskFilter struct {
	Done *bool
}

// TaskPatch carries a partial update. Nil fields are left untouched;
// a non-nil pointer to a zero value is an explicit assignment.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Done        *bool   `json:"done,omitempty"`
}

// Empty reports whether the patch would change nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Done == nil
}

// Apply copies the supplied fields onto the task.
func (p TaskPatch) Apply(task *domain.Task) {
	if task == nil {
		return
	}
	if p.Title != nil {
		task.Title = *p.Title
	}
	if p.Description != nil {
		task.Description = p.Description
	}
	if p.Done != nil {
		task.Done = *p.Done
	}
}

// TaskRepository is the persistence boundary for tasks. Absence is reported
// via domain.ErrTaskNotFound, never a panic.
type TaskRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, id int64, patch TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id int64) error
}
