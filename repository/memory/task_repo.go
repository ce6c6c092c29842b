package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taskloop/backend/domain"
	"github.com/taskloop/backend/repository"
)

// taskRepository keeps tasks in process memory. It backs tests and DB-less
// development runs; ids are monotonically assigned and never reused.
type taskRepository struct {
	mu     sync.RWMutex
	tasks  map[int64]domain.Task
	nextID int64
}

// NewTaskRepository returns an in-memory implementation of TaskRepository.
func NewTaskRepository() repository.TaskRepository {
	return &taskRepository{
		tasks:  make(map[int64]domain.Task),
		nextID: 1,
	}
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(task), nil
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := []domain.Task{}
	for _, task := range r.tasks {
		if filter.Done != nil && task.Done != *filter.Done {
			continue
		}
		tasks = append(tasks, *cloneTask(task))
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].ID > tasks[j].ID
	})
	return tasks, nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	task.ID = r.nextID
	r.nextID++
	task.CreatedAt = now
	task.UpdatedAt = now

	r.tasks[task.ID] = *cloneTask(*task)
	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, id int64, patch repository.TaskPatch) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	patch.Apply(&task)
	task.UpdatedAt = time.Now()
	r.tasks[id] = task

	return cloneTask(task), nil
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

// cloneTask guards callers against aliasing the stored description pointer.
func cloneTask(task domain.Task) *domain.Task {
	if task.Description != nil {
		desc := *task.Description
		task.Description = &desc
	}
	return &task
}
