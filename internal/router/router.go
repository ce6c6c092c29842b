package router

import (
	"github.com/fasthttp/router"

	apiHandler "github.com/taskloop/backend/api/handler"
	"github.com/taskloop/backend/static"
)

type Handlers struct {
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Task routes
	r.GET("/tasks", handlers.Task.GetTasks)
	r.POST("/tasks", handlers.Task.CreateTask)
	r.GET("/tasks/{id}", handlers.Task.GetTask)
	r.PATCH("/tasks/{id}", handlers.Task.UpdateTask)
	r.PATCH("/tasks/{id}/done", handlers.Task.MarkDone)
	r.PATCH("/tasks/{id}/undone", handlers.Task.MarkUndone)
	r.DELETE("/tasks/{id}", handlers.Task.DeleteTask)

	// Embedded browser client
	ui := static.Handler()
	r.GET("/", ui)
	r.GET("/index.html", ui)
	r.GET("/app.js", ui)

	return r
}
