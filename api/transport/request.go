package transport

// CreateTaskRequest is the POST /tasks body. Description and Done are
// optional; pointers keep "absent" distinct from explicit zero values.
type CreateTaskRequest struct {
	Title       string  `json:"title"       validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty"`
	Done        *bool   `json:"done"`
}

// UpdateTaskRequest is the PATCH /tasks/{id} body. Every field is optional;
// only supplied fields are written.
type UpdateTaskRequest struct {
	Title       *string `json:"title"       validate:"omitempty,max=200"`
	Description *string `json:"description"`
	Done        *bool   `json:"done"`
}
