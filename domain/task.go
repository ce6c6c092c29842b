package domain

import (
	"strings"
	"time"
)

// TitleMaxLength is the hard cap on task titles, enforced at both the
// transport and business layers.
const TitleMaxLength = 200

// Task represents a tracked activity item.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Done        bool      `json:"done"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ValidateTitle checks the constraint shared by every mutation path:
// non-blank and at most TitleMaxLength characters.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return NewError(ErrCodeInvalid, "title must not be empty")
	}
	if len([]rune(title)) > TitleMaxLength {
		return NewError(ErrCodeInvalid, "title exceeds 200 characters")
	}
	return nil
}
