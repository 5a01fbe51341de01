package models

import (
	"time"

	"github.com/gofrs/uuid"
)

type Task struct {
	ID          uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	ProjectID   uuid.UUID  `json:"project_id" gorm:"type:uuid;not null;index"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description" gorm:"not null"`
	DueDate     *time.Time `json:"due_date"`
	IsCompleted bool       `json:"is_completed" gorm:"not null;default:false"`
	Slug        string     `json:"slug" gorm:"uniqueIndex;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
}

// EditableAt reports whether the task may still be shown for editing,
// updated, or completed at the given instant: not completed and not past
// its due date. The deadline itself is inclusive. A task without a due
// date has no deadline to miss.
//
// The predicate is recomputed on every request; it is never cached on the
// row because the answer changes as the clock moves.
func (t *Task) EditableAt(now time.Time) bool {
	if t.IsCompleted {
		return false
	}
	if t.DueDate == nil {
		return true
	}
	return !now.After(*t.DueDate)
}

// OverdueAt reports whether the task's deadline has passed without the
// task being completed.
func (t *Task) OverdueAt(now time.Time) bool {
	return !t.IsCompleted && t.DueDate != nil && now.After(*t.DueDate)
}
