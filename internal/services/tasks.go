package services

import (
	"context"
	"strings"
	"time"

	"project-tracker/backend/internal/models"
	"project-tracker/backend/internal/utils"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Clock supplies the current instant. Editability is a function of wall
// time, so the task service reads its clock through this hook instead of
// calling time.Now directly; tests pin it to a fixed instant.
type Clock func() time.Time

// TaskFilter narrows task listings. Completed filters on the completion
// flag when non-nil; Due is "", "overdue" or "upcoming".
type TaskFilter struct {
	Completed *bool
	Due       string
}

const (
	DueOverdue  = "overdue"
	DueUpcoming = "upcoming"
)

type TaskService interface {
	Create(ctx context.Context, projectID uuid.UUID, title, description string, dueDate time.Time) (*models.Task, error)
	GetBySlug(ctx context.Context, projectID uuid.UUID, slug string) (*models.Task, error)
	List(ctx context.Context, projectID uuid.UUID, filter TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, taskID uuid.UUID, title, description string, dueDate time.Time) (*models.Task, error)
	Complete(ctx context.Context, taskID uuid.UUID) (*models.Task, error)
	Delete(ctx context.Context, taskID uuid.UUID) error
	Editable(task *models.Task) bool
}

type TaskServiceImpl struct {
	db    *gorm.DB
	clock Clock
}

func NewTaskService(db *gorm.DB) *TaskServiceImpl {
	return &TaskServiceImpl{db: db, clock: time.Now}
}

// NewTaskServiceWithClock pins the service to a caller-supplied clock.
func NewTaskServiceWithClock(db *gorm.DB, clock Clock) *TaskServiceImpl {
	return &TaskServiceImpl{db: db, clock: clock}
}

func (s *TaskServiceImpl) validateTaskInput(title, description string, dueDate time.Time) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return NewValidationError("title", "title is required")
	}
	if len(title) > maxTitleLen {
		return NewValidationError("title", "title must be at most 255 characters")
	}
	if strings.TrimSpace(description) == "" {
		return NewValidationError("description", "description is required")
	}
	if dueDate.IsZero() {
		return NewValidationError("due_date", "due date is required")
	}
	// Boundary inclusive: a due date equal to the current instant is valid.
	if dueDate.Before(s.clock()) {
		return NewValidationError("due_date", "due date must not be in the past")
	}
	return nil
}

// Create opens a new task on the project. Tasks always start incomplete.
func (s *TaskServiceImpl) Create(ctx context.Context, projectID uuid.UUID, title, description string, dueDate time.Time) (*models.Task, error) {
	if err := s.validateTaskInput(title, description, dueDate); err != nil {
		return nil, err
	}

	task := &models.Task{
		ID:          uuid.Must(uuid.NewV4()),
		ProjectID:   projectID,
		Title:       strings.TrimSpace(title),
		Description: description,
		DueDate:     &dueDate,
		IsCompleted: false,
		Slug:        utils.UniqueSlug(title),
	}
	if err := s.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskServiceImpl) GetBySlug(ctx context.Context, projectID uuid.UUID, slug string) (*models.Task, error) {
	var task models.Task
	err := s.db.WithContext(ctx).
		Where("project_id = ? AND slug = ?", projectID, slug).
		First(&task).Error
	if err != nil {
		return nil, asNotFound(err)
	}
	return &task, nil
}

func (s *TaskServiceImpl) List(ctx context.Context, projectID uuid.UUID, filter TaskFilter) ([]models.Task, error) {
	query := s.db.WithContext(ctx).Where("project_id = ?", projectID)

	if filter.Completed != nil {
		query = query.Where("is_completed = ?", *filter.Completed)
	}
	switch filter.Due {
	case DueOverdue:
		query = query.Where("due_date < ?", s.clock())
	case DueUpcoming:
		query = query.Where("due_date >= ?", s.clock())
	case "":
	default:
		return nil, NewValidationError("due", "due filter must be overdue or upcoming")
	}

	var tasks []models.Task
	err := query.Order("due_date ASC").Find(&tasks).Error
	return tasks, err
}

// Update rewrites title, description and due date. Tasks that are
// completed or past their deadline are closed to edits; the check runs
// against the clock at call time, never against a cached state.
func (s *TaskServiceImpl) Update(ctx context.Context, taskID uuid.UUID, title, description string, dueDate time.Time) (*models.Task, error) {
	var task models.Task
	if err := s.db.WithContext(ctx).First(&task, "id = ?", taskID).Error; err != nil {
		return nil, asNotFound(err)
	}
	if !task.EditableAt(s.clock()) {
		return nil, errTaskNotEditable
	}
	if err := s.validateTaskInput(title, description, dueDate); err != nil {
		return nil, err
	}

	task.Title = strings.TrimSpace(title)
	task.Description = description
	task.DueDate = &dueDate
	if err := s.db.WithContext(ctx).Save(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Complete flips is_completed exactly once. The editability gate applies
// uniformly, so a second completion attempt and a completion attempt on
// an overdue task both fail the same way.
func (s *TaskServiceImpl) Complete(ctx context.Context, taskID uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, "id = ?", taskID).Error; err != nil {
			return asNotFound(err)
		}
		if !task.EditableAt(s.clock()) {
			return errTaskNotEditable
		}
		task.IsCompleted = true
		return tx.Model(&task).Update("is_completed", true).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Editable evaluates the task against the service clock.
func (s *TaskServiceImpl) Editable(task *models.Task) bool {
	return task.EditableAt(s.clock())
}

// Delete removes the task regardless of its lifecycle state; only the
// authorization policy gates deletion.
func (s *TaskServiceImpl) Delete(ctx context.Context, taskID uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Task{}, "id = ?", taskID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
