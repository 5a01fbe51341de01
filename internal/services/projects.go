package services

import (
	"context"
	"errors"
	"strings"

	"project-tracker/backend/internal/models"
	"project-tracker/backend/internal/utils"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const (
	maxTitleLen       = 255
	maxDescriptionLen = 1000
)

type ProjectService interface {
	Create(ctx context.Context, creatorID uuid.UUID, title, description string) (*models.Project, error)
	ListVisible(ctx context.Context, userID uuid.UUID) ([]models.Project, error)
	GetBySlug(ctx context.Context, slug string) (*models.Project, error)
	Update(ctx context.Context, projectID uuid.UUID, title, description string) (*models.Project, error)
	Delete(ctx context.Context, projectID uuid.UUID) error

	AttachUser(ctx context.Context, projectID uuid.UUID, email string, level models.AccessLevel) (*models.Membership, error)
	DetachUser(ctx context.Context, projectID, userID uuid.UUID) error
	ChangeAccessLevel(ctx context.Context, projectID, userID uuid.UUID, level models.AccessLevel) error
	Owner(ctx context.Context, projectID uuid.UUID) (*models.User, error)
	Members(ctx context.Context, projectID uuid.UUID) ([]models.Membership, error)
}

type ProjectServiceImpl struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectServiceImpl {
	return &ProjectServiceImpl{db: db}
}

func validateProjectInput(title, description string) error {
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
	if len(description) > maxDescriptionLen {
		return NewValidationError("description", "description must be at most 1000 characters")
	}
	return nil
}

// Create inserts the project together with the creator's owner membership
// in a single transaction; a project never exists without exactly one
// owner.
func (s *ProjectServiceImpl) Create(ctx context.Context, creatorID uuid.UUID, title, description string) (*models.Project, error) {
	if err := validateProjectInput(title, description); err != nil {
		return nil, err
	}

	project := &models.Project{
		ID:          uuid.Must(uuid.NewV4()),
		Title:       strings.TrimSpace(title),
		Description: description,
		Slug:        utils.UniqueSlug(title),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		membership := models.Membership{
			ProjectID:   project.ID,
			UserID:      creatorID,
			AccessLevel: models.AccessOwner,
		}
		return tx.Create(&membership).Error
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// ListVisible returns every project the user holds a membership on,
// owned and shared alike. A single query keeps the result free of
// duplicates.
func (s *ProjectServiceImpl) ListVisible(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.WithContext(ctx).
		Joins("JOIN project_users ON project_users.project_id = projects.id").
		Where("project_users.user_id = ?", userID).
		Order("projects.created_at DESC").
		Find(&projects).Error
	return projects, err
}

func (s *ProjectServiceImpl) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&project).Error
	if err != nil {
		return nil, asNotFound(err)
	}
	return &project, nil
}

// Update changes title and description. The slug is assigned once at
// creation and deliberately left alone so shared links keep resolving.
func (s *ProjectServiceImpl) Update(ctx context.Context, projectID uuid.UUID, title, description string) (*models.Project, error) {
	if err := validateProjectInput(title, description); err != nil {
		return nil, err
	}

	var project models.Project
	if err := s.db.WithContext(ctx).First(&project, "id = ?", projectID).Error; err != nil {
		return nil, asNotFound(err)
	}

	project.Title = strings.TrimSpace(title)
	project.Description = description
	if err := s.db.WithContext(ctx).Save(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Delete removes the project and cascades to its memberships and tasks.
func (s *ProjectServiceImpl) Delete(ctx context.Context, projectID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.Membership{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Project{}, "id = ?", projectID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// AttachUser shares the project with the user registered under the given
// email. Only grantable levels are accepted; a second membership for the
// same user is a conflict, not a silent duplicate insert.
func (s *ProjectServiceImpl) AttachUser(ctx context.Context, projectID uuid.UUID, email string, level models.AccessLevel) (*models.Membership, error) {
	if !level.Grantable() {
		return nil, NewValidationError("access_level", "access level must be one of read, write, admin")
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, asNotFound(err)
	}

	membership := &models.Membership{
		ProjectID:   projectID,
		UserID:      user.ID,
		AccessLevel: level,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Membership
		err := tx.Where("project_id = ? AND user_id = ?", projectID, user.ID).First(&existing).Error
		if err == nil {
			return ErrConflict
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(membership).Error
	})
	if err != nil {
		return nil, err
	}
	membership.User = user
	return membership, nil
}

// DetachUser removes the user's membership. Detaching a user who holds no
// membership is a no-op; detaching the owner is refused because every
// project must keep its sole owner.
func (s *ProjectServiceImpl) DetachUser(ctx context.Context, projectID, userID uuid.UUID) error {
	var membership models.Membership
	err := s.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&membership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if membership.IsOwner() {
		return NewValidationError("user_id", "the project owner cannot be detached")
	}
	return s.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.Membership{}).Error
}

// ChangeAccessLevel re-grades an existing non-owner membership. The owner
// membership is immutable; demoting it would leave the project ownerless.
func (s *ProjectServiceImpl) ChangeAccessLevel(ctx context.Context, projectID, userID uuid.UUID, level models.AccessLevel) error {
	if !level.Grantable() {
		return NewValidationError("access_level", "access level must be one of read, write, admin")
	}

	var membership models.Membership
	err := s.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&membership).Error
	if err != nil {
		return asNotFound(err)
	}
	if membership.IsOwner() {
		return NewValidationError("user_id", "the owner's access level cannot be changed")
	}

	return s.db.WithContext(ctx).
		Model(&models.Membership{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Update("access_level", level).Error
}

// Owner returns the user behind the project's owner membership.
func (s *ProjectServiceImpl) Owner(ctx context.Context, projectID uuid.UUID) (*models.User, error) {
	var membership models.Membership
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("project_id = ? AND access_level = ?", projectID, models.AccessOwner).
		First(&membership).Error
	if err != nil {
		return nil, asNotFound(err)
	}
	return &membership.User, nil
}

// Members lists every membership on the project with its user loaded,
// owner first, for the project sharing view.
func (s *ProjectServiceImpl) Members(ctx context.Context, projectID uuid.UUID) ([]models.Membership, error) {
	var memberships []models.Membership
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("project_id = ?", projectID).
		Order("CASE access_level WHEN 'owner' THEN 0 ELSE 1 END, created_at").
		Find(&memberships).Error
	return memberships, err
}
