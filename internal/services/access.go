package services

import (
	"context"

	"project-tracker/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// AccessService answers membership questions for a single project. Every
// call re-reads the membership row; access levels are never cached
// because editability decisions downstream are time-sensitive and must
// never run against stale data.
type AccessService interface {
	Level(ctx context.Context, userID, projectID uuid.UUID) (models.AccessLevel, error)
	HasAny(ctx context.Context, userID, projectID uuid.UUID, levels ...models.AccessLevel) (bool, error)
	IsOwner(ctx context.Context, userID, projectID uuid.UUID) (bool, error)
}

type AccessServiceImpl struct {
	db *gorm.DB
}

func NewAccessService(db *gorm.DB) *AccessServiceImpl {
	return &AccessServiceImpl{db: db}
}

// Level returns the stored access level for the user on the project, or
// ErrNotFound when no membership exists.
func (s *AccessServiceImpl) Level(ctx context.Context, userID, projectID uuid.UUID) (models.AccessLevel, error) {
	var membership models.Membership
	err := s.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&membership).Error
	if err != nil {
		return "", asNotFound(err)
	}
	return membership.AccessLevel, nil
}

// HasAny reports whether a membership exists with a level in the given
// set. The set is checked literally; no level implies another.
func (s *AccessServiceImpl) HasAny(ctx context.Context, userID, projectID uuid.UUID, levels ...models.AccessLevel) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Membership{}).
		Where("project_id = ? AND user_id = ? AND access_level IN ?", projectID, userID, levels).
		Count(&count).Error
	return count > 0, err
}

func (s *AccessServiceImpl) IsOwner(ctx context.Context, userID, projectID uuid.UUID) (bool, error) {
	return s.HasAny(ctx, userID, projectID, models.AccessOwner)
}
