package services

import (
	"context"

	"project-tracker/backend/internal/models"

	"github.com/gofrs/uuid"
)

type Resource string

const (
	ResourceProject Resource = "project"
	ResourceTask    Resource = "task"
)

type Action string

const (
	ActionView        Action = "view"
	ActionCreate      Action = "create"
	ActionUpdate      Action = "update"
	ActionDelete      Action = "delete"
	ActionRestore     Action = "restore"
	ActionForceDelete Action = "force_delete"
)

// allowedLevels declares, per resource and action, the exact set of
// access levels that grant the action. Each set is spelled out in full:
// permissions are named-set membership checks, not a derived hierarchy,
// so admin does not implicitly include write, nor write read.
//
// Restore and force-delete are absent on purpose; soft deletion is not
// implemented and both are always denied.
var allowedLevels = map[Resource]map[Action][]models.AccessLevel{
	ResourceProject: {
		ActionView:   {models.AccessOwner, models.AccessRead, models.AccessWrite, models.AccessAdmin},
		ActionUpdate: {models.AccessOwner},
		ActionDelete: {models.AccessOwner},
	},
	ResourceTask: {
		ActionView:   {models.AccessRead, models.AccessWrite, models.AccessAdmin, models.AccessOwner},
		ActionCreate: {models.AccessWrite, models.AccessAdmin, models.AccessOwner},
		ActionUpdate: {models.AccessWrite, models.AccessAdmin, models.AccessOwner},
		ActionDelete: {models.AccessAdmin, models.AccessOwner},
	},
}

// PolicyService decides whether an acting user may perform an action on a
// resource belonging to a project. It composes AccessService; it holds no
// state of its own.
type PolicyService interface {
	Can(ctx context.Context, userID, projectID uuid.UUID, resource Resource, action Action) (bool, error)
	Authorize(ctx context.Context, userID, projectID uuid.UUID, resource Resource, action Action) error
}

type PolicyServiceImpl struct {
	access AccessService
}

func NewPolicyService(access AccessService) *PolicyServiceImpl {
	return &PolicyServiceImpl{access: access}
}

// Can evaluates the allowed-level table. Project creation is the one
// action open to any authenticated user and never reaches this table;
// callers gate it on authentication alone.
func (s *PolicyServiceImpl) Can(ctx context.Context, userID, projectID uuid.UUID, resource Resource, action Action) (bool, error) {
	actions, ok := allowedLevels[resource]
	if !ok {
		return false, nil
	}
	levels, ok := actions[action]
	if !ok {
		return false, nil
	}
	return s.access.HasAny(ctx, userID, projectID, levels...)
}

// Authorize is Can with a deny surfaced as ErrForbidden.
func (s *PolicyServiceImpl) Authorize(ctx context.Context, userID, projectID uuid.UUID, resource Resource, action Action) error {
	allowed, err := s.Can(ctx, userID, projectID, resource, action)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrForbidden
	}
	return nil
}
