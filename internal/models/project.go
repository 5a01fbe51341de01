package models

import (
	"time"

	"github.com/gofrs/uuid"
)

type Project struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Memberships []Membership `json:"memberships,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Tasks       []Task       `json:"tasks,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// Membership joins a user to a project with an access level. The composite
// primary key enforces at most one membership per (project, user) pair.
type Membership struct {
	ProjectID   uuid.UUID   `json:"project_id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID   `json:"user_id" gorm:"type:uuid;primaryKey"`
	AccessLevel AccessLevel `json:"access_level" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Membership) TableName() string {
	return "project_users"
}

func (m *Membership) IsOwner() bool {
	return m.AccessLevel == AccessOwner
}
