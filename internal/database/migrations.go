package database

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"project-tracker/backend/internal/models"
)

func Migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "20250512_create_users_table",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("users")
			},
		},
		{
			ID: "20250512_create_projects_table",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Project{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("projects")
			},
		},
		{
			ID: "20250512_create_project_users_table",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Membership{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("project_users")
			},
		},
		{
			ID: "20250512_create_tasks_table",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Task{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("tasks")
			},
		},
	}
}

// Migrate runs every pending migration.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, Migrations())
	return m.Migrate()
}
