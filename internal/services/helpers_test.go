package services_test

import (
	"context"
	"testing"
	"time"

	"project-tracker/backend/internal/database"
	"project-tracker/backend/internal/models"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()

	user := models.User{
		ID:       uuid.Must(uuid.NewV4()),
		Name:     name,
		Email:    email,
		Password: "hashedpassword",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestProject(t *testing.T, db *gorm.DB, owner models.User, title string) models.Project {
	t.Helper()

	project := models.Project{
		ID:          uuid.Must(uuid.NewV4()),
		Title:       title,
		Description: "a project used in tests",
		Slug:        title + "-" + uuid.Must(uuid.NewV4()).String()[:8],
	}
	require.NoError(t, db.Create(&project).Error)
	require.NoError(t, db.Create(&models.Membership{
		ProjectID:   project.ID,
		UserID:      owner.ID,
		AccessLevel: models.AccessOwner,
	}).Error)
	return project
}

func addMember(t *testing.T, db *gorm.DB, project models.Project, user models.User, level models.AccessLevel) {
	t.Helper()

	require.NoError(t, db.Create(&models.Membership{
		ProjectID:   project.ID,
		UserID:      user.ID,
		AccessLevel: level,
	}).Error)
}

func createTestTask(t *testing.T, db *gorm.DB, project models.Project, title string, dueDate time.Time, completed bool) models.Task {
	t.Helper()

	task := models.Task{
		ID:          uuid.Must(uuid.NewV4()),
		ProjectID:   project.ID,
		Title:       title,
		Description: "a task used in tests",
		DueDate:     &dueDate,
		IsCompleted: completed,
		Slug:        title + "-" + uuid.Must(uuid.NewV4()).String()[:8],
	}
	require.NoError(t, db.Create(&task).Error)
	return task
}

func testContext() context.Context {
	return context.Background()
}

func futureDate() time.Time {
	return time.Now().Add(24 * time.Hour)
}
