// Package testutil provides database fixtures shared by package tests.
package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-notes-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB opens a migrated in-memory database that is closed with the test.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to ":memory:" is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Task{}, &models.Note{}))
	return db
}

// CreateUser inserts a user with a throwaway password hash.
func CreateUser(t testing.TB, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{Email: email, PasswordHash: "hashedpassword"}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTask inserts a TODO/medium task owned by ownerID.
func CreateTask(t testing.TB, db *gorm.DB, ownerID uuid.UUID, title string) *models.Task {
	t.Helper()

	task := &models.Task{
		OwnerID:  ownerID,
		Title:    title,
		Status:   models.TaskStatusTodo,
		Priority: models.TaskPriorityMedium,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}

// CreateNote inserts a note owned by ownerID.
func CreateNote(t testing.TB, db *gorm.DB, ownerID uuid.UUID, content string) *models.Note {
	t.Helper()

	note := &models.Note{OwnerID: ownerID, Content: content}
	require.NoError(t, db.Create(note).Error)
	return note
}
