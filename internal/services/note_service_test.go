package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-notes-api/internal/auth"
	"github.com/yukikurage/task-notes-api/internal/logger"
	"github.com/yukikurage/task-notes-api/internal/models"
	"github.com/yukikurage/task-notes-api/internal/repository"
	"github.com/yukikurage/task-notes-api/internal/result"
	"github.com/yukikurage/task-notes-api/internal/testutil"
	"github.com/yukikurage/task-notes-api/internal/utils"
)

func TestNoteService_Lifecycle(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	svc := NewNoteService(repository.NewNoteRepository(db), logger.Nop())
	ctx := context.Background()

	owner := auth.UserActor(testutil.CreateUser(t, db, "owner@example.com").ID)

	res := svc.CreateNote(ctx, owner, "  Check the flaky migration  ", true)
	require.True(t, res.OK(), res.Message())

	note, err := svc.GetNote(ctx, owner, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "Check the flaky migration", note.Content)
	assert.True(t, note.IsTechnical)

	res = svc.EditNote(ctx, owner, note.ID, "Rewritten", false)
	require.True(t, res.OK(), res.Message())

	note, err = svc.GetNote(ctx, owner, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rewritten", note.Content)
	assert.False(t, note.IsTechnical)

	notes, err := svc.ListNotes(ctx, owner, utils.NewPaginationParams(1, 50))
	require.NoError(t, err)
	assert.Len(t, notes, 1)

	require.True(t, svc.DeleteNote(ctx, owner, note.ID).OK())
	assert.Equal(t, result.KindNotFoundOrForbidden, svc.DeleteNote(ctx, owner, note.ID).Kind())
}

func TestNoteService_EmptyContent(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	svc := NewNoteService(repository.NewNoteRepository(db), logger.Nop())
	ctx := context.Background()

	owner := auth.UserActor(testutil.CreateUser(t, db, "owner@example.com").ID)

	for _, content := range []string{"", "   \n\t"} {
		res := svc.CreateNote(ctx, owner, content, false)
		assert.Equal(t, result.KindInvalidContent, res.Kind())
	}

	var count int64
	require.NoError(t, db.Model(&models.Note{}).Count(&count).Error)
	assert.Zero(t, count)

	note := testutil.CreateNote(t, db, owner.UserID, "original")
	res := svc.EditNote(ctx, owner, note.ID, " ", true)
	assert.Equal(t, result.KindInvalidContent, res.Kind())

	var stored models.Note
	require.NoError(t, db.First(&stored, "id = ?", note.ID).Error)
	assert.Equal(t, "original", stored.Content)
}

func TestNoteService_OwnerScoping(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	svc := NewNoteService(repository.NewNoteRepository(db), logger.Nop())
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := auth.UserActor(testutil.CreateUser(t, db, "bob@example.com").ID)
	note := testutil.CreateNote(t, db, alice.ID, "private")

	assert.Equal(t, result.KindNotFoundOrForbidden, svc.EditNote(ctx, bob, note.ID, "mine now", true).Kind())
	assert.Equal(t, result.KindNotFoundOrForbidden, svc.DeleteNote(ctx, bob, note.ID).Kind())

	_, err := svc.GetNote(ctx, bob, note.ID)
	assert.Equal(t, result.KindNotFoundOrForbidden, result.KindOf(err))

	notes, err := svc.ListNotes(ctx, bob, utils.NewPaginationParams(1, 50))
	require.NoError(t, err)
	assert.Empty(t, notes)

	var stored models.Note
	require.NoError(t, db.First(&stored, "id = ?", note.ID).Error)
	assert.Equal(t, "private", stored.Content)
	assert.False(t, stored.IsTechnical)
}

func TestNoteService_Unauthorized(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	svc := NewNoteService(repository.NewNoteRepository(db), logger.Nop())

	res := svc.CreateNote(context.Background(), auth.Anonymous, "", false)
	assert.Equal(t, result.KindUnauthorized, res.Kind())
}
