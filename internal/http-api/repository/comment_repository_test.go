package repository

import (
	"testing"

	"forumhub/internal/http-api/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

// The cleanup removes only notifications addressed to the replied-to
// user whose action object is this comment, then the replies, then the
// comment, all on one transaction.
func TestCommentRepository_DeleteWithNotifications_ScopesCleanup(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	replyTo := "root-author"
	comment := &models.Comment{ID: 10, PostID: 1, AuthorID: "writer", ReplyToID: &replyTo}

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "notifications" WHERE recipient_id = \$1 AND action_kind = \$2 AND action_id = \$3`).
		WithArgs("root-author", models.KindComment, int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "comments" WHERE parent_id = \$1`).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "comments" WHERE "comments"\."id" = \$1`).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.DeleteWithNotifications(comment)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Without a replied-to user there is no notification to clean up; the
// delete must not touch the notifications table at all.
func TestCommentRepository_DeleteWithNotifications_NoReplyTo(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	comment := &models.Comment{ID: 10, PostID: 1, AuthorID: "writer"}

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "comments" WHERE parent_id = \$1`).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "comments" WHERE "comments"\."id" = \$1`).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.DeleteWithNotifications(comment)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A racing insert that loses to the unique constraint reports "already
// exists", not an error.
func TestCommentRepository_GetOrCreateLike_UniqueViolationMeansExists(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "comment_likes"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	created, err := repo.GetOrCreateLike("fan", 10)

	assert.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}
