package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"rentmart-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestNotificationRepository_MarkAsRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewNotificationRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE notifications SET is_read = TRUE WHERE id = \$1 AND user_id = \$2`).
			WithArgs(int32(9), int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkAsRead(ctx, 9, 7)
		assert.NoError(t, err)
	})

	t.Run("Missing or foreign notification", func(t *testing.T) {
		mock.ExpectExec(`UPDATE notifications SET is_read = TRUE WHERE id = \$1 AND user_id = \$2`).
			WithArgs(int32(404), int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkAsRead(ctx, 404, 7)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}
