package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"aihub/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	query := regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1 ORDER BY "users"."id" LIMIT $2`)

	tests := []struct {
		name         string
		userID       string
		mockBehavior func()
		expectedName string
		expectedCode string
	}{
		{
			name:   "Success",
			userID: "u1",
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "name", "email"}).
					AddRow("u1", "Ada", "ada@example.com")
				mock.ExpectQuery(query).WithArgs("u1", 1).WillReturnRows(rows)
			},
			expectedName: "Ada",
		},
		{
			name:   "Not Found",
			userID: "missing",
			mockBehavior: func() {
				mock.ExpectQuery(query).WithArgs("missing", 1).WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedCode: models.CodeNotFound,
		},
		{
			name:   "Driver Error",
			userID: "u2",
			mockBehavior: func() {
				mock.ExpectQuery(query).WithArgs("u2", 1).WillReturnError(errors.New("connection reset"))
			},
			expectedCode: models.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByID(ctx, tt.userID)

			if tt.expectedCode != "" {
				var appErr *models.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.expectedCode, appErr.Code)
			} else if assert.NotNil(t, user) {
				assert.Equal(t, tt.expectedName, user.Name)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	query := regexp.QuoteMeta(`SELECT * FROM "users" WHERE LOWER(email) = $1 ORDER BY "users"."id" LIMIT $2`)

	t.Run("normalises the address", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs("ada@example.com", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow("u1", "ada@example.com"))

		user, err := repo.GetByEmail(ctx, "  Ada@Example.com ")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "u1", user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown address is not an error", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs("nobody@example.com", 1).WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.GetByEmail(ctx, "nobody@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
