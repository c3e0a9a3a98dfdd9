package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techblog/internal/apperror"
	"techblog/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "postgres"), mock
}

var userRowColumns = []string{
	"id", "username", "password_hash", "full_name", "bio", "avatar_url", "twitter_url",
	"github_url", "linkedin_url", "role", "skills", "introduction",
}

func TestUserRepository_CreateUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("успешное создание пользователя", func(t *testing.T) {
		user := &models.User{Username: "alexjohnson", PasswordHash: "hash", FullName: "Alex Johnson", Role: "admin"}

		mock.ExpectQuery(`INSERT INTO users \(username, password_hash`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		require.NoError(t, repo.CreateUser(ctx, user))
		assert.Equal(t, int64(1), user.ID)
		assert.NotNil(t, user.Skills)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("дублирование username", func(t *testing.T) {
		user := &models.User{Username: "alexjohnson", PasswordHash: "hash", FullName: "Alex"}

		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_username_key"})

		err := repo.CreateUser(ctx, user)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperror.ErrConflict))
	})

	t.Run("ошибка соединения", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).WillReturnError(errors.New("connection refused"))

		err := repo.CreateUser(ctx, &models.User{Username: "x"})
		require.Error(t, err)
		assert.False(t, errors.Is(err, apperror.ErrConflict))
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestUserRepository_GetUserByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("пользователь найден", func(t *testing.T) {
		rows := sqlmock.NewRows(userRowColumns).
			AddRow(1, "alexjohnson", "hash", "Alex Johnson", "bio", nil, nil, "https://github.com/alexjohnson", nil, "admin", "{go,sql}", nil)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).
			WithArgs(int64(1)).
			WillReturnRows(rows)

		user, err := repo.GetUserByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "alexjohnson", user.Username)
		assert.Equal(t, pq.StringArray{"go", "sql"}, user.Skills)
		require.NotNil(t, user.GithubURL)
		assert.Nil(t, user.AvatarURL)
	})

	t.Run("пользователь не найден", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows(userRowColumns))

		_, err := repo.GetUserByID(ctx, 99)
		assert.True(t, errors.Is(err, apperror.ErrNotFound))
	})

	t.Run("поиск по username", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE username = $1`)).
			WithArgs("jess").
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow(2, "jess", "hash", "Jess", nil, nil, nil, nil, nil, "author", "{}", nil))

		user, err := repo.GetUserByUsername(ctx, "jess")
		require.NoError(t, err)
		assert.Equal(t, int64(2), user.ID)
		assert.Empty(t, user.Skills)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetBlogOwner(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users ORDER BY id ASC LIMIT 1`)).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(3, "owner", "hash", "Owner", nil, nil, nil, nil, nil, "author", "{}", nil))

	owner, err := repo.GetBlogOwner(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), owner.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("успешное обновление", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET`).WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateUser(ctx, &models.User{ID: 1, Username: "alex", FullName: "Alex"})
		assert.NoError(t, err)
	})

	t.Run("пользователь не существует", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateUser(ctx, &models.User{ID: 42, Username: "ghost"})
		assert.True(t, errors.Is(err, apperror.ErrNotFound))
	})

	t.Run("username занят", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET`).WillReturnError(&pq.Error{Code: "23505"})

		err := repo.UpdateUser(ctx, &models.User{ID: 1, Username: "taken"})
		assert.True(t, errors.Is(err, apperror.ErrConflict))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ListUsers(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users ORDER BY id ASC`)).
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	users, err := repo.ListUsers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}
