package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"techblog/internal/apperror"
	"techblog/internal/models"
)

const userColumns = `id, username, password_hash, full_name, bio, avatar_url, twitter_url,
	github_url, linkedin_url, role, skills, introduction`

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	if user.Skills == nil {
		user.Skills = pq.StringArray{}
	}

	query := `
		INSERT INTO users (username, password_hash, full_name, bio, avatar_url, twitter_url,
			github_url, linkedin_url, role, skills, introduction)
		VALUES (:username, :password_hash, :full_name, :bio, :avatar_url, :twitter_url,
			:github_url, :linkedin_url, :role, :skills, :introduction)
		RETURNING id
	`

	if err := insertReturning(ctx, r.db, query, user, &user.ID); err != nil {
		return mapWriteError(err, "пользователь", user.Username)
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, mapReadError(err, "пользователь", strconv.FormatInt(id, 10))
	}

	return &user, nil
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		return nil, mapReadError(err, "пользователь", username)
	}

	return &user, nil
}

// GetBlogOwner returns the user with the lowest id.
func (r *userRepository) GetBlogOwner(ctx context.Context) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id ASC LIMIT 1`

	if err := r.db.GetContext(ctx, &user, query); err != nil {
		return nil, mapReadError(err, "владелец блога", "-")
	}

	return &user, nil
}

func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id ASC`

	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("ошибка при получении списка пользователей: %w", err)
	}

	return users, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *models.User) error {
	if user.Skills == nil {
		user.Skills = pq.StringArray{}
	}

	query := `
		UPDATE users SET
			username = :username,
			password_hash = :password_hash,
			full_name = :full_name,
			bio = :bio,
			avatar_url = :avatar_url,
			twitter_url = :twitter_url,
			github_url = :github_url,
			linkedin_url = :linkedin_url,
			role = :role,
			skills = :skills,
			introduction = :introduction
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return mapWriteError(err, "пользователь", user.Username)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperror.NotFound("пользователь", strconv.FormatInt(user.ID, 10))
	}

	return nil
}
