package repository

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"techblog/internal/models"
)

var githubColumns = []string{
	"id", "user_id", "name", "full_name", "description", "url", "homepage", "stars",
	"forks", "languages", "topics", "readme", "created_at", "synced_at",
}

type githubRepository struct {
	db *sqlx.DB
}

func NewGithubRepository(db *sqlx.DB) GithubRepository {
	return &githubRepository{db: db}
}

func (r *githubRepository) UpsertGithubRepository(ctx context.Context, repo *models.GithubRepository) (bool, error) {
	if repo.Languages == nil {
		repo.Languages = models.Languages{}
	}
	if repo.Topics == nil {
		repo.Topics = pq.StringArray{}
	}

	query := `
		INSERT INTO github_repositories (id, user_id, name, full_name, description, url, homepage,
			stars, forks, languages, topics, readme, created_at, synced_at)
		VALUES (:id, :user_id, :name, :full_name, :description, :url, :homepage,
			:stars, :forks, :languages, :topics, :readme, :created_at, :synced_at)
		ON CONFLICT (id, user_id) DO UPDATE SET
			name = EXCLUDED.name,
			full_name = EXCLUDED.full_name,
			description = EXCLUDED.description,
			url = EXCLUDED.url,
			homepage = EXCLUDED.homepage,
			stars = EXCLUDED.stars,
			forks = EXCLUDED.forks,
			languages = EXCLUDED.languages,
			topics = EXCLUDED.topics,
			readme = EXCLUDED.readme,
			created_at = EXCLUDED.created_at,
			synced_at = EXCLUDED.synced_at
		RETURNING (xmax = 0) AS inserted
	`

	var inserted bool
	if err := insertReturning(ctx, r.db, query, repo, &inserted); err != nil {
		return false, mapWriteError(err, "репозиторий", repo.Name)
	}

	return inserted, nil
}

func (r *githubRepository) GetGithubRepository(ctx context.Context, userID, id int64) (*models.GithubRepository, error) {
	query, args, err := psql.Select(githubColumns...).
		From("github_repositories").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка при построении запроса: %w", err)
	}

	var repo models.GithubRepository
	if err := r.db.GetContext(ctx, &repo, query, args...); err != nil {
		return nil, mapReadError(err, "репозиторий", fmt.Sprintf("%d/%d", userID, id))
	}

	return &repo, nil
}

func (r *githubRepository) ListGithubRepositories(ctx context.Context) ([]models.GithubRepository, error) {
	return r.list(ctx, nil)
}

func (r *githubRepository) ListGithubRepositoriesByUser(ctx context.Context, userID int64) ([]models.GithubRepository, error) {
	return r.list(ctx, sq.Eq{"user_id": userID})
}

// SearchGithubRepositories matches name or url, case-insensitively.
func (r *githubRepository) SearchGithubRepositories(ctx context.Context, query string) ([]models.GithubRepository, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.GithubRepository{}, nil
	}

	pattern := containsPattern(query)
	return r.list(ctx, sq.Or{
		sq.ILike{"name": pattern},
		sq.ILike{"url": pattern},
	})
}

func (r *githubRepository) list(ctx context.Context, where sq.Sqlizer) ([]models.GithubRepository, error) {
	builder := psql.Select(githubColumns...).
		From("github_repositories").
		OrderBy("created_at DESC", "id DESC")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка при построении запроса: %w", err)
	}

	repos := []models.GithubRepository{}
	if err := r.db.SelectContext(ctx, &repos, query, args...); err != nil {
		return nil, fmt.Errorf("ошибка при получении репозиториев: %w", err)
	}

	return repos, nil
}
