package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"techblog/internal/apperror"
	"techblog/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetBlogOwner(ctx context.Context) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
}

type TagRepository interface {
	CreateTag(ctx context.Context, tag *models.Tag) error
	GetTagByID(ctx context.Context, id int64) (*models.Tag, error)
	GetTagBySlug(ctx context.Context, slug string) (*models.Tag, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
}

type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id int64) (*models.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*models.Post, error)
	ListPosts(ctx context.Context, filter PostFilter) ([]models.Post, error)
	UpdatePostCoverImage(ctx context.Context, id int64, coverImage string) error
	GetPostTags(ctx context.Context, postID int64) ([]models.Tag, error)
	AddTagToPost(ctx context.Context, postID, tagID int64) error
	GetPostIDsByTag(ctx context.Context, tagID int64) ([]int64, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetPostComments(ctx context.Context, postID int64) ([]models.Comment, error)
}

type TilRepository interface {
	CreateTilEntry(ctx context.Context, entry *models.TilEntry) error
	GetTilEntryByID(ctx context.Context, id int64) (*models.TilEntry, error)
	ListTilEntries(ctx context.Context, filter TilFilter) ([]models.TilEntry, error)
	GetTilTags(ctx context.Context, tilID int64) ([]models.Tag, error)
	AddTagToTil(ctx context.Context, tilID, tagID int64) error
	GetTilIDsByTag(ctx context.Context, tagID int64) ([]int64, error)
}

type GithubRepository interface {
	// UpsertGithubRepository inserts the row or updates the mutable fields of the
	// existing (id, user_id) row. Reports whether a new row was inserted.
	UpsertGithubRepository(ctx context.Context, repo *models.GithubRepository) (bool, error)
	GetGithubRepository(ctx context.Context, userID, id int64) (*models.GithubRepository, error)
	ListGithubRepositories(ctx context.Context) ([]models.GithubRepository, error)
	ListGithubRepositoriesByUser(ctx context.Context, userID int64) ([]models.GithubRepository, error)
	SearchGithubRepositories(ctx context.Context, query string) ([]models.GithubRepository, error)
}

type TablesRepository interface {
	CountTables(ctx context.Context) (int, error)
}

// PostFilter narrows ListPosts. A non-nil IDs restricts the result to those posts.
type PostFilter struct {
	PublishedOnly bool
	FeaturedOnly  bool
	IDs           []int64
	Query         string
	Limit         int
}

type TilFilter struct {
	IDs   []int64
	Query string
	Limit int
}

type Repository struct {
	User    UserRepository
	Tag     TagRepository
	Post    PostRepository
	Comment CommentRepository
	Til     TilRepository
	Github  GithubRepository
	Tables  TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Tag:     NewTagRepository(db),
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
		Til:     NewTilRepository(db),
		Github:  NewGithubRepository(db),
		Tables:  NewTablesRepository(db),
	}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapWriteError turns constraint violations into Conflict / Validation errors.
func mapWriteError(err error, resource, key string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgUniqueViolation:
			return apperror.Conflict(resource, key)
		case pgForeignKeyViolation:
			return apperror.ValidationFailed(pqErr.Constraint, "связанная запись не существует")
		}
	}
	return fmt.Errorf("ошибка при сохранении (%s): %w", resource, err)
}

func mapReadError(err error, resource, key string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.NotFound(resource, key)
	}
	return fmt.Errorf("ошибка при получении (%s): %w", resource, err)
}

// insertReturning runs a named INSERT ... RETURNING and scans the single row into dest.
func insertReturning(ctx context.Context, db *sqlx.DB, query string, arg any, dest ...any) error {
	rows, err := db.NamedQueryContext(ctx, query, arg)
	if err != nil {
		return err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return err
		}
		return sql.ErrNoRows
	}
	return rows.Scan(dest...)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching query as a literal substring.
func containsPattern(query string) string {
	return "%" + likeEscaper.Replace(query) + "%"
}
