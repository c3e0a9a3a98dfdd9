package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"techblog/internal/apperror"
	"techblog/internal/models"
)

var postColumns = []string{
	"id", "title", "slug", "excerpt", "content", "cover_image", "author_id",
	"published", "featured", "created_at", "reading_time",
}

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) CreatePost(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (title, slug, excerpt, content, cover_image, author_id, published, featured, reading_time)
		VALUES (:title, :slug, :excerpt, :content, :cover_image, :author_id, :published, :featured, :reading_time)
		RETURNING id, created_at
	`

	if err := insertReturning(ctx, r.db, query, post, &post.ID, &post.CreatedAt); err != nil {
		return mapWriteError(err, "пост", post.Slug)
	}

	return nil
}

func (r *postRepository) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	return r.getOne(ctx, sq.Eq{"id": id}, strconv.FormatInt(id, 10))
}

func (r *postRepository) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return r.getOne(ctx, sq.Eq{"slug": slug}, slug)
}

func (r *postRepository) getOne(ctx context.Context, where sq.Eq, key string) (*models.Post, error) {
	query, args, err := psql.Select(postColumns...).From("posts").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка при построении запроса: %w", err)
	}

	var post models.Post
	if err := r.db.GetContext(ctx, &post, query, args...); err != nil {
		return nil, mapReadError(err, "пост", key)
	}

	return &post, nil
}

func (r *postRepository) ListPosts(ctx context.Context, filter PostFilter) ([]models.Post, error) {
	builder := psql.Select(postColumns...).
		From("posts").
		OrderBy("created_at DESC", "id DESC")

	if filter.PublishedOnly {
		builder = builder.Where(sq.Eq{"published": true})
	}
	if filter.FeaturedOnly {
		builder = builder.Where(sq.Eq{"featured": true})
	}
	if filter.IDs != nil {
		builder = builder.Where(sq.Eq{"id": filter.IDs})
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := containsPattern(q)
		builder = builder.Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"excerpt": pattern},
			sq.ILike{"content": pattern},
		})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка при построении запроса: %w", err)
	}

	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("ошибка при получении постов: %w", err)
	}

	return posts, nil
}

func (r *postRepository) UpdatePostCoverImage(ctx context.Context, id int64, coverImage string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE posts SET cover_image = $1 WHERE id = $2`, coverImage, id)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении обложки поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperror.NotFound("пост", strconv.FormatInt(id, 10))
	}

	return nil
}

func (r *postRepository) GetPostTags(ctx context.Context, postID int64) ([]models.Tag, error) {
	query := `
		SELECT t.id, t.name, t.slug, t.color
		FROM tags t
		JOIN posts_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = $1
		ORDER BY t.id ASC
	`

	tags := []models.Tag{}
	if err := r.db.SelectContext(ctx, &tags, query, postID); err != nil {
		return nil, fmt.Errorf("ошибка при получении тегов поста: %w", err)
	}

	return tags, nil
}

// AddTagToPost is idempotent: an existing link is left as is.
func (r *postRepository) AddTagToPost(ctx context.Context, postID, tagID int64) error {
	query := `
		INSERT INTO posts_tags (post_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, tag_id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, postID, tagID); err != nil {
		return mapWriteError(err, "связь пост-тег", fmt.Sprintf("%d/%d", postID, tagID))
	}

	return nil
}

func (r *postRepository) GetPostIDsByTag(ctx context.Context, tagID int64) ([]int64, error) {
	ids := []int64{}
	if err := r.db.SelectContext(ctx, &ids, `SELECT post_id FROM posts_tags WHERE tag_id = $1 ORDER BY post_id`, tagID); err != nil {
		return nil, fmt.Errorf("ошибка при получении постов тега: %w", err)
	}

	return ids, nil
}
