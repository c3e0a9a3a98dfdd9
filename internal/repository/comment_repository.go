package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"

	"techblog/internal/models"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (content, author_name, author_email, post_id)
		VALUES (:content, :author_name, :author_email, :post_id)
		RETURNING id, created_at
	`

	if err := insertReturning(ctx, r.db, query, comment, &comment.ID, &comment.CreatedAt); err != nil {
		return mapWriteError(err, "комментарий", strconv.FormatInt(comment.PostID, 10))
	}

	return nil
}

// GetPostComments returns the comments of a post, newest first.
func (r *commentRepository) GetPostComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	query := `
		SELECT id, content, author_name, author_email, post_id, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at DESC, id DESC
	`

	comments := []models.Comment{}
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, fmt.Errorf("ошибка при получении комментариев: %w", err)
	}

	return comments, nil
}
