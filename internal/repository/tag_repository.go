package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"

	"techblog/internal/models"
)

type tagRepository struct {
	db *sqlx.DB
}

func NewTagRepository(db *sqlx.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) CreateTag(ctx context.Context, tag *models.Tag) error {
	if tag.Color == "" {
		tag.Color = "blue"
	}

	query := `
		INSERT INTO tags (name, slug, color)
		VALUES (:name, :slug, :color)
		RETURNING id
	`

	if err := insertReturning(ctx, r.db, query, tag, &tag.ID); err != nil {
		return mapWriteError(err, "тег", tag.Slug)
	}

	return nil
}

func (r *tagRepository) GetTagByID(ctx context.Context, id int64) (*models.Tag, error) {
	var tag models.Tag

	if err := r.db.GetContext(ctx, &tag, `SELECT id, name, slug, color FROM tags WHERE id = $1`, id); err != nil {
		return nil, mapReadError(err, "тег", strconv.FormatInt(id, 10))
	}

	return &tag, nil
}

func (r *tagRepository) GetTagBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	var tag models.Tag

	if err := r.db.GetContext(ctx, &tag, `SELECT id, name, slug, color FROM tags WHERE slug = $1`, slug); err != nil {
		return nil, mapReadError(err, "тег", slug)
	}

	return &tag, nil
}

func (r *tagRepository) ListTags(ctx context.Context) ([]models.Tag, error) {
	tags := []models.Tag{}

	if err := r.db.SelectContext(ctx, &tags, `SELECT id, name, slug, color FROM tags ORDER BY id ASC`); err != nil {
		return nil, fmt.Errorf("ошибка при получении списка тегов: %w", err)
	}

	return tags, nil
}
