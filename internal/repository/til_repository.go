package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"techblog/internal/models"
)

var tilColumns = []string{"id", "title", "content", "author_id", "created_at"}

type tilRepository struct {
	db *sqlx.DB
}

func NewTilRepository(db *sqlx.DB) TilRepository {
	return &tilRepository{db: db}
}

func (r *tilRepository) CreateTilEntry(ctx context.Context, entry *models.TilEntry) error {
	query := `
		INSERT INTO til_entries (title, content, author_id)
		VALUES (:title, :content, :author_id)
		RETURNING id, created_at
	`

	if err := insertReturning(ctx, r.db, query, entry, &entry.ID, &entry.CreatedAt); err != nil {
		return mapWriteError(err, "запись TIL", entry.Title)
	}

	return nil
}

func (r *tilRepository) GetTilEntryByID(ctx context.Context, id int64) (*models.TilEntry, error) {
	query, args, err := psql.Select(tilColumns...).From("til_entries").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка при построении запроса: %w", err)
	}

	var entry models.TilEntry
	if err := r.db.GetContext(ctx, &entry, query, args...); err != nil {
		return nil, mapReadError(err, "запись TIL", strconv.FormatInt(id, 10))
	}

	return &entry, nil
}

func (r *tilRepository) ListTilEntries(ctx context.Context, filter TilFilter) ([]models.TilEntry, error) {
	builder := psql.Select(tilColumns...).
		From("til_entries").
		OrderBy("created_at DESC", "id DESC")

	if filter.IDs != nil {
		builder = builder.Where(sq.Eq{"id": filter.IDs})
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := containsPattern(q)
		builder = builder.Where(sq.Or{
			sq.ILike{"title": pattern},
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

	entries := []models.TilEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("ошибка при получении записей TIL: %w", err)
	}

	return entries, nil
}

func (r *tilRepository) GetTilTags(ctx context.Context, tilID int64) ([]models.Tag, error) {
	query := `
		SELECT t.id, t.name, t.slug, t.color
		FROM tags t
		JOIN til_tags tt ON tt.tag_id = t.id
		WHERE tt.til_id = $1
		ORDER BY t.id ASC
	`

	tags := []models.Tag{}
	if err := r.db.SelectContext(ctx, &tags, query, tilID); err != nil {
		return nil, fmt.Errorf("ошибка при получении тегов записи TIL: %w", err)
	}

	return tags, nil
}

func (r *tilRepository) AddTagToTil(ctx context.Context, tilID, tagID int64) error {
	query := `
		INSERT INTO til_tags (til_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT (til_id, tag_id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, tilID, tagID); err != nil {
		return mapWriteError(err, "связь TIL-тег", fmt.Sprintf("%d/%d", tilID, tagID))
	}

	return nil
}

func (r *tilRepository) GetTilIDsByTag(ctx context.Context, tagID int64) ([]int64, error) {
	ids := []int64{}
	if err := r.db.SelectContext(ctx, &ids, `SELECT til_id FROM til_tags WHERE tag_id = $1 ORDER BY til_id`, tagID); err != nil {
		return nil, fmt.Errorf("ошибка при получении записей TIL тега: %w", err)
	}

	return ids, nil
}
