package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"techblog/internal/apperror"
	"techblog/internal/models"
	"techblog/internal/repository"
)

type TilService interface {
	GetTilEntriesWithRelations(ctx context.Context) ([]models.TilEntryWithRelations, error)
	GetRecentTilEntries(ctx context.Context, limit int) ([]models.TilEntryWithRelations, error)
	GetTilEntry(ctx context.Context, id int64) (*models.TilEntryWithRelations, error)
	GetTilEntriesByTag(ctx context.Context, tagSlug string) ([]models.TilEntryWithRelations, error)
	SearchTilEntries(ctx context.Context, query string) ([]models.TilEntryWithRelations, error)
	CreateTilEntry(ctx context.Context, req models.CreateTilEntryRequest) (*models.TilEntryWithRelations, error)
}

type tilService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTilService(repo *repository.Repository, log *zap.Logger) TilService {
	return &tilService{repo: repo, log: log}
}

func (s *tilService) withRelations(ctx context.Context, entries []models.TilEntry) ([]models.TilEntryWithRelations, error) {
	authors := newAuthorCache(s.repo.User)
	out := make([]models.TilEntryWithRelations, 0, len(entries))

	for _, entry := range entries {
		author, err := authors.get(ctx, entry.AuthorID)
		if err != nil {
			if isNotFound(err) {
				s.log.Warn("автор записи TIL не найден", zap.Int64("til_id", entry.ID), zap.Int64("author_id", entry.AuthorID))
				continue
			}
			return nil, err
		}

		tags, err := s.repo.Til.GetTilTags(ctx, entry.ID)
		if err != nil {
			return nil, err
		}

		out = append(out, models.TilEntryWithRelations{TilEntry: entry, Author: *author, Tags: tags})
	}

	return out, nil
}

func (s *tilService) list(ctx context.Context, filter repository.TilFilter) ([]models.TilEntryWithRelations, error) {
	entries, err := s.repo.Til.ListTilEntries(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.withRelations(ctx, entries)
}

func (s *tilService) GetTilEntriesWithRelations(ctx context.Context) ([]models.TilEntryWithRelations, error) {
	return s.list(ctx, repository.TilFilter{})
}

func (s *tilService) GetRecentTilEntries(ctx context.Context, limit int) ([]models.TilEntryWithRelations, error) {
	return s.list(ctx, repository.TilFilter{Limit: limitOrDefault(limit, DefaultRecentLimit)})
}

func (s *tilService) GetTilEntry(ctx context.Context, id int64) (*models.TilEntryWithRelations, error) {
	entry, err := s.repo.Til.GetTilEntryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	author, err := s.repo.User.GetUserByID(ctx, entry.AuthorID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperror.NotFound("запись TIL", strconv.FormatInt(id, 10))
		}
		return nil, err
	}

	tags, err := s.repo.Til.GetTilTags(ctx, entry.ID)
	if err != nil {
		return nil, err
	}

	return &models.TilEntryWithRelations{TilEntry: *entry, Author: *author, Tags: tags}, nil
}

func (s *tilService) GetTilEntriesByTag(ctx context.Context, tagSlug string) ([]models.TilEntryWithRelations, error) {
	tag, err := s.repo.Tag.GetTagBySlug(ctx, tagSlug)
	if err != nil {
		if isNotFound(err) {
			return []models.TilEntryWithRelations{}, nil
		}
		return nil, err
	}

	ids, err := s.repo.Til.GetTilIDsByTag(ctx, tag.ID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.TilEntryWithRelations{}, nil
	}

	return s.list(ctx, repository.TilFilter{IDs: ids})
}

func (s *tilService) SearchTilEntries(ctx context.Context, query string) ([]models.TilEntryWithRelations, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.TilEntryWithRelations{}, nil
	}

	return s.list(ctx, repository.TilFilter{Query: query})
}

func (s *tilService) CreateTilEntry(ctx context.Context, req models.CreateTilEntryRequest) (*models.TilEntryWithRelations, error) {
	tagIDs := uniqueIDs(req.Tags)
	if err := checkTagsExist(ctx, s.repo.Tag, tagIDs); err != nil {
		return nil, err
	}

	entry := &models.TilEntry{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: req.AuthorID,
	}

	if err := s.repo.Til.CreateTilEntry(ctx, entry); err != nil {
		return nil, err
	}

	for _, tagID := range tagIDs {
		if err := s.repo.Til.AddTagToTil(ctx, entry.ID, tagID); err != nil {
			return nil, fmt.Errorf("ошибка при добавлении тега к записи TIL: %w", err)
		}
	}

	return s.GetTilEntry(ctx, entry.ID)
}
