package service

import (
	"context"

	"techblog/internal/models"
	"techblog/internal/repository"
)

type TagService interface {
	ListTags(ctx context.Context) ([]models.Tag, error)
	CreateTag(ctx context.Context, req models.CreateTagRequest) (*models.Tag, error)
}

type tagService struct {
	tagRepo repository.TagRepository
}

func NewTagService(tagRepo repository.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.tagRepo.ListTags(ctx)
}

func (s *tagService) CreateTag(ctx context.Context, req models.CreateTagRequest) (*models.Tag, error) {
	tag := &models.Tag{Name: req.Name, Slug: req.Slug, Color: req.Color}
	if err := s.tagRepo.CreateTag(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}
