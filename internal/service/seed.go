package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"techblog/internal/apperror"
	"techblog/internal/models"
)

func strPtr(s string) *string { return &s }

var defaultTags = []models.CreateTagRequest{
	{Name: "React", Slug: "react", Color: "blue"},
	{Name: "JavaScript", Slug: "javascript", Color: "yellow"},
	{Name: "TypeScript", Slug: "typescript", Color: "purple"},
	{Name: "Node.js", Slug: "nodejs", Color: "green"},
	{Name: "Performance", Slug: "performance", Color: "emerald"},
	{Name: "Docker", Slug: "docker", Color: "red"},
	{Name: "DevOps", Slug: "devops", Color: "blue"},
	{Name: "CSS", Slug: "css", Color: "indigo"},
}

// SeedDemoData creates the blog owner and the default tags. Existing rows are kept.
func SeedDemoData(ctx context.Context, svc *Service, log *zap.Logger) error {
	owner := models.CreateUserRequest{
		Username:    "alexjohnson",
		Password:    uuid.New().String(),
		FullName:    "Alex Johnson",
		Bio:         strPtr("Building web applications with React, Node.js, and TypeScript. Passionate about clean code and performance."),
		AvatarURL:   strPtr("https://images.unsplash.com/photo-1568602471122-7832951cc4c5?auto=format&fit=facearea&facepad=2&w=256&h=256&q=80"),
		TwitterURL:  strPtr("https://twitter.com"),
		GithubURL:   strPtr("https://github.com/alexjohnson"),
		LinkedinURL: strPtr("https://linkedin.com"),
		Role:        "admin",
	}

	if _, err := svc.User.CreateUser(ctx, owner); err != nil && !errors.Is(err, apperror.ErrConflict) {
		return fmt.Errorf("ошибка при создании владельца блога: %w", err)
	}

	created := 0
	for _, tag := range defaultTags {
		if _, err := svc.Tag.CreateTag(ctx, tag); err != nil {
			if errors.Is(err, apperror.ErrConflict) {
				continue
			}
			return fmt.Errorf("ошибка при создании тега %s: %w", tag.Slug, err)
		}
		created++
	}

	log.Info("демо-данные загружены", zap.Int("tags_created", created))
	return nil
}
