package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"techblog/internal/apperror"
	"techblog/internal/models"
	"techblog/internal/repository"
)

const wordsPerMinute = 200

// ReadingTime estimates the reading time label of markdown content.
func ReadingTime(content string) string {
	words := len(strings.Fields(content))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// authorCache resolves each distinct author once per listing.
type authorCache struct {
	users repository.UserRepository
	seen  map[int64]*models.User
}

func newAuthorCache(users repository.UserRepository) *authorCache {
	return &authorCache{users: users, seen: make(map[int64]*models.User)}
}

func (c *authorCache) get(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := c.seen[id]; ok {
		return u, nil
	}

	u, err := c.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.seen[id] = u
	return u, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, apperror.ErrNotFound)
}

// uniqueIDs drops duplicates, keeping the first occurrence order.
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func checkTagsExist(ctx context.Context, tags repository.TagRepository, ids []int64) error {
	for _, id := range ids {
		if _, err := tags.GetTagByID(ctx, id); err != nil {
			if isNotFound(err) {
				return apperror.ValidationFailed("tags", fmt.Sprintf("тег %d не существует", id))
			}
			return err
		}
	}
	return nil
}

func limitOrDefault(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return limit
}
