package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"techblog/internal/apperror"
	"techblog/internal/models"
	"techblog/internal/repository"
	"techblog/internal/storage"
)

const (
	DefaultFeaturedLimit = 1
	DefaultRecentLimit   = 5
	DefaultPopularLimit  = 4
)

type PostService interface {
	GetPostsWithRelations(ctx context.Context) ([]models.PostWithRelations, error)
	GetFeaturedPosts(ctx context.Context, limit int) ([]models.PostWithRelations, error)
	GetRecentPosts(ctx context.Context, limit int) ([]models.PostWithRelations, error)
	GetPopularPosts(ctx context.Context, limit int) ([]models.PostWithRelations, error)
	GetPostBySlug(ctx context.Context, slug string) (*models.PostDetail, error)
	GetPostsByTag(ctx context.Context, tagSlug string) ([]models.PostWithRelations, error)
	SearchPosts(ctx context.Context, query string) ([]models.PostWithRelations, error)
	CreatePost(ctx context.Context, req models.CreatePostRequest) (*models.PostWithRelations, error)
	SetPostCoverImage(ctx context.Context, slug string, file io.Reader) (*models.Post, error)
}

type postService struct {
	repo          *repository.Repository
	storage       storage.Storage
	maxUploadSize int64
	log           *zap.Logger
}

func NewPostService(repo *repository.Repository, storage storage.Storage, maxUploadSize int64, log *zap.Logger) PostService {
	return &postService{repo: repo, storage: storage, maxUploadSize: maxUploadSize, log: log}
}

func (p *postService) withRelations(ctx context.Context, posts []models.Post) ([]models.PostWithRelations, error) {
	authors := newAuthorCache(p.repo.User)
	out := make([]models.PostWithRelations, 0, len(posts))

	for _, post := range posts {
		author, err := authors.get(ctx, post.AuthorID)
		if err != nil {
			if isNotFound(err) {
				p.log.Warn("автор поста не найден", zap.Int64("post_id", post.ID), zap.Int64("author_id", post.AuthorID))
				continue
			}
			return nil, err
		}

		tags, err := p.repo.Post.GetPostTags(ctx, post.ID)
		if err != nil {
			return nil, err
		}

		out = append(out, models.PostWithRelations{Post: post, Author: *author, Tags: tags})
	}

	return out, nil
}

func (p *postService) list(ctx context.Context, filter repository.PostFilter) ([]models.PostWithRelations, error) {
	posts, err := p.repo.Post.ListPosts(ctx, filter)
	if err != nil {
		return nil, err
	}
	return p.withRelations(ctx, posts)
}

func (p *postService) GetPostsWithRelations(ctx context.Context) ([]models.PostWithRelations, error) {
	return p.list(ctx, repository.PostFilter{})
}

func (p *postService) GetFeaturedPosts(ctx context.Context, limit int) ([]models.PostWithRelations, error) {
	return p.list(ctx, repository.PostFilter{
		PublishedOnly: true,
		FeaturedOnly:  true,
		Limit:         limitOrDefault(limit, DefaultFeaturedLimit),
	})
}

func (p *postService) GetRecentPosts(ctx context.Context, limit int) ([]models.PostWithRelations, error) {
	return p.list(ctx, repository.PostFilter{
		PublishedOnly: true,
		Limit:         limitOrDefault(limit, DefaultRecentLimit),
	})
}

// GetPopularPosts has no popularity signal to rank by and returns the most recent posts.
func (p *postService) GetPopularPosts(ctx context.Context, limit int) ([]models.PostWithRelations, error) {
	return p.GetRecentPosts(ctx, limitOrDefault(limit, DefaultPopularLimit))
}

func (p *postService) GetPostBySlug(ctx context.Context, slug string) (*models.PostDetail, error) {
	post, err := p.repo.Post.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	author, err := p.repo.User.GetUserByID(ctx, post.AuthorID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperror.NotFound("пост", slug)
		}
		return nil, err
	}

	tags, err := p.repo.Post.GetPostTags(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	comments, err := p.repo.Comment.GetPostComments(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	return &models.PostDetail{
		PostWithRelations: models.PostWithRelations{Post: *post, Author: *author, Tags: tags},
		Comments:          comments,
	}, nil
}

func (p *postService) GetPostsByTag(ctx context.Context, tagSlug string) ([]models.PostWithRelations, error) {
	tag, err := p.repo.Tag.GetTagBySlug(ctx, tagSlug)
	if err != nil {
		if isNotFound(err) {
			return []models.PostWithRelations{}, nil
		}
		return nil, err
	}

	ids, err := p.repo.Post.GetPostIDsByTag(ctx, tag.ID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.PostWithRelations{}, nil
	}

	return p.list(ctx, repository.PostFilter{PublishedOnly: true, IDs: ids})
}

func (p *postService) SearchPosts(ctx context.Context, query string) ([]models.PostWithRelations, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.PostWithRelations{}, nil
	}

	return p.list(ctx, repository.PostFilter{PublishedOnly: true, Query: query})
}

func (p *postService) CreatePost(ctx context.Context, req models.CreatePostRequest) (*models.PostWithRelations, error) {
	tagIDs := uniqueIDs(req.Tags)
	if err := checkTagsExist(ctx, p.repo.Tag, tagIDs); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:       req.Title,
		Slug:        req.Slug,
		Excerpt:     req.Excerpt,
		Content:     req.Content,
		CoverImage:  req.CoverImage,
		AuthorID:    req.AuthorID,
		Published:   true,
		Featured:    false,
		ReadingTime: req.ReadingTime,
	}
	if req.Published != nil {
		post.Published = *req.Published
	}
	if req.Featured != nil {
		post.Featured = *req.Featured
	}
	if post.ReadingTime == nil || strings.TrimSpace(*post.ReadingTime) == "" {
		rt := ReadingTime(post.Content)
		post.ReadingTime = &rt
	}

	if err := p.repo.Post.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	for _, tagID := range tagIDs {
		if err := p.repo.Post.AddTagToPost(ctx, post.ID, tagID); err != nil {
			return nil, fmt.Errorf("ошибка при добавлении тега к посту: %w", err)
		}
	}

	author, err := p.repo.User.GetUserByID(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}

	tags, err := p.repo.Post.GetPostTags(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	p.log.Info("пост создан", zap.Int64("post_id", post.ID), zap.String("slug", post.Slug), zap.Int("tags", len(tags)))
	return &models.PostWithRelations{Post: *post, Author: *author, Tags: tags}, nil
}

func (p *postService) SetPostCoverImage(ctx context.Context, slug string, file io.Reader) (*models.Post, error) {
	if p.storage == nil {
		return nil, apperror.Configuration("хранилище изображений MinIO не настроено")
	}

	post, err := p.repo.Post.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(file, p.maxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла: %w", err)
	}
	if int64(len(data)) > p.maxUploadSize {
		return nil, apperror.ValidationFailed("image", "файл слишком большой")
	}
	if len(data) == 0 {
		return nil, apperror.ValidationFailed("image", "файл пуст")
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, apperror.ValidationFailed("image", fmt.Sprintf("неподдерживаемый тип файла: %s", mt.String()))
	}

	objectName, url, err := p.storage.UploadCover(ctx, post.ID, mt.Extension(), bytes.NewReader(data), int64(len(data)), mt.String())
	if err != nil {
		return nil, apperror.ExternalService("ошибка загрузки обложки", err)
	}

	if err := p.repo.Post.UpdatePostCoverImage(ctx, post.ID, url); err != nil {
		if delErr := p.storage.DeleteObject(ctx, objectName); delErr != nil {
			p.log.Warn("не удалось удалить объект из MinIO", zap.String("object", objectName), zap.Error(delErr))
		}
		return nil, err
	}

	post.CoverImage = &url
	return post, nil
}
