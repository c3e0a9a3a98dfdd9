package service

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"techblog/internal/models"
	"techblog/internal/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetBlogOwner(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockPostRepository) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) ListPosts(ctx context.Context, filter repository.PostFilter) ([]models.Post, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) UpdatePostCoverImage(ctx context.Context, id int64, coverImage string) error {
	return m.Called(ctx, id, coverImage).Error(0)
}

func (m *MockPostRepository) GetPostTags(ctx context.Context, postID int64) ([]models.Tag, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockPostRepository) AddTagToPost(ctx context.Context, postID, tagID int64) error {
	return m.Called(ctx, postID, tagID).Error(0)
}

func (m *MockPostRepository) GetPostIDsByTag(ctx context.Context, tagID int64) ([]int64, error) {
	args := m.Called(ctx, tagID)
	return args.Get(0).([]int64), args.Error(1)
}

// fakeStorage records uploads in memory.
type fakeStorage struct {
	uploaded    map[string][]byte
	contentType string
	deleted     []string
	err         error
}

func (f *fakeStorage) UploadCover(_ context.Context, postID int64, ext string, file io.Reader, _ int64, contentType string) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	data, _ := io.ReadAll(file)
	name := "posts/cover" + ext
	if f.uploaded == nil {
		f.uploaded = map[string][]byte{}
	}
	f.uploaded[name] = data
	f.contentType = contentType
	return name, "http://minio.local/covers/" + name, nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, objectName string) error {
	f.deleted = append(f.deleted, objectName)
	return nil
}
