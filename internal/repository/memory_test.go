package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techblog/internal/apperror"
	"techblog/internal/models"
)

func newTestMemory(t *testing.T) (*memoryStore, *models.User) {
	t.Helper()

	s := newMemoryStore()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	owner := &models.User{Username: "alexjohnson", PasswordHash: "hash", FullName: "Alex Johnson"}
	require.NoError(t, s.CreateUser(context.Background(), owner))
	return s, owner
}

func addPost(t *testing.T, s *memoryStore, authorID int64, slug string, published, featured bool) *models.Post {
	t.Helper()

	p := &models.Post{Title: "Post " + slug, Slug: slug, Excerpt: "excerpt", Content: "content of " + slug,
		AuthorID: authorID, Published: published, Featured: featured}
	require.NoError(t, s.CreatePost(context.Background(), p))
	return p
}

func TestMemory_Users(t *testing.T) {
	s, owner := newTestMemory(t)
	ctx := context.Background()

	assert.Equal(t, "author", owner.Role)

	err := s.CreateUser(ctx, &models.User{Username: "alexjohnson"})
	assert.True(t, errors.Is(err, apperror.ErrConflict))

	second := &models.User{Username: "jess", FullName: "Jess"}
	require.NoError(t, s.CreateUser(ctx, second))

	got, err := s.GetBlogOwner(ctx)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, got.ID)

	byName, err := s.GetUserByUsername(ctx, "jess")
	require.NoError(t, err)
	assert.Equal(t, second.ID, byName.ID)

	_, err = s.GetUserByUsername(ctx, "nobody")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	second.Username = "alexjohnson"
	assert.True(t, errors.Is(s.UpdateUser(ctx, second), apperror.ErrConflict))

	assert.True(t, errors.Is(s.UpdateUser(ctx, &models.User{ID: 99}), apperror.ErrNotFound))

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{owner.ID, second.ID}, []int64{users[0].ID, users[1].ID})
}

func TestMemory_TagBySlugRoundTrip(t *testing.T) {
	s, _ := newTestMemory(t)
	ctx := context.Background()

	for _, slug := range []string{"react", "docker", "css"} {
		tag := &models.Tag{Name: slug, Slug: slug}
		require.NoError(t, s.CreateTag(ctx, tag))

		got, err := s.GetTagBySlug(ctx, slug)
		require.NoError(t, err)
		assert.Equal(t, *tag, *got)
		assert.Equal(t, "blue", got.Color)
	}

	_, err := s.GetTagBySlug(ctx, "nonexistent-slug")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	err = s.CreateTag(ctx, &models.Tag{Name: "react", Slug: "react-2"})
	assert.True(t, errors.Is(err, apperror.ErrConflict))
}

func TestMemory_PostsFilters(t *testing.T) {
	s, owner := newTestMemory(t)
	ctx := context.Background()

	draft := addPost(t, s, owner.ID, "draft", false, true)
	first := addPost(t, s, owner.ID, "first", true, false)
	featured := addPost(t, s, owner.ID, "featured", true, true)
	latest := addPost(t, s, owner.ID, "latest", true, false)

	all, err := s.ListPosts(ctx, PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, []int64{latest.ID, featured.ID, first.ID, draft.ID}, postIDs(all))

	published, err := s.ListPosts(ctx, PostFilter{PublishedOnly: true, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{latest.ID, featured.ID}, postIDs(published))

	feat, err := s.ListPosts(ctx, PostFilter{PublishedOnly: true, FeaturedOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []int64{featured.ID}, postIDs(feat))

	found, err := s.ListPosts(ctx, PostFilter{PublishedOnly: true, Query: "CONTENT OF DRAFT"})
	require.NoError(t, err)
	assert.Empty(t, found)

	byIDs, err := s.ListPosts(ctx, PostFilter{IDs: []int64{}})
	require.NoError(t, err)
	assert.Empty(t, byIDs)
}

func TestMemory_PostReferences(t *testing.T) {
	s, owner := newTestMemory(t)
	ctx := context.Background()

	err := s.CreatePost(ctx, &models.Post{Slug: "orphan", AuthorID: 404})
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	hello := addPost(t, s, owner.ID, "hello", true, false)
	got, err := s.GetPostByID(ctx, hello.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Slug)

	err = s.CreatePost(ctx, &models.Post{Slug: "hello", AuthorID: owner.ID})
	assert.True(t, errors.Is(err, apperror.ErrConflict))

	err = s.CreateComment(ctx, &models.Comment{Content: "?", PostID: 999})
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	assert.True(t, errors.Is(s.UpdatePostCoverImage(ctx, 999, "x"), apperror.ErrNotFound))
}

func TestMemory_TagLinksAreIdempotent(t *testing.T) {
	s, owner := newTestMemory(t)
	ctx := context.Background()

	post := addPost(t, s, owner.ID, "p", true, false)
	docker := &models.Tag{Name: "Docker", Slug: "docker"}
	css := &models.Tag{Name: "CSS", Slug: "css"}
	require.NoError(t, s.CreateTag(ctx, docker))
	require.NoError(t, s.CreateTag(ctx, css))

	require.NoError(t, s.AddTagToPost(ctx, post.ID, css.ID))
	require.NoError(t, s.AddTagToPost(ctx, post.ID, docker.ID))
	require.NoError(t, s.AddTagToPost(ctx, post.ID, docker.ID))

	tags, err := s.GetPostTags(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.Tag{*docker, *css}, tags)

	ids, err := s.GetPostIDsByTag(ctx, docker.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{post.ID}, ids)

	assert.True(t, errors.Is(s.AddTagToPost(ctx, post.ID, 999), apperror.ErrValidation))
}

func TestMemory_CommentsNewestFirst(t *testing.T) {
	s, owner := newTestMemory(t)
	ctx := context.Background()

	post := addPost(t, s, owner.ID, "p", true, false)
	older := &models.Comment{Content: "first", AuthorName: "A", AuthorEmail: "a@example.com", PostID: post.ID}
	newer := &models.Comment{Content: "second", AuthorName: "B", AuthorEmail: "b@example.com", PostID: post.ID}
	require.NoError(t, s.CreateComment(ctx, older))
	require.NoError(t, s.CreateComment(ctx, newer))

	comments, err := s.GetPostComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, newer.ID, comments[0].ID)
	assert.False(t, comments[0].CreatedAt.IsZero())
}

func TestMemory_Til(t *testing.T) {
	s, owner := newTestMemory(t)
	ctx := context.Background()

	tag := &models.Tag{Name: "Go", Slug: "go"}
	require.NoError(t, s.CreateTag(ctx, tag))

	a := &models.TilEntry{Title: "errgroup", Content: "SetLimit bounds goroutines", AuthorID: owner.ID}
	b := &models.TilEntry{Title: "sqlx", Content: "NamedQuery returns rows", AuthorID: owner.ID}
	require.NoError(t, s.CreateTilEntry(ctx, a))
	require.NoError(t, s.CreateTilEntry(ctx, b))
	require.NoError(t, s.AddTagToTil(ctx, a.ID, tag.ID))

	ids, err := s.GetTilIDsByTag(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{a.ID}, ids)

	found, err := s.ListTilEntries(ctx, TilFilter{Query: "goroutines"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, a.ID, found[0].ID)

	recent, err := s.ListTilEntries(ctx, TilFilter{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, b.ID, recent[0].ID)

	err = s.CreateTilEntry(ctx, &models.TilEntry{Title: "x", AuthorID: 404})
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestMemory_GithubUpsert(t *testing.T) {
	s, owner := newTestMemory(t)
	ctx := context.Background()

	repo := &models.GithubRepository{ID: 42, UserID: owner.ID, Name: "blog", URL: "https://github.com/alex/blog",
		Languages: models.Languages{"Go": 100}}

	inserted, err := s.UpsertGithubRepository(ctx, repo)
	require.NoError(t, err)
	assert.True(t, inserted)

	repo.Languages = models.Languages{"Go": 150, "SQL": 20}
	inserted, err = s.UpsertGithubRepository(ctx, repo)
	require.NoError(t, err)
	assert.False(t, inserted)

	repos, err := s.ListGithubRepositoriesByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, models.Languages{"Go": 150, "SQL": 20}, repos[0].Languages)

	repos[0].Languages["Go"] = 0
	stored, err := s.GetGithubRepository(ctx, owner.ID, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(150), stored.Languages["Go"])

	found, err := s.SearchGithubRepositories(ctx, "ALEX/BLOG")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	_, err = s.UpsertGithubRepository(ctx, &models.GithubRepository{ID: 1, UserID: 404})
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestMemory_CountTables(t *testing.T) {
	repo := NewMemoryRepository()

	count, err := repo.Tables.CountTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, count)
}

func postIDs(posts []models.Post) []int64 {
	ids := make([]int64, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}
