package repository

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"

	"techblog/internal/apperror"
	"techblog/internal/models"
)

type linkKey struct {
	ownerID int64
	tagID   int64
}

type githubKey struct {
	userID int64
	id     int64
}

// memoryStore keeps every table in process memory. It implements all store
// interfaces and enforces the same uniqueness and reference rules as the schema.
type memoryStore struct {
	mu sync.RWMutex

	users    map[int64]models.User
	tags     map[int64]models.Tag
	posts    map[int64]models.Post
	comments map[int64]models.Comment
	tils     map[int64]models.TilEntry
	postTags map[linkKey]struct{}
	tilTags  map[linkKey]struct{}
	repos    map[githubKey]models.GithubRepository

	nextUserID    int64
	nextTagID     int64
	nextPostID    int64
	nextCommentID int64
	nextTilID     int64

	now func() time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    make(map[int64]models.User),
		tags:     make(map[int64]models.Tag),
		posts:    make(map[int64]models.Post),
		comments: make(map[int64]models.Comment),
		tils:     make(map[int64]models.TilEntry),
		postTags: make(map[linkKey]struct{}),
		tilTags:  make(map[linkKey]struct{}),
		repos:    make(map[githubKey]models.GithubRepository),
		now:      time.Now,
	}
}

func NewMemoryRepository() *Repository {
	s := newMemoryStore()
	return &Repository{
		User:    s,
		Tag:     s,
		Post:    s,
		Comment: s,
		Til:     s,
		Github:  s,
		Tables:  s,
	}
}

func idKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

// users

func cloneUser(u models.User) models.User {
	u.Skills = append(pq.StringArray{}, u.Skills...)
	return u
}

func (s *memoryStore) usernameTaken(username string, exceptID int64) bool {
	for _, u := range s.users {
		if u.Username == username && u.ID != exceptID {
			return true
		}
	}
	return false
}

func (s *memoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.usernameTaken(user.Username, 0) {
		return apperror.Conflict("пользователь", user.Username)
	}
	if user.Role == "" {
		user.Role = "author"
	}

	s.nextUserID++
	user.ID = s.nextUserID
	stored := cloneUser(*user)
	s.users[user.ID] = stored
	user.Skills = stored.Skills
	return nil
}

func (s *memoryStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, apperror.NotFound("пользователь", idKey(id))
	}
	u = cloneUser(u)
	return &u, nil
}

func (s *memoryStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			u = cloneUser(u)
			return &u, nil
		}
	}
	return nil, apperror.NotFound("пользователь", username)
}

func (s *memoryStore) GetBlogOwner(_ context.Context) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.users) == 0 {
		return nil, apperror.NotFound("владелец блога", "-")
	}
	u := cloneUser(s.users[slices.Min(slices.Collect(maps.Keys(s.users)))])
	return &u, nil
}

func (s *memoryStore) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, id := range slices.Sorted(maps.Keys(s.users)) {
		users = append(users, cloneUser(s.users[id]))
	}
	return users, nil
}

func (s *memoryStore) UpdateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return apperror.NotFound("пользователь", idKey(user.ID))
	}
	if s.usernameTaken(user.Username, user.ID) {
		return apperror.Conflict("пользователь", user.Username)
	}
	s.users[user.ID] = cloneUser(*user)
	return nil
}

// tags

func (s *memoryStore) CreateTag(_ context.Context, tag *models.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tags {
		if t.Name == tag.Name || t.Slug == tag.Slug {
			return apperror.Conflict("тег", tag.Slug)
		}
	}
	if tag.Color == "" {
		tag.Color = "blue"
	}

	s.nextTagID++
	tag.ID = s.nextTagID
	s.tags[tag.ID] = *tag
	return nil
}

func (s *memoryStore) GetTagByID(_ context.Context, id int64) (*models.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tags[id]
	if !ok {
		return nil, apperror.NotFound("тег", idKey(id))
	}
	return &t, nil
}

func (s *memoryStore) GetTagBySlug(_ context.Context, slug string) (*models.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tags {
		if t.Slug == slug {
			return &t, nil
		}
	}
	return nil, apperror.NotFound("тег", slug)
}

func (s *memoryStore) ListTags(_ context.Context) ([]models.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tags := make([]models.Tag, 0, len(s.tags))
	for _, id := range slices.Sorted(maps.Keys(s.tags)) {
		tags = append(tags, s.tags[id])
	}
	return tags, nil
}

func (s *memoryStore) linkedTags(links map[linkKey]struct{}, ownerID int64) []models.Tag {
	tags := []models.Tag{}
	for key := range links {
		if key.ownerID == ownerID {
			tags = append(tags, s.tags[key.tagID])
		}
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].ID < tags[j].ID })
	return tags
}

func linkedOwners(links map[linkKey]struct{}, tagID int64) []int64 {
	ids := []int64{}
	for key := range links {
		if key.tagID == tagID {
			ids = append(ids, key.ownerID)
		}
	}
	slices.Sort(ids)
	return ids
}

// posts

func (s *memoryStore) CreatePost(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[post.AuthorID]; !ok {
		return apperror.ValidationFailed("authorId", "связанная запись не существует")
	}
	for _, p := range s.posts {
		if p.Slug == post.Slug {
			return apperror.Conflict("пост", post.Slug)
		}
	}

	s.nextPostID++
	post.ID = s.nextPostID
	post.CreatedAt = s.now()
	s.posts[post.ID] = *post
	return nil
}

func (s *memoryStore) GetPostByID(_ context.Context, id int64) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, apperror.NotFound("пост", idKey(id))
	}
	return &p, nil
}

func (s *memoryStore) GetPostBySlug(_ context.Context, slug string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.posts {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, apperror.NotFound("пост", slug)
}

func containsFold(query string, fields ...string) bool {
	query = strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

func (s *memoryStore) ListPosts(_ context.Context, filter PostFilter) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := strings.TrimSpace(filter.Query)
	posts := []models.Post{}
	for _, p := range s.posts {
		if filter.PublishedOnly && !p.Published {
			continue
		}
		if filter.FeaturedOnly && !p.Featured {
			continue
		}
		if filter.IDs != nil && !slices.Contains(filter.IDs, p.ID) {
			continue
		}
		if query != "" && !containsFold(query, p.Title, p.Excerpt, p.Content) {
			continue
		}
		posts = append(posts, p)
	}

	sort.Slice(posts, func(i, j int) bool {
		return newerFirst(posts[i].CreatedAt, posts[i].ID, posts[j].CreatedAt, posts[j].ID)
	})
	return truncate(posts, filter.Limit), nil
}

func newerFirst(at time.Time, id int64, bt time.Time, bid int64) bool {
	if !at.Equal(bt) {
		return at.After(bt)
	}
	return id > bid
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

func (s *memoryStore) UpdatePostCoverImage(_ context.Context, id int64, coverImage string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return apperror.NotFound("пост", idKey(id))
	}
	p.CoverImage = &coverImage
	s.posts[id] = p
	return nil
}

func (s *memoryStore) GetPostTags(_ context.Context, postID int64) ([]models.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.linkedTags(s.postTags, postID), nil
}

func (s *memoryStore) AddTagToPost(_ context.Context, postID, tagID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[postID]; !ok {
		return apperror.ValidationFailed("postId", "связанная запись не существует")
	}
	if _, ok := s.tags[tagID]; !ok {
		return apperror.ValidationFailed("tagId", "связанная запись не существует")
	}
	s.postTags[linkKey{ownerID: postID, tagID: tagID}] = struct{}{}
	return nil
}

func (s *memoryStore) GetPostIDsByTag(_ context.Context, tagID int64) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return linkedOwners(s.postTags, tagID), nil
}

// comments

func (s *memoryStore) CreateComment(_ context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[comment.PostID]; !ok {
		return apperror.ValidationFailed("postId", "связанная запись не существует")
	}

	s.nextCommentID++
	comment.ID = s.nextCommentID
	comment.CreatedAt = s.now()
	s.comments[comment.ID] = *comment
	return nil
}

func (s *memoryStore) GetPostComments(_ context.Context, postID int64) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comments := []models.Comment{}
	for _, c := range s.comments {
		if c.PostID == postID {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return newerFirst(comments[i].CreatedAt, comments[i].ID, comments[j].CreatedAt, comments[j].ID)
	})
	return comments, nil
}

// til

func (s *memoryStore) CreateTilEntry(_ context.Context, entry *models.TilEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[entry.AuthorID]; !ok {
		return apperror.ValidationFailed("authorId", "связанная запись не существует")
	}

	s.nextTilID++
	entry.ID = s.nextTilID
	entry.CreatedAt = s.now()
	s.tils[entry.ID] = *entry
	return nil
}

func (s *memoryStore) GetTilEntryByID(_ context.Context, id int64) (*models.TilEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.tils[id]
	if !ok {
		return nil, apperror.NotFound("запись TIL", idKey(id))
	}
	return &e, nil
}

func (s *memoryStore) ListTilEntries(_ context.Context, filter TilFilter) ([]models.TilEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := strings.TrimSpace(filter.Query)
	entries := []models.TilEntry{}
	for _, e := range s.tils {
		if filter.IDs != nil && !slices.Contains(filter.IDs, e.ID) {
			continue
		}
		if query != "" && !containsFold(query, e.Title, e.Content) {
			continue
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		return newerFirst(entries[i].CreatedAt, entries[i].ID, entries[j].CreatedAt, entries[j].ID)
	})
	return truncate(entries, filter.Limit), nil
}

func (s *memoryStore) GetTilTags(_ context.Context, tilID int64) ([]models.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.linkedTags(s.tilTags, tilID), nil
}

func (s *memoryStore) AddTagToTil(_ context.Context, tilID, tagID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tils[tilID]; !ok {
		return apperror.ValidationFailed("tilId", "связанная запись не существует")
	}
	if _, ok := s.tags[tagID]; !ok {
		return apperror.ValidationFailed("tagId", "связанная запись не существует")
	}
	s.tilTags[linkKey{ownerID: tilID, tagID: tagID}] = struct{}{}
	return nil
}

func (s *memoryStore) GetTilIDsByTag(_ context.Context, tagID int64) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return linkedOwners(s.tilTags, tagID), nil
}

// github repositories

func cloneRepo(r models.GithubRepository) models.GithubRepository {
	r.Languages = maps.Clone(r.Languages)
	if r.Languages == nil {
		r.Languages = models.Languages{}
	}
	r.Topics = append(pq.StringArray{}, r.Topics...)
	return r
}

func (s *memoryStore) UpsertGithubRepository(_ context.Context, repo *models.GithubRepository) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[repo.UserID]; !ok {
		return false, apperror.ValidationFailed("userId", "связанная запись не существует")
	}

	key := githubKey{userID: repo.UserID, id: repo.ID}
	_, exists := s.repos[key]
	s.repos[key] = cloneRepo(*repo)
	return !exists, nil
}

func (s *memoryStore) GetGithubRepository(_ context.Context, userID, id int64) (*models.GithubRepository, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.repos[githubKey{userID: userID, id: id}]
	if !ok {
		return nil, apperror.NotFound("репозиторий", fmt.Sprintf("%d/%d", userID, id))
	}
	r = cloneRepo(r)
	return &r, nil
}

func (s *memoryStore) listRepos(keep func(models.GithubRepository) bool) []models.GithubRepository {
	repos := []models.GithubRepository{}
	for _, r := range s.repos {
		if keep(r) {
			repos = append(repos, cloneRepo(r))
		}
	}
	sort.Slice(repos, func(i, j int) bool {
		return newerFirst(repos[i].CreatedAt, repos[i].ID, repos[j].CreatedAt, repos[j].ID)
	})
	return repos
}

func (s *memoryStore) ListGithubRepositories(_ context.Context) ([]models.GithubRepository, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listRepos(func(models.GithubRepository) bool { return true }), nil
}

func (s *memoryStore) ListGithubRepositoriesByUser(_ context.Context, userID int64) ([]models.GithubRepository, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listRepos(func(r models.GithubRepository) bool { return r.UserID == userID }), nil
}

func (s *memoryStore) SearchGithubRepositories(_ context.Context, query string) ([]models.GithubRepository, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.GithubRepository{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listRepos(func(r models.GithubRepository) bool { return containsFold(query, r.Name, r.URL) }), nil
}

// memoryTableCount mirrors the eight tables of the relational schema.
const memoryTableCount = 8

func (s *memoryStore) CountTables(_ context.Context) (int, error) {
	return memoryTableCount, nil
}
