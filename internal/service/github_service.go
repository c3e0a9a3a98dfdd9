package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"techblog/internal/apperror"
	"techblog/internal/github"
	"techblog/internal/models"
	"techblog/internal/repository"
)

// GithubAPI is the subset of the hosting API used by the sync.
type GithubAPI interface {
	HasToken() bool
	ListRepositories(ctx context.Context, username string) ([]github.Repository, error)
	GetLanguages(ctx context.Context, repo github.Repository) (map[string]int64, error)
	GetReadme(ctx context.Context, owner, name string) (string, error)
}

type GithubService interface {
	SyncRepositories(ctx context.Context, username string, userID int64) (*models.SyncResult, error)
	SyncBlogOwner(ctx context.Context) (*models.SyncResult, error)
	GetRepositoriesByLanguage(ctx context.Context, language string) ([]models.GithubRepository, error)
	SearchRepositories(ctx context.Context, query string) ([]models.GithubRepository, error)
	ListLanguages(ctx context.Context) ([]string, error)
}

type githubService struct {
	repo        *repository.Repository
	api         GithubAPI
	concurrency int
	log         *zap.Logger

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewGithubService(repo *repository.Repository, api GithubAPI, concurrency int, log *zap.Logger) GithubService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &githubService{
		repo:        repo,
		api:         api,
		concurrency: concurrency,
		log:         log,
		locks:       make(map[int64]*sync.Mutex),
	}
}

// accountLock serializes syncs of the same local account.
func (s *githubService) accountLock(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

func (s *githubService) SyncRepositories(ctx context.Context, username string, userID int64) (*models.SyncResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || userID <= 0 {
		return nil, apperror.ValidationFailed("username", "username и userId обязательны")
	}

	if !s.api.HasToken() {
		return nil, apperror.Configuration("GitHub API токен не настроен")
	}

	if _, err := s.repo.User.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	lock := s.accountLock(userID)
	lock.Lock()
	defer lock.Unlock()

	remote, err := s.api.ListRepositories(ctx, username)
	if err != nil {
		return nil, apperror.ExternalService("ошибка при получении репозиториев GitHub", err)
	}

	var (
		failMu   sync.Mutex
		failures []models.SyncFailure
		synced   int
	)
	fail := func(name string, err error) {
		failMu.Lock()
		defer failMu.Unlock()
		failures = append(failures, models.SyncFailure{Repository: name, Error: err.Error()})
	}

	// siblings keep running when one repository fails
	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for _, r := range remote {
		g.Go(func() error {
			if err := s.syncOne(ctx, username, userID, r); err != nil {
				s.log.Warn("не удалось синхронизировать репозиторий",
					zap.String("repository", r.Name), zap.Int64("user_id", userID), zap.Error(err))
				fail(r.Name, err)
				return nil
			}

			failMu.Lock()
			synced++
			failMu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	repos, err := s.repo.Github.ListGithubRepositoriesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	sort.Slice(failures, func(i, j int) bool { return failures[i].Repository < failures[j].Repository })
	result := &models.SyncResult{Repositories: repos, Synced: synced, Failed: failures}

	s.log.Info("синхронизация репозиториев завершена",
		zap.String("username", username),
		zap.Int64("user_id", userID),
		zap.Int("fetched", len(remote)),
		zap.Int("synced", synced),
		zap.Int("failed", len(failures)),
	)

	if len(failures) > 0 {
		return result, apperror.ExternalService(
			fmt.Sprintf("не удалось синхронизировать %d из %d репозиториев", len(failures), len(remote)),
			errors.New(failures[0].Error),
		)
	}

	return result, nil
}

// syncOne fetches languages (required) and README (optional) and upserts the row.
func (s *githubService) syncOne(ctx context.Context, username string, userID int64, r github.Repository) error {
	languages, err := s.api.GetLanguages(ctx, r)
	if err != nil {
		return fmt.Errorf("языки: %w", err)
	}

	owner := r.Owner.Login
	if owner == "" {
		owner = username
	}

	var readme *string
	text, err := s.api.GetReadme(ctx, owner, r.Name)
	switch {
	case err == nil:
		readme = &text
	case errors.Is(err, github.ErrNotFound):
		s.log.Info("README не найден", zap.String("repository", r.Name))
	default:
		s.log.Warn("не удалось получить README", zap.String("repository", r.Name), zap.Error(err))
	}

	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	row := &models.GithubRepository{
		ID:          r.ID,
		UserID:      userID,
		Name:        r.Name,
		FullName:    r.FullName,
		Description: r.Description,
		URL:         r.HTMLURL,
		Homepage:    r.Homepage,
		Stars:       r.StargazersCount,
		Forks:       r.ForksCount,
		Languages:   models.Languages(languages),
		Topics:      pq.StringArray(r.Topics),
		Readme:      readme,
		CreatedAt:   createdAt,
		SyncedAt:    time.Now(),
	}

	if _, err := s.repo.Github.UpsertGithubRepository(ctx, row); err != nil {
		return fmt.Errorf("сохранение: %w", err)
	}

	return nil
}

// SyncBlogOwner syncs the account linked from the blog owner's profile.
func (s *githubService) SyncBlogOwner(ctx context.Context) (*models.SyncResult, error) {
	owner, err := s.repo.User.GetBlogOwner(ctx)
	if err != nil {
		return nil, err
	}

	username := GithubUsername(owner.GithubURL)
	if username == "" {
		return nil, apperror.NotFound("GitHub username владельца блога", owner.Username)
	}

	return s.SyncRepositories(ctx, username, owner.ID)
}

// GithubUsername extracts the account name from a profile URL like https://github.com/alex.
func GithubUsername(profileURL *string) string {
	if profileURL == nil {
		return ""
	}

	u, err := url.Parse(strings.TrimSpace(*profileURL))
	if err != nil {
		return ""
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	return segments[0]
}

func (s *githubService) GetRepositoriesByLanguage(ctx context.Context, language string) ([]models.GithubRepository, error) {
	repos, err := s.repo.Github.ListGithubRepositories(ctx)
	if err != nil {
		return nil, err
	}

	out := []models.GithubRepository{}
	for _, r := range repos {
		if r.Languages.Has(language) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *githubService) SearchRepositories(ctx context.Context, query string) ([]models.GithubRepository, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.GithubRepository{}, nil
	}
	return s.repo.Github.SearchGithubRepositories(ctx, query)
}

func (s *githubService) ListLanguages(ctx context.Context) ([]string, error) {
	repos, err := s.repo.Github.ListGithubRepositories(ctx)
	if err != nil {
		return nil, err
	}

	languages := []string{}
	for _, r := range repos {
		for _, name := range r.Languages.Names() {
			if !slices.Contains(languages, name) {
				languages = append(languages, name)
			}
		}
	}
	sort.Strings(languages)
	return languages, nil
}
