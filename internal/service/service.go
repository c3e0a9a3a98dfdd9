package service

import (
	"go.uber.org/zap"

	"techblog/internal/config"
	"techblog/internal/repository"
	"techblog/internal/storage"
)

type Service struct {
	User    UserService
	Tag     TagService
	Post    PostService
	Comment CommentService
	Til     TilService
	Github  GithubService
	Tables  TablesService
}

// NewService wires the services. storage may be nil when cover uploads are disabled,
// pinger may be nil for the in-memory store.
func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, api GithubAPI, pinger Pinger, log *zap.Logger) *Service {
	return &Service{
		User:    NewUserService(rep.User),
		Tag:     NewTagService(rep.Tag),
		Post:    NewPostService(rep, storage, cfg.MaxUploadSize, log.Named("posts")),
		Comment: NewCommentService(rep.Comment),
		Til:     NewTilService(rep, log.Named("til")),
		Github:  NewGithubService(rep, api, cfg.GitHub.Concurrency, log.Named("github")),
		Tables:  NewTablesService(rep.Tables, pinger, cfg.StorageDriver),
	}
}
