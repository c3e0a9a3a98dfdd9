package handlers

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"techblog/internal/config"
	"techblog/internal/service"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type Handlers struct {
	UserService    service.UserService
	TagService     service.TagService
	PostService    service.PostService
	CommentService service.CommentService
	TilService     service.TilService
	GithubService  service.GithubService
	TablesService  service.TablesService
	Cfg            *config.Config
	Validate       *validator.Validate
	log            *zap.Logger
}

func NewHandlers(service *service.Service, config *config.Config, log *zap.Logger) *Handlers {
	return &Handlers{
		UserService:    service.User,
		TagService:     service.Tag,
		PostService:    service.Post,
		CommentService: service.Comment,
		TilService:     service.Til,
		GithubService:  service.Github,
		TablesService:  service.Tables,
		Cfg:            config,
		Validate:       NewValidator(),
		log:            log,
	}
}

// NewValidator returns a validator that reports json field names and knows the "slug" tag.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})

	return v
}
