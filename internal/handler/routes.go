package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Router registers every endpoint. Fixed paths go before {slug} patterns.
func (h *Handlers) Router() *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, "Маршрут не найден", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	r.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.NotFoundHandler = r.NotFoundHandler
	api.MethodNotAllowedHandler = r.MethodNotAllowedHandler

	api.HandleFunc("/posts", h.GetPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts", h.CreatePost).Methods(http.MethodPost)
	api.HandleFunc("/posts/featured", h.GetFeaturedPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/recent", h.GetRecentPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/popular", h.GetPopularPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/{slug}", h.GetPost).Methods(http.MethodGet)
	api.HandleFunc("/posts/{slug}/cover", h.UploadCover).Methods(http.MethodPost)

	api.HandleFunc("/search", h.SearchPosts).Methods(http.MethodGet)

	api.HandleFunc("/tags", h.GetTags).Methods(http.MethodGet)
	api.HandleFunc("/tags", h.CreateTag).Methods(http.MethodPost)
	api.HandleFunc("/tags/{slug}/posts", h.GetPostsByTag).Methods(http.MethodGet)
	api.HandleFunc("/tags/{slug}/til", h.GetTilByTag).Methods(http.MethodGet)

	api.HandleFunc("/comments", h.CreateComment).Methods(http.MethodPost)

	api.HandleFunc("/users", h.GetUsers).Methods(http.MethodGet)
	api.HandleFunc("/users", h.CreateUser).Methods(http.MethodPost)
	api.HandleFunc("/users/{id:[0-9]+}", h.GetUser).Methods(http.MethodGet)
	api.HandleFunc("/users/{id:[0-9]+}", h.UpdateUser).Methods(http.MethodPut)

	api.HandleFunc("/til", h.GetTilEntries).Methods(http.MethodGet)
	api.HandleFunc("/til", h.CreateTilEntry).Methods(http.MethodPost)
	api.HandleFunc("/til/recent", h.GetRecentTilEntries).Methods(http.MethodGet)
	api.HandleFunc("/til/search", h.SearchTilEntries).Methods(http.MethodGet)
	api.HandleFunc("/til/{id:[0-9]+}", h.GetTilEntry).Methods(http.MethodGet)

	api.HandleFunc("/github/repos", h.GetGithubRepos).Methods(http.MethodGet)
	api.HandleFunc("/github/languages", h.GetGithubLanguages).Methods(http.MethodGet)
	api.HandleFunc("/github/language/{language}", h.GetGithubReposByLanguage).Methods(http.MethodGet)
	api.HandleFunc("/github/search", h.SearchGithubRepos).Methods(http.MethodGet)
	api.HandleFunc("/github/sync", h.SyncGithub).Methods(http.MethodPost)

	return r
}
