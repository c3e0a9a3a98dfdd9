package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"techblog/internal/models"
)

type SyncResponse struct {
	Message      string                    `json:"message"`
	Repositories []models.GithubRepository `json:"repositories"`
	Synced       int                       `json:"synced"`
	Failed       []models.SyncFailure      `json:"failed"`
}

// GetGithubRepos syncs the blog owner's account and returns the stored repositories.
func (h *Handlers) GetGithubRepos(w http.ResponseWriter, r *http.Request) {
	result, err := h.GithubService.SyncBlogOwner(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, result.Repositories, http.StatusOK)
}

func (h *Handlers) GetGithubReposByLanguage(w http.ResponseWriter, r *http.Request) {
	repos, err := h.GithubService.GetRepositoriesByLanguage(r.Context(), mux.Vars(r)["language"])
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, repos, http.StatusOK)
}

func (h *Handlers) SearchGithubRepos(w http.ResponseWriter, r *http.Request) {
	repos, err := h.GithubService.SearchRepositories(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, repos, http.StatusOK)
}

func (h *Handlers) GetGithubLanguages(w http.ResponseWriter, r *http.Request) {
	languages, err := h.GithubService.ListLanguages(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, languages, http.StatusOK)
}

func (h *Handlers) SyncGithub(w http.ResponseWriter, r *http.Request) {
	var req models.SyncRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		WriteError(w, "Необходимо указать username и userId", http.StatusBadRequest)
		return
	}

	result, err := h.GithubService.SyncRepositories(r.Context(), req.Username, req.UserID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	failed := result.Failed
	if failed == nil {
		failed = []models.SyncFailure{}
	}

	writeSuccess(w, SyncResponse{
		Message:      "Репозитории успешно синхронизированы",
		Repositories: result.Repositories,
		Synced:       result.Synced,
		Failed:       failed,
	}, http.StatusOK)
}
