package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"techblog/internal/models"
)

func (h *Handlers) GetTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.TagService.ListTags(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, tags, http.StatusOK)
}

func (h *Handlers) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTagRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	tag, err := h.TagService.CreateTag(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, tag, http.StatusCreated)
}

// GetPostsByTag answers 200 with an empty list for an unknown tag.
func (h *Handlers) GetPostsByTag(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.GetPostsByTag(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetTilByTag(w http.ResponseWriter, r *http.Request) {
	entries, err := h.TilService.GetTilEntriesByTag(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, entries, http.StatusOK)
}
