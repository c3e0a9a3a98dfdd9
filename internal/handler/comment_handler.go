package handlers

import (
	"net/http"

	"techblog/internal/models"
)

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCommentRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	comment, err := h.CommentService.CreateComment(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, comment, http.StatusCreated)
}
