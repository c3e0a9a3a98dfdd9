package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"techblog/internal/apperror"
	"techblog/internal/models"
)

// pathID reads a numeric {id} route variable.
func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, apperror.ValidationFailed("id", "Неверный идентификатор: "+raw)
	}
	return id, nil
}

func (h *Handlers) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, users, http.StatusOK)
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	user, err := h.UserService.GetUser(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, user, http.StatusOK)
}

func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	user, err := h.UserService.CreateUser(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, user, http.StatusCreated)
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var req models.UpdateUserRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	user, err := h.UserService.UpdateUser(r.Context(), id, req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, user, http.StatusOK)
}
