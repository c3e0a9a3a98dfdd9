package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"techblog/internal/models"
)

type CoverResponse struct {
	Slug       string `json:"slug"`
	CoverImage string `json:"coverImage"`
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.GetPostsWithRelations(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetFeaturedPosts(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	posts, err := h.PostService.GetFeaturedPosts(r.Context(), limit)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetRecentPosts(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	posts, err := h.PostService.GetRecentPosts(r.Context(), limit)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetPopularPosts(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	posts, err := h.PostService.GetPopularPosts(r.Context(), limit)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.PostService.GetPostBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, post, http.StatusOK)
}

func (h *Handlers) SearchPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.SearchPosts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePostRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, post, http.StatusCreated)
}

// UploadCover stores the multipart "image" file as the cover of the post.
func (h *Handlers) UploadCover(w http.ResponseWriter, r *http.Request) {
	// setting the size limit from the config
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, fmt.Sprintf("Файл слишком большой (макс. %d MB)", h.Cfg.MaxUploadSize/(1024*1024)), http.StatusBadRequest)
		} else {
			WriteError(w, "Ошибка при обработке файла", http.StatusBadRequest)
		}
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, _, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "Не удалось получить файл", http.StatusBadRequest)
		return
	}
	defer file.Close()

	post, err := h.PostService.SetPostCoverImage(r.Context(), mux.Vars(r)["slug"], file)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	cover := ""
	if post.CoverImage != nil {
		cover = *post.CoverImage
	}
	writeSuccess(w, CoverResponse{Slug: post.Slug, CoverImage: cover}, http.StatusOK)
}
