package handlers

import (
	"net/http"

	"techblog/internal/models"
)

func (h *Handlers) GetTilEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.TilService.GetTilEntriesWithRelations(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, entries, http.StatusOK)
}

func (h *Handlers) GetRecentTilEntries(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	entries, err := h.TilService.GetRecentTilEntries(r.Context(), limit)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, entries, http.StatusOK)
}

func (h *Handlers) GetTilEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	entry, err := h.TilService.GetTilEntry(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, entry, http.StatusOK)
}

func (h *Handlers) SearchTilEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.TilService.SearchTilEntries(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, entries, http.StatusOK)
}

func (h *Handlers) CreateTilEntry(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTilEntryRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	entry, err := h.TilService.CreateTilEntry(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, entry, http.StatusCreated)
}
