package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	health, err := h.TablesService.Health(r.Context())
	if err != nil {
		h.log.Error("проверка здоровья не пройдена", zap.Error(err))
		WriteError(w, "Сервис недоступен", http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, health, http.StatusOK)
}
