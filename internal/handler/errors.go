package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"techblog/internal/apperror"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	writeSuccess(w, ErrorResponse{Message: message}, statusCode)
}

// writeSuccess - функция для успешных ответов
func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// respondError maps an error kind to a status code. Only server faults are logged.
func (h *Handlers) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		WriteError(w, apperror.Message(err), http.StatusBadRequest)
	case errors.Is(err, apperror.ErrNotFound):
		WriteError(w, apperror.Message(err), http.StatusNotFound)
	case errors.Is(err, apperror.ErrConflict):
		WriteError(w, apperror.Message(err), http.StatusConflict)
	case errors.Is(err, apperror.ErrConfiguration):
		h.log.Error("ошибка конфигурации", zap.String("path", r.URL.Path), zap.Error(err))
		WriteError(w, apperror.Message(err), http.StatusInternalServerError)
	case errors.Is(err, apperror.ErrExternalService):
		h.log.Error("ошибка внешнего сервиса", zap.String("path", r.URL.Path), zap.Error(err))
		writeSuccess(w, ErrorResponse{Message: apperror.Message(err), Error: err.Error()}, http.StatusInternalServerError)
	default:
		h.log.Error("внутренняя ошибка", zap.String("path", r.URL.Path), zap.Error(err))
		WriteError(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}

// decodeAndValidate reads a JSON body into dest and checks its validate tags.
func (h *Handlers) decodeAndValidate(r *http.Request, dest interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.ValidationFailed("body", "Пустое тело запроса")
		}
		return apperror.ValidationFailed("body", "Неверный формат запроса")
	}

	if err := h.Validate.Struct(dest); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return apperror.ValidationFailed(fe.Field(), fmt.Sprintf("Поле %s не прошло проверку: %s", fe.Field(), fe.Tag()))
		}
		return apperror.ValidationFailed("body", err.Error())
	}

	return nil
}

// queryLimit parses ?limit=; absent means zero, which the services replace with their default.
func queryLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, apperror.ValidationFailed("limit", "limit должен быть положительным числом")
	}
	return limit, nil
}
