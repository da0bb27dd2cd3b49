package commons

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"fonda/internal/dto"
	apperrors "fonda/internal/errors"
	"fonda/internal/infrastructure/logger"
)

const CodeConfirmationRequired = "CONFIRMATION_REQUIRED"

// el mensaje de un error no tipificado lleva el texto de la base
const msgInternalPrefix = "Error al procesar la solicitud: "

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func WriteJSON(w http.ResponseWriter, status int, data interface{}, log *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil && log != nil {
		log.Error("failed to encode response", zap.Error(err))
	}
}

func WriteValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	WriteJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	}, nil)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	WriteJSON(w, status, dto.ErrorResponse{
		TraceID:   logger.TraceID(r.Context()),
		Status:    status,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}, nil)
}

// HandleError traduce los errores tipados a su status HTTP.
func HandleError(w http.ResponseWriter, r *http.Request, err error, log *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		WriteValidationError(w, ve.Message, ve.Details...)
		return
	}

	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		WriteError(w, r, http.StatusNotFound, "NOT_FOUND", nfe.Message)
		return
	}

	if ce, ok := apperrors.IsConflictError(err); ok {
		WriteError(w, r, http.StatusConflict, "CONFLICT", ce.Message)
		return
	}

	if ue, ok := apperrors.IsUnauthorizedError(err); ok {
		WriteError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", ue.Message)
		return
	}

	if fe, ok := apperrors.IsForbiddenError(err); ok {
		WriteError(w, r, http.StatusForbidden, "FORBIDDEN", fe.Message)
		return
	}

	if de, ok := apperrors.IsDeadlockError(err); ok {
		WriteError(w, r, http.StatusConflict, "DEADLOCK", de.Message)
		return
	}

	logger.FromContext(r.Context(), log).Error("unexpected error", zap.Error(err))
	WriteError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", msgInternalPrefix+err.Error())
}

func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return false
	}
	return true
}

// DecodeOptionalJSON es DecodeJSON pero un cuerpo vacio deja dst en su valor cero.
func DecodeOptionalJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if r.Body == nil {
		return true
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	WriteValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
		Field:   "body",
		Message: "request body must be valid JSON",
	})
	return false
}

// URLParamID lee un id numerico positivo de la ruta y responde 400 si no lo es.
func URLParamID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		WriteValidationError(w, fmt.Sprintf("invalid %s", name), apperrors.ValidationDetail{
			Field:   name,
			Message: fmt.Sprintf("%s must be a positive integer", name),
		})
		return 0, false
	}
	return uint(id), true
}

// Confirmed revisa ?confirm=true; las acciones destructivas no proceden sin el.
func Confirmed(r *http.Request) bool {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return ok
}

func WriteConfirmationRequired(w http.ResponseWriter, r *http.Request, message string) {
	WriteError(w, r, http.StatusPreconditionRequired, CodeConfirmationRequired, message)
}
