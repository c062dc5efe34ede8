package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/odyssey-erp/cadastro/internal/shared"
)

// RespondError maps domain errors to HTTP responses: not-found to 404,
// validation and malformed input to 400, anything else to 500.
func RespondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Message(w, http.StatusNotFound, shared.Message(err))
	case errors.Is(err, shared.ErrValidation):
		Message(w, http.StatusBadRequest, shared.Message(err))
	case errors.Is(err, errMalformed):
		Message(w, http.StatusBadRequest, err.Error())
	default:
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("unhandled request error", slog.Any("error", err))
		Message(w, http.StatusInternalServerError, "Erro interno do servidor")
	}
}
