package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/gracebase/steward/internal/apperrors"
)

// bindingErrorMessage flattens a request binding failure into a readable
// message, one fragment per failed validation rule.
func bindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, len(verrs))
		for i, fe := range verrs {
			parts[i] = fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
		}
		return "Invalid request: " + strings.Join(parts, ", ")
	}
	return "Invalid request format: " + err.Error()
}

// respondWithError translates a service error into an HTTP response.
// AppErrors carry their own status code; bare workflow sentinels are mapped
// here so every handler reports transition failures the same way.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= http.StatusInternalServerError {
			logger.Error("Request failed", slog.String("error", appErr.Error()))
		} else {
			logger.Warn("Request rejected", slog.String("error", appErr.Error()), slog.Int("status", appErr.Code))
		}
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}

	status := http.StatusInternalServerError
	message := fallback
	switch {
	case errors.Is(err, apperrors.ErrInvalidTransition),
		errors.Is(err, apperrors.ErrStaleState),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrDuplicate):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, apperrors.ErrMissingReason),
		errors.Is(err, apperrors.ErrInvalidScope),
		errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("error", err.Error()))
	} else {
		logger.Warn("Request rejected", slog.String("error", err.Error()), slog.Int("status", status))
	}
	c.JSON(status, gin.H{"error": message})
}
