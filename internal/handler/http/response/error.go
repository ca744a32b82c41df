package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/audit-pilar-go/internal/domain/audit"
	"github.com/cmlabs-hris/audit-pilar-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, audit.ErrAuditNotFound):
		NotFound(w, "Audit result not found")
	case errors.Is(err, audit.ErrEmptyBatch),
		errors.Is(err, audit.ErrBatchTooLarge),
		errors.Is(err, audit.ErrInvalidComparison):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, audit.ErrConfiguration):
		InternalServerError(w, "Audit engine is misconfigured")
	case errors.Is(err, audit.ErrExportFailed):
		InternalServerError(w, "Failed to export audit result")

	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
