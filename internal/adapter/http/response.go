package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/driveline/driveline/internal/domain"
	apperr "github.com/driveline/driveline/pkg/error"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps an error to its HTTP status and writes the error
// envelope. Domain not-found sentinels become 404; wrapped validation
// errors become 400 when mapped by the caller.
func writeError(w http.ResponseWriter, err error) {
	var domErr *domain.DomainError
	if errors.As(err, &domErr) {
		switch domErr {
		case domain.ErrCarNotFound, domain.ErrBlogNotFound, domain.ErrAdminNotFound:
			writeJSON(w, http.StatusNotFound, map[string]interface{}{
				"success": false,
				"message": domErr.Message,
			})
			return
		case domain.ErrInvalidVIN:
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"success": false,
				"message": domErr.Message,
			})
			return
		}
	}

	appErr := apperr.MapError(err)
	writeJSON(w, appErr.Status, map[string]interface{}{
		"success": false,
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

// writeBadRequest writes a 400 with the given message
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"success": false,
		"message": message,
	})
}
