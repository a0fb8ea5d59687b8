package httpapi

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-orderboard/components/dashboard"
	"github.com/goliatone/go-orderboard/components/orders"
)

// StatusFor maps an error to the HTTP status reported to clients.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, orders.ErrSessionNotFound), errors.Is(err, dashboard.ErrUnknownWidget):
		return http.StatusNotFound
	case errors.Is(err, orders.ErrSessionExists):
		return http.StatusConflict
	case orders.IsValidation(err),
		errors.Is(err, dashboard.ErrInvalidConfiguration),
		errors.Is(err, dashboard.ErrAreaRequired),
		errors.Is(err, dashboard.ErrDefinitionRequired),
		errors.Is(err, dashboard.ErrUnknownArea):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
