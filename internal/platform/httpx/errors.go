// Package httpx writes the JSON and problem+json responses of the few
// endpoints that script code calls directly.
package httpx

import (
	"errors"
	"net/http"

	"github.com/netline-isp/isp-console/internal/shared"
)

var (
	// ErrBadRequest marks a body the endpoint could not decode.
	ErrBadRequest = errors.New("bad request")
	// ErrUnavailable marks a dependency such as the job queue being down.
	ErrUnavailable = errors.New("service unavailable")
)

type errorMapping struct {
	target error
	status int
	title  string
	detail bool
}

var errorMappings = []errorMapping{
	{shared.ErrNotFound, http.StatusNotFound, "Not Found", true},
	{ErrBadRequest, http.StatusBadRequest, "Bad Request", true},
	{shared.ErrCSRFTokenMissing, http.StatusForbidden, "Forbidden", false},
	{shared.ErrCSRFTokenMismatch, http.StatusForbidden, "Forbidden", false},
	{shared.ErrForbidden, http.StatusForbidden, "Forbidden", true},
	{shared.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized", false},
	{ErrUnavailable, http.StatusServiceUnavailable, "Service Unavailable", true},
}

// RespondError maps err onto a problem response. Unknown errors become a 500
// without detail so backend messages do not leak.
func RespondError(w http.ResponseWriter, err error) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		detail := ""
		if m.detail {
			detail = err.Error()
		}
		Problem(w, m.status, m.title, detail)
		return
	}
	Problem(w, http.StatusInternalServerError, "Internal Error", "")
}
