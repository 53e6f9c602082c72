// Package operator attaches the acting console operator to request context.
// Identity is established upstream; the console trusts the forwarded headers.
package operator

import (
	"net/http"
	"strings"

	"github.com/superiorbooks/backend-pos/internal/common"
)

const (
	headerID   = "X-Operator-Id"
	headerName = "X-Operator-Name"
)

// Middleware reads the operator headers into request context when present.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(headerID))
		if id != "" {
			op := common.Operator{ID: id, Name: strings.TrimSpace(r.Header.Get(headerName))}
			r = r.WithContext(common.WithOperator(r.Context(), op))
		}
		next.ServeHTTP(w, r)
	})
}

// Require rejects requests that carry no operator identity.
func Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := common.OperatorFromContext(r.Context()); !ok {
			common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "operator identity required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
