// Package identity extracts the authenticated caller from the request.
// Authentication itself happens upstream (the identity provider sets the
// X-User-Id header after verifying the session); this middleware trusts
// the header as given and rejects requests that carry no identity.
package identity

import (
	"context"
	"net/http"

	"github.com/go-chi/render"

	"github.com/Sayden945/ito5031-webassignment/internal/lib/api/response"
)

const HeaderUserID = "X-User-Id"

type ctxKey struct{}

func New() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			userID := r.Header.Get(HeaderUserID)
			if userID == "" {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user must be authenticated"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		}

		return http.HandlerFunc(fn)
	}
}

// FromContext returns the caller id stored by the middleware.
func FromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(ctxKey{}).(string)
	return userID, ok && userID != ""
}
