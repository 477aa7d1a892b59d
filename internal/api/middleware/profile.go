package middleware

import (
	"net/http"

	"github.com/mcoot/santaworkshop/internal/api/apierr"
	"github.com/mcoot/santaworkshop/internal/model"
)

// ActiveProfiler reports the logged in profile
type ActiveProfiler interface {
	Active() (model.ProfileName, bool)
}

// RequireProfile rejects requests while no profile is logged in
func RequireProfile(identity ActiveProfiler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := identity.Active(); !ok {
				apierr.WriteError(w, model.ErrNoActiveProfile)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
