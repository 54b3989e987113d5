package middleware

import (
	"net/http"

	"github.com/shiftcrew/staffing-backend-go/internal/domain/user"
	"github.com/shiftcrew/staffing-backend-go/internal/handler/http/response"
)

// AdminOnly rejects callers whose token does not carry the admin role. The
// services still re-check permissions; this just fails fast at the edge.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := user.ActorFromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}
		if actor.Role != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// StaffOnly admits internal staff and administrators.
func StaffOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := user.ActorFromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}
		if !actor.IsStaff() {
			response.HandleError(w, user.ErrStaffRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}
