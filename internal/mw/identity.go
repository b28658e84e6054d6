package mw

import (
	"context"
	"net/http"

	"ordercrm/internal/model"
	"ordercrm/internal/service"
)

type contextKey string

const (
	UIDCtxKey  contextKey = "uid"
	RoleCtxKey contextKey = "role"
)

// Identity resolves the caller from the uid query parameter, which the
// chat client embeds in every deep link. Requests without a uid pass
// through with RoleNone: viewing is open, and the role-checked
// operations reject them downstream.
func Identity(dir *service.Directory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid := r.URL.Query().Get("uid")

			role := model.RoleNone
			if uid != "" {
				role = dir.RoleFor(uid)
			}

			ctx := context.WithValue(r.Context(), UIDCtxKey, uid)
			ctx = context.WithValue(ctx, RoleCtxKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UID returns the caller's identity from the request context.
func UID(r *http.Request) string {
	uid, _ := r.Context().Value(UIDCtxKey).(string)
	return uid
}

// Role returns the caller's role from the request context.
func Role(r *http.Request) model.Role {
	role, ok := r.Context().Value(RoleCtxKey).(model.Role)
	if !ok {
		return model.RoleNone
	}
	return role
}
