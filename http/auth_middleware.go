package http

import (
	"context"
	"net/http"
	"strings"

	"microloan/auth"
	"microloan/domain"
	"microloan/service"
)

type contextKey struct{}

var claimsKey contextKey

// ClaimsFrom returns the verified claims AuthMiddleware stored on the
// request.
func ClaimsFrom(r *http.Request) (auth.Claims, bool) {
	claims, ok := r.Context().Value(claimsKey).(auth.Claims)
	return claims, ok
}

// AuthMiddleware verifies the bearer token and, when role is non-empty,
// requires that role.
func AuthMiddleware(tokens *auth.Tokens, role string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeError(w, auth.ErrInvalidToken)
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		if role != "" && claims.Role != role {
			writeError(w, service.ErrForbidden)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

// canAccessUser reports whether the caller may read records belonging to
// userID: the owner and admins only.
func canAccessUser(claims auth.Claims, userID int64) bool {
	return claims.UserID == userID || claims.Role == domain.RoleAdmin
}
