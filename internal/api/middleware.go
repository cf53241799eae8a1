package api

import (
	"context"
	"net/http"
	"strings"

	"petreserve-backend/internal/security"
)

type contextKey string

const staffClaimsKey contextKey = "staff_claims"

// StaffAuthMiddleware validates the bearer token and stashes the staff
// claims in the request context; the claims' name becomes the actor recorded
// on every manager-driven mutation.
func StaffAuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
				return
			}
			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
				return
			}
			ctx := context.WithValue(r.Context(), staffClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// staffActor returns the authenticated staff identity for the timeline.
func staffActor(r *http.Request) string {
	claims, ok := r.Context().Value(staffClaimsKey).(*security.StaffClaims)
	if !ok {
		return "staff"
	}
	if claims.Name != "" {
		return claims.Name
	}
	return claims.Email
}
