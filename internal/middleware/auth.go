package middleware

import (
	"net/http"
	"strings"

	"portaldocs/internal/auth"
	"portaldocs/internal/domain/models"
	"portaldocs/internal/httputil"
)

// publicPaths are served without a bearer token.
var publicPaths = map[string]bool{
	"/health": true,
}

// Auth validates the bearer token on every request and stores the resulting
// actor in the request context. Unauthenticated requests are rejected before
// they reach a handler.
func Auth(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			actor := models.Actor{
				ID:    claims.ActorID(),
				Roles: claims.Roles,
			}
			next.ServeHTTP(w, httputil.WithActor(r, actor))
		})
	}
}
