package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/nxtprof/nxtprof/pkg/domain/model/auth"
)

// TokenVerifier checks a raw bearer token and returns the caller identity
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*auth.Token, error)
}

// authMiddleware validates the Authorization header for protected requests.
// Without a verifier the server runs in no-authn mode: every request gets an
// anonymous administrator identity. Local development only.
func authMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				token := &auth.Token{Sub: "anonymous", Name: "Anonymous", Admin: true}
				ctx := auth.ContextWithToken(r.Context(), token)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			token, err := verifier.Verify(r.Context(), raw)
			if err != nil {
				http.Error(w, "Invalid authentication token", http.StatusUnauthorized)
				return
			}

			ctx := auth.ContextWithToken(r.Context(), token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
