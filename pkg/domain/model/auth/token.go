package auth

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
)

// Token is the authenticated caller identity attached to a request context
type Token struct {
	Sub   string
	Email string
	Name  string
	Admin bool
}

type ctxTokenKey struct{}

// ContextWithToken attaches the token to the context
func ContextWithToken(ctx context.Context, token *Token) context.Context {
	return context.WithValue(ctx, ctxTokenKey{}, token)
}

// TokenFromContext extracts the caller token. It returns an error when the
// request carries no identity.
func TokenFromContext(ctx context.Context) (*Token, error) {
	token, ok := ctx.Value(ctxTokenKey{}).(*Token)
	if !ok || token == nil {
		return nil, goerr.New("no authentication token in context")
	}
	return token, nil
}

// IsAdmin reports whether the caller holds the administrator claim
func IsAdmin(ctx context.Context) bool {
	token, err := TokenFromContext(ctx)
	if err != nil {
		return false
	}
	return token.Admin
}
