package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nxtprof/nxtprof/pkg/domain/model/auth"
)

// requireAdmin rejects the call before any side effect when the caller is
// missing or lacks the administrator claim.
func requireAdmin(ctx context.Context) error {
	token, err := auth.TokenFromContext(ctx)
	if err != nil {
		return goerr.Wrap(ErrUnauthenticated, "no caller identity")
	}
	if !token.Admin {
		return goerr.Wrap(ErrPermissionDenied, "caller is not an administrator",
			goerr.V("sub", token.Sub))
	}
	return nil
}

// requireUser returns the caller token, rejecting unauthenticated calls
func requireUser(ctx context.Context) (*auth.Token, error) {
	token, err := auth.TokenFromContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(ErrUnauthenticated, "no caller identity")
	}
	return token, nil
}
