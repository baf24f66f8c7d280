package config

import (
	"context"
	"crypto/subtle"

	"github.com/m-mizutani/goerr/v2"
	controller "github.com/nxtprof/nxtprof/pkg/controller/http"
	"github.com/nxtprof/nxtprof/pkg/domain/model/auth"
	"github.com/urfave/cli/v3"
)

// Auth holds CLI flags for API authentication
type Auth struct {
	adminToken string
	userToken  string
}

// Flags returns CLI flags for auth configuration
func (a *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "admin-token",
			Usage:       "Bearer token granting administrator access",
			Category:    "Authentication",
			Sources:     cli.EnvVars("NXTPROF_ADMIN_TOKEN"),
			Destination: &a.adminToken,
		},
		&cli.StringFlag{
			Name:        "user-token",
			Usage:       "Bearer token granting member access",
			Category:    "Authentication",
			Sources:     cli.EnvVars("NXTPROF_USER_TOKEN"),
			Destination: &a.userToken,
		},
	}
}

// IsConfigured reports whether any token is set. Without one the server runs
// in no-authn mode.
func (a *Auth) IsConfigured() bool {
	return a.adminToken != "" || a.userToken != ""
}

// Configure returns the bearer-token verifier, or nil in no-authn mode
func (a *Auth) Configure() controller.TokenVerifier {
	if !a.IsConfigured() {
		return nil
	}
	return &staticVerifier{adminToken: a.adminToken, userToken: a.userToken}
}

// staticVerifier matches bearer tokens against the configured static values
type staticVerifier struct {
	adminToken string
	userToken  string
}

func (v *staticVerifier) Verify(_ context.Context, raw string) (*auth.Token, error) {
	if v.adminToken != "" && subtle.ConstantTimeCompare([]byte(raw), []byte(v.adminToken)) == 1 {
		return &auth.Token{Sub: "admin", Name: "Administrator", Admin: true}, nil
	}
	if v.userToken != "" && subtle.ConstantTimeCompare([]byte(raw), []byte(v.userToken)) == 1 {
		return &auth.Token{Sub: "member", Name: "Member"}, nil
	}
	return nil, goerr.New("unknown bearer token")
}
