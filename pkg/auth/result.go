package auth

import "github.com/angelmondragon/veggieshop-backend/pkg/config"

// Status tags the outcome of verifying a request's token.
type Status int

const (
	// StatusAnonymous means no token was presented.
	StatusAnonymous Status = iota
	// StatusAuthenticated means the token verified.
	StatusAuthenticated
	// StatusRejected means a token was presented but failed verification.
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusAuthenticated:
		return "authenticated"
	case StatusRejected:
		return "rejected"
	default:
		return "anonymous"
	}
}

// Result is the outcome of Verify. Claims is set only when authenticated and
// Err only when rejected.
type Result struct {
	Status Status
	Claims *AccessTokenClaims
	Err    error
}

func Anonymous() Result {
	return Result{Status: StatusAnonymous}
}

func Authenticated(claims *AccessTokenClaims) Result {
	return Result{Status: StatusAuthenticated, Claims: claims}
}

func Rejected(err error) Result {
	return Result{Status: StatusRejected, Err: err}
}

// Verify classifies a raw token.
func Verify(cfg config.JWTConfig, token string) Result {
	if token == "" {
		return Anonymous()
	}
	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		return Rejected(err)
	}
	return Authenticated(claims)
}
