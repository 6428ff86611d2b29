//go:generate go run go.uber.org/mock/mockgen -source=token.go -destination=mocks/mock.go

package token

import (
	"context"

	"github.com/orgball2608/reel-publisher-bot/internal/domain"
)

// Provider hands out short-lived access tokens. Every failure wraps errors.ErrAuth.
type Provider interface {
	GetAccessToken(ctx context.Context, scope domain.Scope) (domain.Token, error)
	// CheckExpiry asks the introspection endpoint whether a Meta token is still valid.
	CheckExpiry(ctx context.Context, token domain.Token) (domain.TokenInfo, error)
}
