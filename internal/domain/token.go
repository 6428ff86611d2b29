package domain

import "time"

// Token is a short-lived access token. It is never persisted.
type Token struct {
	Value     string
	Scope     Scope
	ExpiresAt *time.Time
}

func (t Token) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && !t.ExpiresAt.After(now)
}

// TokenInfo is the result of a token introspection call.
type TokenInfo struct {
	Valid     bool
	ExpiresAt *time.Time
	Scopes    []string
}
