package guard

import (
	"net/http"
	"slices"
	"strings"
)

// Authorizer decides whether a request holds a permission such as "list_files:files".
type Authorizer interface {
	Allowed(r *http.Request, permission string) bool
}

// TokenAuthorizer grants permissions to bearer tokens. A token holding "*" has every
// permission. With no tokens configured every request is allowed.
type TokenAuthorizer struct {
	tokens map[string][]string
}

// NewTokenAuthorizer creates an authorizer from a token → permissions map.
func NewTokenAuthorizer(tokens map[string][]string) *TokenAuthorizer {
	return &TokenAuthorizer{tokens: tokens}
}

// Allowed implements Authorizer.
func (a *TokenAuthorizer) Allowed(r *http.Request, permission string) bool {
	if len(a.tokens) == 0 {
		return true
	}
	token, ok := bearerToken(r)
	if !ok {
		return false
	}
	perms, ok := a.tokens[token]
	if !ok {
		return false
	}
	return slices.Contains(perms, permission) || slices.Contains(perms, "*")
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
