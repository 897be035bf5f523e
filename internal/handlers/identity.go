// internal/handlers/identity.go
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"mendicot/internal/auth"
)

// ensurePlayerIdentity resolves the connecting browser to a stable
// player UUID. A valid auth_token cookie keeps its identity; otherwise
// a fresh ephemeral identity is minted and set as a cookie. There are
// no accounts: identity lives only as long as the signing key.
func ensurePlayerIdentity(w http.ResponseWriter, r *http.Request) (uuid.UUID, error) {
	cookieHeader := r.Header.Get("Cookie")
	if strings.Contains(cookieHeader, "auth_token=") {
		token := extractCookieToken(cookieHeader, "auth_token")
		sub, err := auth.AuthenticateJWT(token)
		if err == nil {
			if id, parseErr := uuid.Parse(sub); parseErr == nil {
				return id, nil
			}
		}
		// Fall through: stale or malformed token gets a new identity.
	}

	id := uuid.New()
	token, err := auth.CreateJWT(id.String())
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create identity token: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		HttpOnly: true,
		Path:     "/",
	})
	return id, nil
}

// extractCookieToken extracts a named cookie value from the "Cookie"
// header, or returns empty if not found.
func extractCookieToken(cookieHeader, cookieName string) string {
	parts := strings.Split(cookieHeader, cookieName+"=")
	if len(parts) < 2 {
		return ""
	}
	token := parts[1]
	if idx := strings.Index(token, ";"); idx != -1 {
		token = token[:idx]
	}
	return token
}
