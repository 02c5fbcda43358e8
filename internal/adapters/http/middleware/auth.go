package middleware

import (
	"net/http"
	"strings"
)

// bearerScheme is the authorization scheme for inbound credentials.
// Scheme matching is case-insensitive per RFC 9110.
const bearerScheme = "bearer "

// BearerToken extracts the bearer credential from the Authorization header.
// Returns empty string when the header is absent or carries a different
// scheme. Validation of the credential itself is the identity provider's
// concern, not this middleware's.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) <= len(bearerScheme) {
		return ""
	}

	if !strings.EqualFold(header[:len(bearerScheme)], bearerScheme) {
		return ""
	}

	return strings.TrimSpace(header[len(bearerScheme):])
}
