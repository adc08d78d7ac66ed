package validators

import (
	"errors"
	"strings"
)

var ErrInvalidToken = errors.New("invalid auth token")

// BearerToken extracts the credential from an Authorization header value.
func BearerToken(header string) (string, error) {
	token := strings.TrimSpace(header)
	if token == "" {
		return "", ErrInvalidToken
	}
	if len(token) < 7 || !strings.EqualFold(token[:7], "bearer ") {
		return "", ErrInvalidToken
	}
	token = strings.TrimSpace(token[7:])
	if token == "" {
		return "", ErrInvalidToken
	}
	return token, nil
}
