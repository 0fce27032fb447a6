package utils

import (
	"errors"
	"strconv"
	"strings"
)

// Sentinel errors recognized by the error-translating middleware. Handlers and
// helpers wrap failures with these so status mapping happens in exactly one place.
var (
	// ErrInvalidID marks a malformed record identifier in a URL path.
	ErrInvalidID = errors.New("incorrect id")
	// ErrTokenInvalid marks a malformed token, a bad signature, or a token
	// whose claims carry no usable identity.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired marks a structurally valid token past its expiry.
	ErrTokenExpired = errors.New("token expired")
)

// ParseID converts a path parameter into a numeric record id.
// Malformed input yields ErrInvalidID so the translator can answer 400.
func ParseID(param string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(param), 10, 32)
	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}
	return uint(id), nil
}
