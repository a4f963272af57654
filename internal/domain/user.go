package domain

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	MaxUsernameLen  = 36
	DefaultUsername = "guest"
)

var (
	ErrUsernameTooLong = errors.New("username too long")
	ErrUsernameEmpty   = errors.New("username empty")
)

// ValidateUsername is used by the session handshake, which rejects bad names
// instead of fixing them up.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrUsernameEmpty
	}
	if utf8.RuneCountInString(username) > MaxUsernameLen {
		return ErrUsernameTooLong
	}
	return nil
}

// NormalizeUsername trims the name and cuts it to MaxUsernameLen runes.
// An empty name becomes fallback, or DefaultUsername if fallback is empty too.
func NormalizeUsername(username, fallback string) string {
	username = strings.TrimSpace(username)
	if username == "" {
		username = strings.TrimSpace(fallback)
	}
	if username == "" {
		return DefaultUsername
	}
	if utf8.RuneCountInString(username) > MaxUsernameLen {
		username = string([]rune(username)[:MaxUsernameLen])
	}
	return username
}
