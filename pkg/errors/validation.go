package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxCardIDLength bounds card identifiers accepted from requests.
const MaxCardIDLength = 64

// MaxMessageLength is the longest message_above/message_below accepted, in runes.
const MaxMessageLength = 100

// ValidateCardID validates a card identifier before it reaches a store.
// Identifiers end up in file names, Redis keys and URLs, so the rules are
// conservative:
//   - No empty identifiers
//   - No control characters or whitespace
//   - No path separators or traversal sequences
//   - Maximum length of 64 characters
func ValidateCardID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidCardID, "card id cannot be empty")
	}
	if len(id) > MaxCardIDLength {
		return New(ErrCodeInvalidCardID, "card id too long (max %d characters)", MaxCardIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidCardID, "card id contains invalid characters")
		}
	}
	for _, pattern := range []string{"..", "/", "\\", "\x00"} {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidCardID, "card id contains invalid characters: %q", pattern)
		}
	}
	return nil
}

// ValidateMessage validates an optional message printed above or below the
// main block. Empty messages are valid.
func ValidateMessage(field, msg string) error {
	if n := utf8.RuneCountInString(msg); n > MaxMessageLength {
		return New(ErrCodeInvalidMessage, "%s too long (%d characters, max %d)", field, n, MaxMessageLength)
	}
	for _, r := range msg {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidMessage, "%s contains control characters", field)
		}
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// ValidateMediaPath validates a media path relative to the media directory.
// It prevents path traversal out of the directory.
func ValidateMediaPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "media path cannot be empty")
	}
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "media path contains invalid characters")
		}
	}
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidInput, "media path must be relative (cannot start with /)")
	}
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidInput, "media path cannot contain path traversal sequences (..)")
	}
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidInput, "media path cannot contain backslashes")
	}
	return nil
}
