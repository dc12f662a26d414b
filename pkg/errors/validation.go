package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxKeyLength bounds state names; longer names cannot be laid out sensibly anyway.
const maxKeyLength = 128

// ValidateKey validates a state name used as a registry key.
//
// The validation rules are:
//   - No empty names
//   - No control characters
//   - No braces or '=' (they delimit the text format)
//   - Maximum length of 128 characters
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return New(ErrCodeInvalidInput, "state name cannot be empty")
	}

	if len(key) > maxKeyLength {
		return New(ErrCodeInvalidInput, "state name too long (max %d characters)", maxKeyLength)
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "state name contains invalid control characters")
		}
	}

	if strings.ContainsAny(key, "{}=") {
		return New(ErrCodeInvalidInput, "state name contains reserved characters: %q", key)
	}

	return nil
}

// ValidatePath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// hexColorRegex matches #rgb and #rrggbb colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// namedColorRegex matches bare color names such as "darkblue".
var namedColorRegex = regexp.MustCompile(`^[a-zA-Z]+$`)

// ValidateColor accepts an empty string, a hex color, or a plain color name.
// Whether a name is known is decided by the renderer.
func ValidateColor(c string) error {
	if c == "" || hexColorRegex.MatchString(c) || namedColorRegex.MatchString(c) {
		return nil
	}
	return New(ErrCodeInvalidColor, "invalid color: %q", c)
}
