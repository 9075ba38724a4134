package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// fieldNameRegex matches dotted field names such as "clinical.age".
var fieldNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// ValidateFieldName validates a track field name.
//
// Field names address flattened dataset fields and double as expression
// identifiers, so they must be dotted identifiers of at most 128 characters.
func ValidateFieldName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidField, "field name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidField, "field name too long (max 128 characters)")
	}

	if !fieldNameRegex.MatchString(name) {
		return New(ErrCodeInvalidField, "invalid field name: %q", name)
	}

	return nil
}

// ValidateColor validates a CSS hex colour such as "#6d72c5" or "#abc".
func ValidateColor(color string) error {
	if !strings.HasPrefix(color, "#") {
		return New(ErrCodeInvalidConfig, "colour must start with '#': %q", color)
	}
	hex := color[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return New(ErrCodeInvalidConfig, "colour must have 3 or 6 hex digits: %q", color)
	}
	for _, r := range hex {
		if !unicode.Is(unicode.ASCII_Hex_Digit, r) {
			return New(ErrCodeInvalidConfig, "invalid hex digit in colour %q", color)
		}
	}
	return nil
}

// ValidatePath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
