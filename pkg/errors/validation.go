package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateDimension rejects negative widths, heights and padding amounts.
// The name describes the value in the error message (e.g. "width").
func ValidateDimension(name string, v int) error {
	if v < 0 {
		return New(ErrCodeInvalidDimension, "%s must not be negative, got %d", name, v)
	}
	return nil
}

// ValidateFormat checks that format is one of allowed.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of %s)", format, strings.Join(allowed, ", "))
}

// ValidatePath validates a file path given on the command line or in a request.
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

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// nameRegex matches identifiers used for demo names and cache scopes.
var nameRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// ValidateName validates a short lowercase identifier such as a demo name.
// It rejects names that could be used for path traversal or injection.
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "name too long (max 64 characters)")
	}
	if !nameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid name: %q", name)
	}
	return nil
}

// ValidateChar checks that s holds exactly one rune and returns it.
// It is used for fill and transparency characters given as text.
func ValidateChar(name, s string) (rune, error) {
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, New(ErrCodeInvalidInput, "%s must be a single character, got %q", name, s)
	}
	if unicode.IsControl(runes[0]) {
		return 0, New(ErrCodeInvalidInput, "%s must not be a control character", name)
	}
	return runes[0], nil
}
