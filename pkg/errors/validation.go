package errors

import (
	"strings"
	"unicode"
)

// ValidateOutputPath validates the filename a bitmap is saved to.
//
// Validation rules:
//   - Path cannot be empty or whitespace only
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}

	return nil
}

// ValidateOpName checks that a transform name is a plausible identifier
// before it is looked up. Lookup itself reports unknown names.
func ValidateOpName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "transform name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "transform name too long (max 64 characters)")
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return New(ErrCodeInvalidInput, "transform name contains invalid characters: %q", name)
		}
	}
	return nil
}
