package errors

import (
	"strings"
	"unicode"
)

// ValidateFilename validates a file name derived from remote input (for example
// the last segment of a download URL) before it is joined onto a local directory.
//
// Validation rules:
//   - Name cannot be empty, "." or ".."
//   - Maximum length of 255 characters
//   - No control characters or null bytes
//   - No path separators
//   - No hidden files (leading dot)
func ValidateFilename(name string) error {
	if name == "" || name == "." || name == ".." {
		return New(ErrCodeInvalidFilename, "file name cannot be empty")
	}

	if len(name) > 255 {
		return New(ErrCodeInvalidFilename, "file name too long (max 255 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFilename, "file name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidFilename, "file name cannot contain path separators")
	}

	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidFilename, "file name cannot be a hidden file")
	}

	return nil
}

// ValidatePath validates a configured directory path for safety.
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

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
