package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxIDLength bounds node and edge identifiers.
const maxIDLength = 256

// ValidateID validates a node or edge identifier.
//
// The rules are:
//   - No empty ids
//   - No control characters
//   - Maximum length of 256 characters
func ValidateID(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "%s id cannot be empty", kind)
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "%s id too long (max %d characters)", kind, maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s id %q contains control characters", kind, id)
		}
	}

	return nil
}

// ValidatePath validates a graph file path given on the command line.
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

// supportedExtensions lists the graph file formats graphio understands.
var supportedExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// ValidateGraphFilename checks that a graph file has a supported extension.
func ValidateGraphFilename(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		return New(ErrCodeInvalidFormat, "unsupported graph file extension %q (want .json, .yaml or .yml)", ext)
	}
	return nil
}
