package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds element names and path segments.
const maxNameLength = 256

// ValidateElementName validates the name of a container element.
//
// Element names become graph properties, DOT identifiers and parts of
// calculated names, so the rules are conservative:
//   - No empty names
//   - No whitespace or control characters
//   - No '.' (reserved as the model path separator)
//   - Maximum length of 256 characters
func ValidateElementName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "element name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "element name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "element name %q contains whitespace or control characters", name)
		}
	}
	if strings.Contains(name, ".") {
		return New(ErrCodeInvalidInput, "element name %q cannot contain '.'", name)
	}
	return nil
}

// ValidateModelPath validates a dot-separated model path such as
// "main.debug.sources". Every segment must be a valid element name.
func ValidateModelPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "model path cannot be empty")
	}
	for _, segment := range strings.Split(path, ".") {
		if segment == "" {
			return New(ErrCodeInvalidInput, "model path %q has an empty segment", path)
		}
		if err := ValidateElementName(segment); err != nil {
			return Wrap(ErrCodeInvalidInput, err, "model path %q", path)
		}
	}
	return nil
}
