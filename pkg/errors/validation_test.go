package errors

import (
	"strings"
	"testing"
)

func TestValidateElementName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "main", false},
		{"valid camel", "compileMainDebug", false},
		{"valid with dash", "link-release", false},
		{"valid with underscore", "test_fixtures", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"dot", "main.debug", true},
		{"space", "main debug", true},
		{"tab", "main\tdebug", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateElementName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateElementName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateElementName(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateModelPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"single segment", "main", false},
		{"nested", "main.debug.sources", false},

		{"empty", "", true},
		{"leading dot", ".main", true},
		{"trailing dot", "main.", true},
		{"double dot", "main..debug", true},
		{"space in segment", "main.de bug", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateModelPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateModelPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateModelPath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidModelFile,
		ErrCodeNotFound,
		ErrCodeDuplicateChild,
		ErrCodeUnregistrableType,
		ErrCodeUnviewableProjection,
		ErrCodeTypeMismatch,
		ErrCodeConfigurationFailed,
		ErrCodeMutationNotAllowed,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
