package errors

import "testing"

func TestValidateFieldName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "age", false},
		{"underscore", "age_diagnosis", false},
		{"dotted", "clinical.age", false},
		{"camel", "totalDonors", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 200)), true},
		{"leading digit", "1age", true},
		{"space", "age at diagnosis", true},
		{"trailing dot", "clinical.", true},
		{"operator", "age-1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFieldName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFieldName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidField) {
				t.Errorf("ValidateFieldName(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"#6d72c5", false},
		{"#abc", false},
		{"#ABCDEF", false},
		{"6d72c5", true},
		{"#abcd", true},
		{"#ggg", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "grid.svg", false},
		{"valid nested", "out/reports/grid.png", false},
		{"valid absolute", "/tmp/grid.json", false},
		{"valid with dots", "v1.2.3/grid.svg", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"path traversal", "../../../etc/passwd", true},
		{"path traversal middle", "foo/../bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidConfig,
		ErrCodeInvalidExpression,
		ErrCodeInvalidFormat,
		ErrCodeInvalidField,
		ErrCodeInvalidPath,
		ErrCodeFileNotFound,
		ErrCodeTrackNotFound,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
