package errors

import (
	"testing"
)

func TestValidateDimension(t *testing.T) {
	tests := []struct {
		name    string
		input   int
		wantErr bool
	}{
		{"zero", 0, false},
		{"positive", 12, false},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimension("width", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimension(%d) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDimension) {
				t.Errorf("ValidateDimension(%d) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidDimension)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	if err := ValidateFormat("text", "text", "dot", "svg"); err != nil {
		t.Errorf("ValidateFormat(text) error = %v", err)
	}
	err := ValidateFormat("png", "text", "dot", "svg")
	if err == nil {
		t.Fatal("ValidateFormat(png) should fail")
	}
	if !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormat(png) code = %v, want %v", GetCode(err), ErrCodeInvalidFormat)
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid relative", "layouts/invoice.toml", false},
		{"valid absolute", "/tmp/layout.json", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "invoice", false},
		{"with dash", "overlapping-boxes", false},
		{"with digits", "maths2", false},

		{"empty", "", true},
		{"uppercase", "Invoice", true},
		{"traversal", "../etc", true},
		{"slash", "a/b", true},
		{"too long", "a" + string(make([]byte, 70)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateChar(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    rune
		wantErr bool
	}{
		{"space", " ", ' ', false},
		{"box drawing", "─", '─', false},
		{"wide", "中", '中', false},

		{"empty", "", 0, true},
		{"two chars", "ab", 0, true},
		{"control", "\t", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateChar("fill", tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateChar(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ValidateChar(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
