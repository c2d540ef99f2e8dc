package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "WithoutCause",
			err:  New(ErrCodeInvalidDistribution, "shares sum to %.2f, want 100", 98.5),
			want: "INVALID_DISTRIBUTION: shares sum to 98.50, want 100",
		},
		{
			name: "WithCause",
			err:  Wrap(ErrCodeNetwork, stderrors.New("connection refused"), "fetch sectors"),
			want: "NETWORK_ERROR: fetch sectors: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeShareNotFound, "no share named %q", "core")

	if !Is(err, ErrCodeShareNotFound) {
		t.Error("Is() = false for matching code")
	}
	if Is(err, ErrCodeNetwork) {
		t.Error("Is() = true for non-matching code")
	}
	if Is(stderrors.New("plain"), ErrCodeShareNotFound) {
		t.Error("Is() = true for plain error")
	}

	// Wrapped errors should still match by code.
	wrapped := fmt.Errorf("handler: %w", err)
	if !Is(wrapped, ErrCodeShareNotFound) {
		t.Error("Is() = false for wrapped error")
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(ErrCodeInternal, cause, "render failed")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is() should find the cause through Unwrap")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeTimeout, "deadline")); got != ErrCodeTimeout {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeTimeout)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode() = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidViewport, "width must be positive")); got != "width must be positive" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(stderrors.New("plain failure")); got != "plain failure" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Valid", "Frontier Alpha", false},
		{"Empty", "", true},
		{"PathSeparator", "a/b", true},
		{"Traversal", "..", true},
		{"ControlChar", "bad\x00name", true},
		{"TooLong", string(make([]byte, 101)), true},
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

func TestValidateURL(t *testing.T) {
	if err := ValidateURL("https://universe.example.com"); err != nil {
		t.Errorf("ValidateURL() = %v, want nil", err)
	}
	if err := ValidateURL("ftp://universe.example.com"); err == nil {
		t.Error("ValidateURL() accepted non-http scheme")
	}
	if err := ValidateURL(""); err == nil {
		t.Error("ValidateURL() accepted empty URL")
	}
}
