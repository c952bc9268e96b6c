package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      *NotFoundError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with ID",
			err:      &NotFoundError{Resource: "input file", ID: "EAB.SFM"},
			wantMsg:  "input file not found: EAB.SFM",
			wantBase: ErrNotFound,
		},
		{
			name:     "without ID",
			err:      &NotFoundError{Resource: "content.xml"},
			wantMsg:  "content.xml not found",
			wantBase: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}

	t.Run("with underlying error", func(t *testing.T) {
		underlying := fmt.Errorf("stat failed")
		err := &NotFoundError{Resource: "dictionary", ID: "dict/en_US.dic", Err: underlying}
		if got := err.Unwrap(); got != underlying {
			t.Errorf("Unwrap() = %v, want %v", got, underlying)
		}
	})
}

// TestSentinelWithCause checks a typed error still matches its sentinel
// when it wraps an underlying cause, and the cause stays reachable.
func TestSentinelWithCause(t *testing.T) {
	cause := errors.New("open dict/en_US.dic: no such file or directory")
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not found", &NotFoundError{Resource: "dictionary", Err: cause}, ErrNotFound},
		{"validation", &ValidationError{Field: "input", Message: "bad", Err: cause}, ErrInvalidInput},
		{"parse", &ParseError{Format: "ODT", Message: "bad", Err: cause}, ErrInvalidInput},
		{"unsupported", &UnsupportedError{Feature: "format", Err: cause}, ErrUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("loading: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", wrapped, tt.sentinel)
			}
			if !errors.Is(wrapped, cause) {
				t.Errorf("cause not reachable from %v", wrapped)
			}
			if errors.Is(wrapped, ErrMismatch) {
				t.Error("unrelated sentinel should not match")
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name    string
		err     *ValidationError
		wantMsg string
	}{
		{
			name:    "with field",
			err:     &ValidationError{Field: "input", Message: "need an ODT file"},
			wantMsg: "invalid input: need an ODT file",
		},
		{
			name:    "without field",
			err:     &ValidationError{Message: "two files required"},
			wantMsg: "invalid argument: two files required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrInvalidInput) {
				t.Errorf("expected ValidationError to match ErrInvalidInput")
			}
		})
	}
}

func TestIOError(t *testing.T) {
	underlying := fmt.Errorf("permission denied")
	err := NewIO("write", "Notes_ana.xml", underlying)
	if got, want := err.Error(), "failed to write Notes_ana.xml: permission denied"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, underlying) {
		t.Error("IOError should unwrap to the underlying error")
	}

	noPath := &IOError{Operation: "read stdin", Err: underlying}
	if got, want := noPath.Error(), "failed to read stdin: permission denied"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name    string
		err     *ParseError
		wantMsg string
	}{
		{
			name:    "line and context",
			err:     NewLineParse("SFM", 12, `\v x text`, "verse number is not an integer"),
			wantMsg: `failed to parse SFM at line 12: verse number is not an integer: "\\v x text"`,
		},
		{
			name:    "path only",
			err:     NewParse("ODT", "book.odt", "missing content.xml"),
			wantMsg: "failed to parse ODT book.odt: missing content.xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrInvalidInput) {
				t.Error("ParseError should match ErrInvalidInput")
			}
		})
	}
}

func TestUnsupportedError(t *testing.T) {
	err := NewUnsupported("file type", ".doc")
	if got, want := err.Error(), "unsupported file type: .doc"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrUnsupported) {
		t.Error("UnsupportedError should match ErrUnsupported")
	}

	bare := &UnsupportedError{Feature: "strategy"}
	if got, want := bare.Error(), "unsupported strategy"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	base := NewNotFound("input file", "a.odt")
	wrapped := Wrap(base, "load document")
	if got, want := wrapped.Error(), "load document: input file not found: a.odt"; got != want {
		t.Errorf("Wrap() = %q, want %q", got, want)
	}
	if !Is(wrapped, ErrNotFound) {
		t.Error("wrapped error should still match ErrNotFound")
	}
}

func TestWrapf(t *testing.T) {
	if Wrapf(nil, "chapter %d", 3) != nil {
		t.Error("Wrapf(nil) should return nil")
	}
	wrapped := Wrapf(ErrMismatch, "chapter %d", 3)
	if got, want := wrapped.Error(), "chapter 3: structural mismatch"; got != want {
		t.Errorf("Wrapf() = %q, want %q", got, want)
	}
}

func TestAs(t *testing.T) {
	err := Wrap(NewLineParse("SFM", 4, `\v a`, "bad verse"), "parse base")
	var pe *ParseError
	if !As(err, &pe) {
		t.Fatal("As should find the ParseError")
	}
	if pe.Line != 4 {
		t.Errorf("Line = %d, want 4", pe.Line)
	}
}
