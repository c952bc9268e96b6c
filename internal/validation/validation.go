// Package validation checks command-line inputs before a tool touches them:
// path shape, required extensions, existing regular files, and names that
// end up in generated filenames.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	sgerrors "github.com/FocuswithJustin/SangoParatext/core/errors"
)

const (
	// MaxFilenameLength is the maximum allowed filename length.
	MaxFilenameLength = 255
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
)

// Common validation errors.
var (
	ErrInvalidFilename  = errors.New("invalid filename")
	ErrPathTooLong      = errors.New("path too long")
	ErrFilenameTooLong  = errors.New("filename too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrEmptyPath        = errors.New("path cannot be empty")
)

// ValidatePath checks length limits and invalid characters.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidCharacter)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}
	return nil
}

// HasExtension reports whether path ends in one of exts, ignoring case.
func HasExtension(path string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// RequireInputFile validates a positional file argument: the path must be
// well formed, carry one of exts (when any are given), and name an existing
// regular file. It returns the absolute path.
func RequireInputFile(field, path string, exts ...string) (string, error) {
	if err := ValidatePath(path); err != nil {
		return "", &sgerrors.ValidationError{Field: field, Value: path, Message: err.Error(), Err: err}
	}
	if len(exts) > 0 && !HasExtension(path, exts...) {
		return "", &sgerrors.ValidationError{
			Field:   field,
			Value:   path,
			Message: fmt.Sprintf("need a %s file, got %q", strings.Join(exts, " or "), filepath.Base(path)),
		}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &sgerrors.NotFoundError{Resource: "input file", ID: path, Err: err}
		}
		return "", sgerrors.NewIO("stat", path, err)
	}
	if !info.Mode().IsRegular() {
		return "", &sgerrors.ValidationError{Field: field, Value: path, Message: "not a regular file"}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", sgerrors.NewIO("resolve", path, err)
	}
	return abs, nil
}

// ValidateFilename checks that a filename has no separators, control
// characters or reserved names.
func ValidateFilename(filename string) error {
	if filename == "" {
		return ErrInvalidFilename
	}
	if len(filename) > MaxFilenameLength {
		return ErrFilenameTooLong
	}
	if filename == "." || filename == ".." {
		return fmt.Errorf("%w: reserved name", ErrInvalidFilename)
	}
	if strings.ContainsAny(filename, "/\\") {
		return fmt.Errorf("%w: path separator not allowed", ErrInvalidFilename)
	}
	for _, r := range filename {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidFilename)
		}
	}
	if strings.HasPrefix(filename, "-") {
		return fmt.Errorf("%w: filename cannot start with hyphen", ErrInvalidFilename)
	}
	return nil
}

// SanitizeFilename turns free text (a reviewer name, a language code) into
// a safe filename component.
func SanitizeFilename(filename string) (string, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return "", ErrInvalidFilename
	}

	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")

	var cleaned strings.Builder
	for _, r := range filename {
		if !unicode.IsControl(r) {
			cleaned.WriteRune(r)
		}
	}
	filename = strings.TrimLeft(cleaned.String(), "-")

	if err := ValidateFilename(filename); err != nil {
		return "", err
	}
	return filename, nil
}

// FileKind is the content kind detected from magic bytes.
type FileKind string

const (
	KindZip     FileKind = "zip"
	KindXZ      FileKind = "xz"
	KindGzip    FileKind = "gzip"
	KindText    FileKind = "text"
	KindUnknown FileKind = "unknown"
)

var magicBytes = []struct {
	kind  FileKind
	magic []byte
}{
	{KindGzip, []byte{0x1f, 0x8b}},
	{KindXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{KindZip, []byte{0x50, 0x4b, 0x03, 0x04}},
}

// DetectKind sniffs the first bytes of r. ODT files are ZIP containers, so
// a .odt that is not KindZip is rejected before parsing.
func DetectKind(r io.Reader) (FileKind, error) {
	buf := make([]byte, 512)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return KindUnknown, fmt.Errorf("failed to read file header: %w", err)
	}
	buf = buf[:n]

	for _, sig := range magicBytes {
		if bytes.HasPrefix(buf, sig.magic) {
			return sig.kind, nil
		}
	}
	if isLikelyText(buf) {
		return KindText, nil
	}
	return KindUnknown, nil
}

// DetectFileKind is DetectKind on the file at path.
func DetectFileKind(path string) (FileKind, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return KindUnknown, &sgerrors.NotFoundError{Resource: "file", ID: path, Err: err}
		}
		return KindUnknown, sgerrors.NewIO("open", path, err)
	}
	defer f.Close()
	return DetectKind(f)
}

// isLikelyText reports whether buf looks like text: no NUL bytes and almost
// no control characters. Bytes >= 0x80 are treated as UTF-8 and neutral.
func isLikelyText(buf []byte) bool {
	if len(buf) == 0 {
		return true
	}
	if bytes.IndexByte(buf, 0) != -1 {
		return false
	}
	printable, control := 0, 0
	for _, b := range buf {
		switch {
		case b >= 0x20 && b <= 0x7e, b == '\t', b == '\n', b == '\r':
			printable++
		case b < 0x20:
			control++
		}
	}
	if printable == 0 {
		return control == 0
	}
	return float64(printable)/float64(printable+control) > 0.95
}
