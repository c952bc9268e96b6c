// Package archive opens text sources that may be stored compressed.
// Word lists and SFM exports are often shipped as .xz or .gz files; callers
// read them through Open and never care which.
package archive

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"
)

// utf8BOM is stripped from the start of every text source.
const utf8BOM = "\uFEFF"

// Compression identifies how a source is stored.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionXZ   Compression = "xz"
	CompressionGzip Compression = "gzip"
)

// CompressionFor reports the compression implied by a file name.
func CompressionFor(path string) Compression {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".xz"):
		return CompressionXZ
	case strings.HasSuffix(lower, ".gz"):
		return CompressionGzip
	default:
		return CompressionNone
	}
}

// StripCompression removes a trailing .xz or .gz from a file name, so
// "en_US.dic.xz" is treated like "en_US.dic".
func StripCompression(name string) string {
	switch CompressionFor(name) {
	case CompressionXZ:
		return name[:len(name)-len(".xz")]
	case CompressionGzip:
		return name[:len(name)-len(".gz")]
	default:
		return name
	}
}

// Reader wraps a source file with transparent decompression.
type Reader struct {
	io.Reader
	file         *os.File
	decompressor io.Closer
}

// Open opens path for reading, decompressing .xz and .gz files.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	r := &Reader{Reader: f, file: f}
	switch CompressionFor(path) {
	case CompressionXZ:
		xzr, err := xz.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("xz reader: %w", err)
		}
		r.Reader = xzr
	case CompressionGzip:
		gzr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		r.Reader = gzr
		r.decompressor = gzr
	}
	return r, nil
}

// Close closes the decompressor, if any, and the underlying file.
func (r *Reader) Close() error {
	var first error
	if r.decompressor != nil {
		first = r.decompressor.Close()
	}
	if err := r.file.Close(); err != nil && first == nil {
		first = err
	}
	return first
}

// ReadText reads a whole source as a string, without a leading BOM.
func ReadText(path string) (string, error) {
	r, err := Open(path)
	if err != nil {
		return "", err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return strings.TrimPrefix(string(data), utf8BOM), nil
}

// SplitLines splits text into lines the way the tools count them: "\n" and
// "\r\n" both end a line and a trailing newline does not add an empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// ReadLines reads a source and splits it with SplitLines.
func ReadLines(path string) ([]string, error) {
	text, err := ReadText(path)
	if err != nil {
		return nil, err
	}
	return SplitLines(text), nil
}
