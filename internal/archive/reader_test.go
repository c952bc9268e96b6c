package archive

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ulikunitz/xz"
)

func writeXZ(t *testing.T, path string, content []byte) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	defer f.Close()

	xw, err := xz.NewWriter(f)
	if err != nil {
		t.Fatalf("xz writer: %v", err)
	}
	if _, err := xw.Write(content); err != nil {
		t.Fatalf("write content: %v", err)
	}
	if err := xw.Close(); err != nil {
		t.Fatalf("close xz writer: %v", err)
	}
}

func writeGzip(t *testing.T, path string, content []byte) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	defer f.Close()

	gw := gzip.NewWriter(f)
	if _, err := gw.Write(content); err != nil {
		t.Fatalf("write content: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("close gzip writer: %v", err)
	}
}

func TestCompressionFor(t *testing.T) {
	tests := []struct {
		path string
		want Compression
	}{
		{"en_US.dic", CompressionNone},
		{"en_US.dic.xz", CompressionXZ},
		{"SG.SFM.XZ", CompressionXZ},
		{"words.txt.gz", CompressionGzip},
	}
	for _, tt := range tests {
		if got := CompressionFor(tt.path); got != tt.want {
			t.Errorf("CompressionFor(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestStripCompression(t *testing.T) {
	tests := map[string]string{
		"en_US.dic.xz": "en_US.dic",
		"sg_CF.txt.gz": "sg_CF.txt",
		"fr_FR.dic":    "fr_FR.dic",
	}
	for in, want := range tests {
		if got := StripCompression(in); got != want {
			t.Errorf("StripCompression(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	content := []byte("mbi\nmo\nlo\n")

	plain := filepath.Join(dir, "sg_CF.txt")
	if err := os.WriteFile(plain, content, 0644); err != nil {
		t.Fatalf("write plain: %v", err)
	}
	xzPath := filepath.Join(dir, "sg_CF.txt.xz")
	writeXZ(t, xzPath, content)
	gzPath := filepath.Join(dir, "sg_CF.txt.gz")
	writeGzip(t, gzPath, content)

	for _, path := range []string{plain, xzPath, gzPath} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			r, err := Open(path)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer r.Close()

			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if string(got) != string(content) {
				t.Errorf("content = %q, want %q", got, content)
			}
		})
	}
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Open(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}

	bogus := filepath.Join(dir, "bogus.xz")
	if err := os.WriteFile(bogus, []byte("not xz at all"), 0644); err != nil {
		t.Fatalf("write bogus: %v", err)
	}
	if _, err := Open(bogus); err == nil {
		t.Error("expected error for invalid xz stream")
	}
}

func TestReadTextStripsBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "EAB.SFM")
	if err := os.WriteFile(path, []byte("\uFEFF\\id XXA\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadText(path)
	if err != nil {
		t.Fatalf("ReadText() error = %v", err)
	}
	if got != "\\id XXA\n" {
		t.Errorf("ReadText() = %q", got)
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "trailing newline", in: "a\nb\n", want: []string{"a", "b"}},
		{name: "no trailing newline", in: "a\nb", want: []string{"a", "b"}},
		{name: "crlf", in: "a\r\nb\r\n", want: []string{"a", "b"}},
		{name: "blank lines kept", in: "a\n\nb\n", want: []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitLines(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLines(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestReadLinesXZ(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "SAB.SFM.xz")
	writeXZ(t, path, []byte("\\c 1\r\n\\p\r\n\\v 1 Na tënë\r\n"))

	got, err := ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines() error = %v", err)
	}
	want := []string{"\\c 1", "\\p", "\\v 1 Na tënë"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadLines() = %q, want %q", got, want)
	}
}
