// Package odttest builds small ODT files for tests.
package odttest

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Namespaces declared on every generated content.xml.
const Namespaces = `xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" ` +
	`xmlns:style="urn:oasis:names:tc:opendocument:xmlns:style:1.0" ` +
	`xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0" ` +
	`xmlns:fo="urn:oasis:names:tc:opendocument:xmlns:xsl-fo-compatible:1.0" ` +
	`xmlns:dc="http://purl.org/dc/elements/1.1/" ` +
	`xmlns:meta="urn:oasis:names:tc:opendocument:xmlns:meta:1.0"`

// Content wraps automatic styles and body paragraphs in a content.xml
// document.
func Content(autoStyles string, paragraphs ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<office:document-content ` + Namespaces + ` office:version="1.3">`)
	if autoStyles != "" {
		b.WriteString("<office:automatic-styles>" + autoStyles + "</office:automatic-styles>")
	}
	b.WriteString("<office:body><office:text>")
	for _, p := range paragraphs {
		b.WriteString(p)
	}
	b.WriteString("</office:text></office:body></office:document-content>")
	return b.String()
}

// Styles wraps named styles in a styles.xml document.
func Styles(styles string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		`<office:document-styles ` + Namespaces + `><office:styles>` + styles +
		`</office:styles></office:document-styles>`
}

// Annotation renders an office:annotation. An empty name means the
// comment has no selection.
func Annotation(name, creator, date, contents string) string {
	var b strings.Builder
	b.WriteString("<office:annotation")
	if name != "" {
		b.WriteString(` office:name="` + name + `"`)
	}
	b.WriteString(">")
	b.WriteString("<dc:creator>" + creator + "</dc:creator>")
	b.WriteString("<dc:date>" + date + "</dc:date>")
	b.WriteString("<meta:creator-initials>" + initials(creator) + "</meta:creator-initials>")
	b.WriteString("<text:p>" + contents + "</text:p>")
	b.WriteString("</office:annotation>")
	return b.String()
}

// AnnotationEnd renders the end of a named comment's selection.
func AnnotationEnd(name string) string {
	return `<office:annotation-end office:name="` + name + `"/>`
}

func initials(name string) string {
	var out []rune
	for _, f := range strings.Fields(name) {
		out = append(out, []rune(f)[0])
	}
	return string(out)
}

// Bytes builds an ODT archive in memory. styles may be empty.
func Bytes(t *testing.T, content, styles string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		t.Fatalf("create mimetype: %v", err)
	}
	w.Write([]byte("application/vnd.oasis.opendocument.text"))

	entries := []struct{ name, data string }{
		{"content.xml", content},
		{"META-INF/manifest.xml", `<?xml version="1.0" encoding="UTF-8"?><manifest:manifest xmlns:manifest="urn:oasis:names:tc:opendocument:xmlns:manifest:1.0"/>`},
	}
	if styles != "" {
		entries = append(entries, struct{ name, data string }{"styles.xml", styles})
	}
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatalf("create %s: %v", e.name, err)
		}
		if _, err := w.Write([]byte(e.data)); err != nil {
			t.Fatalf("write %s: %v", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

// File writes an ODT into a temp dir and returns its path.
func File(t *testing.T, name, content, styles string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, Bytes(t, content, styles), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
