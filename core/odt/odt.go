// Package odt reads and rewrites OpenDocument Text files.
//
// A Document keeps every ZIP entry of the source file. content.xml and
// styles.xml are parsed with xmlquery; edits to them are written back by
// Save, and all other entries are copied unchanged.
package odt

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"

	sgerrors "github.com/FocuswithJustin/SangoParatext/core/errors"
	sgxml "github.com/FocuswithJustin/SangoParatext/core/xml"
	"github.com/FocuswithJustin/SangoParatext/internal/fileutil"
	"github.com/FocuswithJustin/SangoParatext/internal/validation"
)

const (
	// MimeType is the media type of a text document.
	MimeType = "application/vnd.oasis.opendocument.text"

	contentPart = "content.xml"
	stylesPart  = "styles.xml"
	mimePart    = "mimetype"
)

type part struct {
	name   string
	method uint16
	data   []byte
}

// Document is an opened ODT file.
type Document struct {
	Path    string
	parts   []part
	content *xmlquery.Node
	styles  *xmlquery.Node
}

// Open reads an ODT file.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &sgerrors.NotFoundError{Resource: "ODT file", ID: path, Err: err}
		}
		return nil, sgerrors.NewIO("read", path, err)
	}
	doc, err := Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		var pe *sgerrors.ParseError
		if sgerrors.As(err, &pe) && pe.Path == "" {
			pe.Path = path
		}
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// Read parses an ODT from r. The content is sniffed first: compressed or
// text input is rejected before the ZIP reader sees it, and a ZIP without
// an OpenDocument mimetype entry is not an ODT.
func Read(r io.ReaderAt, size int64) (*Document, error) {
	kind, err := validation.DetectKind(io.NewSectionReader(r, 0, size))
	if err != nil {
		return nil, &sgerrors.ParseError{Format: "ODT", Message: "cannot read header", Err: err}
	}
	switch kind {
	case validation.KindZip:
	case validation.KindXZ, validation.KindGzip:
		return nil, sgerrors.NewUnsupported("compressed ODT", "ODT files are already ZIP containers")
	default:
		return nil, sgerrors.NewParse("ODT", "", fmt.Sprintf("not a ZIP container (found %s content)", kind))
	}

	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, &sgerrors.ParseError{Format: "ODT", Message: "not a ZIP container", Err: err}
	}

	doc := &Document{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, &sgerrors.ParseError{Format: "ODT", Message: fmt.Sprintf("cannot open %s", f.Name), Err: err}
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, &sgerrors.ParseError{Format: "ODT", Message: fmt.Sprintf("cannot read %s", f.Name), Err: err}
		}
		doc.parts = append(doc.parts, part{name: f.Name, method: f.Method, data: data})
	}

	mt, ok := doc.part(mimePart)
	if !ok {
		return nil, sgerrors.NewUnsupported("document type", "ZIP archive without an OpenDocument mimetype")
	}
	if !strings.HasPrefix(strings.TrimSpace(string(mt.data)), "application/vnd.oasis.opendocument") {
		return nil, sgerrors.NewUnsupported("document type", strings.TrimSpace(string(mt.data)))
	}

	content, ok := doc.part(contentPart)
	if !ok {
		return nil, sgerrors.NewParse("ODT", "", "missing content.xml")
	}
	if doc.content, err = sgxml.Parse(content.data); err != nil {
		return nil, &sgerrors.ParseError{Format: "ODT", Message: "invalid content.xml", Err: err}
	}
	if styles, ok := doc.part(stylesPart); ok {
		if doc.styles, err = sgxml.Parse(styles.data); err != nil {
			return nil, &sgerrors.ParseError{Format: "ODT", Message: "invalid styles.xml", Err: err}
		}
	}
	return doc, nil
}

func (d *Document) part(name string) (part, bool) {
	for _, p := range d.parts {
		if p.name == name {
			return p, true
		}
	}
	return part{}, false
}

// Content returns the parsed content.xml document node.
func (d *Document) Content() *xmlquery.Node { return d.content }

// Styles returns the parsed styles.xml document node, or nil.
func (d *Document) Styles() *xmlquery.Node { return d.styles }

// WriteContentXML writes content.xml as XML text to w. A non-empty indent
// pretty-prints element-only content.
func (d *Document) WriteContentXML(w io.Writer, indent string) error {
	return sgxml.Write(w, d.content, sgxml.FormatOptions{Indent: indent})
}

// Save writes the document to path: mimetype first and stored, then every
// other entry in its original order with the current content and styles.
// The file is replaced only once the whole archive is written, so path may
// be the file the document was opened from.
func (d *Document) Save(path string) error {
	if err := fileutil.WriteWith(path, 0644, d.Write); err != nil {
		return sgerrors.NewIO("write", path, err)
	}
	return nil
}

// Write writes the document as a ZIP archive.
func (d *Document) Write(w io.Writer) error {
	zw := zip.NewWriter(w)

	mime := []byte(MimeType)
	if mt, ok := d.part(mimePart); ok {
		mime = mt.data
	}
	mw, err := zw.CreateHeader(&zip.FileHeader{Name: mimePart, Method: zip.Store})
	if err != nil {
		return err
	}
	if _, err := mw.Write(mime); err != nil {
		return err
	}

	for _, p := range d.parts {
		data := p.data
		switch p.name {
		case mimePart:
			continue
		case contentPart:
			data = sgxml.Serialize(d.content)
		case stylesPart:
			if d.styles != nil {
				data = sgxml.Serialize(d.styles)
			}
		}
		method := p.method
		if method != zip.Store {
			method = zip.Deflate
		}
		pw, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: method})
		if err != nil {
			return err
		}
		if _, err := pw.Write(data); err != nil {
			return err
		}
	}
	return zw.Close()
}
