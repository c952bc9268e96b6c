// Package notes turns reviewer comments in an ODT draft into Paratext
// comment notes, one Notes_<user>.xml file per reviewer.
package notes

import (
	"encoding/xml"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	sgerrors "github.com/FocuswithJustin/SangoParatext/core/errors"
	"github.com/FocuswithJustin/SangoParatext/internal/fileutil"
	"github.com/FocuswithJustin/SangoParatext/internal/validation"
)

// ConflictType is written on every note; Paratext uses it for merge
// conflicts, which comments imported from a draft never are.
const ConflictType = "unknownConflictType"

// Comment is one Paratext comment note.
type Comment struct {
	XMLName          xml.Name `xml:"Comment"`
	Thread           string   `xml:"Thread,attr"`
	VerseRef         string   `xml:"VerseRef,attr"`
	Date             string   `xml:"Date,attr"`
	User             string   `xml:"User,attr"`
	Language         string   `xml:"Language,attr"`
	SelectedText     string   `xml:"SelectedText"`
	StartPosition    int      `xml:"StartPosition"`
	ContextBefore    string   `xml:"ContextBefore"`
	ContextAfter     string   `xml:"ContextAfter"`
	ConflictType     string   `xml:"ConflictType"`
	Verse            string   `xml:"Verse"`
	HideInTextWindow bool     `xml:"HideInTextWindow"`
	Contents         string   `xml:"Contents"`
}

type commentList struct {
	XMLName  xml.Name  `xml:"CommentList"`
	Comments []Comment `xml:"Comment"`
}

// NewThread returns a random thread id of eight hex digits.
func NewThread() string {
	id := uuid.New()
	return fmt.Sprintf("%x", id[:4])
}

// BuildXML renders one reviewer's comments as a Paratext CommentList.
// User and Language are stamped on every comment.
func BuildXML(user, language string, comments []Comment) ([]byte, error) {
	list := commentList{Comments: make([]Comment, len(comments))}
	for i, c := range comments {
		c.User = user
		c.Language = language
		if c.ConflictType == "" {
			c.ConflictType = ConflictType
		}
		list.Comments[i] = c
	}
	out, err := xml.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal comment notes: %w", err)
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

// FileName is the notes file Paratext expects for a reviewer.
func FileName(user string) (string, error) {
	name, err := validation.SanitizeFilename(user)
	if err != nil {
		return "", &sgerrors.ValidationError{Field: "user", Value: user, Message: "cannot be used in a file name", Err: err}
	}
	return "Notes_" + name + ".xml", nil
}

// WriteAll writes one notes file per reviewer into dir and returns the
// paths written, in reviewer order.
func WriteAll(dir string, ex *Extraction) ([]string, error) {
	var paths []string
	for _, user := range ex.Users {
		name, err := FileName(user)
		if err != nil {
			return paths, err
		}
		data, err := BuildXML(user, ex.Language, ex.ByUser[user])
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, name)
		if err := fileutil.WriteFile(path, data, 0644); err != nil {
			return paths, sgerrors.NewIO("write", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
