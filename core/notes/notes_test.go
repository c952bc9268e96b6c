package notes

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	sgerrors "github.com/FocuswithJustin/SangoParatext/core/errors"
	"github.com/FocuswithJustin/SangoParatext/core/odt"
	"github.com/FocuswithJustin/SangoParatext/core/odt/odttest"
)

func TestParseVerseRef(t *testing.T) {
	tests := []struct {
		in   string
		want VerseRef
	}{
		{"XXA 12:3", VerseRef{"XXA", 12, 3}},
		{"1SA 3:10", VerseRef{"1SA", 3, 10}},
		{"  GEN  1 : 1 ", VerseRef{"GEN", 1, 1}},
	}
	for _, tt := range tests {
		got, err := ParseVerseRef(tt.in)
		if err != nil {
			t.Errorf("ParseVerseRef(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseVerseRef(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}

	for _, in := range []string{"", "XXA", "XXA 12", "XXA 12:", "12:3", "XXA x:3"} {
		_, err := ParseVerseRef(in)
		var pe *sgerrors.ParseError
		if !errors.As(err, &pe) {
			t.Errorf("ParseVerseRef(%q) error = %v, want ParseError", in, err)
		}
	}
}

func TestVerseRefString(t *testing.T) {
	if got := (VerseRef{"XXA", 319, 4}).String(); got != "XXA 319:4" {
		t.Errorf("String() = %q", got)
	}
}

func TestNewThread(t *testing.T) {
	hex8 := regexp.MustCompile(`^[0-9a-f]{8}$`)
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		id := NewThread()
		if !hex8.MatchString(id) {
			t.Fatalf("NewThread() = %q, want 8 hex digits", id)
		}
		seen[id] = true
	}
	if len(seen) < 2 {
		t.Error("NewThread() should be random")
	}
}

func counter() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%08x", n)
	}
}

func reviewDoc(t *testing.T) *odt.Document {
	t.Helper()
	content := odttest.Content("",
		`<text:p>P12</text:p>`,
		`<text:p>Panel 1</text:p>`,
		`<text:p>Lo gue `+
			odttest.Annotation("c1", "Ana", "2023-04-01T10:00:00", "Check this")+
			`ti tene`+odttest.AnnotationEnd("c1")+` na ala `+
			odttest.Annotation("", "Bo", "2023-04-02T09:30:00", "Spelling")+
			`mbeni</text:p>`,
		`<text:p/>`,
		`<text:p>Panel 2</text:p>`,
		`<text:p>Yeke nzoni</text:p>`,
		`<text:p>p317</text:p>`,
		`<text:p>Panel 4 A `+odttest.Annotation("", "Ana", "2023-04-03T08:00:00", "Why?")+`</text:p>`,
	)
	doc, err := odt.Open(odttest.File(t, "draft.odt", content, ""))
	if err != nil {
		t.Fatalf("odt.Open() error = %v", err)
	}
	return doc
}

func TestExtract(t *testing.T) {
	ex, err := Extract(reviewDoc(t), Options{
		Book:         "XXA",
		Language:     "sg",
		ChapterRemap: DefaultChapterRemap,
		NewThread:    counter(),
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if ex.Count != 3 {
		t.Errorf("Count = %d, want 3", ex.Count)
	}
	if len(ex.Users) != 2 || ex.Users[0] != "Ana" || ex.Users[1] != "Bo" {
		t.Fatalf("Users = %v, want [Ana Bo]", ex.Users)
	}

	ana := ex.ByUser["Ana"]
	bo := ex.ByUser["Bo"]
	if len(ana) != 2 || len(bo) != 1 {
		t.Fatalf("ByUser sizes = %d, %d", len(ana), len(bo))
	}

	want := []Comment{
		{
			Thread: "00000001", VerseRef: "XXA 12:1", Date: "2023-04-01T10:00:00", User: "Ana", Language: "sg",
			SelectedText: "ti tene", StartPosition: 6, ContextBefore: "Lo gue", ContextAfter: "na ala",
			ConflictType: ConflictType, Verse: `\v 1 Lo gue ti tene na ala mbeni`, Contents: "Check this",
		},
		{
			Thread: "00000003", VerseRef: "XXA 319:4", Date: "2023-04-03T08:00:00", User: "Ana", Language: "sg",
			StartPosition: 9, ContextBefore: "Panel 4 A",
			ConflictType: ConflictType, Verse: `\v 4 A`, Contents: "Why?",
		},
		{
			Thread: "00000002", VerseRef: "XXA 12:1", Date: "2023-04-02T09:30:00", User: "Bo", Language: "sg",
			StartPosition: 14, ContextBefore: "ti tene na ala", ContextAfter: "mbeni",
			ConflictType: ConflictType, Verse: `\v 1 Lo gue ti tene na ala mbeni`, Contents: "Spelling",
		},
	}
	got := []Comment{ana[0], ana[1], bo[0]}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("comment %d =\n%+v\nwant\n%+v", i, got[i], want[i])
		}
	}

	if v := ex.VerseText(12, 2); v != `\v 2 Yeke nzoni` {
		t.Errorf("VerseText(12, 2) = %q", v)
	}
	if v := ex.VerseText(317, 1); v != "" {
		t.Errorf("page 317 should be remapped, got %q", v)
	}
	if v := ex.VerseText(319, 1); v != `\c 317` {
		t.Errorf("VerseText(319, 1) = %q", v)
	}
}

func TestExtractWithoutRemap(t *testing.T) {
	ex, err := Extract(reviewDoc(t), Options{Book: "XXA", Language: "sg"})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if ref := ex.ByUser["Ana"][1].VerseRef; ref != "XXA 317:4" {
		t.Errorf("VerseRef = %q, want XXA 317:4", ref)
	}
}

func TestToSFM(t *testing.T) {
	tests := []struct{ in, want string }{
		{"P12", `\c 12`},
		{" p107 title", ` \c 107 title`},
		{"Panel 3 Lo", `\v  3 Lo`},
		{"Panel3", `\v 3`},
		{"Yeke nzoni", "Yeke nzoni"},
	}
	for _, tt := range tests {
		if got := toSFM(tt.in); got != tt.want {
			t.Errorf("toSFM(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildXML(t *testing.T) {
	comments := []Comment{{
		Thread:        "0000abcd",
		VerseRef:      "XXA 1:2",
		Date:          "2023-01-01",
		User:          "ignored",
		SelectedText:  "ti",
		StartPosition: 3,
		ContextBefore: "a b",
		Verse:         "v",
		Contents:      "x & y",
	}}
	got, err := BuildXML("Ana", "sg", comments)
	if err != nil {
		t.Fatalf("BuildXML() error = %v", err)
	}
	want := `<?xml version="1.0" encoding="UTF-8"?>
<CommentList>
  <Comment Thread="0000abcd" VerseRef="XXA 1:2" Date="2023-01-01" User="Ana" Language="sg">
    <SelectedText>ti</SelectedText>
    <StartPosition>3</StartPosition>
    <ContextBefore>a b</ContextBefore>
    <ContextAfter></ContextAfter>
    <ConflictType>unknownConflictType</ConflictType>
    <Verse>v</Verse>
    <HideInTextWindow>false</HideInTextWindow>
    <Contents>x &amp; y</Contents>
  </Comment>
</CommentList>
`
	if string(got) != want {
		t.Errorf("BuildXML() =\n%s\nwant\n%s", got, want)
	}
	if comments[0].User != "ignored" {
		t.Error("BuildXML must not modify its input")
	}
}

func TestWriteAll(t *testing.T) {
	ex, err := Extract(reviewDoc(t), Options{Book: "XXA", Language: "sg", NewThread: counter()})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	dir := t.TempDir()
	paths, err := WriteAll(dir, ex)
	if err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	wantPaths := []string{filepath.Join(dir, "Notes_Ana.xml"), filepath.Join(dir, "Notes_Bo.xml")}
	if len(paths) != 2 || paths[0] != wantPaths[0] || paths[1] != wantPaths[1] {
		t.Fatalf("WriteAll() = %v, want %v", paths, wantPaths)
	}
	data, err := os.ReadFile(paths[1])
	if err != nil {
		t.Fatal(err)
	}
	if !regexp.MustCompile(`User="Bo" Language="sg"`).Match(data) {
		t.Errorf("Notes_Bo.xml:\n%s", data)
	}
}

func TestFileName(t *testing.T) {
	got, err := FileName("Ana/Reviewer")
	if err != nil || got != "Notes_Ana_Reviewer.xml" {
		t.Errorf("FileName() = %q, %v", got, err)
	}
	_, err = FileName("   ")
	var ve *sgerrors.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("blank user: error = %v, want ValidationError", err)
	}
}
