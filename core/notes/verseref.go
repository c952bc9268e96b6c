package notes

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	sgerrors "github.com/FocuswithJustin/SangoParatext/core/errors"
)

// VerseRef is a Paratext reference such as "XXA 12:3".
type VerseRef struct {
	Book    string
	Chapter int
	Verse   int
}

func (r VerseRef) String() string {
	return fmt.Sprintf("%s %d:%d", r.Book, r.Chapter, r.Verse)
}

// verseRefGrammar parses "BOOK C:V". Book codes may start with a digit
// ("1SA"), so the leading number is captured separately.
//
//nolint:govet // participle grammar tags are not standard struct tags
type verseRefGrammar struct {
	BookPrefix string `@Int?`
	BookName   string `@Ident`
	Chapter    int    `@Int`
	Colon      string `":"`
	Verse      int    `@Int`
}

var verseRefLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z]+`},
	{Name: "Punct", Pattern: `:`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var verseRefParser = participle.MustBuild[verseRefGrammar](
	participle.Lexer(verseRefLexer),
	participle.Elide("Whitespace"),
)

// ParseVerseRef parses a reference written as "BOOK C:V".
func ParseVerseRef(s string) (VerseRef, error) {
	g, err := verseRefParser.ParseString("", s)
	if err != nil {
		return VerseRef{}, &sgerrors.ParseError{Format: "verse reference", Context: s, Message: "expected BOOK C:V", Err: err}
	}
	return VerseRef{Book: g.BookPrefix + g.BookName, Chapter: g.Chapter, Verse: g.Verse}, nil
}
