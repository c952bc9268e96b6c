package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sgerrors "github.com/FocuswithJustin/SangoParatext/core/errors"
	"github.com/FocuswithJustin/SangoParatext/core/notes"
	"github.com/FocuswithJustin/SangoParatext/core/odt"
	"github.com/FocuswithJustin/SangoParatext/internal/logging"
	"github.com/FocuswithJustin/SangoParatext/internal/validation"
)

func openODT(path string) (*odt.Document, error) {
	in, err := validation.RequireInputFile("input", path, ".odt")
	if err != nil {
		return nil, err
	}
	return odt.Open(in)
}

// CommentsCmd exports the comments of a draft as Paratext notes files.
type CommentsCmd struct {
	Input    string `arg:"" help:"Commented ODT draft" type:"existingfile"`
	OutDir   string `name:"out-dir" short:"o" help:"Directory for Notes_<user>.xml files (default: current directory)" type:"path" default:"."`
	Book     string `help:"Book code for verse references (overrides config)"`
	Language string `help:"Language stamped on every note (overrides config)"`
}

func (cmd *CommentsCmd) Run(env *Env) error {
	doc, err := openODT(cmd.Input)
	if err != nil {
		return err
	}
	opts := notes.Options{
		Book:         env.Config.Notes.Book,
		Language:     env.Config.Notes.Language,
		ChapterRemap: env.Config.Notes.ChapterRemap,
	}
	if cmd.Book != "" {
		opts.Book = cmd.Book
	}
	if cmd.Language != "" {
		opts.Language = cmd.Language
	}
	logging.ToolRun("odt comments", []string{cmd.Input}, "book", opts.Book)

	ex, err := notes.Extract(doc, opts)
	if err != nil {
		return err
	}
	outDir := cmd.OutDir
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return sgerrors.NewIO("mkdir", outDir, err)
	}
	paths, err := notes.WriteAll(outDir, ex)
	if err != nil {
		return err
	}
	for _, p := range paths {
		logging.Info("wrote notes file", "path", p)
	}
	dir, err := filepath.Abs(outDir)
	if err != nil {
		dir = outDir
	}
	_, err = fmt.Fprintf(env.Stdout, "%d comments found and exported to %s.\n", ex.Count, dir)
	return err
}

// XMLCmd prints the content.xml of an ODT.
type XMLCmd struct {
	Input  string `arg:"" help:"ODT file" type:"existingfile"`
	Indent int    `help:"Spaces per indentation level; 0 prints the XML as stored" default:"2"`
}

func (cmd *XMLCmd) Run(env *Env) error {
	if cmd.Indent < 0 {
		return &sgerrors.ValidationError{Field: "indent", Value: fmt.Sprint(cmd.Indent), Message: "must not be negative"}
	}
	doc, err := openODT(cmd.Input)
	if err != nil {
		return err
	}
	return doc.WriteContentXML(env.Stdout, strings.Repeat(" ", cmd.Indent))
}

// ExploreCmd lists the comments anchored in each paragraph.
type ExploreCmd struct {
	Input string `arg:"" help:"ODT file" type:"existingfile"`
}

func (cmd *ExploreCmd) Run(env *Env) error {
	doc, err := openODT(cmd.Input)
	if err != nil {
		return err
	}
	found := doc.Annotations()
	last := -1
	for _, f := range found {
		if f.Paragraph != last {
			fmt.Fprintf(env.Stdout, "paragraph %d\n", f.Paragraph+1)
			last = f.Paragraph
		}
		a := f.Annotation
		fmt.Fprintf(env.Stdout, "  depth %d: %s %s %s\n", f.Depth, a.Creator, a.Date, a.Contents)
	}
	_, err = fmt.Fprintf(env.Stdout, "%d comments in %d paragraphs.\n", len(found), len(doc.Paragraphs()))
	return err
}
