package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sgerrors "github.com/FocuswithJustin/SangoParatext/core/errors"
	"github.com/FocuswithJustin/SangoParatext/core/langid"
	"github.com/FocuswithJustin/SangoParatext/core/odt"
	"github.com/FocuswithJustin/SangoParatext/internal/archive"
	"github.com/FocuswithJustin/SangoParatext/internal/fileutil"
	"github.com/FocuswithJustin/SangoParatext/internal/logging"
	"github.com/FocuswithJustin/SangoParatext/internal/validation"
)

// unknownBucket names the split output for paragraphs no language claims.
const unknownBucket = "unknown"

// TagCmd styles every ODT paragraph after its detected language.
type TagCmd struct {
	Input     string   `arg:"" help:"ODT file to tag" type:"existingfile"`
	Out       string   `help:"Output ODT (default: <name>__<codes>.odt next to the input)" type:"path"`
	Force     bool     `help:"Overwrite the output file if it exists"`
	Languages []string `name:"lang" short:"l" help:"Language codes, in priority order (overrides config)"`
	DictDir   string   `name:"dict-dir" help:"Word list directory (overrides config)" type:"path"`
}

func (cmd *TagCmd) Run(env *Env) error {
	in, err := validation.RequireInputFile("input", cmd.Input, ".odt")
	if err != nil {
		return err
	}
	codes := env.languages(cmd.Languages)
	out := cmd.Out
	if out == "" {
		out = taggedName(in, codes)
	}
	if !cmd.Force {
		if _, err := os.Stat(out); err == nil {
			return &sgerrors.ValidationError{Field: "out", Value: out, Message: "file exists (use --force to overwrite)"}
		}
	}
	logging.ToolRun("lang tag", []string{in}, "out", out, "languages", codes)

	table, err := env.loadTable(env.dictDir(cmd.DictDir), codes)
	if err != nil {
		return err
	}
	cl, err := env.classifier(table, codes)
	if err != nil {
		return err
	}

	doc, err := odt.Open(in)
	if err != nil {
		return err
	}
	if err := doc.AddLanguageStyles(codes); err != nil {
		return err
	}

	odtParas := doc.Paragraphs()
	paras := make([]langid.Paragraph, len(odtParas))
	for i, p := range odtParas {
		paras[i] = langid.Paragraph{Words: p.Words()}
	}
	cl.ClassifyAll(paras)
	for i, p := range paras {
		if p.Lang != "" {
			doc.SetParagraphStyle(odtParas[i], p.Lang)
		}
	}

	if err := doc.Save(out); err != nil {
		return err
	}
	if _, err := langid.Summarize(paras, codes).WriteTo(env.Stdout); err != nil {
		return err
	}
	fmt.Fprintf(env.Stdout, "Saved to %s\n", out)
	return nil
}

// taggedName builds "dir/name__en_US__sg_CF.odt" from "dir/name.odt".
func taggedName(path string, codes []string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	return stem + "__" + strings.Join(codes, "__") + ext
}

// SplitCmd writes the paragraphs of each language to their own text file.
type SplitCmd struct {
	Input     string   `arg:"" help:"ODT, TXT or compressed TXT file" type:"existingfile"`
	OutDir    string   `name:"out-dir" short:"o" help:"Output directory (default: next to the input)" type:"path"`
	Languages []string `name:"lang" short:"l" help:"Language codes, in priority order (overrides config)"`
	DictDir   string   `name:"dict-dir" help:"Word list directory (overrides config)" type:"path"`
}

func (cmd *SplitCmd) Run(env *Env) error {
	in, err := validation.RequireInputFile("input", cmd.Input)
	if err != nil {
		return err
	}
	codes := env.languages(cmd.Languages)

	paras, err := readParagraphs(in)
	if err != nil {
		return err
	}

	table, err := env.loadTable(env.dictDir(cmd.DictDir), codes)
	if err != nil {
		return err
	}
	cl, err := env.classifier(table, codes)
	if err != nil {
		return err
	}

	buckets := make(map[string][]string)
	for i := range paras {
		if len(paras[i].Words) == 0 {
			continue
		}
		// Each paragraph stands alone: an unrecognized one is unknown
		// rather than inheriting its neighbour's language.
		paras[i].Lang = cl.Classify(paras[i].Words, "")
		key := paras[i].Lang
		if key == "" {
			key = unknownBucket
		}
		buckets[key] = append(buckets[key], paras[i].Text())
	}

	outDir := cmd.OutDir
	if outDir == "" {
		outDir = filepath.Dir(in)
	}
	base := archive.StripCompression(filepath.Base(in))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	for _, key := range append(append([]string(nil), codes...), unknownBucket) {
		lines := buckets[key]
		if len(lines) == 0 {
			continue
		}
		path := filepath.Join(outDir, stem+"_"+key+".txt")
		if err := fileutil.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
			return sgerrors.NewIO("write", path, err)
		}
		logging.Info("wrote language split", "lang", key, "paragraphs", len(lines), "path", path)
	}

	_, err = langid.Summarize(paras, codes).WriteTo(env.Stdout)
	return err
}

// readParagraphs returns the body paragraphs of an ODT file, or the lines
// of a plain (possibly compressed) text file.
func readParagraphs(path string) ([]langid.Paragraph, error) {
	name := archive.StripCompression(path)
	switch {
	case validation.HasExtension(name, ".odt"):
		if archive.CompressionFor(path) != archive.CompressionNone {
			return nil, sgerrors.NewUnsupported("compressed ODT", "ODT files are already ZIP containers")
		}
		doc, err := odt.Open(path)
		if err != nil {
			return nil, err
		}
		odtParas := doc.Paragraphs()
		out := make([]langid.Paragraph, len(odtParas))
		for i, p := range odtParas {
			out[i] = langid.Paragraph{Words: p.Words()}
		}
		return out, nil
	case validation.HasExtension(name, ".txt", ".sfm", ".usfm"):
		kind, err := validation.DetectFileKind(path)
		if err != nil {
			return nil, err
		}
		if kind == validation.KindZip || kind == validation.KindUnknown {
			return nil, &sgerrors.ValidationError{Field: "input", Value: path, Message: fmt.Sprintf("expected text, found %s content", kind)}
		}
		lines, err := archive.ReadLines(path)
		if err != nil {
			return nil, err
		}
		out := make([]langid.Paragraph, len(lines))
		for i, line := range lines {
			out[i] = langid.Paragraph{Words: strings.Fields(line)}
		}
		return out, nil
	}
	return nil, &sgerrors.ValidationError{Field: "input", Value: path, Message: "expected an .odt or .txt file"}
}

// FilterCmd prints the text of an ODT written in one language.
type FilterCmd struct {
	Lang  string `arg:"" help:"Language code, e.g. en_US"`
	Input string `arg:"" help:"Tagged ODT file" type:"existingfile"`
}

func (cmd *FilterCmd) Run(env *Env) error {
	lang, country, err := odt.ParseLangCode(cmd.Lang)
	if err != nil {
		return err
	}
	in, err := validation.RequireInputFile("input", cmd.Input, ".odt")
	if err != nil {
		return err
	}
	doc, err := odt.Open(in)
	if err != nil {
		return err
	}
	texts := doc.TextInLanguage(lang, country)
	if len(texts) == 0 {
		logging.Warn("no text in language", "lang", cmd.Lang, "file", in)
		return nil
	}
	_, err = fmt.Fprintln(env.Stdout, strings.Join(texts, "\n\n"))
	return err
}
