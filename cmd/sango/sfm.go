package main

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	sgerrors "github.com/FocuswithJustin/SangoParatext/core/errors"
	"github.com/FocuswithJustin/SangoParatext/core/panels"
	"github.com/FocuswithJustin/SangoParatext/core/sfm"
	"github.com/FocuswithJustin/SangoParatext/internal/archive"
	"github.com/FocuswithJustin/SangoParatext/internal/fileutil"
	"github.com/FocuswithJustin/SangoParatext/internal/logging"
	"github.com/FocuswithJustin/SangoParatext/internal/validation"
)

// projectPrefix matches the Paratext book-file prefix, e.g. "94XXA" in
// "94XXASAB.SFM".
var projectPrefix = regexp.MustCompile(`^[0-9]{2}[A-Z0-9]{3}`)

// reportName shortens a file name for report columns.
func reportName(path string) string {
	base := archive.StripCompression(filepath.Base(path))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if short := projectPrefix.ReplaceAllString(stem, ""); short != "" {
		return short
	}
	return stem
}

func (e *Env) readSFM(field, path string) (*sfm.Document, error) {
	abs, err := validation.RequireInputFile(field, path)
	if err != nil {
		return nil, err
	}
	text, err := archive.ReadText(abs)
	if err != nil {
		return nil, err
	}
	doc, err := sfm.ParseWithOptions(text, sfm.ParseOptions{ParagraphMarkers: e.Config.SFM.ParagraphMarkers})
	if err != nil {
		return nil, sgerrors.Wrapf(err, "%s", abs)
	}
	return doc, nil
}

// HarmonizeCmd copies verse markers from a base SFM file into a target.
type HarmonizeCmd struct {
	Base   string `arg:"" help:"SFM file with verse markers" type:"existingfile"`
	Target string `arg:"" help:"SFM file to receive them" type:"existingfile"`
	Out    string `short:"o" help:"Write the result here instead of stdout" type:"path"`
}

func (cmd *HarmonizeCmd) Run(env *Env) error {
	logging.ToolRun("sfm harmonize", []string{cmd.Base, cmd.Target}, "out", cmd.Out)
	base, err := env.readSFM("base", cmd.Base)
	if err != nil {
		return err
	}
	target, err := env.readSFM("target", cmd.Target)
	if err != nil {
		return err
	}

	lines, err := sfm.Harmonize(base, target)
	if err != nil {
		var mm *sfm.MismatchError
		if sgerrors.As(err, &mm) {
			fmt.Fprint(env.Stdout, mm.Report(reportName(cmd.Base), reportName(cmd.Target)))
		}
		return err
	}

	text := strings.Join(lines, "\n") + "\n"
	if cmd.Out == "" {
		_, err = fmt.Fprint(env.Stdout, text)
		return err
	}
	if err := fileutil.WriteFile(cmd.Out, []byte(text), 0o644); err != nil {
		return sgerrors.NewIO("write", cmd.Out, err)
	}
	return nil
}

// CompareCmd prints per-chapter paragraph differences and totals.
type CompareCmd struct {
	Base   string `arg:"" help:"First SFM file" type:"existingfile"`
	Target string `arg:"" help:"Second SFM file" type:"existingfile"`
}

func (cmd *CompareCmd) Run(env *Env) error {
	base, err := env.readSFM("base", cmd.Base)
	if err != nil {
		return err
	}
	target, err := env.readSFM("target", cmd.Target)
	if err != nil {
		return err
	}

	report := &sfm.MismatchError{Chapters: sfm.Compare(base, target), Totals: sfm.CompareTotals(base, target)}
	fmt.Fprint(env.Stdout, report.Report(reportName(cmd.Base), reportName(cmd.Target)))
	if len(report.Chapters) > 0 {
		return report
	}
	return nil
}

// PanelsCmd copies panel labels from a reference text into another.
type PanelsCmd struct {
	Reference string `arg:"" help:"Text with page and Kapa lines" type:"existingfile"`
	Input     string `arg:"" help:"Text with page lines only" type:"existingfile"`
	Out       string `short:"o" help:"Write the result here instead of stdout" type:"path"`
}

func (cmd *PanelsCmd) Run(env *Env) error {
	refPath, err := validation.RequireInputFile("reference", cmd.Reference)
	if err != nil {
		return err
	}
	inPath, err := validation.RequireInputFile("input", cmd.Input)
	if err != nil {
		return err
	}
	refLines, err := archive.ReadLines(refPath)
	if err != nil {
		return err
	}
	pages, err := panels.Index(refLines)
	if err != nil {
		return err
	}
	outLines, err := archive.ReadLines(inPath)
	if err != nil {
		return err
	}
	logging.Debug("indexed reference pages", "pages", pages.Len(), "reference", refPath)

	text := strings.Join(panels.Insert(pages, outLines), "\n") + "\n"
	if cmd.Out == "" {
		_, err = fmt.Fprint(env.Stdout, text)
		return err
	}
	if err := fileutil.WriteFile(cmd.Out, []byte(text), 0o644); err != nil {
		return sgerrors.NewIO("write", cmd.Out, err)
	}
	return nil
}
