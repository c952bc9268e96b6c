package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/FocuswithJustin/SangoParatext/core/charinfo"
	sgerrors "github.com/FocuswithJustin/SangoParatext/core/errors"
	"github.com/FocuswithJustin/SangoParatext/core/langid"
	"github.com/FocuswithJustin/SangoParatext/core/sqlite"
	"github.com/FocuswithJustin/SangoParatext/internal/dictcache"
)

// DictInfoCmd reports the word lists found for each language and, when a
// cache is configured, what it holds.
type DictInfoCmd struct {
	Languages []string `name:"lang" short:"l" help:"Language codes (overrides config)"`
	DictDir   string   `name:"dict-dir" help:"Word list directory (overrides config)" type:"path"`
}

func (cmd *DictInfoCmd) Run(env *Env) error {
	dir := env.dictDir(cmd.DictDir)
	w := env.Stdout
	fmt.Fprintf(w, "Dictionary directory: %s\n", dir)
	for _, code := range env.languages(cmd.Languages) {
		files, err := langid.WordListFiles(dir, code)
		if err != nil {
			fmt.Fprintf(w, "  %-8s missing (%v)\n", code, err)
			continue
		}
		ws, err := langid.LoadDir(dir, code)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %-8s %7d words from %d file(s)\n", code, ws.Len(), len(files))
	}

	if env.Config.Dictionary.Cache == "" {
		fmt.Fprintln(w, "Cache: disabled")
		return nil
	}
	cache, err := dictcache.OpenReadOnly(env.Config.Dictionary.Cache)
	if sgerrors.Is(err, sgerrors.ErrNotFound) {
		fmt.Fprintf(w, "Cache: %s (not built yet)\n", env.Config.Dictionary.Cache)
		return nil
	}
	if err != nil {
		return err
	}
	defer cache.Close()
	entries, err := cache.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Cache: %s (%s driver)\n", cache.Path(), sqlite.DriverType())
	for _, e := range entries {
		fmt.Fprintf(w, "  %-8s %7d words, %d file(s), %s, digest %.12s\n",
			e.Lang, e.Words, e.Files, e.Updated.Format("2006-01-02 15:04"), e.Digest)
	}
	return nil
}

// CharsCmd describes each character of its input: whether it is
// precomposed, its canonical decomposition and its Unicode name.
type CharsCmd struct {
	Text []string `arg:"" optional:"" help:"Text to describe (default: read stdin)"`
}

func (cmd *CharsCmd) Run(env *Env) error {
	var text string
	if len(cmd.Text) > 0 {
		text = strings.Join(cmd.Text, " ")
	} else {
		data, err := io.ReadAll(env.Stdin)
		if err != nil {
			return err
		}
		text = strings.TrimRight(string(data), "\r\n")
	}
	for _, info := range charinfo.Describe(text) {
		if _, err := fmt.Fprintln(env.Stdout, charinfo.Format(info)); err != nil {
			return err
		}
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (cmd *VersionCmd) Run(env *Env) error {
	fmt.Fprintf(env.Stdout, "sango version %s\n", version)
	fmt.Fprintf(env.Stdout, "  go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(env.Stdout, "  sqlite: %s (%s driver)\n", sqlite.DriverType(), sqlite.DriverName())
	return nil
}
