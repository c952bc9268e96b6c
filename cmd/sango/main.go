// Command sango bundles the tools of the Sango Bible translation project:
// paragraph language detection for ODT and text drafts, verse-marker
// transfer between paired SFM files, Paratext comment-note export, and a
// few inspection helpers.
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"

	sgerrors "github.com/FocuswithJustin/SangoParatext/core/errors"
	"github.com/FocuswithJustin/SangoParatext/core/langid"
	"github.com/FocuswithJustin/SangoParatext/internal/config"
	"github.com/FocuswithJustin/SangoParatext/internal/dictcache"
	"github.com/FocuswithJustin/SangoParatext/internal/logging"
)

const version = "0.4.0"

// CLI defines the command-line interface for sango.
var CLI struct {
	// Global flags
	Config    string `name:"config" short:"c" help:"Configuration file (YAML)" type:"path" env:"SANGO_CONFIG"`
	LogLevel  string `name:"log-level" help:"Log level: debug, info, warn, error (overrides config)"`
	LogFormat string `name:"log-format" help:"Log format: text or json (overrides config)"`

	Lang    LangGroup  `cmd:"" help:"Paragraph language detection"`
	SFM     SFMGroup   `cmd:"" name:"sfm" help:"Paratext SFM structure tools"`
	ODT     ODTGroup   `cmd:"" name:"odt" help:"OpenDocument inspection and comment export"`
	Dict    DictGroup  `cmd:"" help:"Dictionary word lists"`
	Chars   CharsCmd   `cmd:"" help:"Describe every character read from stdin"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// LangGroup contains the language detection tools.
type LangGroup struct {
	Tag    TagCmd    `cmd:"" help:"Tag each ODT paragraph with a language style"`
	Split  SplitCmd  `cmd:"" help:"Split an ODT or TXT file into one text file per language"`
	Filter FilterCmd `cmd:"" help:"Print the text of an ODT written in one language"`
}

// SFMGroup contains the SFM tools.
type SFMGroup struct {
	Harmonize HarmonizeCmd `cmd:"" help:"Copy verse markers from a base SFM file into a target"`
	Compare   CompareCmd   `cmd:"" help:"Report paragraph count differences between two SFM files"`
	Panels    PanelsCmd    `cmd:"" help:"Copy panel labels from a reference text into another"`
}

// ODTGroup contains the OpenDocument tools.
type ODTGroup struct {
	Comments CommentsCmd `cmd:"" help:"Export ODT comments as Paratext notes"`
	XML      XMLCmd      `cmd:"" name:"xml" help:"Print an ODT's content XML"`
	Explore  ExploreCmd  `cmd:"" help:"List the comments anchored in each paragraph"`
}

// DictGroup contains dictionary tools.
type DictGroup struct {
	Info DictInfoCmd `cmd:"" help:"Show word list and cache status per language"`
}

// Env is what every command runs against.
type Env struct {
	Config *config.Config
	Stdout io.Writer
	Stdin  io.Reader
}

// languages returns override when set, else the configured codes.
func (e *Env) languages(override []string) []string {
	if len(override) > 0 {
		return override
	}
	return e.Config.Languages.Codes
}

// dictDir returns override when set, else the configured directory.
func (e *Env) dictDir(override string) string {
	if override != "" {
		return override
	}
	return e.Config.Dictionary.Dir
}

// loadTable reads the word lists for codes, through the dictionary cache
// when one is configured.
func (e *Env) loadTable(dir string, codes []string) (*langid.Table, error) {
	if e.Config.Dictionary.Cache == "" {
		return langid.LoadTable(dir, codes)
	}
	cache, err := dictcache.Open(e.Config.Dictionary.Cache)
	if err != nil {
		return nil, err
	}
	defer cache.Close()
	return cache.LoadTable(dir, codes)
}

// classifier builds a Classifier over table from the configured strategy.
// The default and primary languages fall back to the first code when the
// configured ones are not in codes.
func (e *Env) classifier(table *langid.Table, codes []string) (*langid.Classifier, error) {
	strategy, err := langid.ParseStrategy(e.Config.Languages.Strategy)
	if err != nil {
		return nil, &sgerrors.ValidationError{Field: "strategy", Value: e.Config.Languages.Strategy, Message: err.Error()}
	}
	pick := func(want string) string {
		if table.Has(want) {
			return want
		}
		return codes[0]
	}
	return &langid.Classifier{
		Table:       table,
		Strategy:    strategy,
		DefaultLang: pick(e.Config.Languages.Default),
		PrimaryLang: pick(e.Config.Languages.Primary),
	}, nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("sango"),
		kong.Description("Tools for the Sango/English Paratext translation project"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	cfg, err := config.Load(CLI.Config)
	ctx.FatalIfErrorf(err)

	level, format := cfg.Log.Level, cfg.Log.Format
	if CLI.LogLevel != "" {
		level = CLI.LogLevel
	}
	if CLI.LogFormat != "" {
		format = CLI.LogFormat
	}
	logging.InitLogger(logging.ParseLevel(level), logging.ParseFormat(format))

	env := &Env{Config: cfg, Stdout: os.Stdout, Stdin: os.Stdin}
	err = ctx.Run(env)
	if err != nil {
		logging.ToolFailure(ctx.Command(), err)
		var ve *sgerrors.ValidationError
		if sgerrors.As(err, &ve) {
			ctx.PrintUsage(true)
		}
	}
	ctx.FatalIfErrorf(err)
}
