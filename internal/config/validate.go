package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/SangoParatext/core/langid"
	"github.com/FocuswithJustin/SangoParatext/core/odt"
)

// Validate checks the loaded configuration and fills derived fields. Load
// calls it automatically.
func (c *Config) Validate() error {
	if err := c.Languages.validate(); err != nil {
		return fmt.Errorf("languages: %w", err)
	}
	if len(c.SFM.ParagraphMarkers) == 0 {
		return fmt.Errorf("sfm: paragraph_markers must not be empty")
	}
	if c.Notes.Book == "" {
		return fmt.Errorf("notes: book must not be empty")
	}

	remap, err := ParseChapterRemap(c.Notes.ChapterRemapRaw)
	if err != nil {
		return fmt.Errorf("notes: chapter_remap: %w", err)
	}
	c.Notes.ChapterRemap = remap

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log: unknown level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log: unknown format %q", c.Log.Format)
	}
	return nil
}

func (l *LanguagesConfig) validate() error {
	if len(l.Codes) == 0 {
		return fmt.Errorf("codes must not be empty")
	}
	for i, code := range l.Codes {
		l.Codes[i] = strings.TrimSpace(code)
		if _, _, err := odt.ParseLangCode(l.Codes[i]); err != nil {
			return err
		}
	}
	if !slices.Contains(l.Codes, l.Default) {
		return fmt.Errorf("default language %q is not one of %v", l.Default, l.Codes)
	}
	if !slices.Contains(l.Codes, l.Primary) {
		return fmt.Errorf("primary language %q is not one of %v", l.Primary, l.Codes)
	}
	if _, err := langid.ParseStrategy(l.Strategy); err != nil {
		return err
	}
	return nil
}

// ParseChapterRemap parses "from:to" pairs separated by commas, e.g.
// "317:319,748:749". An empty string or "none" means no remapping.
func ParseChapterRemap(raw string) (map[int]int, error) {
	remap := make(map[int]int)
	if strings.EqualFold(strings.TrimSpace(raw), "none") {
		return remap, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		from, to, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("%q is not from:to", pair)
		}
		f, err := strconv.Atoi(strings.TrimSpace(from))
		if err != nil {
			return nil, fmt.Errorf("%q: invalid page number", pair)
		}
		t, err := strconv.Atoi(strings.TrimSpace(to))
		if err != nil {
			return nil, fmt.Errorf("%q: invalid chapter number", pair)
		}
		remap[f] = t
	}
	return remap, nil
}
