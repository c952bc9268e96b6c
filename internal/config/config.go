// Package config holds the settings shared by every sango tool.
package config

// Config is the root configuration.
type Config struct {
	Languages  LanguagesConfig  `yaml:"languages"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	SFM        SFMConfig        `yaml:"sfm"`
	Notes      NotesConfig      `yaml:"notes"`
	Log        LogConfig        `yaml:"log"`
}

// LanguagesConfig lists the languages a document may be written in. Codes
// are ordered: ties between languages go to the earlier one.
type LanguagesConfig struct {
	Codes    []string `yaml:"codes"    env:"SANGO_LANGUAGES"        env-default:"en_US,fr_FR,sg_CF"`
	Default  string   `yaml:"default"  env:"SANGO_DEFAULT_LANGUAGE" env-default:"en_US"`
	Primary  string   `yaml:"primary"  env:"SANGO_PRIMARY_LANGUAGE" env-default:"en_US"`
	Strategy string   `yaml:"strategy" env:"SANGO_STRATEGY"         env-default:"majority"`
}

// DictionaryConfig locates the word lists. An empty Cache disables the
// SQLite dictionary cache.
type DictionaryConfig struct {
	Dir   string `yaml:"dir"   env:"SANGO_DICT_DIR"   env-default:"dict"`
	Cache string `yaml:"cache" env:"SANGO_DICT_CACHE"`
}

// SFMConfig controls how SFM text is split into paragraphs.
type SFMConfig struct {
	ParagraphMarkers []string `yaml:"paragraph_markers" env:"SANGO_PARAGRAPH_MARKERS" env-default:"\\p,\\id,\\ip"`
}

// NotesConfig controls comment-note export.
type NotesConfig struct {
	Book            string `yaml:"book"          env:"SANGO_NOTES_BOOK"          env-default:"XXA"`
	Language        string `yaml:"language"      env:"SANGO_NOTES_LANGUAGE"      env-default:"sg"`
	ChapterRemapRaw string `yaml:"chapter_remap" env:"SANGO_NOTES_CHAPTER_REMAP" env-default:"317:319,318:320,748:749"`

	// ChapterRemap is parsed from ChapterRemapRaw by Validate.
	ChapterRemap map[int]int `yaml:"-" env:"-"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"SANGO_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"SANGO_LOG_FORMAT" env-default:"text"`
}
