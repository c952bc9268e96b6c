// Package dictcache keeps parsed word lists in SQLite so that large
// hunspell dictionaries are read once.
//
// Each language is keyed by a BLAKE3 digest of its source files. A digest
// that still matches serves the cached words; anything else re-reads the
// files and replaces that language's rows in one transaction.
package dictcache

import (
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/blake3"

	sgerrors "github.com/FocuswithJustin/SangoParatext/core/errors"
	"github.com/FocuswithJustin/SangoParatext/core/langid"
	"github.com/FocuswithJustin/SangoParatext/core/sqlite"
	"github.com/FocuswithJustin/SangoParatext/internal/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS sources (
	lang       TEXT PRIMARY KEY,
	digest     TEXT NOT NULL,
	files      INTEGER NOT NULL,
	words      INTEGER NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS words (
	lang TEXT NOT NULL REFERENCES sources(lang) ON DELETE CASCADE,
	word TEXT NOT NULL,
	PRIMARY KEY (lang, word)
);
`

// Cache is an open dictionary cache.
type Cache struct {
	db   *sql.DB
	path string
}

// Entry describes one cached language.
type Entry struct {
	Lang    string
	Digest  string
	Files   int
	Words   int
	Updated time.Time
}

// Open opens or creates the cache database at path.
func Open(path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize dictionary cache %s: %w", path, err)
	}
	return &Cache{db: db, path: path}, nil
}

// OpenReadOnly opens an existing cache for inspection. A cache that was
// never built is reported as a NotFoundError rather than created.
func OpenReadOnly(path string) (*Cache, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &sgerrors.NotFoundError{Resource: "dictionary cache", ID: path, Err: err}
		}
		return nil, sgerrors.NewIO("stat", path, err)
	}
	db, err := sqlite.OpenReadOnly(path)
	if err != nil {
		return nil, err
	}
	return &Cache{db: db, path: path}, nil
}

// Path returns the database file path.
func (c *Cache) Path() string { return c.path }

// Close closes the database.
func (c *Cache) Close() error { return c.db.Close() }

// Digest hashes the base name and contents of every file, in order.
func Digest(files []string) (string, error) {
	h := blake3.New()
	var size [8]byte
	for _, path := range files {
		name := filepath.Base(path)
		binary.BigEndian.PutUint64(size[:], uint64(len(name)))
		h.Write(size[:])
		h.Write([]byte(name))

		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("failed to open %s: %w", path, err)
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return "", fmt.Errorf("failed to stat %s: %w", path, err)
		}
		binary.BigEndian.PutUint64(size[:], uint64(info.Size()))
		h.Write(size[:])
		_, err = io.Copy(h, f)
		f.Close()
		if err != nil {
			return "", fmt.Errorf("failed to hash %s: %w", path, err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Load returns the word set for code built from the lists in dir. hit
// reports whether it came from the cache.
func (c *Cache) Load(dir, code string) (ws langid.WordSet, hit bool, err error) {
	files, err := langid.WordListFiles(dir, code)
	if err != nil {
		return nil, false, err
	}
	digest, err := Digest(files)
	if err != nil {
		return nil, false, err
	}

	var cached string
	err = c.db.QueryRow(`SELECT digest FROM sources WHERE lang = ?`, code).Scan(&cached)
	switch {
	case err == nil && cached == digest:
		ws, err := c.words(code)
		if err != nil {
			return nil, false, err
		}
		logging.CacheEvent("hit", code, "words", ws.Len())
		return ws, true, nil
	case err != nil && err != sql.ErrNoRows:
		return nil, false, fmt.Errorf("failed to query dictionary cache: %w", err)
	}

	logging.CacheEvent("miss", code, "files", len(files))
	ws, err = langid.LoadDir(dir, code)
	if err != nil {
		return nil, false, err
	}
	if err := c.store(code, digest, len(files), ws); err != nil {
		return nil, false, err
	}
	logging.CacheEvent("refresh", code, "words", ws.Len())
	return ws, false, nil
}

func (c *Cache) words(code string) (langid.WordSet, error) {
	rows, err := c.db.Query(`SELECT word FROM words WHERE lang = ?`, code)
	if err != nil {
		return nil, fmt.Errorf("failed to read cached words: %w", err)
	}
	defer rows.Close()

	ws := make(langid.WordSet)
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("failed to read cached words: %w", err)
		}
		ws[w] = struct{}{}
	}
	return ws, rows.Err()
}

func (c *Cache) store(code, digest string, files int, ws langid.WordSet) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin cache update: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM words WHERE lang = ?`, code); err != nil {
		return fmt.Errorf("failed to clear cached words: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM sources WHERE lang = ?`, code); err != nil {
		return fmt.Errorf("failed to clear cache entry: %w", err)
	}
	if _, err := tx.Exec(
		`INSERT INTO sources (lang, digest, files, words, updated_at) VALUES (?, ?, ?, ?, ?)`,
		code, digest, files, ws.Len(), time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO words (lang, word) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare word insert: %w", err)
	}
	defer stmt.Close()
	for w := range ws {
		if _, err := stmt.Exec(code, w); err != nil {
			return fmt.Errorf("failed to cache word %q: %w", w, err)
		}
	}
	return tx.Commit()
}

// LoadTable loads every code through the cache and builds a Table.
func (c *Cache) LoadTable(dir string, codes []string) (*langid.Table, error) {
	lexicons := make(map[string]langid.Lexicon, len(codes))
	for _, code := range codes {
		ws, _, err := c.Load(dir, code)
		if err != nil {
			return nil, err
		}
		lexicons[code] = ws
	}
	return langid.NewTable(codes, lexicons), nil
}

// Stats lists the cached languages in code order.
func (c *Cache) Stats() ([]Entry, error) {
	rows, err := c.db.Query(`SELECT lang, digest, files, words, updated_at FROM sources ORDER BY lang`)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entries: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var updated string
		if err := rows.Scan(&e.Lang, &e.Digest, &e.Files, &e.Words, &updated); err != nil {
			return nil, fmt.Errorf("failed to read cache entries: %w", err)
		}
		e.Updated, _ = time.Parse(time.RFC3339, updated)
		out = append(out, e)
	}
	return out, rows.Err()
}
