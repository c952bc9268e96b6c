package langid

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	sgerrors "github.com/FocuswithJustin/SangoParatext/core/errors"
	"github.com/FocuswithJustin/SangoParatext/internal/archive"
	"github.com/FocuswithJustin/SangoParatext/internal/logging"
)

// LoadWordList reads one entry per line in the form word[/flags...]. The
// word is the text before the first "/" and the first space. Blank lines
// and a hunspell count line at the top are skipped.
func LoadWordList(r io.Reader) (WordSet, error) {
	ws := make(WordSet)
	if err := readWordList(r, ws); err != nil {
		return nil, err
	}
	return ws, nil
}

func readWordList(r io.Reader, ws WordSet) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if first {
			first = false
			if isCount(line) {
				continue
			}
		}
		word := strings.SplitN(line, "/", 2)[0]
		fields := strings.Fields(word)
		if len(fields) == 0 {
			continue
		}
		ws.Add(fields[0])
	}
	return scanner.Err()
}

func isCount(line string) bool {
	for _, r := range line {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// WordListFiles returns, sorted, the files in dir whose name starts with
// code. Hunspell affix files are not word lists and are skipped.
func WordListFiles(dir, code string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &sgerrors.NotFoundError{Resource: "dictionary directory", ID: dir, Err: err}
		}
		return nil, sgerrors.NewIO("read", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, code) {
			continue
		}
		if strings.EqualFold(filepath.Ext(archive.StripCompression(name)), ".aff") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

// LoadDir merges every word list in dir selected by WordListFiles. A
// language with no files gets an empty set, which matches nothing.
func LoadDir(dir, code string) (WordSet, error) {
	files, err := WordListFiles(dir, code)
	if err != nil {
		return nil, err
	}
	ws := make(WordSet)
	for _, path := range files {
		if err := loadFile(path, ws); err != nil {
			return nil, err
		}
	}
	logging.DictionaryLoaded(code, ws.Len(), dir, "files", len(files))
	return ws, nil
}

func loadFile(path string, ws WordSet) error {
	r, err := archive.Open(path)
	if err != nil {
		return sgerrors.NewIO("open", path, err)
	}
	defer r.Close()
	if err := readWordList(r, ws); err != nil {
		return sgerrors.NewIO("read", path, err)
	}
	return nil
}

// LoadTable loads one WordSet per code from dir and builds a Table.
func LoadTable(dir string, codes []string) (*Table, error) {
	lexicons := make(map[string]Lexicon, len(codes))
	for _, code := range codes {
		ws, err := LoadDir(dir, code)
		if err != nil {
			return nil, err
		}
		lexicons[code] = ws
	}
	return NewTable(codes, lexicons), nil
}
