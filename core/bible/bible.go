// Package bible serves verse text from versioned JSON data files. Each
// translation lives in one file, book → chapter → verse → text; files load
// lazily and stay cached for the life of the process.
package bible

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"proflow/core/errors"
	"proflow/core/rtf"
	"proflow/core/scripture"
	"proflow/internal/logging"
)

// DefaultVersion is the translation used when a reference does not name one.
const DefaultVersion = "ESV"

// versionData is the on-disk shape: book → chapter → verse → text, all
// keys decimal strings as the data files ship them.
type versionData map[string]map[string]map[string]string

// Store loads and caches translation data files from one directory.
type Store struct {
	dir string

	// Default is the translation used when neither the caller nor the
	// reference names one. NewStore sets it to DefaultVersion.
	Default string

	mu       sync.Mutex
	versions map[string]versionData
}

// NewStore builds a store over a directory of <VERSION>.json files.
func NewStore(dir string) *Store {
	return &Store{dir: dir, Default: DefaultVersion, versions: make(map[string]versionData)}
}

// Verse is one verse of a passage.
type Verse struct {
	Number int
	Text   string
}

// Passage is the text of one resolved reference, verses in order.
type Passage struct {
	Reference scripture.Reference
	Version   string
	Verses    []Verse
}

// Header is the display title of the passage, e.g. "Isaiah 35:1-2 (ESV)".
func (p *Passage) Header() string {
	ref := p.Reference
	ref.Translation = p.Version
	return ref.String()
}

// Lookup resolves a reference against a translation. An empty version
// falls back to the reference's own marker, then the store default: an
// explicit request wins, but a marker like "John 3:16 KJV" beats the
// configured default.
func (s *Store) Lookup(version string, ref scripture.Reference) (*Passage, error) {
	if version == "" {
		version = ref.Translation
	}
	if version == "" {
		version = s.Default
	}
	if version == "" {
		version = DefaultVersion
	}

	data, err := s.load(version)
	if err != nil {
		return nil, err
	}

	book, ok := data[ref.Book]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "%s has no book %q", version, ref.Book)
	}
	chapter, ok := book[strconv.Itoa(ref.Chapter)]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "%s %d not in %s", ref.Book, ref.Chapter, version)
	}

	passage := &Passage{Reference: ref, Version: version}
	if ref.WholeChapter() {
		for _, num := range sortedVerseNumbers(chapter) {
			passage.Verses = append(passage.Verses, Verse{Number: num, Text: chapter[strconv.Itoa(num)]})
		}
		return passage, nil
	}

	for num := ref.VerseStart; num <= ref.VerseEnd; num++ {
		text, ok := chapter[strconv.Itoa(num)]
		if !ok {
			return nil, errors.Wrapf(errors.ErrNotFound, "%s %d:%d not in %s", ref.Book, ref.Chapter, num, version)
		}
		passage.Verses = append(passage.Verses, Verse{Number: num, Text: text})
	}
	return passage, nil
}

// load parses a translation file at most once.
func (s *Store) load(version string) (versionData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if data, ok := s.versions[version]; ok {
		return data, nil
	}

	path := filepath.Join(s.dir, version+".json")
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "no data for translation %s at %s", version, path)
		}
		return nil, errors.NewIO("read", path, err)
	}

	var data versionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &errors.ParseError{Format: "bible data", Path: path, Offset: -1,
			Message: "bad JSON", Err: err}
	}
	logging.Debug("translation loaded", "version", version, "books", len(data))
	s.versions[version] = data
	return data, nil
}

// Versions lists the translations available in the data directory.
func (s *Store) Versions() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.NewIO("read", s.dir, err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		out = append(out, e.Name()[:len(e.Name())-len(".json")])
	}
	sort.Strings(out)
	return out, nil
}

func sortedVerseNumbers(chapter map[string]string) []int {
	nums := make([]int, 0, len(chapter))
	for k := range chapter {
		n, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// MarkedText renders the passage with unicode superscript verse numbers,
// the form the text extractor and the injector both speak.
func (p *Passage) MarkedText() string {
	var b []byte
	for i, v := range p.Verses {
		if i > 0 {
			b = append(b, ' ')
		}
		b = append(b, fmt.Sprintf("%s%s", rtf.Superscript(uint(v.Number)), v.Text)...)
	}
	return string(b)
}
