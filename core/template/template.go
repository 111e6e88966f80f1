// Package template locates, parses, and caches the template skeleton
// documents that generated presentations are cloned from. A template is an
// ordinary document whose slides carry the styling; generation replaces
// only their text.
package template

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"

	"proflow/core/codec"
	"proflow/core/errors"
	"proflow/core/presentation"
	"proflow/internal/logging"
)

// Well-known template categories.
const (
	CategoryScripture = "scripture"
	CategorySong      = "song"
	CategoryInfo      = "info"
)

// Filename returns the canonical template filename for a category.
func Filename(category string) string {
	return fmt.Sprintf("__template_%s__.pro", category)
}

// legacyFilename is the older naming scheme, still accepted with a warning.
func legacyFilename(category string) string {
	return fmt.Sprintf("__template__%s.pro", category)
}

// Cache parses each template category at most once per process and serves
// the parsed document to every caller. Concurrent first loads of the same
// category collapse into a single parse.
type Cache struct {
	paths []string

	group singleflight.Group

	mu   sync.RWMutex
	docs map[string]*presentation.Document
}

// NewCache builds a cache searching the given directories in order.
func NewCache(searchPaths ...string) *Cache {
	return &Cache{
		paths: searchPaths,
		docs:  make(map[string]*presentation.Document),
	}
}

// Load returns the parsed template document for a category. The returned
// document is shared across callers and must not be mutated; use Slides
// for clones safe to edit.
func (c *Cache) Load(category string) (*presentation.Document, error) {
	c.mu.RLock()
	doc, ok := c.docs[category]
	c.mu.RUnlock()
	if ok {
		return doc, nil
	}

	v, err, _ := c.group.Do(category, func() (interface{}, error) {
		c.mu.RLock()
		doc, ok := c.docs[category]
		c.mu.RUnlock()
		if ok {
			return doc, nil
		}

		path, err := c.locate(category)
		if err != nil {
			return nil, err
		}
		doc, err = codec.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "loading %s template", category)
		}
		logging.Debug("template loaded", "category", category, "path", path, "cues", len(doc.Cues))

		c.mu.Lock()
		c.docs[category] = doc
		c.mu.Unlock()
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*presentation.Document), nil
}

// locate finds the template file for a category: the canonical filename in
// each search directory, then the legacy filename, which logs a warning
// pointing at the rename.
func (c *Cache) locate(category string) (string, error) {
	canonical := Filename(category)
	legacy := legacyFilename(category)

	for _, dir := range c.paths {
		path := filepath.Join(dir, canonical)
		if fileExists(path) {
			return path, nil
		}
	}
	for _, dir := range c.paths {
		path := filepath.Join(dir, legacy)
		if fileExists(path) {
			logging.Warn("template uses a legacy filename",
				"category", category,
				"path", path,
				"rename_to", canonical)
			return path, nil
		}
	}

	return "", &errors.TemplateNotFoundError{
		Category:    category,
		Filename:    canonical,
		SearchPaths: c.paths,
	}
}

// Slides returns deep clones of the template's presentation slides, in cue
// order, safe for the caller to rewrite.
func (c *Cache) Slides(category string) ([]*presentation.PresentationSlide, error) {
	doc, err := c.Load(category)
	if err != nil {
		return nil, err
	}
	var out []*presentation.PresentationSlide
	for _, cue := range doc.Cues {
		for _, act := range cue.Actions {
			if act.Slide != nil {
				out = append(out, presentation.ClonePresentationSlide(act.Slide))
			}
		}
	}
	if len(out) == 0 {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "%s template has no presentation slides", category)
	}
	return out, nil
}

// Reload drops every cached template so the next Load reparses from disk.
func (c *Cache) Reload() {
	c.mu.Lock()
	c.docs = make(map[string]*presentation.Document)
	c.mu.Unlock()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
