// Package playlist bundles an ordered set of presentation documents into a
// single archive for hand-off: a zip whose manifest records entry order,
// names, and content checksums so the receiving side can verify the copy.
package playlist

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/zeebo/blake3"

	"proflow/core/codec"
	"proflow/core/errors"
	"proflow/core/presentation"
	"proflow/internal/logging"
)

// Extension is the playlist bundle file extension.
const Extension = ".propl"

// ManifestName is the manifest entry inside the bundle.
const ManifestName = "manifest.json"

// writeAttempts bounds retries of the final write when the filesystem
// reports a transient condition.
const writeAttempts = 3

// Entry is one document in a playlist, either an in-memory tree or raw
// container bytes read from disk. Exactly one of Document/Raw is set.
type Entry struct {
	Name     string
	Document *presentation.Document
	Raw      []byte
}

// bytes returns the container bytes for the entry.
func (e Entry) bytes() []byte {
	if e.Document != nil {
		return codec.Encode(e.Document)
	}
	return e.Raw
}

// filename is the entry's name inside the archive.
func (e Entry) filename(index int) string {
	return fmt.Sprintf("%03d_%s%s", index, e.Name, codec.Extension)
}

// Manifest describes bundle contents, in playlist order.
type Manifest struct {
	Name    string          `json:"name"`
	Created time.Time       `json:"created"`
	Entries []ManifestEntry `json:"entries"`
}

// ManifestEntry is one document's record in the manifest.
type ManifestEntry struct {
	Name     string `json:"name"`
	Filename string `json:"filename"`
	// Checksum is the BLAKE3 hash of the container bytes, hex encoded.
	Checksum string `json:"checksum"`
	Size     int    `json:"size"`
}

// Checksum computes the manifest checksum of container bytes.
func Checksum(data []byte) string {
	sum := blake3.Sum256(data)
	return fmt.Sprintf("%x", sum)
}

// Bundle assembles the archive bytes for a named playlist.
func Bundle(name string, entries []Entry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, errors.Wrap(errors.ErrInvalidInput, "empty playlist")
	}

	manifest := Manifest{
		Name:    name,
		Created: time.Now().UTC(),
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for i, entry := range entries {
		if entry.Name == "" {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "entry %d has no name", i)
		}
		data := entry.bytes()
		if len(data) == 0 {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "entry %q has no content", entry.Name)
		}

		filename := entry.filename(i)
		w, err := zw.Create(filename)
		if err != nil {
			return nil, errors.NewIO("add archive entry", filename, err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, errors.NewIO("write archive entry", filename, err)
		}

		manifest.Entries = append(manifest.Entries, ManifestEntry{
			Name:     entry.Name,
			Filename: filename,
			Checksum: Checksum(data),
			Size:     len(data),
		})
	}

	mw, err := zw.Create(ManifestName)
	if err != nil {
		return nil, errors.NewIO("add archive entry", ManifestName, err)
	}
	enc := json.NewEncoder(mw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(manifest); err != nil {
		return nil, errors.NewIO("write", ManifestName, err)
	}
	if err := zw.Close(); err != nil {
		return nil, errors.NewIO("finalize archive for", name, err)
	}
	return buf.Bytes(), nil
}

// Write bundles the playlist and lands it at path atomically: the bytes go
// to a temp file in the destination directory, then a rename. Transient
// filesystem errors retry up to writeAttempts times.
func Write(path, name string, entries []Entry) error {
	data, err := Bundle(name, entries)
	if err != nil {
		return err
	}

	var last error
	for attempt := 1; attempt <= writeAttempts; attempt++ {
		last = writeAtomic(path, data)
		if last == nil {
			logging.Info("playlist bundled",
				"path", path,
				"entries", len(entries),
				"bytes", len(data))
			return nil
		}
		if !isTransient(last) {
			return last
		}
		logging.Warn("playlist write failed, retrying",
			"path", path,
			"attempt", attempt,
			"error", last)
		time.Sleep(time.Duration(attempt) * 50 * time.Millisecond)
	}
	return last
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return errors.NewIO("create temp file in", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.NewIO("write", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewIO("close", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.NewIO("rename", path, err)
	}
	return nil
}

// isTransient reports whether a write failure is worth retrying.
func isTransient(err error) bool {
	for _, code := range []error{syscall.EAGAIN, syscall.EBUSY, syscall.EINTR, syscall.ENOSPC} {
		if errors.Is(err, code) {
			return true
		}
	}
	return false
}

// Read opens a bundle and returns its manifest plus the container bytes of
// each entry, keyed by archive filename. Checksums are verified.
func Read(path string) (*Manifest, map[string][]byte, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, errors.NewIO("open", path, err)
	}
	defer zr.Close()

	var manifest *Manifest
	contents := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, nil, errors.NewIO("read archive entry", f.Name, err)
		}
		var buf bytes.Buffer
		_, err = buf.ReadFrom(rc)
		rc.Close()
		if err != nil {
			return nil, nil, errors.NewIO("read archive entry", f.Name, err)
		}
		if f.Name == ManifestName {
			manifest = &Manifest{}
			if err := json.Unmarshal(buf.Bytes(), manifest); err != nil {
				return nil, nil, &errors.ParseError{Format: "playlist", Path: path, Offset: -1, Message: "bad manifest", Err: err}
			}
			continue
		}
		contents[f.Name] = buf.Bytes()
	}
	if manifest == nil {
		return nil, nil, &errors.ParseError{Format: "playlist", Path: path, Offset: -1, Message: "missing " + ManifestName}
	}

	for _, me := range manifest.Entries {
		data, ok := contents[me.Filename]
		if !ok {
			return nil, nil, &errors.ParseError{Format: "playlist", Path: path, Offset: -1,
				Message: fmt.Sprintf("manifest names %s but the archive lacks it", me.Filename)}
		}
		if got := Checksum(data); got != me.Checksum {
			return nil, nil, &errors.ParseError{Format: "playlist", Path: path, Offset: -1,
				Message: fmt.Sprintf("checksum mismatch on %s", me.Filename)}
		}
	}
	return manifest, contents, nil
}
