package codec

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"proflow/core/errors"
	"proflow/core/presentation"
	"proflow/internal/logging"
)

// Extension is the presentation document file extension.
const Extension = ".pro"

// xzMagic is the xz stream header; documents archived with xz compression
// are read transparently.
var xzMagic = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}

// ReadFile reads and decodes a document, decompressing xz transparently
// (whether or not the path carries a .xz suffix). A flagged format version
// logs a warning and proceeds.
func ReadFile(path string) (*presentation.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	if bytes.HasPrefix(raw, xzMagic) {
		r, err := xz.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, &errors.ParseError{Format: "xz", Path: path, Offset: -1, Message: "bad stream header", Err: err}
		}
		if raw, err = io.ReadAll(r); err != nil {
			return nil, &errors.ParseError{Format: "xz", Path: path, Offset: -1, Message: "decompression failed", Err: err}
		}
	}

	doc, err := Decode(raw)
	if err != nil {
		var pe *errors.ParseError
		if errors.As(err, &pe) && pe.Path == "" {
			pe.Path = path
		}
		return nil, err
	}
	if warn := VersionError(doc); warn != nil {
		logging.Warn("unrecognized document version",
			"path", path,
			"error", warn)
	}
	return doc, nil
}

// VersionError returns the non-fatal unknown-version condition for a
// decoded document: a wrapped ErrUnknownVersion naming the version seen,
// or nil when the version was recognized. Decode never fails on it; this
// is how callers surface the warning.
func VersionError(doc *presentation.Document) error {
	if !doc.VersionFlagged {
		return nil
	}
	return errors.Wrapf(errors.ErrUnknownVersion,
		"document version %d, supported version %d", doc.Version, presentation.FormatVersion)
}

// WriteFile encodes a document and writes it atomically: the bytes land in
// a temp file in the destination directory, which is then renamed over the
// target so readers never observe a partial document.
func WriteFile(path string, doc *presentation.Document) error {
	data := Encode(doc)

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

// IsDocumentPath reports whether a filename looks like a presentation
// document, compressed or not.
func IsDocumentPath(path string) bool {
	name := strings.ToLower(path)
	return strings.HasSuffix(name, Extension) || strings.HasSuffix(name, Extension+".xz")
}
