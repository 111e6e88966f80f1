// Package library maintains a SQLite index over a directory of
// presentation documents, answering name lookups without rescanning the
// filesystem each time.
package library

import (
	"context"
	"database/sql"
	"io/fs"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"proflow/core/codec"
	"proflow/core/errors"
	"proflow/internal/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id       INTEGER PRIMARY KEY,
	name     TEXT NOT NULL,
	norm     TEXT NOT NULL,
	path     TEXT NOT NULL UNIQUE,
	mtime    INTEGER NOT NULL,
	size     INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_norm ON documents(norm);
`

// Index is the document index over one library directory.
type Index struct {
	db  *sql.DB
	dir string
}

// Open opens (creating if needed) the index database at dbPath for the
// library rooted at dir.
func Open(dbPath, dir string) (*Index, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewIO("open", dbPath, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "initializing library index schema")
	}
	return &Index{db: db, dir: dir}, nil
}

// Close releases the database handle.
func (x *Index) Close() error { return x.db.Close() }

// Document is one indexed library entry.
type Document struct {
	Name  string
	Path  string
	MTime int64
	Size  int64
}

// Rebuild rescans the library directory and replaces the index contents.
// Returns the number of documents indexed.
func (x *Index) Rebuild(ctx context.Context) (int, error) {
	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "starting index rebuild")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return 0, errors.Wrap(err, "clearing index")
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO documents (name, norm, path, mtime, size) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, errors.Wrap(err, "preparing index insert")
	}
	defer stmt.Close()

	count := 0
	walkErr := filepath.WalkDir(x.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !codec.IsDocumentPath(path) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		name := documentName(path)
		if _, err := stmt.ExecContext(ctx, name, normalizeName(name), path,
			info.ModTime().Unix(), info.Size()); err != nil {
			return err
		}
		count++
		return nil
	})
	if walkErr != nil {
		return 0, errors.NewIO("scan", x.dir, walkErr)
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "committing index rebuild")
	}
	logging.Info("library indexed", "dir", x.dir, "documents", count)
	return count, nil
}

// Search returns indexed documents whose normalized name contains the
// normalized query, name order.
func (x *Index) Search(ctx context.Context, query string) ([]Document, error) {
	rows, err := x.db.QueryContext(ctx,
		`SELECT name, path, mtime, size FROM documents WHERE norm LIKE ? ORDER BY name`,
		"%"+normalizeName(query)+"%")
	if err != nil {
		return nil, errors.Wrap(err, "querying library index")
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// Candidates returns documents whose normalized name exactly matches the
// given name, the lookup generation uses to find an existing presentation.
func (x *Index) Candidates(ctx context.Context, name string) ([]Document, error) {
	rows, err := x.db.QueryContext(ctx,
		`SELECT name, path, mtime, size FROM documents WHERE norm = ? ORDER BY mtime DESC`,
		normalizeName(name))
	if err != nil {
		return nil, errors.Wrap(err, "querying library index")
	}
	defer rows.Close()
	return scanDocuments(rows)
}

func scanDocuments(rows *sql.Rows) ([]Document, error) {
	var out []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.Name, &d.Path, &d.MTime, &d.Size); err != nil {
			return nil, errors.Wrap(err, "scanning library row")
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// documentName is the display name of a library file: the base name with
// container extensions stripped.
func documentName(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, ".xz")
	name = strings.TrimSuffix(name, codec.Extension)
	return name
}

// normalizeName folds case and punctuation so "Amazing Grace!" and
// "amazing-grace" collide.
func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}
