package content

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/eringen/homepage/negotiate"
)

// Store wraps the SQLite file that carries an extracted manifest from the
// build step to the server. The build writes it once; the server reads it
// once at startup.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(1)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS records (
    kind TEXT NOT NULL,
    slug TEXT NOT NULL,
    position INTEGER NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    date TEXT NOT NULL,
    source_date TEXT NOT NULL,
    tags TEXT NOT NULL,
    body TEXT NOT NULL,
    html TEXT NOT NULL,
    PRIMARY KEY (kind, slug)
);
CREATE TABLE IF NOT EXISTS paths (
    path TEXT PRIMARY KEY
);
`)
	return err
}

// Save replaces the stored manifest and negotiable path set in a single
// transaction, so readers never observe a partial artifact.
func (s *Store) Save(m *Manifest, paths negotiate.Paths) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM records`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM paths`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO records (kind, slug, position, title, description, date, source_date, tags, body, html) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, group := range [][]Record{m.posts, m.pages} {
		for i, r := range group {
			tags, err := JoinTags(r.Tags)
			if err != nil {
				return fmt.Errorf("content: save %s/%s: %w", r.Kind, r.Slug, err)
			}
			if _, err := stmt.Exec(string(r.Kind), r.Slug, i, r.Title, r.Description, r.Date, r.SourceDate, tags, r.Body, r.HTML); err != nil {
				return err
			}
		}
	}

	for p := range paths {
		if _, err := tx.Exec(`INSERT INTO paths (path) VALUES (?)`, p); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Load reads the manifest and negotiable path set back.
func (s *Store) Load() (*Manifest, negotiate.Paths, error) {
	posts, err := s.listRecords(KindPost)
	if err != nil {
		return nil, nil, err
	}
	pages, err := s.listRecords(KindPage)
	if err != nil {
		return nil, nil, err
	}
	paths, err := s.listPaths()
	if err != nil {
		return nil, nil, err
	}
	return NewManifest(posts, pages), paths, nil
}

func (s *Store) listRecords(kind Kind) ([]Record, error) {
	rows, err := s.db.Query(`SELECT slug, title, description, date, source_date, tags, body, html FROM records WHERE kind = ? ORDER BY position`, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var slug, title, description, date, sourceDate, tags, body, html string
		if err := rows.Scan(&slug, &title, &description, &date, &sourceDate, &tags, &body, &html); err != nil {
			return nil, err
		}
		out = append(out, Record{
			Kind:        kind,
			Slug:        slug,
			Title:       title,
			Description: description,
			Date:        date,
			SourceDate:  sourceDate,
			Tags:        ParseTags(tags),
			Body:        body,
			HTML:        html,
		})
	}
	return out, rows.Err()
}

func (s *Store) listPaths() (negotiate.Paths, error) {
	rows, err := s.db.Query(`SELECT path FROM paths`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	paths := negotiate.Paths{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths[p] = struct{}{}
	}
	return paths, rows.Err()
}

// JoinTags encodes tags as a comma-delimited string (",go,web,"), keeping
// their order and case. Empty tags and tags containing a comma are rejected.
func JoinTags(tags []string) (string, error) {
	for _, t := range tags {
		if t == "" || strings.Contains(t, ",") {
			return "", fmt.Errorf("tag %q cannot be encoded", t)
		}
	}
	return "," + strings.Join(tags, ",") + ",", nil
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
// The empty encoding yields an empty, non-nil slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return []string{}
	}
	return strings.Split(tagString, ",")
}
