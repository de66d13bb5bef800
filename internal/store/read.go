package store

import (
	"context"
	"database/sql"
	"fmt"
)

const selectColumns = `
	SELECT seq, id, input_key, filter, deps, args, nested_paths, max_depth, rql, error_code, error_message
	FROM translations`

// Get retrieves a translation by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) Get(ctx context.Context, id string) (Translation, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+`
		WHERE id = ?
	`, id)
	return scanTranslation(row)
}

// Lookup returns the most recent successful translation for an input key.
// ok is false if there is none.
func (s *Store) Lookup(ctx context.Context, key string) (t Translation, ok bool, err error) {
	row := s.db.QueryRowContext(ctx, selectColumns+`
		WHERE input_key = ? AND error_code = ''
		ORDER BY seq DESC, id COLLATE BINARY DESC
		LIMIT 1
	`, key)

	t, err = scanTranslation(row)
	if err == sql.ErrNoRows {
		return Translation{}, false, nil
	}
	if err != nil {
		return Translation{}, false, fmt.Errorf("lookup translation: %w", err)
	}
	return t, true, nil
}

// List returns translations, most recent first. limit <= 0 returns all.
//
// Returns an empty slice (not nil) if nothing has been recorded.
func (s *Store) List(ctx context.Context, limit int) ([]Translation, error) {
	query := selectColumns + `
		ORDER BY seq DESC, id COLLATE BINARY DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query translations: %w", err)
	}
	defer rows.Close()

	translations := []Translation{}
	for rows.Next() {
		t, err := scanTranslation(rows)
		if err != nil {
			return nil, err
		}
		translations = append(translations, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate translations: %w", err)
	}

	return translations, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTranslation(row scanner) (Translation, error) {
	var (
		t        Translation
		argsJSON string
		nested   int
	)
	err := row.Scan(
		&t.Seq,
		&t.ID,
		&t.Key,
		&t.Filter,
		&t.Deps,
		&argsJSON,
		&nested,
		&t.MaxDepth,
		&t.RQL,
		&t.ErrorCode,
		&t.ErrorMessage,
	)
	if err == sql.ErrNoRows {
		return Translation{}, err
	}
	if err != nil {
		return Translation{}, fmt.Errorf("scan translation: %w", err)
	}

	t.Args, err = unmarshalArgs(argsJSON)
	if err != nil {
		return Translation{}, err
	}
	t.NestedPaths = nested != 0
	return t, nil
}
