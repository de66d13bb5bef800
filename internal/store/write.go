package store

import (
	"context"
	"fmt"
)

// Record appends a translation and returns it with ID, Seq and Key filled
// in. An empty ID is generated; an empty Key is computed from the inputs.
//
// Uses ON CONFLICT(id) DO NOTHING for idempotency - recording the same ID
// twice returns the stored row unchanged.
func (s *Store) Record(ctx context.Context, t Translation) (Translation, error) {
	if t.ID == "" {
		t.ID = s.idGen.Generate()
	}

	key, err := t.inputKey()
	if err != nil {
		return Translation{}, fmt.Errorf("record translation: %w", err)
	}
	t.Key = key

	argsJSON, err := marshalArgs(t.Args)
	if err != nil {
		return Translation{}, fmt.Errorf("record translation: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO translations
		(id, input_key, filter, deps, args, nested_paths, max_depth, rql, error_code, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		t.ID,
		t.Key,
		t.Filter,
		t.Deps,
		argsJSON,
		boolToInt(t.NestedPaths),
		t.MaxDepth,
		t.RQL,
		t.ErrorCode,
		t.ErrorMessage,
	)
	if err != nil {
		return Translation{}, fmt.Errorf("record translation: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return Translation{}, fmt.Errorf("record translation: %w", err)
	}
	if affected == 0 {
		return s.Get(ctx, t.ID)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return Translation{}, fmt.Errorf("record translation: %w", err)
	}
	t.Seq = seq
	return t, nil
}
