package store

import (
	"github.com/roach88/filterql/internal/value"
)

// Translation is one recorded translation attempt.
type Translation struct {
	ID  string
	Seq int64 // Assigned on insert

	// Key identifies the inputs; see value.TranslationKey.
	Key string

	Filter      string
	Deps        string
	Args        []value.Value
	NestedPaths bool
	MaxDepth    int

	// RQL is set on success; ErrorCode and ErrorMessage on failure.
	RQL          string
	ErrorCode    string
	ErrorMessage string
}

// Succeeded reports whether the translation produced RQL.
func (t Translation) Succeeded() bool {
	return t.ErrorCode == ""
}

// inputKey returns t.Key, computing it from the inputs when unset.
func (t Translation) inputKey() (string, error) {
	if t.Key != "" {
		return t.Key, nil
	}
	return value.TranslationKey(t.Filter, t.Deps, t.Args, t.NestedPaths, t.MaxDepth)
}
