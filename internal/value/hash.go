package value

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed keys.
// Version suffix enables future algorithm migration.
const (
	DomainTranslation = "filterql/translation/v1"
)

// Hash computes SHA-256 over domain, a 0x00 separator and the canonical JSON
// of obj. The separator prevents domain/data boundary ambiguity.
func Hash(domain string, obj Object) (string, error) {
	canonical, err := marshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("hash: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// TranslationKey identifies a translation request. Two requests with the same
// key always produce the same outcome, so the key doubles as a cache key.
//
// nestedPaths changes the emitted property paths and maxDepth decides whether
// a deep filter fails, so both are part of the key.
func TranslationKey(filter, deps string, args []Value, nestedPaths bool, maxDepth int) (string, error) {
	if args == nil {
		args = []Value{}
	}
	obj := Object{
		"filter":       String(filter),
		"deps":         String(deps),
		"args":         Array(args),
		"nested_paths": Bool(nestedPaths),
		"max_depth":    Number(maxDepth),
	}
	return Hash(DomainTranslation, obj)
}
