package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/roach88/filterql/internal/value"
)

// marshalArgs converts dependency values to canonical JSON TEXT for storage.
func marshalArgs(args []value.Value) (string, error) {
	if args == nil {
		args = []value.Value{}
	}
	data, err := value.MarshalCanonical(value.Array(args))
	if err != nil {
		return "", fmt.Errorf("marshal args: %w", err)
	}
	return string(data), nil
}

// unmarshalArgs parses stored args. Numbers are decoded via json.Number so
// integers beyond 2^53 keep their digits until conversion.
func unmarshalArgs(data string) ([]value.Value, error) {
	if data == "" || data == "[]" {
		return []value.Value{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	dec.UseNumber()
	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("unmarshal args: %w", err)
	}

	args := make([]value.Value, len(raw))
	for i, r := range raw {
		v, err := value.FromGo(r)
		if err != nil {
			return nil, fmt.Errorf("unmarshal args[%d]: %w", i, err)
		}
		args[i] = v
	}
	return args, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
