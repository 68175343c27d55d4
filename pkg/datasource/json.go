package datasource

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// readJSON expects a top-level array. Numbers are kept as json.Number so callers
// can tell integers from floats.
func readJSON(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	dec := json.NewDecoder(stripUTF8BOM(bufio.NewReader(f)))
	dec.UseNumber()

	var items []any
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	records := make([]Record, 0, len(items))
	for i, item := range items {
		line := i + 1
		switch typed := item.(type) {
		case map[string]any:
			records = append(records, NewObjectRecord(line, typed))
		case []any:
			records = append(records, NewPositionalRecord(line, typed...))
		default:
			records = append(records, Record{Line: line, kind: kindScalar})
		}
	}
	return records, nil
}
