package datasource

import "fmt"

type recordKind int

const (
	kindPositional recordKind = iota
	kindObject
	kindScalar
)

// Record is one parsed input row: a CSV row or JSON array (positional access)
// or a JSON object (keyed access).
type Record struct {
	// Line is the 1-based CSV line or JSON array element number.
	Line int

	kind   recordKind
	fields []any
	object map[string]any
}

func NewPositionalRecord(line int, fields ...any) Record {
	return Record{Line: line, kind: kindPositional, fields: fields}
}

func NewObjectRecord(line int, object map[string]any) Record {
	return Record{Line: line, kind: kindObject, object: object}
}

func newCSVRecord(line int, row []string) Record {
	fields := make([]any, len(row))
	for i, v := range row {
		fields[i] = v
	}
	return NewPositionalRecord(line, fields...)
}

func (r Record) IsObject() bool { return r.kind == kindObject }

func (r Record) Len() int {
	switch r.kind {
	case kindPositional:
		return len(r.fields)
	case kindObject:
		return len(r.object)
	default:
		return 0
	}
}

// At returns the value at a zero-based position. Reading past the end of the
// record, or positionally from an object or scalar, is an error.
func (r Record) At(i int) (any, error) {
	if r.kind != kindPositional {
		return nil, fmt.Errorf("record %d: positional field %d requested from a non-array record", r.Line, i)
	}
	if i < 0 || i >= len(r.fields) {
		return nil, fmt.Errorf("record %d: field index %d out of range (record has %d fields)", r.Line, i, len(r.fields))
	}
	return r.fields[i], nil
}

// Get returns the value for key, or nil when the key is missing.
func (r Record) Get(key string) (any, error) {
	if r.kind != kindObject {
		return nil, fmt.Errorf("record %d: key %q requested from a non-object record", r.Line, key)
	}
	return r.object[key], nil
}
