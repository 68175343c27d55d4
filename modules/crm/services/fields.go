package services

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/iota-uz/crm-import/pkg/datasource"
)

func field(rec datasource.Record, i int) (any, error) {
	v, err := rec.At(i)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return v, nil
}

func fieldText(rec datasource.Record, i int) (string, error) {
	v, err := field(rec, i)
	if err != nil {
		return "", err
	}
	return textOf(v), nil
}

func fieldNullable(rec datasource.Record, i int) (*string, error) {
	v, err := field(rec, i)
	if err != nil {
		return nil, err
	}
	return nullableText(v), nil
}

// textOf renders a source value the way it reads when interpolated into a
// name or note: a missing value becomes "None" and booleans are capitalized.
func textOf(v any) string {
	switch typed := v.(type) {
	case nil:
		return "None"
	case string:
		return typed
	case json.Number:
		return typed.String()
	case bool:
		if typed {
			return "True"
		}
		return "False"
	default:
		return jsonText(typed)
	}
}

// nullableText keeps a missing value as SQL NULL.
func nullableText(v any) *string {
	if v == nil {
		return nil
	}
	s := textOf(v)
	return &s
}

func jsonText(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return ""
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// tagsObject wraps a raw tag value as {"tag1": <value>}.
func tagsObject(v any) string {
	return `{"tag1": ` + jsonText(v) + `}`
}

// amountOrZero passes through integer values only. Text read from CSV, as
// well as fractional or boolean values, collapse to zero unless parse is set,
// in which case numeric text and fractions are parsed as decimals.
func amountOrZero(v any, parse bool) decimal.Decimal {
	switch typed := v.(type) {
	case json.Number:
		s := typed.String()
		if !parse && strings.ContainsAny(s, ".eE") {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		return d
	case string:
		if !parse {
			return decimal.Zero
		}
		return parseAmount(typed)
	default:
		return decimal.Zero
	}
}

func parseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
