package main

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/iota-uz/crm-import/modules/crm/services"
)

type importSummary struct {
	Status string `json:"status"`
	RunID  string `json:"run_id"`
	services.Summary
}

func writeJSONLine(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return withCode(exitOther, errors.Wrap(err, "json encode"))
	}
	return nil
}
