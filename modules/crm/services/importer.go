package services

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/iota-uz/crm-import/modules/crm/domain"
	"github.com/iota-uz/crm-import/pkg/datasource"
	"github.com/iota-uz/crm-import/pkg/logging"
)

// Importer normalizes parsed records into destination rows and writes them.
type Importer interface {
	Name() string
	Import(ctx context.Context, records []datasource.Record) (Summary, error)
}

type TableResult struct {
	Table    string `json:"table"`
	Rows     int    `json:"rows"`
	Inserted int64  `json:"inserted"`
}

type Summary struct {
	Importer    string        `json:"importer"`
	Source      string        `json:"source,omitempty"`
	Records     int           `json:"records"`
	Unresolved  int           `json:"unresolved"`
	Tables      []TableResult `json:"tables"`
	TotalAmount string        `json:"total_amount,omitempty"`
	DryRun      bool          `json:"dry_run"`
}

type Options struct {
	// DryRun builds and resolves rows without writing them.
	DryRun bool
	// ParseAmounts parses numeric text into amounts instead of zeroing it.
	ParseAmounts bool
	// MatchByID reads a Customers primary key from CustomerIDField instead
	// of looking the customer up by name.
	MatchByID       bool
	CustomerIDField int
	Now             func() time.Time
}

func DefaultOptions() Options {
	return Options{Now: time.Now}
}

type base struct {
	writer domain.BulkInserter
	opts   Options
}

func newBase(writer domain.BulkInserter, opts Options) base {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return base{writer: writer, opts: opts}
}

func (b base) now() time.Time {
	return b.opts.Now()
}

func (b base) write(ctx context.Context, summary *Summary, table string, columns []string, rows [][]any) error {
	result := TableResult{Table: table, Rows: len(rows)}
	if !b.opts.DryRun {
		n, err := b.writer.Insert(ctx, table, columns, rows)
		if err != nil {
			return errors.Wrapf(err, "bulk insert %s", table)
		}
		result.Inserted = n
	}
	summary.Tables = append(summary.Tables, result)

	log := logging.FromContext(ctx).WithField("table", table)
	if b.opts.DryRun {
		log.Infof("%s %d records prepared, nothing written.", table, result.Rows)
		return nil
	}
	log.Infof("%s %d records inserted.", table, result.Inserted)
	return nil
}
