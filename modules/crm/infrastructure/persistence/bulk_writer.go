package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/huandu/go-sqlbuilder"

	"github.com/iota-uz/crm-import/modules/crm/domain"
	"github.com/iota-uz/crm-import/pkg/composables"
)

// MySQL caps a prepared statement at 65535 placeholders.
const maxPlaceholders = 65535

type BulkWriter struct{}

func NewBulkWriter() domain.BulkInserter {
	return &BulkWriter{}
}

func (w *BulkWriter) Insert(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if len(columns) == 0 {
		return 0, errors.Errorf("insert into %s: no columns", table)
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return 0, errors.Errorf("insert into %s: row %d has %d values, want %d", table, i, len(row), len(columns))
		}
	}

	var affected int64
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		tx, err := composables.UseTx(txCtx)
		if err != nil {
			return errors.Wrap(err, "failed to get transaction")
		}
		for _, chunk := range chunkRows(rows, len(columns)) {
			query, args := buildInsert(table, columns, chunk)
			res, err := tx.ExecContext(txCtx, query, args...)
			if err != nil {
				return errors.Wrapf(err, "insert into %s", table)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return errors.Wrapf(err, "rows affected for %s", table)
			}
			affected += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func buildInsert(table string, columns []string, rows [][]any) (string, []any) {
	ib := sqlbuilder.MySQL.NewInsertBuilder()
	ib.InsertInto(table)
	ib.Cols(columns...)
	for _, row := range rows {
		ib.Values(row...)
	}
	return ib.Build()
}

func chunkRows(rows [][]any, width int) [][][]any {
	size := maxPlaceholders / width
	if size < 1 {
		size = 1
	}
	chunks := make([][][]any, 0, len(rows)/size+1)
	for start := 0; start < len(rows); start += size {
		end := min(start+size, len(rows))
		chunks = append(chunks, rows[start:end])
	}
	return chunks
}
