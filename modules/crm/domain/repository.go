package domain

import "context"

// CustomerResolver maps a free-form customer reference from a source row to a
// Customers primary key. found is false when nothing matches.
type CustomerResolver interface {
	Resolve(ctx context.Context, candidate string) (id int64, found bool, err error)
}

// BulkInserter writes a batch of positional rows into table in a single
// transaction and reports the number of rows the database accepted.
type BulkInserter interface {
	Insert(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)
}
