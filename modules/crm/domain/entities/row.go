package entities

// Row is a destination tuple whose Values line up with its table's column list.
type Row interface {
	Values() []any
}

// Rows converts a typed batch into the positional form the bulk writer takes.
func Rows[T Row](batch []T) [][]any {
	out := make([][]any, len(batch))
	for i, r := range batch {
		out[i] = r.Values()
	}
	return out
}
