package datasource

// Read parses a located source. A missing file or an unknown format yields no
// records and no error; callers proceed with an empty batch.
func Read(src Source) ([]Record, error) {
	if !src.Exists {
		return nil, nil
	}
	switch src.Format {
	case FormatCSV:
		return readCSV(src.Path)
	case FormatJSON:
		return readJSON(src.Path)
	default:
		return nil, nil
	}
}
