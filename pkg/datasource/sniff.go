package datasource

import "github.com/gabriel-vasile/mimetype"

// Sniff detects the content type of an existing source and reports whether it
// agrees with the format taken from the file extension.
func Sniff(src Source) (string, bool, error) {
	m, err := mimetype.DetectFile(src.Path)
	if err != nil {
		return "", false, err
	}

	want := ""
	switch src.Format {
	case FormatJSON:
		want = "application/json"
	case FormatCSV:
		want = "text/plain"
	default:
		return m.String(), false, nil
	}
	for p := m; p != nil; p = p.Parent() {
		if p.Is(want) {
			return m.String(), true, nil
		}
	}
	return m.String(), false, nil
}
