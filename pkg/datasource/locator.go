package datasource

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultDir is the directory, relative to the working directory, where input files are expected.
const DefaultDir = "data_source"

type Format string

const (
	FormatUnknown Format = ""
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
)

// Source is a located input file. A source that does not exist or has an
// unknown format reads as an empty record set.
type Source struct {
	Name   string
	Path   string
	Format Format
	Exists bool
}

// Locate resolves filename under baseDir/dataDir. An absolute dataDir is used as is.
// The format is the text after the last dot, compared case-sensitively.
func Locate(baseDir, dataDir, filename string) Source {
	name := strings.TrimSpace(filename)
	if dataDir == "" {
		dataDir = DefaultDir
	}
	dir := dataDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(baseDir, dataDir)
	}

	src := Source{
		Name:   name,
		Path:   filepath.Join(dir, name),
		Format: formatOf(name),
	}
	if name == "" {
		return src
	}
	if _, err := os.Stat(src.Path); err == nil {
		src.Exists = true
	}
	return src
}

// LocateFromWorkingDir is Locate relative to the process working directory.
func LocateFromWorkingDir(dataDir, filename string) (Source, error) {
	wd, err := os.Getwd()
	if err != nil {
		return Source{}, err
	}
	return Locate(wd, dataDir, filename), nil
}

func formatOf(name string) Format {
	ext := name
	if i := strings.LastIndex(name, "."); i >= 0 {
		ext = name[i+1:]
	}
	switch ext {
	case "csv":
		return FormatCSV
	case "json":
		return FormatJSON
	default:
		return FormatUnknown
	}
}
