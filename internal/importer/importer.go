package importer

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/MrJamesThe3rd/morsel/internal/sales"
)

// Format is a source file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatOf resolves the format of a file from its extension. ok is false for unsupported files.
func FormatOf(name string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, true
	case ".xlsx":
		return FormatXLSX, true
	}

	return "", false
}

// Importer parses one source file into raw sales rows.
type Importer interface {
	Parse(source string, r io.Reader) (sales.Table, error)
}
