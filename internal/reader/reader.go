// Package reader loads raw statement files into an untyped table. Supported
// formats are character-separated text, XLSX workbooks and XML-flavored OFX;
// everything downstream of this package sees only models.RawTable.
package reader

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"rmoreira/extrato-csv/internal/logging"
	"rmoreira/extrato-csv/internal/models"
	"rmoreira/extrato-csv/internal/parsererror"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// Options configures statement reading.
type Options struct {
	// Delimiter is the field separator for character-separated files.
	Delimiter rune
}

// ReadStatement loads a statement file, dispatching on its lowercased
// extension. Unsupported extensions are an input-structural error.
func ReadStatement(filePath string, opts Options) (models.RawTable, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: "extension", Value: ext},
	).Info("Reading statement file")

	switch ext {
	case ".csv", ".txt":
		return readCSV(filePath, opts.Delimiter)
	case ".xlsx", ".xls":
		return readXLSX(filePath)
	case ".ofx":
		return readOFX(filePath)
	default:
		return models.RawTable{}, &parsererror.UnsupportedFormatError{FilePath: filePath, Extension: ext}
	}
}

// readCSV reads a character-separated file with a header row. Rows with a
// different field count than the header are kept as-is; the normalizer pads
// or truncates them.
func readCSV(filePath string, delimiter rune) (models.RawTable, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return models.RawTable{}, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	reader := csv.NewReader(file)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return models.RawTable{}, err
	}
	if len(records) == 0 {
		return models.RawTable{}, &parsererror.EmptyStatementError{FilePath: filePath}
	}

	table := models.RawTable{
		Headers: records[0],
		Rows:    records[1:],
	}
	log.WithField(logging.FieldCount, len(table.Rows)).Info("Successfully read statement rows")
	return table, nil
}
