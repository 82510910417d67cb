package reader

import (
	"github.com/xuri/excelize/v2"

	"rmoreira/extrato-csv/internal/logging"
	"rmoreira/extrato-csv/internal/models"
	"rmoreira/extrato-csv/internal/parsererror"
)

// readXLSX reads the first sheet of a workbook as a header row plus data
// rows. Banks that export XLSX statements put the table on the first sheet;
// no sheet selection is exposed.
func readXLSX(filePath string) (models.RawTable, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return models.RawTable{}, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("Failed to close workbook")
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return models.RawTable{}, &parsererror.EmptyStatementError{FilePath: filePath}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return models.RawTable{}, err
	}
	if len(rows) == 0 {
		return models.RawTable{}, &parsererror.EmptyStatementError{FilePath: filePath}
	}

	table := models.RawTable{
		Headers: rows[0],
		Rows:    rows[1:],
	}
	log.WithFields(
		logging.Field{Key: "sheet", Value: sheets[0]},
		logging.Field{Key: logging.FieldCount, Value: len(table.Rows)},
	).Info("Successfully read workbook rows")
	return table, nil
}
