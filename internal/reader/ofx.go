package reader

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/xmlpath.v2"

	"rmoreira/extrato-csv/internal/logging"
	"rmoreira/extrato-csv/internal/models"
	"rmoreira/extrato-csv/internal/parsererror"
)

// OFX 2.x transaction fields, relative to each STMTTRN node.
var (
	ofxTransactionPath = xmlpath.MustCompile("//STMTTRN")
	ofxDatePath        = xmlpath.MustCompile("DTPOSTED")
	ofxAmountPath      = xmlpath.MustCompile("TRNAMT")
	ofxMemoPath        = xmlpath.MustCompile("MEMO")
	ofxNamePath        = xmlpath.MustCompile("NAME")
)

// readOFX reads an XML-flavored OFX 2.x file into the canonical table shape.
// Legacy SGML OFX 1.x is not XML and is rejected by the parse step.
func readOFX(filePath string) (models.RawTable, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return models.RawTable{}, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	root, err := xmlpath.Parse(file)
	if err != nil {
		return models.RawTable{}, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	table := models.RawTable{Headers: []string{"data", "descricao", "valor"}}

	iter := ofxTransactionPath.Iter(root)
	for iter.Next() {
		node := iter.Node()

		date, _ := ofxDatePath.String(node)
		amount, _ := ofxAmountPath.String(node)
		description, ok := ofxMemoPath.String(node)
		if !ok || description == "" {
			description, _ = ofxNamePath.String(node)
		}

		table.Rows = append(table.Rows, []string{
			formatOFXDate(date),
			description,
			amount,
		})
	}

	if table.IsEmpty() {
		return models.RawTable{}, &parsererror.EmptyStatementError{FilePath: filePath}
	}

	log.WithField(logging.FieldCount, len(table.Rows)).Info("Successfully read OFX transactions")
	return table, nil
}

// formatOFXDate converts an OFX timestamp (YYYYMMDD, optionally followed by a
// time and timezone suffix) to YYYY-MM-DD. Unrecognized values pass through
// unchanged; dates are carried as text throughout the pipeline.
func formatOFXDate(raw string) string {
	if len(raw) < 8 {
		return raw
	}
	parsed, err := time.Parse("20060102", raw[:8])
	if err != nil {
		return raw
	}
	return parsed.Format("2006-01-02")
}
