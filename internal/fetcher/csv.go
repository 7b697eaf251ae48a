package fetcher

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"
)

// WriteCSV writes a header row followed by data rows to a UTF-8,
// comma-separated file, creating or truncating it.
func WriteCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "csv: create file")
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)

	if len(header) > 0 {
		if err := w.Write(header); err != nil {
			return eris.Wrap(err, "csv: write header")
		}
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return eris.Wrap(err, "csv: write row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "csv: flush")
	}
	return nil
}

// ReadCSV reads every row of a comma-separated file, header included.
// Rows may have variable field counts.
func ReadCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "csv: open file")
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // allow variable fields

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, eris.Wrap(err, "csv: read row")
		}
		rows = append(rows, record)
	}
}

// WriteColumn writes a single column of values, one per line, with no
// header. Used for the raw extracted phone lists.
func WriteColumn(path string, values []string) error {
	rows := make([][]string, len(values))
	for i, v := range values {
		rows[i] = []string{v}
	}
	return WriteCSV(path, nil, rows)
}
