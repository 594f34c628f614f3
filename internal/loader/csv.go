package loader

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"
)

// readCSV reads the whole file and splits off the header row. The table
// is tens of rows, so there is nothing to stream.
func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "loader: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // length is validated per cell later

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, eris.Wrap(err, "loader: read csv")
	}
	if len(records) == 0 {
		return nil, nil, eris.Wrap(ErrSchema, "loader: empty file")
	}

	return records[0], records[1:], nil
}
