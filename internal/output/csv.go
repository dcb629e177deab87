package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/urlup/urlup"
)

// Header is the column layout of the tabular output file.
var Header = []string{"original", "final", "status", "error"}

// WriteCSV writes results as comma-separated rows preceded by Header. Fields
// containing commas or quotes are quoted per RFC 4180. A zero status is
// written as an empty field.
func WriteCSV(w io.Writer, results []urlup.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range results {
		status := ""
		if r.Status != 0 {
			status = strconv.Itoa(r.Status)
		}
		if err := cw.Write([]string{r.Original, r.Final, status, r.Error}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads rows previously written by WriteCSV back into results,
// skipping the header row.
func ReadCSV(r io.Reader) ([]urlup.Result, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		rows = rows[1:]
	}
	results := make([]urlup.Result, 0, len(rows))
	for _, row := range rows {
		res := urlup.Result{Original: row[0], Final: row[1], Error: row[3]}
		if row[2] != "" {
			if res.Status, err = strconv.Atoi(row[2]); err != nil {
				return nil, err
			}
		}
		results = append(results, res)
	}
	return results, nil
}
