package eventlog

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// csvHeader is the fixed column layout of CSV exports. Attributes are
// encoded as a JSON object in the last column.
var csvHeader = []string{"seq", "type", "actor", "timestamp", "attributes"}

// WriteCSV writes the log to a CSV file.
func (l *Log) WriteCSV(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()
	return l.WriteCSVTo(f)
}

// WriteCSVTo writes the log as CSV to a writer.
func (l *Log) WriteCSVTo(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, e := range l.Entries() {
		attrs := "{}"
		if len(e.Attributes) > 0 {
			raw, err := json.Marshal(e.Attributes)
			if err != nil {
				return fmt.Errorf("encoding attributes of entry %d: %w", e.Seq, err)
			}
			attrs = string(raw)
		}
		record := []string{
			strconv.FormatUint(e.Seq, 10),
			e.Type,
			e.Actor,
			e.Timestamp.Format(time.RFC3339Nano),
			attrs,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing entry %d: %w", e.Seq, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses exported entries from a CSV file.
func ReadCSV(filename string) ([]Entry, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()
	return ReadCSVReader(f)
}

// ReadCSVReader parses exported entries from a CSV reader. The first row
// must be the header written by WriteCSV.
func ReadCSVReader(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var entries []Entry
	for i, record := range records[1:] {
		if len(record) != len(csvHeader) {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", i+2, len(csvHeader), len(record))
		}
		seq, err := strconv.ParseUint(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid seq: %w", i+2, err)
		}
		ts, err := time.Parse(time.RFC3339Nano, record[3])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid timestamp: %w", i+2, err)
		}
		attrs := make(map[string]string)
		if record[4] != "" {
			if err := json.Unmarshal([]byte(record[4]), &attrs); err != nil {
				return nil, fmt.Errorf("row %d: invalid attributes: %w", i+2, err)
			}
		}
		entries = append(entries, Entry{
			Seq:        seq,
			Type:       record[1],
			Actor:      record[2],
			Attributes: attrs,
			Timestamp:  ts,
		})
	}
	return entries, nil
}
