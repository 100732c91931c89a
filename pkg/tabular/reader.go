// Package tabular loads delimited and JSON files into the in-memory
// Dataset the assessment pipeline consumes. It exists for the CLI and
// for callers whose data arrives as files rather than as an
// already-built TabularView; library users embedding ADRI in a
// pipeline usually construct Datasets directly.
package tabular

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/adri-oss/adri-go/pkg/adri"
)

// ReadFile dispatches on the file extension: .csv, .json, or .jsonl.
func ReadFile(path string) (*adri.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tabular: opening %q: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(f)
	case ".json":
		return ReadJSON(f)
	case ".jsonl", ".ndjson":
		return ReadJSONL(f)
	default:
		return nil, &adri.DataValidationError{Message: fmt.Sprintf("unsupported data file type %q", filepath.Ext(path))}
	}
}

// ReadCSV parses a headered CSV stream. The first record names the
// columns; every cell is sniffed into the narrowest Kind that parses
// cleanly (bool, integer, float, date, datetime, else text). Empty
// cells become null.
func ReadCSV(r io.Reader) (*adri.Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &adri.DataValidationError{Message: "csv input is empty"}
	}
	if err != nil {
		return nil, &adri.DataValidationError{Message: "reading csv header", Err: err}
	}

	columns := make([]adri.Column, len(header))
	for i, name := range header {
		columns[i] = adri.Column{Name: strings.TrimSpace(name)}
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &adri.DataValidationError{Message: "reading csv record", Err: err}
		}
		if len(record) != len(header) {
			return nil, &adri.DataValidationError{Message: fmt.Sprintf("csv record has %d fields, header has %d", len(record), len(header))}
		}
		for i, raw := range record {
			columns[i].Cells = append(columns[i].Cells, SniffCell(raw))
		}
	}
	return adri.NewDataset(columns)
}

// ReadJSON parses a JSON array of flat objects. Column order is the
// sorted union of keys across all rows, so loading is deterministic
// regardless of per-object key order; keys absent from a row become
// null cells.
func ReadJSON(r io.Reader) (*adri.Dataset, error) {
	var rows []map[string]any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&rows); err != nil {
		return nil, &adri.DataValidationError{Message: "decoding json array", Err: err}
	}
	return fromRows(rows)
}

// ReadJSONL parses newline-delimited JSON objects, one row per line.
func ReadJSONL(r io.Reader) (*adri.Dataset, error) {
	var rows []map[string]any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	for {
		var row map[string]any
		if err := dec.Decode(&row); err == io.EOF {
			break
		} else if err != nil {
			return nil, &adri.DataValidationError{Message: fmt.Sprintf("decoding jsonl line %d", len(rows)+1), Err: err}
		}
		rows = append(rows, row)
	}
	return fromRows(rows)
}

func fromRows(rows []map[string]any) (*adri.Dataset, error) {
	keySet := map[string]bool{}
	for _, row := range rows {
		for k := range row {
			keySet[k] = true
		}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	columns := make([]adri.Column, len(keys))
	for i, k := range keys {
		cells := make([]adri.Cell, len(rows))
		for j, row := range rows {
			v, ok := row[k]
			if !ok {
				cells[j] = adri.NullCell
				continue
			}
			cells[j] = cellFromJSON(v)
		}
		columns[i] = adri.Column{Name: k, Cells: cells}
	}
	return adri.NewDataset(columns)
}

func cellFromJSON(v any) adri.Cell {
	switch t := v.(type) {
	case nil:
		return adri.NullCell
	case bool:
		return adri.BoolCell(t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return adri.IntCell(i)
		}
		f, err := t.Float64()
		if err != nil || math.IsNaN(f) {
			return adri.TextCell(t.String())
		}
		return adri.FloatCell(f)
	case string:
		return sniffTemporal(t)
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return adri.TextCell(fmt.Sprint(t))
		}
		return adri.TextCell(string(raw))
	}
}

// SniffCell converts one raw CSV cell into the narrowest Kind that
// parses cleanly.
func SniffCell(raw string) adri.Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return adri.NullCell
	}
	switch s {
	case "true", "false", "True", "False":
		b, _ := strconv.ParseBool(strings.ToLower(s))
		return adri.BoolCell(b)
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return adri.IntCell(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return adri.FloatCell(f)
	}
	return sniffTemporal(s)
}

func sniffTemporal(s string) adri.Cell {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return adri.DateCell(t)
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return adri.DateTimeCell(t)
	}
	return adri.TextCell(s)
}
