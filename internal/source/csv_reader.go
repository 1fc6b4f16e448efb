// Package source reads wheel/tire rows from a CSV export.
package source

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"wheellister/internal/models"
)

// Source errors.
var (
	ErrOpen   = errors.New("cannot open source")
	ErrHeader = errors.New("cannot read header row")
	ErrRead   = errors.New("cannot read source")
)

var utf8BOM = []byte("\xef\xbb\xbf")

// Options controls how the CSV is parsed.
type Options struct {
	// Delimiter separates fields; zero means ','.
	Delimiter rune
}

// ReadFile opens path and reads all data lines.
// A line that fails to parse is returned as a Record with Err set;
// open, header and I/O failures abort the read.
func ReadFile(path string, opts Options) ([]models.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpen, path, err)
	}
	defer file.Close()

	return Read(file, opts)
}

// Read parses a header line followed by data lines from r.
func Read(r io.Reader, opts Options) ([]models.Record, error) {
	reader := csv.NewReader(skipBOM(r))
	reader.FieldsPerRecord = -1

	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHeader, err)
	}

	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []models.Record

	index := 0

	for {
		fields, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}

		var parseErr *csv.ParseError
		if readErr != nil && !errors.As(readErr, &parseErr) {
			return nil, fmt.Errorf("%w: %w", ErrRead, readErr)
		}

		index++

		if readErr != nil {
			records = append(records, models.Record{Index: index, Err: readErr})

			continue
		}

		records = append(records, models.Record{Index: index, Row: toRow(header, fields)})
	}

	return records, nil
}

func toRow(header, fields []string) models.Row {
	row := make(models.Row, len(header))

	for i, name := range header {
		if name == "" || i >= len(fields) {
			continue
		}

		row[name] = fields[i]
	}

	return row
}

// skipBOM drops a leading UTF-8 byte order mark, as written by spreadsheet exports.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)

	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	return br
}
