// Package batch turns source rows into listing files, one row at a time.
package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"wheellister/internal/formatter"
	"wheellister/internal/logger"
	"wheellister/internal/models"
	"wheellister/internal/normalizer"
	"wheellister/internal/source"
	"wheellister/pkg/checksum"
)

// Processing errors.
var (
	ErrSourceOpen    = errors.New("source could not be read")
	ErrOutputDir     = errors.New("output directory could not be created")
	ErrRowProcessing = errors.New("row processing failed")
	ErrOutputWrite   = errors.New("listing could not be written")
	ErrMalformedRow  = errors.New("malformed row")
)

const fileExtension = ".txt"

// RowError reports a row that was skipped.
type RowError struct {
	Err   error
	Index int
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Index, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Is makes every RowError match ErrRowProcessing.
func (e *RowError) Is(target error) bool {
	return target == ErrRowProcessing
}

// RowResult is the outcome of one row: either a Listing or an error.
type RowResult struct {
	Listing *models.Listing
	Err     error
	Index   int
}

// OK reports whether the row was written.
func (r RowResult) OK() bool {
	return r.Err == nil && r.Listing != nil
}

// Report collects one RowResult per source row, in source order.
type Report struct {
	Results []RowResult
}

// Listings returns the written listings in source order.
func (r *Report) Listings() []models.Listing {
	var listings []models.Listing

	for _, res := range r.Results {
		if res.OK() {
			listings = append(listings, *res.Listing)
		}
	}

	return listings
}

// Failures returns the errors of skipped rows.
func (r *Report) Failures() []error {
	var errs []error

	for _, res := range r.Results {
		if !res.OK() {
			errs = append(errs, res.Err)
		}
	}

	return errs
}

// Generated returns the number of written listings.
func (r *Report) Generated() int {
	count := 0

	for _, res := range r.Results {
		if res.OK() {
			count++
		}
	}

	return count
}

// Processor writes one listing file per row into outputDir.
type Processor struct {
	log       *logger.Logger
	writeFile func(name string, data []byte, perm os.FileMode) error
	outputDir string
}

// NewProcessor creates a processor writing into outputDir.
func NewProcessor(outputDir string, log *logger.Logger) *Processor {
	if log == nil {
		log = logger.Discard()
	}

	return &Processor{
		log:       log,
		writeFile: os.WriteFile,
		outputDir: outputDir,
	}
}

// OutputDir returns the directory listings are written to.
func (p *Processor) OutputDir() string {
	return p.outputDir
}

// ProcessFile reads the CSV at path and processes every row.
// When the source cannot be read, the returned report is empty.
func (p *Processor) ProcessFile(path string, opts source.Options) (*Report, error) {
	records, err := source.ReadFile(path, opts)
	if err != nil {
		p.log.Error("Error reading CSV file", "path", path, "error", err)

		return &Report{}, fmt.Errorf("%w: %w", ErrSourceOpen, err)
	}

	return p.Process(records)
}

// Process builds and writes a listing for each record in order.
// Row failures are logged and recorded; they never stop the batch.
func (p *Processor) Process(records []models.Record) (*Report, error) {
	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		p.log.Error("Error creating output directory", "dir", p.outputDir, "error", err)

		return &Report{}, fmt.Errorf("%w: %w", ErrOutputDir, err)
	}

	report := &Report{Results: make([]RowResult, 0, len(records))}

	for _, rec := range records {
		rowLog := p.log.With("row", rec.Index)

		listing, err := p.processRecord(rec)
		if err != nil {
			rowErr := &RowError{Index: rec.Index, Err: err}
			rowLog.Error("Error processing row", "error", err)
			report.Results = append(report.Results, RowResult{Index: rec.Index, Err: rowErr})

			continue
		}

		rowLog.Debug("Listing written", "file", listing.FileName, "sha256", checksum.Short(listing.Checksum))
		report.Results = append(report.Results, RowResult{Index: rec.Index, Listing: listing})
	}

	return report, nil
}

func (p *Processor) processRecord(rec models.Record) (*models.Listing, error) {
	if rec.Err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRow, rec.Err)
	}

	content := formatter.CreateDescription(rec.Row)
	name := FileName(rec.Row, rec.Index)
	path := filepath.Join(p.outputDir, name)
	sum := checksum.Sum(content)

	if err := p.writeFile(path, []byte(content), 0644); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOutputWrite, err)
	}

	// A row only counts as written once the file reads back unchanged.
	written, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOutputWrite, err)
	}

	if err := checksum.Verify(string(written), sum); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOutputWrite, name, err)
	}

	return &models.Listing{
		Index:    rec.Index,
		FileName: name,
		Content:  content,
		Checksum: sum,
	}, nil
}

// FileName derives the listing file name from tire width, rim size,
// rim manufacturer and the 1-based row index, e.g. "rad_205_16_bbs_kraft_3.txt".
// Rows sharing all four parts overwrite each other.
func FileName(row models.Row, index int) string {
	manufacturer := strings.ReplaceAll(normalizer.SafeValue(row.Get(models.FieldFelgenhersteller)), " ", "_")

	name := "rad_" +
		normalizer.SafeValue(row.Get(models.FieldReifenbreite)) + "_" +
		normalizer.SafeValue(row.Get(models.FieldZoll)) + "_" +
		manufacturer + "_" +
		strconv.Itoa(index) + fileExtension

	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "/", "_")

	return strings.ToLower(name)
}
