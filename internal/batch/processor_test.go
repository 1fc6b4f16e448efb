package batch

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wheellister/internal/logger"
	"wheellister/internal/models"
	"wheellister/internal/source"
	"wheellister/pkg/checksum"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		name     string
		row      models.Row
		index    int
		expected string
	}{
		{
			name: "Manufacturer with space",
			row: models.Row{
				models.FieldFelgenhersteller: "BBS Kraft",
				models.FieldReifenbreite:     "205",
				models.FieldZoll:             "16",
			},
			index:    3,
			expected: "rad_205_16_bbs_kraft_3.txt",
		},
		{
			name:     "All missing",
			row:      models.Row{},
			index:    1,
			expected: "rad_k.a._k.a._k.a._1.txt",
		},
		{
			name: "Slash and upper case",
			row: models.Row{
				models.FieldFelgenhersteller: "O.Z./Racing",
				models.FieldReifenbreite:     "225",
				models.FieldZoll:             "R 17",
			},
			index:    12,
			expected: "rad_225_r_17_o.z._racing_12.txt",
		},
		{
			name: "Values are trimmed",
			row: models.Row{
				models.FieldFelgenhersteller: "  Ronal ",
				models.FieldReifenbreite:     " 195",
				models.FieldZoll:             "15 ",
			},
			index:    2,
			expected: "rad_195_15_ronal_2.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileName(tt.row, tt.index); got != tt.expected {
				t.Errorf("FileName() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func record(index int, row models.Row) models.Record {
	return models.Record{Index: index, Row: row}
}

func TestProcessor_Process(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "output")
	p := NewProcessor(outDir, nil)

	records := []models.Record{
		record(1, models.Row{models.FieldReifenbreite: "205", models.FieldZoll: "16", models.FieldFelgenhersteller: "BBS"}),
		record(2, models.Row{models.FieldReifenbreite: "195", models.FieldZoll: "15"}),
	}

	report, err := p.Process(records)
	if err != nil {
		t.Fatalf("Process returned unexpected error: %v", err)
	}

	if report.Generated() != 2 {
		t.Fatalf("Generated() = %d, want 2", report.Generated())
	}

	listings := report.Listings()
	if listings[0].FileName != "rad_205_16_bbs_1.txt" {
		t.Errorf("first file name = %q", listings[0].FileName)
	}

	for _, l := range listings {
		data, readErr := os.ReadFile(filepath.Join(outDir, l.FileName))
		if readErr != nil {
			t.Fatalf("Expected listing file %s: %v", l.FileName, readErr)
		}

		if string(data) != l.Content {
			t.Errorf("file %s content differs from returned listing", l.FileName)
		}

		if len(l.Checksum) != 64 {
			t.Errorf("checksum %q should be a sha256 hex string", l.Checksum)
		}
	}
}

func TestProcessor_MalformedRowIsSkipped(t *testing.T) {
	outDir := t.TempDir()
	p := NewProcessor(outDir, nil)

	records := []models.Record{
		record(1, models.Row{models.FieldReifenbreite: "205"}),
		{Index: 2, Err: errors.New("bare \" in non-quoted field")},
		record(3, models.Row{models.FieldReifenbreite: "225"}),
	}

	report, err := p.Process(records)
	if err != nil {
		t.Fatalf("Process returned unexpected error: %v", err)
	}

	if len(report.Results) != 3 {
		t.Fatalf("Expected one result per record, got %d", len(report.Results))
	}

	if report.Generated() != 2 {
		t.Errorf("Generated() = %d, want 2", report.Generated())
	}

	failures := report.Failures()
	if len(failures) != 1 {
		t.Fatalf("Expected 1 failure, got %d", len(failures))
	}

	var rowErr *RowError
	if !errors.As(failures[0], &rowErr) || rowErr.Index != 2 {
		t.Errorf("failure = %v, want RowError for row 2", failures[0])
	}

	if !errors.Is(failures[0], ErrRowProcessing) || !errors.Is(failures[0], ErrMalformedRow) {
		t.Errorf("failure %v should match ErrRowProcessing and ErrMalformedRow", failures[0])
	}

	if !strings.HasPrefix(failures[0].Error(), "row 2: ") {
		t.Errorf("failure message = %q", failures[0].Error())
	}

	entries, _ := os.ReadDir(outDir)
	if len(entries) != 2 {
		t.Errorf("Expected 2 files, found %d", len(entries))
	}

	if report.Listings()[1].Index != 3 {
		t.Error("row after the failure should still be processed")
	}
}

func TestProcessor_WriteFailureIsIsolated(t *testing.T) {
	outDir := t.TempDir()
	p := NewProcessor(outDir, nil)

	blocked := models.Row{models.FieldReifenbreite: "205", models.FieldZoll: "16"}

	// A directory occupying the target name makes the write fail.
	if err := os.Mkdir(filepath.Join(outDir, FileName(blocked, 1)), 0755); err != nil {
		t.Fatalf("Failed to create blocking directory: %v", err)
	}

	report, err := p.Process([]models.Record{
		record(1, blocked),
		record(2, models.Row{models.FieldReifenbreite: "195"}),
	})
	if err != nil {
		t.Fatalf("Process returned unexpected error: %v", err)
	}

	if report.Generated() != 1 {
		t.Fatalf("Generated() = %d, want 1", report.Generated())
	}

	if report.Results[0].OK() {
		t.Error("row 1 should have failed")
	}

	if !errors.Is(report.Results[0].Err, ErrOutputWrite) {
		t.Errorf("row 1 error = %v, want ErrOutputWrite", report.Results[0].Err)
	}

	if !report.Results[1].OK() {
		t.Errorf("row 2 should succeed, got %v", report.Results[1].Err)
	}
}

func TestProcessor_OverwritesExistingFile(t *testing.T) {
	outDir := t.TempDir()
	p := NewProcessor(outDir, nil)
	row := models.Row{models.FieldReifenbreite: "205"}

	target := filepath.Join(outDir, FileName(row, 1))
	if err := os.WriteFile(target, []byte("stale"), 0644); err != nil {
		t.Fatalf("Failed to write stale file: %v", err)
	}

	if _, err := p.Process([]models.Record{record(1, row)}); err != nil {
		t.Fatalf("Process returned unexpected error: %v", err)
	}

	data, _ := os.ReadFile(target)
	if string(data) == "stale" {
		t.Error("existing file should be overwritten")
	}
}

func TestProcessor_ShortWriteIsRejected(t *testing.T) {
	outDir := t.TempDir()
	p := NewProcessor(outDir, nil)

	// Drops the last byte so the file on disk differs from the listing.
	p.writeFile = func(name string, data []byte, perm os.FileMode) error {
		return os.WriteFile(name, data[:len(data)-1], perm)
	}

	report, err := p.Process([]models.Record{record(1, models.Row{models.FieldReifenbreite: "205"})})
	if err != nil {
		t.Fatalf("Process returned unexpected error: %v", err)
	}

	if report.Generated() != 0 {
		t.Fatalf("Generated() = %d, want 0", report.Generated())
	}

	rowErr := report.Results[0].Err
	if !errors.Is(rowErr, ErrOutputWrite) {
		t.Errorf("row 1 error = %v, want ErrOutputWrite", rowErr)
	}

	if !errors.Is(rowErr, checksum.ErrHashMismatch) {
		t.Errorf("row 1 error = %v, want wrapped ErrHashMismatch", rowErr)
	}
}

func TestProcessor_RowLogContext(t *testing.T) {
	var buf bytes.Buffer

	p := NewProcessor(t.TempDir(), logger.New("debug", &buf))

	_, err := p.Process([]models.Record{
		record(1, models.Row{models.FieldReifenbreite: "205"}),
		{Index: 2, Err: errors.New("bare \" in non-quoted field")},
	})
	if err != nil {
		t.Fatalf("Process returned unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 log records, got %d:\n%s", len(lines), buf.String())
	}

	if !strings.Contains(lines[0], "Listing written") || !strings.Contains(lines[0], "row=1") {
		t.Errorf("first record = %q, want written listing for row 1", lines[0])
	}

	if !strings.Contains(lines[1], "Error processing row") || !strings.Contains(lines[1], "row=2") {
		t.Errorf("second record = %q, want failure for row 2", lines[1])
	}
}

func TestProcessor_OutputDir(t *testing.T) {
	if got := NewProcessor("listings", nil).OutputDir(); got != "listings" {
		t.Errorf("OutputDir() = %q, want listings", got)
	}
}

func TestProcessor_OutputDirFailure(t *testing.T) {
	base := t.TempDir()

	blocker := filepath.Join(base, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write blocker: %v", err)
	}

	p := NewProcessor(filepath.Join(blocker, "output"), nil)

	report, err := p.Process([]models.Record{record(1, models.Row{})})
	if !errors.Is(err, ErrOutputDir) {
		t.Fatalf("Process error = %v, want ErrOutputDir", err)
	}

	if len(report.Results) != 0 {
		t.Error("Expected empty report")
	}
}

func TestProcessor_ProcessFile_SourceMissing(t *testing.T) {
	p := NewProcessor(t.TempDir(), nil)

	report, err := p.ProcessFile("/nonexistent/kompletträder.csv", source.Options{})
	if !errors.Is(err, ErrSourceOpen) {
		t.Fatalf("ProcessFile error = %v, want ErrSourceOpen", err)
	}

	if !errors.Is(err, source.ErrOpen) {
		t.Errorf("ProcessFile error = %v, want wrapped source.ErrOpen", err)
	}

	if report == nil || len(report.Listings()) != 0 {
		t.Error("Expected empty, non-nil report")
	}
}

func TestProcessor_ProcessFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.csv")
	content := "Reifenbreite;Zoll;Felgenhersteller;BuyItNowPrice\n205;16;BBS Kraft;0€\n"

	if err := os.WriteFile(input, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write input: %v", err)
	}

	p := NewProcessor(filepath.Join(dir, "out"), nil)

	report, err := p.ProcessFile(input, source.Options{Delimiter: ';'})
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}

	listings := report.Listings()
	if len(listings) != 1 {
		t.Fatalf("Expected 1 listing, got %d", len(listings))
	}

	if listings[0].FileName != "rad_205_16_bbs_kraft_1.txt" {
		t.Errorf("file name = %q", listings[0].FileName)
	}

	if !strings.Contains(listings[0].Content, "Preis: 0€ \n") {
		t.Errorf("zero price should not fall back, got:\n%s", listings[0].Content)
	}
}
