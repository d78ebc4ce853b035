// Package export writes the local backup files for a scraped batch.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/beasiswa"
)

// File names written under the export directory.
const (
	JSONFile = "beasiswa_semua.json"
	CSVFile  = "beasiswa_semua.csv"
	XLSXFile = "beasiswa_semua.xlsx"
)

// header lists the wire field names in record order; it doubles as the CSV
// header and the spreadsheet's first row.
var header = []string{
	"nama_beasiswa",
	"kategori",
	"website_sumber",
	"deskripsi",
	"persyaratan",
	"deadline",
	"link_pendaftaran",
	"tanggal_update",
}

// Exporter writes JSON, CSV, and spreadsheet backups of a batch. Each format
// is best-effort: a failing writer is logged and skipped without affecting
// the others or the run's classification.
type Exporter struct {
	dir    string
	logger *zap.Logger
}

// New creates an Exporter rooted at dir, creating it if needed.
func New(dir string, logger *zap.Logger) (*Exporter, error) {
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	return &Exporter{dir: dir, logger: logger}, nil
}

// WriteAll writes every backup format and reports how many formats succeeded.
func (e *Exporter) WriteAll(records []beasiswa.Scholarship) int {
	written := 0
	if err := e.WriteJSON(records); err != nil {
		e.logger.Warn("json backup failed", zap.Error(err))
	} else {
		written++
	}
	if err := e.WriteCSV(records); err != nil {
		e.logger.Warn("csv backup failed", zap.Error(err))
	} else {
		written++
	}
	if err := e.WriteXLSX(records); err != nil {
		e.logger.Warn("spreadsheet backup failed", zap.Error(err))
	} else {
		written++
	}
	return written
}

// WriteJSON writes the full-fidelity JSON backup.
func (e *Exporter) WriteJSON(records []beasiswa.Scholarship) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	path := filepath.Join(e.dir, JSONFile)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	e.logger.Info("backup written", zap.String("path", path))
	return nil
}

// WriteCSV writes the flat CSV backup.
func (e *Exporter) WriteCSV(records []beasiswa.Scholarship) error {
	path := filepath.Join(e.dir, CSVFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(row(r)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	e.logger.Info("backup written", zap.String("path", path))
	return nil
}

// WriteXLSX writes the spreadsheet backup.
func (e *Exporter) WriteXLSX(records []beasiswa.Scholarship) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("write header cell: %w", err)
		}
	}
	for i, r := range records {
		for col, value := range row(r) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("cell name row %s: %w", strconv.Itoa(i+2), err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("write cell: %w", err)
			}
		}
	}

	path := filepath.Join(e.dir, XLSXFile)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	e.logger.Info("backup written", zap.String("path", path))
	return nil
}

func row(r beasiswa.Scholarship) []string {
	return []string{
		r.Name,
		string(r.Category),
		r.SourceURL,
		r.Description,
		r.Requirements,
		r.Deadline,
		r.RegistrationLink,
		r.UpdatedAt,
	}
}
