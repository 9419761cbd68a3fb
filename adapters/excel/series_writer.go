package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"ovbias/internal/errors"
	"ovbias/internal/sweep"

	"github.com/xuri/excelize/v2"
)

const (
	seriesSheet   = "sweep"
	failuresSheet = "failures"
)

// SeriesWriter exports sweep series to Excel or CSV files
type SeriesWriter struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewSeriesWriter picks the output format from the file extension
func NewSeriesWriter(filePath string) *SeriesWriter {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &SeriesWriter{filePath: filePath, fileType: fileType}
}

// Write exports the series. Columns: <parameter>, bias, analytic_bias.
// The xlsx format adds a failures sheet listing skipped values.
func (w *SeriesWriter) Write(series *sweep.Series) error {
	if series == nil {
		return errors.InvalidInput("series is required")
	}
	if dir := filepath.Dir(w.filePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create export directory %s", dir)
		}
	}

	switch w.fileType {
	case "csv":
		return w.writeCSV(series)
	default:
		return w.writeExcel(series)
	}
}

func header(series *sweep.Series) []string {
	return []string{series.Parameter, "bias", "analytic_bias"}
}

func (w *SeriesWriter) writeCSV(series *sweep.Series) (err error) {
	file, err := os.Create(w.filePath)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", w.filePath)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "failed to close %s", w.filePath)
		}
	}()

	return writeRecords(file, series)
}

func writeRecords(out io.Writer, series *sweep.Series) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(header(series)); err != nil {
		return errors.Wrap(err, "failed to write csv header")
	}
	for i := range series.Values {
		record := []string{
			strconv.FormatFloat(series.Values[i], 'g', -1, 64),
			strconv.FormatFloat(series.Biases[i], 'g', -1, 64),
			strconv.FormatFloat(series.Analytic[i], 'g', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrapf(err, "failed to write csv row %d", i)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(err, "failed to flush csv")
	}
	return nil
}

func (w *SeriesWriter) writeExcel(series *sweep.Series) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", seriesSheet); err != nil {
		return errors.Wrap(err, "failed to name series sheet")
	}

	head := header(series)
	if err := f.SetSheetRow(seriesSheet, "A1", &head); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	for i := range series.Values {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "invalid cell")
		}
		row := []interface{}{series.Values[i], series.Biases[i], series.Analytic[i]}
		if err := f.SetSheetRow(seriesSheet, cell, &row); err != nil {
			return errors.Wrapf(err, "failed to write row %d", i)
		}
	}

	if len(series.Failures) > 0 {
		if _, err := f.NewSheet(failuresSheet); err != nil {
			return errors.Wrap(err, "failed to add failures sheet")
		}
		failHead := []interface{}{series.Parameter, "stage", "error"}
		if err := f.SetSheetRow(failuresSheet, "A1", &failHead); err != nil {
			return errors.Wrap(err, "failed to write failures header")
		}
		for i, failure := range series.Failures {
			msg := ""
			if failure.Err != nil {
				msg = failure.Err.Error()
			}
			row := []interface{}{failure.Value, failure.Stage, msg}
			if err := f.SetSheetRow(failuresSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
				return errors.Wrapf(err, "failed to write failure row %d", i)
			}
		}
	}

	if err := f.SaveAs(w.filePath); err != nil {
		return errors.Wrapf(err, "failed to save %s", w.filePath)
	}
	return nil
}
