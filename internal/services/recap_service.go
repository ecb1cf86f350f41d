package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"bersih-backend/internal/cache"
	"bersih-backend/internal/models"
	"bersih-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// RecapStore is the slice of report persistence the recap needs.
// *repositories.ReportRepository satisfies it.
type RecapStore interface {
	ListByYear(ctx context.Context, from, to time.Time) ([]*models.Report, error)
}

// RecapService builds the yearly report recap and its PDF/CSV exports.
type RecapService struct {
	reports RecapStore
}

func NewRecapService(reports RecapStore) *RecapService {
	return &RecapService{reports: reports}
}

// Rows returns the recap table for a year, newest report first, ranked
// from 1. Results are cached briefly since the recap page is re-opened
// often while an admin prepares the export.
func (s *RecapService) Rows(ctx context.Context, year int) ([]*models.RecapRow, error) {
	if cached, ok := cache.GetRecap(ctx, year); ok {
		var rows []*models.RecapRow
		if err := json.Unmarshal(cached, &rows); err == nil {
			return rows, nil
		}
	}

	reports, err := s.reports.ListByYear(ctx, timeutil.StartOfYear(year), timeutil.EndOfYear(year))
	if err != nil {
		return nil, err
	}

	rows := make([]*models.RecapRow, 0, len(reports))
	for i, r := range reports {
		rows = append(rows, &models.RecapRow{
			Rank:       i + 1,
			Reporter:   r.UserName,
			Address:    r.UserAddress,
			Priority:   r.Priority,
			Status:     r.Status,
			ReportedAt: r.CreatedAt,
			ResolvedAt: r.ResolvedAt,
		})
	}

	if encoded, err := json.Marshal(rows); err == nil {
		cache.SetRecap(ctx, year, encoded)
	}
	return rows, nil
}

// GeneratePDF renders the recap as a printable A4 table.
func (s *RecapService) GeneratePDF(ctx context.Context, year int) ([]byte, error) {
	rows, err := s.Rows(ctx, year)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("Rekap Laporan Sampah %d", year), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.FormatWIB(timeutil.Now(), timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Table header
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(10, 7, "No", "1", 0, "C", true, 0, "")
	pdf.CellFormat(36, 7, "Pelapor", "1", 0, "C", true, 0, "")
	pdf.CellFormat(48, 7, "Alamat", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "Prioritas", "1", 0, "C", true, 0, "")
	pdf.CellFormat(22, 7, "Status", "1", 0, "C", true, 0, "")
	pdf.CellFormat(27, 7, "Tgl Lapor", "1", 0, "C", true, 0, "")
	pdf.CellFormat(27, 7, "Tgl Selesai", "1", 1, "C", true, 0, "")

	// Table rows
	pdf.SetFont("Arial", "", 9)
	for _, row := range rows {
		address := row.Address
		if len(address) > 30 {
			address = address[:27] + "..."
		}
		reporter := row.Reporter
		if len(reporter) > 22 {
			reporter = reporter[:19] + "..."
		}
		resolved := "-"
		if row.ResolvedAt != nil {
			resolved = timeutil.ToWIB(*row.ResolvedAt).Format("02-Jan-2006")
		}
		pdf.CellFormat(10, 6, strconv.Itoa(row.Rank), "1", 0, "C", false, 0, "")
		pdf.CellFormat(36, 6, reporter, "1", 0, "L", false, 0, "")
		pdf.CellFormat(48, 6, address, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, string(row.Priority), "1", 0, "C", false, 0, "")
		pdf.CellFormat(22, 6, string(row.Status), "1", 0, "C", false, 0, "")
		pdf.CellFormat(27, 6, timeutil.ToWIB(row.ReportedAt).Format("02-Jan-2006"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(27, 6, resolved, "1", 1, "C", false, 0, "")
	}
	pdf.Ln(5)

	// Summary
	pending, complete := 0, 0
	for _, row := range rows {
		if row.Status == models.StatusComplete {
			complete++
		} else {
			pending++
		}
	}
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(63, 8, fmt.Sprintf("Total: %d", len(rows)), "1", 0, "C", true, 0, "")
	pdf.CellFormat(63, 8, fmt.Sprintf("Selesai: %d", complete), "1", 0, "C", true, 0, "")
	pdf.CellFormat(64, 8, fmt.Sprintf("Menunggu: %d", pending), "1", 1, "C", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateCSV renders the recap for spreadsheet import.
func (s *RecapService) GenerateCSV(ctx context.Context, year int) ([]byte, error) {
	rows, err := s.Rows(ctx, year)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"No", "Pelapor", "Alamat", "Prioritas", "Status", "Tanggal Lapor", "Tanggal Selesai"}); err != nil {
		return nil, err
	}
	for _, row := range rows {
		resolved := "-"
		if row.ResolvedAt != nil {
			resolved = timeutil.FormatWIB(*row.ResolvedAt, timeutil.DateTimeLayout)
		}
		record := []string{
			strconv.Itoa(row.Rank),
			row.Reporter,
			row.Address,
			string(row.Priority),
			string(row.Status),
			timeutil.FormatWIB(row.ReportedAt, timeutil.DateTimeLayout),
			resolved,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
