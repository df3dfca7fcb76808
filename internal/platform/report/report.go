// Package report renders the monthly archive summary as a PDF document.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// Row is one patient line in the report table. Billing fields are zeroed
// when no billing record matched the patient.
type Row struct {
	Name          string
	Age           int
	Department    string
	AdmissionDate time.Time
	DischargeDate *time.Time
	HasBilling    bool
	TotalDays     int
	TotalAmount   float64
	BillingStatus string
}

// Data is everything the report needs, captured before any source rows
// are deleted.
type Data struct {
	Period       string
	GeneratedAt  time.Time
	PatientCount int
	BillingCount int
	BillingTotal float64
	Rows         []Row
}

type Builder struct{}

func NewBuilder() *Builder { return &Builder{} }

// Build renders the archive report and returns the PDF bytes.
func (b *Builder) Build(d Data) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Hospital Monthly Archive "+d.Period, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "HOSPITAL MONTHLY ARCHIVE", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, "Period: "+d.Period, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, "Generated: "+d.GeneratedAt.UTC().Format("02 Jan 2006 15:04 MST"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total Patients: %d", d.PatientCount), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Billing Records: %d", d.BillingCount), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Total Revenue: "+FormatCurrency(d.BillingTotal), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	widths := []float64{45, 12, 30, 24, 24, 14, 28, 16}
	headers := []string{"Patient", "Age", "Department", "Admitted", "Discharged", "Days", "Amount", "Status"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range d.Rows {
		discharge := "Admitted"
		if row.DischargeDate != nil {
			discharge = row.DischargeDate.UTC().Format("02-01-2006")
		}
		days, amount, status := "-", "-", "-"
		if row.HasBilling {
			days = fmt.Sprintf("%d", row.TotalDays)
			amount = FormatCurrency(row.TotalAmount)
			status = row.BillingStatus
		}
		cells := []string{
			row.Name,
			fmt.Sprintf("%d", row.Age),
			row.Department,
			row.AdmissionDate.UTC().Format("02-01-2006"),
			discharge,
			days,
			amount,
			status,
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering archive report: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatCurrency renders an amount with the Indian digit grouping used on
// printed hospital bills. The core PDF fonts are latin-1, so the rupee
// sign is spelled out.
func FormatCurrency(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	whole := int64(amount)
	frac := int64((amount-float64(whole))*100 + 0.5)
	if frac >= 100 {
		whole++
		frac -= 100
	}

	s := fmt.Sprintf("%d", whole)
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		s = strings.Join(groups, ",") + "," + tail
	}

	out := fmt.Sprintf("Rs %s.%02d", s, frac)
	if neg {
		out = "-" + out
	}
	return out
}
