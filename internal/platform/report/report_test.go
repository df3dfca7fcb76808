package report

import (
	"bytes"
	"testing"
	"time"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "Rs 0.00"},
		{999, "Rs 999.00"},
		{1000, "Rs 1,000.00"},
		{100000, "Rs 1,00,000.00"},
		{1234567.89, "Rs 12,34,567.89"},
		{75000.5, "Rs 75,000.50"},
		{-2500, "-Rs 2,500.00"},
	}
	for _, tc := range cases {
		if got := FormatCurrency(tc.in); got != tc.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBuildProducesPDF(t *testing.T) {
	discharge := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	d := Data{
		Period:       "2025-03",
		GeneratedAt:  time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC),
		PatientCount: 2,
		BillingCount: 1,
		BillingTotal: 12500,
		Rows: []Row{
			{
				Name:          "Asha Patel",
				Age:           34,
				Department:    "Cardiology",
				AdmissionDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
				DischargeDate: &discharge,
				HasBilling:    true,
				TotalDays:     10,
				TotalAmount:   12500,
				BillingStatus: "Paid",
			},
			{
				Name:          "Ravi Kumar",
				Age:           58,
				Department:    "General",
				AdmissionDate: time.Date(2025, 3, 25, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	pdf, err := NewBuilder().Build(d)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header")
	}
	if len(pdf) < 500 {
		t.Errorf("suspiciously small PDF: %d bytes", len(pdf))
	}
}

func TestBuildEmptyMonth(t *testing.T) {
	pdf, err := NewBuilder().Build(Data{
		Period:      "2025-01",
		GeneratedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("Build failed on empty data: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
}
