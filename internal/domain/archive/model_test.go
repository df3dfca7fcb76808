package archive

import (
	"errors"
	"testing"
	"time"
)

func TestParsePeriod(t *testing.T) {
	start, end, err := ParsePeriod("2025-03")
	if err != nil {
		t.Fatalf("ParsePeriod failed: %v", err)
	}
	wantStart := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}
}

func TestParsePeriodYearBoundary(t *testing.T) {
	start, end, err := ParsePeriod("2024-12")
	if err != nil {
		t.Fatalf("ParsePeriod failed: %v", err)
	}
	if start.Month() != time.December || start.Year() != 2024 {
		t.Errorf("unexpected start %v", start)
	}
	if end.Month() != time.January || end.Year() != 2025 {
		t.Errorf("expected end to roll into January 2025, got %v", end)
	}
}

func TestParsePeriodRejectsMalformedInput(t *testing.T) {
	for _, period := range []string{
		"", "2025", "2025-3", "2025-13", "2025-00", "03-2025",
		"2025-03-01", "March 2025", "2025/03",
	} {
		if _, _, err := ParsePeriod(period); !errors.Is(err, ErrInvalidPeriod) {
			t.Errorf("ParsePeriod(%q) = %v, want ErrInvalidPeriod", period, err)
		}
	}
}

func TestPolicyFromDeleteOption(t *testing.T) {
	p, err := PolicyFromDeleteOption("auto")
	if err != nil || p != RetentionImmediateDelete {
		t.Errorf("auto -> (%v, %v)", p, err)
	}
	p, err = PolicyFromDeleteOption("manual")
	if err != nil || p != RetentionRetainUntilManualDelete {
		t.Errorf("manual -> (%v, %v)", p, err)
	}
	if _, err := PolicyFromDeleteOption("someday"); !errors.Is(err, ErrInvalidRetentionPolicy) {
		t.Errorf("expected ErrInvalidRetentionPolicy, got %v", err)
	}
	if _, err := PolicyFromDeleteOption(""); !errors.Is(err, ErrInvalidRetentionPolicy) {
		t.Errorf("expected ErrInvalidRetentionPolicy for empty option, got %v", err)
	}
}

func TestDeleteOptionRoundTrip(t *testing.T) {
	if got := RetentionImmediateDelete.DeleteOption(); got != "auto" {
		t.Errorf("immediate-delete -> %q, want auto", got)
	}
	if got := RetentionRetainUntilManualDelete.DeleteOption(); got != "manual" {
		t.Errorf("retain-until-manual-delete -> %q, want manual", got)
	}
}
