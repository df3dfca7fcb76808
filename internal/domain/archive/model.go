package archive

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/internal/domain/nurse"
	"github.com/hms/hms/internal/domain/patient"
)

var (
	ErrInvalidPeriod          = errors.New("invalid period: expected YYYY-MM")
	ErrInvalidRetentionPolicy = errors.New("invalid retention policy")
	ErrNoRecords              = errors.New("no records found for the selected month")
	ErrNotFound               = errors.New("archive not found")
)

// RetentionPolicy decides what happens to source rows once a period has
// been archived to the ledger.
type RetentionPolicy string

const (
	// RetentionImmediateDelete removes the source rows in the same
	// transaction that records the ledger entry.
	RetentionImmediateDelete RetentionPolicy = "immediate-delete"
	// RetentionRetainUntilManualDelete flags the source rows as archived
	// and keeps them until an explicit purge.
	RetentionRetainUntilManualDelete RetentionPolicy = "retain-until-manual-delete"
)

// PolicyFromDeleteOption maps the API's deleteOption values onto a
// retention policy.
func PolicyFromDeleteOption(opt string) (RetentionPolicy, error) {
	switch opt {
	case "auto":
		return RetentionImmediateDelete, nil
	case "manual":
		return RetentionRetainUntilManualDelete, nil
	}
	return "", fmt.Errorf("%w: deleteOption must be 'auto' or 'manual'", ErrInvalidRetentionPolicy)
}

// DeleteOption is the API-facing name of the policy, stored on the ledger.
func (p RetentionPolicy) DeleteOption() string {
	if p == RetentionImmediateDelete {
		return "auto"
	}
	return "manual"
}

var periodRe = regexp.MustCompile(`^\d{4}-\d{2}$`)

// ParsePeriod validates a YYYY-MM period and returns its half-open UTC
// range [start, end).
func ParsePeriod(period string) (start, end time.Time, err error) {
	if !periodRe.MatchString(period) {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	start, perr := time.ParseInLocation("2006-01", period, time.UTC)
	if perr != nil {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	return start, start.AddDate(0, 1, 0), nil
}

// LedgerEntry maps to the monthly_archive table. One row per archived
// period; re-archiving a period updates the row in place.
type LedgerEntry struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Period       string    `db:"period" json:"month"`
	PatientCount int       `db:"patient_count" json:"patientCount"`
	BillingCount int       `db:"billing_count" json:"billingCount"`
	BillingTotal float64   `db:"billing_total" json:"billingTotal"`
	DeleteOption string    `db:"delete_option" json:"deleteOption"`
	ReportPDF    []byte    `db:"report_pdf" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	ArchivedAt   time.Time `db:"archived_at" json:"archivedAt"`
}

// Snapshot is the archived data retained for a period, read back from the
// source tables by their archived-period tag.
type Snapshot struct {
	Period       string             `json:"month"`
	Patients     []*patient.Patient `json:"patients"`
	Billing      []*billing.Record  `json:"billingRecords"`
	WorkCharts   []*nurse.WorkChart `json:"workCharts"`
	PatientCount int                `json:"patientCount"`
	BillingCount int                `json:"billingCount"`
	BillingTotal float64            `json:"billingTotal"`
}

// PurgeResult reports how many retained rows a purge removed per table.
type PurgeResult struct {
	Patients   int64 `json:"patients"`
	Billing    int64 `json:"billingRecords"`
	WorkCharts int64 `json:"workCharts"`
}
