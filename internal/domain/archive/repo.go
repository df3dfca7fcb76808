package archive

import (
	"context"
	"time"

	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/internal/domain/nurse"
	"github.com/hms/hms/internal/domain/patient"
)

// LedgerRepository persists the per-period archive ledger.
type LedgerRepository interface {
	Upsert(ctx context.Context, e *LedgerEntry) error
	GetByPeriod(ctx context.Context, period string) (*LedgerEntry, error)
	List(ctx context.Context) ([]*LedgerEntry, error)
	AttachReport(ctx context.Context, period string, pdf []byte) error
}

// PatientStore is the narrow view of patient rows the archival engine
// needs: period-scoped selection, flagging and deletion. The engine owns
// no patient semantics beyond these.
type PatientStore interface {
	ListUnarchivedInRange(ctx context.Context, start, end time.Time) ([]*patient.Patient, error)
	ListArchivedForPeriod(ctx context.Context, period string) ([]*patient.Patient, error)
	MarkArchived(ctx context.Context, period string, start, end time.Time) error
	DeleteUnarchivedInRange(ctx context.Context, start, end time.Time) error
	DeleteArchivedForPeriod(ctx context.Context, period string) (int64, error)
}

// BillingStore mirrors PatientStore for billing rows.
type BillingStore interface {
	ListUnarchivedInRange(ctx context.Context, start, end time.Time) ([]*billing.Record, error)
	ListArchivedForPeriod(ctx context.Context, period string) ([]*billing.Record, error)
	MarkArchived(ctx context.Context, period string, start, end time.Time) error
	DeleteUnarchivedInRange(ctx context.Context, start, end time.Time) error
	DeleteArchivedForPeriod(ctx context.Context, period string) (int64, error)
}

// WorkChartStore mirrors PatientStore for work chart rows.
type WorkChartStore interface {
	ListUnarchivedInRange(ctx context.Context, start, end time.Time) ([]*nurse.WorkChart, error)
	ListArchivedForPeriod(ctx context.Context, period string) ([]*nurse.WorkChart, error)
	MarkArchived(ctx context.Context, period string, start, end time.Time) error
	DeleteUnarchivedInRange(ctx context.Context, start, end time.Time) error
	DeleteArchivedForPeriod(ctx context.Context, period string) (int64, error)
}
