package archive

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/report"
)

// ReportBuilder renders the archive report for a period's data.
type ReportBuilder interface {
	Build(d report.Data) ([]byte, error)
}

// txRunner wraps a unit of work in a database transaction. Satisfied by
// a pgx pool in production and stubbed out in tests.
type txRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	ledger   LedgerRepository
	patients PatientStore
	billing  BillingStore
	charts   WorkChartStore
	reports  ReportBuilder
	runInTx  txRunner
	now      func() time.Time
}

func NewService(pool *pgxpool.Pool, ledger LedgerRepository, patients PatientStore,
	billingStore BillingStore, charts WorkChartStore, reports ReportBuilder) *Service {
	return &Service{
		ledger:   ledger,
		patients: patients,
		billing:  billingStore,
		charts:   charts,
		reports:  reports,
		runInTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return db.RunInTx(ctx, pool, fn)
		},
		now: time.Now,
	}
}

// Snapshot reads back the data retained for an already-archived period.
// It only sees rows flagged as archived and tagged with the period, so a
// period archived with immediate deletion yields empty slices.
func (s *Service) Snapshot(ctx context.Context, period string) (*Snapshot, error) {
	if _, _, err := ParsePeriod(period); err != nil {
		return nil, err
	}

	patients, err := s.patients.ListArchivedForPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	records, err := s.billing.ListArchivedForPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	charts, err := s.charts.ListArchivedForPeriod(ctx, period)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Period:       period,
		Patients:     patients,
		Billing:      records,
		WorkCharts:   charts,
		PatientCount: len(patients),
		BillingCount: len(records),
	}
	for _, rec := range records {
		snap.BillingTotal += rec.TotalAmount
	}
	return snap, nil
}

// ArchivePeriod rolls a month's live rows into the ledger. Aggregates and
// the report are computed from the selected rows before any mutation, the
// ledger row is upserted so re-archiving a period updates it in place, and
// the whole operation runs in one transaction. Only unarchived rows are
// selected, which makes a retried archive skip rows already retained by an
// earlier run.
func (s *Service) ArchivePeriod(ctx context.Context, period string, policy RetentionPolicy) (*LedgerEntry, error) {
	start, end, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	if policy != RetentionImmediateDelete && policy != RetentionRetainUntilManualDelete {
		return nil, ErrInvalidRetentionPolicy
	}

	var entry *LedgerEntry
	err = s.runInTx(ctx, func(ctx context.Context) error {
		patients, err := s.patients.ListUnarchivedInRange(ctx, start, end)
		if err != nil {
			return err
		}
		records, err := s.billing.ListUnarchivedInRange(ctx, start, end)
		if err != nil {
			return err
		}
		charts, err := s.charts.ListUnarchivedInRange(ctx, start, end)
		if err != nil {
			return err
		}
		if len(patients) == 0 && len(records) == 0 && len(charts) == 0 {
			return ErrNoRecords
		}

		now := s.now().UTC()
		entry = &LedgerEntry{
			Period:       period,
			PatientCount: len(patients),
			BillingCount: len(records),
			DeleteOption: policy.DeleteOption(),
			ArchivedAt:   now,
		}
		for _, rec := range records {
			entry.BillingTotal += rec.TotalAmount
		}
		if err := s.ledger.Upsert(ctx, entry); err != nil {
			return err
		}

		pdf, err := s.reports.Build(reportData(period, now, patients, records))
		if err != nil {
			return err
		}
		if err := s.ledger.AttachReport(ctx, period, pdf); err != nil {
			return err
		}
		entry.ReportPDF = pdf

		switch policy {
		case RetentionImmediateDelete:
			if err := s.charts.DeleteUnarchivedInRange(ctx, start, end); err != nil {
				return err
			}
			if err := s.billing.DeleteUnarchivedInRange(ctx, start, end); err != nil {
				return err
			}
			return s.patients.DeleteUnarchivedInRange(ctx, start, end)
		default:
			if err := s.charts.MarkArchived(ctx, period, start, end); err != nil {
				return err
			}
			if err := s.billing.MarkArchived(ctx, period, start, end); err != nil {
				return err
			}
			return s.patients.MarkArchived(ctx, period, start, end)
		}
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("period", period).Str("policy", string(policy)).
		Int("patients", entry.PatientCount).Int("billing", entry.BillingCount).
		Float64("total", entry.BillingTotal).Msg("period archived")
	return entry, nil
}

// PurgeArchivedPeriod deletes the rows retained for a manually-archived
// period. The ledger entry and its report survive the purge.
func (s *Service) PurgeArchivedPeriod(ctx context.Context, period string) (*PurgeResult, error) {
	if _, _, err := ParsePeriod(period); err != nil {
		return nil, err
	}
	if _, err := s.ledger.GetByPeriod(ctx, period); err != nil {
		return nil, err
	}

	var res PurgeResult
	err := s.runInTx(ctx, func(ctx context.Context) error {
		var err error
		if res.WorkCharts, err = s.charts.DeleteArchivedForPeriod(ctx, period); err != nil {
			return err
		}
		if res.Billing, err = s.billing.DeleteArchivedForPeriod(ctx, period); err != nil {
			return err
		}
		res.Patients, err = s.patients.DeleteArchivedForPeriod(ctx, period)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("period", period).Int64("patients", res.Patients).
		Int64("billing", res.Billing).Int64("workCharts", res.WorkCharts).
		Msg("archived period purged")
	return &res, nil
}

func (s *Service) ListLedger(ctx context.Context) ([]*LedgerEntry, error) {
	return s.ledger.List(ctx)
}

func (s *Service) GetLedger(ctx context.Context, period string) (*LedgerEntry, error) {
	if _, _, err := ParsePeriod(period); err != nil {
		return nil, err
	}
	return s.ledger.GetByPeriod(ctx, period)
}

// ReportPDF renders the report for a period over every row still in the
// month's range, archived or not, so a download ahead of archival shows
// the live data. The rendered blob is saved onto the ledger row when one
// exists. A period with no rows and no ledger entry is not found.
func (s *Service) ReportPDF(ctx context.Context, period string) ([]byte, error) {
	start, end, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	patients, err := s.patients.ListArchivedForPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	live, err := s.patients.ListUnarchivedInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	patients = append(patients, live...)

	records, err := s.billing.ListArchivedForPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	liveRecords, err := s.billing.ListUnarchivedInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	records = append(records, liveRecords...)

	_, ledgerErr := s.ledger.GetByPeriod(ctx, period)
	if ledgerErr != nil && !errors.Is(ledgerErr, ErrNotFound) {
		return nil, ledgerErr
	}
	if len(patients) == 0 && len(records) == 0 && ledgerErr != nil {
		return nil, ErrNotFound
	}

	pdf, err := s.reports.Build(reportData(period, s.now().UTC(), patients, records))
	if err != nil {
		return nil, err
	}
	if ledgerErr == nil {
		if err := s.ledger.AttachReport(ctx, period, pdf); err != nil {
			return nil, err
		}
	}
	return pdf, nil
}

// reportData pairs each patient with their billing record, matched by
// patient id first and exact name as a fallback.
func reportData(period string, generatedAt time.Time, patients []*patient.Patient, records []*billing.Record) report.Data {
	byID := make(map[uuid.UUID]*billing.Record, len(records))
	byName := make(map[string]*billing.Record, len(records))
	for _, rec := range records {
		if _, ok := byID[rec.PatientID]; !ok {
			byID[rec.PatientID] = rec
		}
		if _, ok := byName[rec.PatientName]; !ok {
			byName[rec.PatientName] = rec
		}
	}

	d := report.Data{
		Period:       period,
		GeneratedAt:  generatedAt,
		PatientCount: len(patients),
		BillingCount: len(records),
	}
	for _, rec := range records {
		d.BillingTotal += rec.TotalAmount
	}
	for _, p := range patients {
		row := report.Row{
			Name:          p.Name,
			Age:           p.Age,
			Department:    p.Department,
			AdmissionDate: p.AdmissionDate,
			DischargeDate: p.DischargeDate,
		}
		rec := byID[p.ID]
		if rec == nil {
			rec = byName[p.Name]
		}
		if rec != nil {
			row.HasBilling = true
			row.TotalDays = rec.TotalDays
			row.TotalAmount = rec.TotalAmount
			row.BillingStatus = rec.Status
		}
		d.Rows = append(d.Rows, row)
	}
	return d
}
