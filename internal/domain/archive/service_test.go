package archive

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/internal/domain/nurse"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/platform/report"
)

type mockLedger struct {
	entries map[string]*LedgerEntry
}

func newMockLedger() *mockLedger {
	return &mockLedger{entries: make(map[string]*LedgerEntry)}
}

func (m *mockLedger) Upsert(ctx context.Context, e *LedgerEntry) error {
	if existing, ok := m.entries[e.Period]; ok {
		e.ID = existing.ID
		e.CreatedAt = existing.CreatedAt
	} else {
		e.ID = uuid.New()
		e.CreatedAt = time.Now()
	}
	cp := *e
	m.entries[e.Period] = &cp
	return nil
}

func (m *mockLedger) GetByPeriod(ctx context.Context, period string) (*LedgerEntry, error) {
	e, ok := m.entries[period]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

func (m *mockLedger) List(ctx context.Context) ([]*LedgerEntry, error) {
	var out []*LedgerEntry
	for _, e := range m.entries {
		out = append(out, e)
	}
	return out, nil
}

func (m *mockLedger) AttachReport(ctx context.Context, period string, pdf []byte) error {
	e, ok := m.entries[period]
	if !ok {
		return ErrNotFound
	}
	e.ReportPDF = pdf
	return nil
}

type mockPatientStore struct {
	rows []*patient.Patient
}

func (m *mockPatientStore) ListUnarchivedInRange(ctx context.Context, start, end time.Time) ([]*patient.Patient, error) {
	var out []*patient.Patient
	for _, p := range m.rows {
		if !p.Archived && !p.AdmissionDate.Before(start) && p.AdmissionDate.Before(end) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPatientStore) ListArchivedForPeriod(ctx context.Context, period string) ([]*patient.Patient, error) {
	var out []*patient.Patient
	for _, p := range m.rows {
		if p.Archived && p.ArchivedPeriod != nil && *p.ArchivedPeriod == period {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPatientStore) MarkArchived(ctx context.Context, period string, start, end time.Time) error {
	for _, p := range m.rows {
		if !p.Archived && !p.AdmissionDate.Before(start) && p.AdmissionDate.Before(end) {
			p.Archived = true
			tag := period
			p.ArchivedPeriod = &tag
		}
	}
	return nil
}

func (m *mockPatientStore) DeleteUnarchivedInRange(ctx context.Context, start, end time.Time) error {
	var kept []*patient.Patient
	for _, p := range m.rows {
		if !p.Archived && !p.AdmissionDate.Before(start) && p.AdmissionDate.Before(end) {
			continue
		}
		kept = append(kept, p)
	}
	m.rows = kept
	return nil
}

func (m *mockPatientStore) DeleteArchivedForPeriod(ctx context.Context, period string) (int64, error) {
	var kept []*patient.Patient
	var n int64
	for _, p := range m.rows {
		if p.Archived && p.ArchivedPeriod != nil && *p.ArchivedPeriod == period {
			n++
			continue
		}
		kept = append(kept, p)
	}
	m.rows = kept
	return n, nil
}

type mockBillingStore struct {
	rows []*billing.Record
}

func (m *mockBillingStore) ListUnarchivedInRange(ctx context.Context, start, end time.Time) ([]*billing.Record, error) {
	var out []*billing.Record
	for _, rec := range m.rows {
		if !rec.Archived && !rec.AdmissionDate.Before(start) && rec.AdmissionDate.Before(end) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *mockBillingStore) ListArchivedForPeriod(ctx context.Context, period string) ([]*billing.Record, error) {
	var out []*billing.Record
	for _, rec := range m.rows {
		if rec.Archived && rec.ArchivedPeriod != nil && *rec.ArchivedPeriod == period {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *mockBillingStore) MarkArchived(ctx context.Context, period string, start, end time.Time) error {
	for _, rec := range m.rows {
		if !rec.Archived && !rec.AdmissionDate.Before(start) && rec.AdmissionDate.Before(end) {
			rec.Archived = true
			tag := period
			rec.ArchivedPeriod = &tag
		}
	}
	return nil
}

func (m *mockBillingStore) DeleteUnarchivedInRange(ctx context.Context, start, end time.Time) error {
	var kept []*billing.Record
	for _, rec := range m.rows {
		if !rec.Archived && !rec.AdmissionDate.Before(start) && rec.AdmissionDate.Before(end) {
			continue
		}
		kept = append(kept, rec)
	}
	m.rows = kept
	return nil
}

func (m *mockBillingStore) DeleteArchivedForPeriod(ctx context.Context, period string) (int64, error) {
	var kept []*billing.Record
	var n int64
	for _, rec := range m.rows {
		if rec.Archived && rec.ArchivedPeriod != nil && *rec.ArchivedPeriod == period {
			n++
			continue
		}
		kept = append(kept, rec)
	}
	m.rows = kept
	return n, nil
}

type mockChartStore struct {
	rows []*nurse.WorkChart
}

func (m *mockChartStore) ListUnarchivedInRange(ctx context.Context, start, end time.Time) ([]*nurse.WorkChart, error) {
	var out []*nurse.WorkChart
	for _, w := range m.rows {
		if !w.Archived && !w.WorkDate.Before(start) && w.WorkDate.Before(end) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *mockChartStore) ListArchivedForPeriod(ctx context.Context, period string) ([]*nurse.WorkChart, error) {
	var out []*nurse.WorkChart
	for _, w := range m.rows {
		if w.Archived && w.ArchivedPeriod != nil && *w.ArchivedPeriod == period {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *mockChartStore) MarkArchived(ctx context.Context, period string, start, end time.Time) error {
	for _, w := range m.rows {
		if !w.Archived && !w.WorkDate.Before(start) && w.WorkDate.Before(end) {
			w.Archived = true
			tag := period
			w.ArchivedPeriod = &tag
		}
	}
	return nil
}

func (m *mockChartStore) DeleteUnarchivedInRange(ctx context.Context, start, end time.Time) error {
	var kept []*nurse.WorkChart
	for _, w := range m.rows {
		if !w.Archived && !w.WorkDate.Before(start) && w.WorkDate.Before(end) {
			continue
		}
		kept = append(kept, w)
	}
	m.rows = kept
	return nil
}

func (m *mockChartStore) DeleteArchivedForPeriod(ctx context.Context, period string) (int64, error) {
	var kept []*nurse.WorkChart
	var n int64
	for _, w := range m.rows {
		if w.Archived && w.ArchivedPeriod != nil && *w.ArchivedPeriod == period {
			n++
			continue
		}
		kept = append(kept, w)
	}
	m.rows = kept
	return n, nil
}

type stubBuilder struct {
	lastData report.Data
}

func (b *stubBuilder) Build(d report.Data) ([]byte, error) {
	b.lastData = d
	return []byte("%PDF-stub"), nil
}

func newTestService(ledger *mockLedger, ps *mockPatientStore, bs *mockBillingStore, cs *mockChartStore, builder ReportBuilder) *Service {
	return &Service{
		ledger:   ledger,
		patients: ps,
		billing:  bs,
		charts:   cs,
		reports:  builder,
		runInTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
		now: func() time.Time { return time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC) },
	}
}

func marchPatient(name string, day int) *patient.Patient {
	return &patient.Patient{
		ID:            uuid.New(),
		Name:          name,
		Age:           30,
		AdmissionType: patient.AdmissionIPD,
		AdmissionDate: time.Date(2025, 3, day, 12, 0, 0, 0, time.UTC),
		Status:        "Admitted",
	}
}

func marchBilling(p *patient.Patient, amount float64) *billing.Record {
	return &billing.Record{
		ID:            uuid.New(),
		PatientID:     p.ID,
		PatientName:   p.Name,
		AdmissionDate: p.AdmissionDate,
		TotalDays:     2,
		TotalAmount:   amount,
		Status:        billing.StatusPending,
	}
}

func TestArchivePeriodManualRetainsRows(t *testing.T) {
	p1 := marchPatient("Asha", 5)
	p2 := marchPatient("Vikram", 20)
	ps := &mockPatientStore{rows: []*patient.Patient{p1, p2}}
	bs := &mockBillingStore{rows: []*billing.Record{marchBilling(p1, 3000), marchBilling(p2, 4500)}}
	cs := &mockChartStore{}
	ledger := newMockLedger()
	svc := newTestService(ledger, ps, bs, cs, &stubBuilder{})

	entry, err := svc.ArchivePeriod(context.Background(), "2025-03", RetentionRetainUntilManualDelete)
	if err != nil {
		t.Fatalf("ArchivePeriod failed: %v", err)
	}
	if entry.PatientCount != 2 || entry.BillingCount != 2 {
		t.Errorf("counts = (%d, %d), want (2, 2)", entry.PatientCount, entry.BillingCount)
	}
	if entry.BillingTotal != 7500 {
		t.Errorf("billing total = %.2f, want 7500", entry.BillingTotal)
	}
	if entry.DeleteOption != "manual" {
		t.Errorf("delete option = %q, want manual", entry.DeleteOption)
	}

	// Rows survive, flagged and tagged.
	if len(ps.rows) != 2 {
		t.Fatalf("expected patient rows retained, got %d", len(ps.rows))
	}
	for _, p := range ps.rows {
		if !p.Archived || p.ArchivedPeriod == nil || *p.ArchivedPeriod != "2025-03" {
			t.Errorf("patient %s not tagged: archived=%v period=%v", p.Name, p.Archived, p.ArchivedPeriod)
		}
	}

	snap, err := svc.Snapshot(context.Background(), "2025-03")
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if snap.PatientCount != 2 || snap.BillingTotal != 7500 {
		t.Errorf("snapshot = (%d patients, %.2f total)", snap.PatientCount, snap.BillingTotal)
	}
}

func TestArchivePeriodAutoDeletesRows(t *testing.T) {
	p1 := marchPatient("Asha", 5)
	ps := &mockPatientStore{rows: []*patient.Patient{p1}}
	bs := &mockBillingStore{rows: []*billing.Record{marchBilling(p1, 3000)}}
	cs := &mockChartStore{}
	ledger := newMockLedger()
	svc := newTestService(ledger, ps, bs, cs, &stubBuilder{})

	entry, err := svc.ArchivePeriod(context.Background(), "2025-03", RetentionImmediateDelete)
	if err != nil {
		t.Fatalf("ArchivePeriod failed: %v", err)
	}
	if entry.BillingTotal != 3000 {
		t.Errorf("billing total = %.2f, want 3000", entry.BillingTotal)
	}
	if len(ps.rows) != 0 || len(bs.rows) != 0 {
		t.Errorf("expected source rows deleted, got %d patients %d billing", len(ps.rows), len(bs.rows))
	}

	// The ledger and its report survive the deletion.
	stored, err := svc.GetLedger(context.Background(), "2025-03")
	if err != nil {
		t.Fatalf("GetLedger failed: %v", err)
	}
	if len(stored.ReportPDF) == 0 {
		t.Error("expected report attached to ledger")
	}

	snap, err := svc.Snapshot(context.Background(), "2025-03")
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if snap.PatientCount != 0 {
		t.Errorf("snapshot after auto archive should be empty, got %d patients", snap.PatientCount)
	}
}

func TestArchivePeriodIsIdempotent(t *testing.T) {
	p1 := marchPatient("Asha", 5)
	ps := &mockPatientStore{rows: []*patient.Patient{p1}}
	bs := &mockBillingStore{rows: []*billing.Record{marchBilling(p1, 3000)}}
	cs := &mockChartStore{}
	ledger := newMockLedger()
	svc := newTestService(ledger, ps, bs, cs, &stubBuilder{})

	if _, err := svc.ArchivePeriod(context.Background(), "2025-03", RetentionRetainUntilManualDelete); err != nil {
		t.Fatalf("first archive failed: %v", err)
	}

	// New row trickles in for the same month after the first run.
	late := marchPatient("Meena", 28)
	ps.rows = append(ps.rows, late)

	entry, err := svc.ArchivePeriod(context.Background(), "2025-03", RetentionRetainUntilManualDelete)
	if err != nil {
		t.Fatalf("re-archive failed: %v", err)
	}
	// Only the late row is selected; already-retained rows are untouched.
	if entry.PatientCount != 1 {
		t.Errorf("re-archive patient count = %d, want 1", entry.PatientCount)
	}
	if len(ledger.entries) != 1 {
		t.Errorf("expected single ledger row per period, got %d", len(ledger.entries))
	}

	snap, _ := svc.Snapshot(context.Background(), "2025-03")
	if snap.PatientCount != 2 {
		t.Errorf("all archived rows carry the period tag, got %d", snap.PatientCount)
	}
}

func TestArchivePeriodNoRecords(t *testing.T) {
	svc := newTestService(newMockLedger(), &mockPatientStore{}, &mockBillingStore{}, &mockChartStore{}, &stubBuilder{})

	_, err := svc.ArchivePeriod(context.Background(), "2025-03", RetentionImmediateDelete)
	if !errors.Is(err, ErrNoRecords) {
		t.Errorf("expected ErrNoRecords, got %v", err)
	}
}

func TestArchivePeriodRejectsBadInput(t *testing.T) {
	svc := newTestService(newMockLedger(), &mockPatientStore{}, &mockBillingStore{}, &mockChartStore{}, &stubBuilder{})

	if _, err := svc.ArchivePeriod(context.Background(), "2025-3", RetentionImmediateDelete); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}
	if _, err := svc.ArchivePeriod(context.Background(), "2025-03", RetentionPolicy("shred")); !errors.Is(err, ErrInvalidRetentionPolicy) {
		t.Errorf("expected ErrInvalidRetentionPolicy, got %v", err)
	}
}

func TestPurgePreservesLedger(t *testing.T) {
	p1 := marchPatient("Asha", 5)
	ps := &mockPatientStore{rows: []*patient.Patient{p1}}
	bs := &mockBillingStore{rows: []*billing.Record{marchBilling(p1, 3000)}}
	cs := &mockChartStore{}
	ledger := newMockLedger()
	svc := newTestService(ledger, ps, bs, cs, &stubBuilder{})

	if _, err := svc.ArchivePeriod(context.Background(), "2025-03", RetentionRetainUntilManualDelete); err != nil {
		t.Fatalf("archive failed: %v", err)
	}

	res, err := svc.PurgeArchivedPeriod(context.Background(), "2025-03")
	if err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if res.Patients != 1 || res.Billing != 1 {
		t.Errorf("purge result = %+v, want 1 patient and 1 billing row", res)
	}
	if len(ps.rows) != 0 || len(bs.rows) != 0 {
		t.Error("expected retained rows removed by purge")
	}

	entry, err := svc.GetLedger(context.Background(), "2025-03")
	if err != nil {
		t.Fatalf("ledger should survive purge: %v", err)
	}
	if entry.PatientCount != 1 || entry.BillingTotal != 3000 {
		t.Errorf("ledger aggregates changed by purge: %+v", entry)
	}
	if len(entry.ReportPDF) == 0 {
		t.Error("report should survive purge")
	}
}

func TestPurgeUnknownPeriod(t *testing.T) {
	svc := newTestService(newMockLedger(), &mockPatientStore{}, &mockBillingStore{}, &mockChartStore{}, &stubBuilder{})

	if _, err := svc.PurgeArchivedPeriod(context.Background(), "2019-01"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.PurgeArchivedPeriod(context.Background(), "bad"); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestArchiveSelectsOnlyRequestedMonth(t *testing.T) {
	march := marchPatient("Asha", 15)
	april := &patient.Patient{
		ID:            uuid.New(),
		Name:          "Ravi",
		Age:           50,
		AdmissionType: patient.AdmissionOPD,
		AdmissionDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	ps := &mockPatientStore{rows: []*patient.Patient{march, april}}
	svc := newTestService(newMockLedger(), ps, &mockBillingStore{}, &mockChartStore{}, &stubBuilder{})

	entry, err := svc.ArchivePeriod(context.Background(), "2025-03", RetentionImmediateDelete)
	if err != nil {
		t.Fatalf("archive failed: %v", err)
	}
	if entry.PatientCount != 1 {
		t.Errorf("patient count = %d, want only the March admission", entry.PatientCount)
	}
	if len(ps.rows) != 1 || ps.rows[0].Name != "Ravi" {
		t.Errorf("the April 1st admission must not be touched by a March archive")
	}
}

func TestReportDataMatchesBillingToPatients(t *testing.T) {
	p1 := marchPatient("Asha", 5)
	p2 := marchPatient("Vikram", 10)
	rec := marchBilling(p1, 2500)
	builder := &stubBuilder{}
	ps := &mockPatientStore{rows: []*patient.Patient{p1, p2}}
	bs := &mockBillingStore{rows: []*billing.Record{rec}}
	svc := newTestService(newMockLedger(), ps, bs, &mockChartStore{}, builder)

	if _, err := svc.ArchivePeriod(context.Background(), "2025-03", RetentionRetainUntilManualDelete); err != nil {
		t.Fatalf("archive failed: %v", err)
	}

	d := builder.lastData
	if len(d.Rows) != 2 {
		t.Fatalf("expected 2 report rows, got %d", len(d.Rows))
	}
	if !d.Rows[0].HasBilling || d.Rows[0].TotalAmount != 2500 {
		t.Errorf("Asha's row should carry her billing record: %+v", d.Rows[0])
	}
	if d.Rows[1].HasBilling {
		t.Errorf("Vikram has no billing record, row = %+v", d.Rows[1])
	}
}

func TestReportPDFRendersLiveRowsBeforeArchival(t *testing.T) {
	p1 := marchPatient("Asha", 5)
	ps := &mockPatientStore{rows: []*patient.Patient{p1}}
	builder := &stubBuilder{}
	svc := newTestService(newMockLedger(), ps, &mockBillingStore{}, &mockChartStore{}, builder)

	pdf, err := svc.ReportPDF(context.Background(), "2025-03")
	if err != nil {
		t.Fatalf("ReportPDF failed: %v", err)
	}
	if len(pdf) == 0 {
		t.Error("expected rendered PDF bytes")
	}
	if builder.lastData.PatientCount != 1 {
		t.Errorf("report covered %d patients, want the live March row", builder.lastData.PatientCount)
	}
}

func TestReportPDFSavesOntoLedger(t *testing.T) {
	p1 := marchPatient("Asha", 5)
	ps := &mockPatientStore{rows: []*patient.Patient{p1}}
	ledger := newMockLedger()
	svc := newTestService(ledger, ps, &mockBillingStore{}, &mockChartStore{}, &stubBuilder{})

	if _, err := svc.ArchivePeriod(context.Background(), "2025-03", RetentionRetainUntilManualDelete); err != nil {
		t.Fatalf("archive failed: %v", err)
	}
	ledger.entries["2025-03"].ReportPDF = nil

	pdf, err := svc.ReportPDF(context.Background(), "2025-03")
	if err != nil {
		t.Fatalf("ReportPDF failed: %v", err)
	}
	if string(ledger.entries["2025-03"].ReportPDF) != string(pdf) {
		t.Error("rendered report should be saved onto the ledger row")
	}
}

func TestReportPDFUnknownEmptyPeriod(t *testing.T) {
	svc := newTestService(newMockLedger(), &mockPatientStore{}, &mockBillingStore{}, &mockChartStore{}, &stubBuilder{})

	if _, err := svc.ReportPDF(context.Background(), "2019-01"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
