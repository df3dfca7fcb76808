package archive

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/internal/domain/nurse"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

func conn(ctx context.Context, pool *pgxpool.Pool) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return pool
}

// ledgerRepoPG persists monthly_archive rows.
type ledgerRepoPG struct{ pool *pgxpool.Pool }

func NewLedgerRepoPG(pool *pgxpool.Pool) LedgerRepository { return &ledgerRepoPG{pool: pool} }

const ledgerCols = `id, period, patient_count, billing_count, billing_total,
	delete_option, report_pdf, created_at, archived_at`

func scanLedger(row pgx.Row) (*LedgerEntry, error) {
	var e LedgerEntry
	err := row.Scan(&e.ID, &e.Period, &e.PatientCount, &e.BillingCount, &e.BillingTotal,
		&e.DeleteOption, &e.ReportPDF, &e.CreatedAt, &e.ArchivedAt)
	return &e, err
}

func (r *ledgerRepoPG) Upsert(ctx context.Context, e *LedgerEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO monthly_archive (id, period, patient_count, billing_count, billing_total, delete_option, archived_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (period) DO UPDATE SET
			patient_count = EXCLUDED.patient_count,
			billing_count = EXCLUDED.billing_count,
			billing_total = EXCLUDED.billing_total,
			delete_option = EXCLUDED.delete_option,
			archived_at = EXCLUDED.archived_at
		RETURNING id, created_at`,
		e.ID, e.Period, e.PatientCount, e.BillingCount, e.BillingTotal,
		e.DeleteOption, e.ArchivedAt).
		Scan(&e.ID, &e.CreatedAt)
}

func (r *ledgerRepoPG) GetByPeriod(ctx context.Context, period string) (*LedgerEntry, error) {
	e, err := scanLedger(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+ledgerCols+` FROM monthly_archive WHERE period = $1`, period))
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	return e, err
}

func (r *ledgerRepoPG) List(ctx context.Context) ([]*LedgerEntry, error) {
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT `+ledgerCols+` FROM monthly_archive ORDER BY period DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*LedgerEntry
	for rows.Next() {
		e, err := scanLedger(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *ledgerRepoPG) AttachReport(ctx context.Context, period string, pdf []byte) error {
	tag, err := conn(ctx, r.pool).Exec(ctx,
		`UPDATE monthly_archive SET report_pdf = $2 WHERE period = $1`, period, pdf)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// patientStorePG gives the archival engine period-scoped access to patient
// rows. Patients belong to the period of their admission date.
type patientStorePG struct{ pool *pgxpool.Pool }

func NewPatientStorePG(pool *pgxpool.Pool) PatientStore { return &patientStorePG{pool: pool} }

const patientCols = `id, unique_id, name, age, gender, contact, address, disease, symptoms,
	department, room, assigned_doctor, reference_doctor, admission_type, admission_date,
	discharge_date, status, weight, height, blood_pressure, archived, archived_period,
	created_at, updated_at`

func scanPatient(row pgx.Row) (*patient.Patient, error) {
	var p patient.Patient
	err := row.Scan(&p.ID, &p.UniqueID, &p.Name, &p.Age, &p.Gender, &p.Contact, &p.Address,
		&p.Disease, &p.Symptoms, &p.Department, &p.Room, &p.AssignedDoctor, &p.ReferenceDoctor,
		&p.AdmissionType, &p.AdmissionDate, &p.DischargeDate, &p.Status, &p.Weight, &p.Height,
		&p.BloodPressure, &p.Archived, &p.ArchivedPeriod, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (s *patientStorePG) ListUnarchivedInRange(ctx context.Context, start, end time.Time) ([]*patient.Patient, error) {
	rows, err := conn(ctx, s.pool).Query(ctx, `
		SELECT `+patientCols+` FROM patient
		WHERE archived = FALSE AND admission_date >= $1 AND admission_date < $2
		ORDER BY admission_date`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*patient.Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (s *patientStorePG) ListArchivedForPeriod(ctx context.Context, period string) ([]*patient.Patient, error) {
	rows, err := conn(ctx, s.pool).Query(ctx, `
		SELECT `+patientCols+` FROM patient
		WHERE archived = TRUE AND archived_period = $1
		ORDER BY admission_date`, period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*patient.Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (s *patientStorePG) MarkArchived(ctx context.Context, period string, start, end time.Time) error {
	_, err := conn(ctx, s.pool).Exec(ctx, `
		UPDATE patient SET archived = TRUE, archived_period = $1, updated_at = NOW()
		WHERE archived = FALSE AND admission_date >= $2 AND admission_date < $3`,
		period, start, end)
	return err
}

func (s *patientStorePG) DeleteUnarchivedInRange(ctx context.Context, start, end time.Time) error {
	_, err := conn(ctx, s.pool).Exec(ctx, `
		DELETE FROM patient
		WHERE archived = FALSE AND admission_date >= $1 AND admission_date < $2`, start, end)
	return err
}

func (s *patientStorePG) DeleteArchivedForPeriod(ctx context.Context, period string) (int64, error) {
	tag, err := conn(ctx, s.pool).Exec(ctx, `
		DELETE FROM patient WHERE archived = TRUE AND archived_period = $1`, period)
	return tag.RowsAffected(), err
}

// billingStorePG mirrors patientStorePG for billing rows, keyed on the
// record's admission date.
type billingStorePG struct{ pool *pgxpool.Pool }

func NewBillingStorePG(pool *pgxpool.Pool) BillingStore { return &billingStorePG{pool: pool} }

const billingCols = `id, patient_id, patient_name, admission_date, discharge_date,
	nurse_charge, hospital_charge, icu_charge, room_charge, visit_charge,
	reference_doctor_charge, total_days, total_amount, status,
	archived, archived_period, created_at, updated_at`

func scanBilling(row pgx.Row) (*billing.Record, error) {
	var rec billing.Record
	err := row.Scan(&rec.ID, &rec.PatientID, &rec.PatientName, &rec.AdmissionDate, &rec.DischargeDate,
		&rec.NurseCharge, &rec.HospitalCharge, &rec.ICUCharge, &rec.RoomCharge, &rec.VisitCharge,
		&rec.ReferenceDoctorCharge, &rec.TotalDays, &rec.TotalAmount, &rec.Status,
		&rec.Archived, &rec.ArchivedPeriod, &rec.CreatedAt, &rec.UpdatedAt)
	return &rec, err
}

func (s *billingStorePG) ListUnarchivedInRange(ctx context.Context, start, end time.Time) ([]*billing.Record, error) {
	rows, err := conn(ctx, s.pool).Query(ctx, `
		SELECT `+billingCols+` FROM billing_record
		WHERE archived = FALSE AND admission_date >= $1 AND admission_date < $2
		ORDER BY admission_date`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*billing.Record
	for rows.Next() {
		rec, err := scanBilling(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	return items, rows.Err()
}

func (s *billingStorePG) ListArchivedForPeriod(ctx context.Context, period string) ([]*billing.Record, error) {
	rows, err := conn(ctx, s.pool).Query(ctx, `
		SELECT `+billingCols+` FROM billing_record
		WHERE archived = TRUE AND archived_period = $1
		ORDER BY admission_date`, period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*billing.Record
	for rows.Next() {
		rec, err := scanBilling(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	return items, rows.Err()
}

func (s *billingStorePG) MarkArchived(ctx context.Context, period string, start, end time.Time) error {
	_, err := conn(ctx, s.pool).Exec(ctx, `
		UPDATE billing_record SET archived = TRUE, archived_period = $1, updated_at = NOW()
		WHERE archived = FALSE AND admission_date >= $2 AND admission_date < $3`,
		period, start, end)
	return err
}

func (s *billingStorePG) DeleteUnarchivedInRange(ctx context.Context, start, end time.Time) error {
	_, err := conn(ctx, s.pool).Exec(ctx, `
		DELETE FROM billing_record
		WHERE archived = FALSE AND admission_date >= $1 AND admission_date < $2`, start, end)
	return err
}

func (s *billingStorePG) DeleteArchivedForPeriod(ctx context.Context, period string) (int64, error) {
	tag, err := conn(ctx, s.pool).Exec(ctx, `
		DELETE FROM billing_record WHERE archived = TRUE AND archived_period = $1`, period)
	return tag.RowsAffected(), err
}

// workChartStorePG mirrors patientStorePG for work chart rows, keyed on the
// duty date.
type workChartStorePG struct{ pool *pgxpool.Pool }

func NewWorkChartStorePG(pool *pgxpool.Pool) WorkChartStore { return &workChartStorePG{pool: pool} }

const chartCols = `id, nurse_id, nurse_name, ward, shift, work_date, tasks,
	doctor_observations, archived, archived_period, created_at, updated_at`

func scanChart(row pgx.Row) (*nurse.WorkChart, error) {
	var w nurse.WorkChart
	err := row.Scan(&w.ID, &w.NurseID, &w.NurseName, &w.Ward, &w.Shift, &w.WorkDate,
		&w.Tasks, &w.DoctorObservations, &w.Archived, &w.ArchivedPeriod,
		&w.CreatedAt, &w.UpdatedAt)
	return &w, err
}

func (s *workChartStorePG) ListUnarchivedInRange(ctx context.Context, start, end time.Time) ([]*nurse.WorkChart, error) {
	rows, err := conn(ctx, s.pool).Query(ctx, `
		SELECT `+chartCols+` FROM work_chart
		WHERE archived = FALSE AND work_date >= $1 AND work_date < $2
		ORDER BY work_date`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*nurse.WorkChart
	for rows.Next() {
		w, err := scanChart(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	return items, rows.Err()
}

func (s *workChartStorePG) ListArchivedForPeriod(ctx context.Context, period string) ([]*nurse.WorkChart, error) {
	rows, err := conn(ctx, s.pool).Query(ctx, `
		SELECT `+chartCols+` FROM work_chart
		WHERE archived = TRUE AND archived_period = $1
		ORDER BY work_date`, period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*nurse.WorkChart
	for rows.Next() {
		w, err := scanChart(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	return items, rows.Err()
}

func (s *workChartStorePG) MarkArchived(ctx context.Context, period string, start, end time.Time) error {
	_, err := conn(ctx, s.pool).Exec(ctx, `
		UPDATE work_chart SET archived = TRUE, archived_period = $1, updated_at = NOW()
		WHERE archived = FALSE AND work_date >= $2 AND work_date < $3`,
		period, start, end)
	return err
}

func (s *workChartStorePG) DeleteUnarchivedInRange(ctx context.Context, start, end time.Time) error {
	_, err := conn(ctx, s.pool).Exec(ctx, `
		DELETE FROM work_chart
		WHERE archived = FALSE AND work_date >= $1 AND work_date < $2`, start, end)
	return err
}

func (s *workChartStorePG) DeleteArchivedForPeriod(ctx context.Context, period string) (int64, error) {
	tag, err := conn(ctx, s.pool).Exec(ctx, `
		DELETE FROM work_chart WHERE archived = TRUE AND archived_period = $1`, period)
	return tag.RowsAffected(), err
}
