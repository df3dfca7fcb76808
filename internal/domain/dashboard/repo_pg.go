package dashboard

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) Stats(ctx context.Context, today time.Time) (*Stats, error) {
	dayStart := today.UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	var s Stats
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM patient WHERE archived = FALSE),
			(SELECT COUNT(*) FROM patient WHERE archived = FALSE AND admission_type = 'OPD'),
			(SELECT COUNT(*) FROM patient WHERE archived = FALSE AND admission_type = 'IPD'),
			(SELECT COUNT(*) FROM patient WHERE archived = FALSE AND admission_type = 'ICU'),
			(SELECT COUNT(*) FROM patient WHERE archived = FALSE AND admission_date >= $1 AND admission_date < $2),
			(SELECT COUNT(*) FROM patient WHERE archived = FALSE AND discharge_date >= $1 AND discharge_date < $2),
			(SELECT COUNT(*) FROM doctor WHERE archived = FALSE),
			(SELECT COUNT(*) FROM nurse WHERE archived = FALSE),
			(SELECT COALESCE(SUM(total_amount), 0) FROM billing_record WHERE archived = FALSE),
			(SELECT COUNT(*) FROM billing_record WHERE archived = FALSE AND status = 'Pending')`,
		dayStart, dayEnd).
		Scan(&s.TotalPatients, &s.OPDPatients, &s.IPDPatients, &s.ICUPatients,
			&s.AdmittedToday, &s.DischargedToday, &s.TotalDoctors, &s.TotalNurses,
			&s.TotalRevenue, &s.PendingBills)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

const patientCols = `id, unique_id, name, age, gender, contact, address, disease, symptoms,
	department, room, assigned_doctor, reference_doctor, admission_type, admission_date,
	discharge_date, status, weight, height, blood_pressure, archived, archived_period,
	created_at, updated_at`

func (r *repoPG) RecentPatients(ctx context.Context, limit int) ([]*patient.Patient, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+patientCols+` FROM patient
		WHERE archived = FALSE AND status = 'Admitted'
		ORDER BY admission_date DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*patient.Patient
	for rows.Next() {
		var p patient.Patient
		if err := rows.Scan(&p.ID, &p.UniqueID, &p.Name, &p.Age, &p.Gender, &p.Contact, &p.Address,
			&p.Disease, &p.Symptoms, &p.Department, &p.Room, &p.AssignedDoctor, &p.ReferenceDoctor,
			&p.AdmissionType, &p.AdmissionDate, &p.DischargeDate, &p.Status, &p.Weight, &p.Height,
			&p.BloodPressure, &p.Archived, &p.ArchivedPeriod, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &p)
	}
	return items, rows.Err()
}

func (r *repoPG) DailyReport(ctx context.Context, day time.Time) (*DailyReport, error) {
	dayStart := day.UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	rep := DailyReport{Date: dayStart.Format("2006-01-02")}
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM patient WHERE admission_date >= $1 AND admission_date < $2),
			(SELECT COUNT(*) FROM patient WHERE discharge_date >= $1 AND discharge_date < $2),
			(SELECT COUNT(*) FROM patient WHERE admission_type = 'OPD' AND admission_date >= $1 AND admission_date < $2),
			(SELECT COALESCE(SUM(total_amount), 0) FROM billing_record WHERE created_at >= $1 AND created_at < $2),
			(SELECT COUNT(*) FROM billing_record WHERE created_at >= $1 AND created_at < $2)`,
		dayStart, dayEnd).
		Scan(&rep.Admissions, &rep.Discharges, &rep.OPDVisits, &rep.Revenue, &rep.BillsIssued)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}
