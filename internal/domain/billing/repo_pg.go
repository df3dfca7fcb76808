package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

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

const billingCols = `id, patient_id, patient_name, admission_date, discharge_date,
	nurse_charge, hospital_charge, icu_charge, room_charge, visit_charge,
	reference_doctor_charge, total_days, total_amount, status,
	archived, archived_period, created_at, updated_at`

func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.PatientID, &rec.PatientName, &rec.AdmissionDate, &rec.DischargeDate,
		&rec.NurseCharge, &rec.HospitalCharge, &rec.ICUCharge, &rec.RoomCharge, &rec.VisitCharge,
		&rec.ReferenceDoctorCharge, &rec.TotalDays, &rec.TotalAmount, &rec.Status,
		&rec.Archived, &rec.ArchivedPeriod, &rec.CreatedAt, &rec.UpdatedAt)
	return &rec, err
}

func (r *repoPG) Create(ctx context.Context, rec *Record) error {
	rec.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO billing_record (id, patient_id, patient_name, admission_date, discharge_date,
			nurse_charge, hospital_charge, icu_charge, room_charge, visit_charge,
			reference_doctor_charge, total_days, total_amount, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		rec.ID, rec.PatientID, rec.PatientName, rec.AdmissionDate, rec.DischargeDate,
		rec.NurseCharge, rec.HospitalCharge, rec.ICUCharge, rec.RoomCharge, rec.VisitCharge,
		rec.ReferenceDoctorCharge, rec.TotalDays, rec.TotalAmount, rec.Status)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	return scanRecord(r.conn(ctx).QueryRow(ctx,
		`SELECT `+billingCols+` FROM billing_record WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, rec *Record) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE billing_record SET patient_name=$2, admission_date=$3, discharge_date=$4,
			nurse_charge=$5, hospital_charge=$6, icu_charge=$7, room_charge=$8,
			visit_charge=$9, reference_doctor_charge=$10, total_days=$11,
			total_amount=$12, status=$13, updated_at=NOW()
		WHERE id = $1`,
		rec.ID, rec.PatientName, rec.AdmissionDate, rec.DischargeDate,
		rec.NurseCharge, rec.HospitalCharge, rec.ICUCharge, rec.RoomCharge,
		rec.VisitCharge, rec.ReferenceDoctorCharge, rec.TotalDays,
		rec.TotalAmount, rec.Status)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM billing_record WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Record, int, error) {
	where := ` WHERE 1=1`
	var args []interface{}
	idx := 1

	if filter.Archived != nil {
		where += fmt.Sprintf(` AND archived = $%d`, idx)
		args = append(args, *filter.Archived)
		idx++
	}
	if filter.PatientID != nil {
		where += fmt.Sprintf(` AND patient_id = $%d`, idx)
		args = append(args, *filter.PatientID)
		idx++
	}
	if filter.Search != "" {
		where += fmt.Sprintf(` AND patient_name ILIKE $%d`, idx)
		args = append(args, "%"+filter.Search+"%")
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM billing_record`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + billingCols + ` FROM billing_record` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rec)
	}
	return items, total, rows.Err()
}
