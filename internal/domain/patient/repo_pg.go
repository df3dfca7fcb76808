package patient

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

const patientCols = `id, unique_id, name, age, gender, contact, address, disease, symptoms,
	department, room, assigned_doctor, reference_doctor, admission_type,
	admission_date, discharge_date, status, weight, height, blood_pressure,
	archived, archived_period, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.UniqueID, &p.Name, &p.Age, &p.Gender, &p.Contact, &p.Address,
		&p.Disease, &p.Symptoms, &p.Department, &p.Room, &p.AssignedDoctor, &p.ReferenceDoctor,
		&p.AdmissionType, &p.AdmissionDate, &p.DischargeDate, &p.Status,
		&p.Weight, &p.Height, &p.BloodPressure,
		&p.Archived, &p.ArchivedPeriod, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient (id, unique_id, name, age, gender, contact, address, disease, symptoms,
			department, room, assigned_doctor, reference_doctor, admission_type,
			admission_date, discharge_date, status, weight, height, blood_pressure)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)`,
		p.ID, p.UniqueID, p.Name, p.Age, p.Gender, p.Contact, p.Address, p.Disease, p.Symptoms,
		p.Department, p.Room, p.AssignedDoctor, p.ReferenceDoctor, p.AdmissionType,
		p.AdmissionDate, p.DischargeDate, p.Status, p.Weight, p.Height, p.BloodPressure)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET name=$2, age=$3, gender=$4, contact=$5, address=$6, disease=$7,
			symptoms=$8, department=$9, room=$10, assigned_doctor=$11, reference_doctor=$12,
			admission_type=$13, admission_date=$14, discharge_date=$15, status=$16,
			weight=$17, height=$18, blood_pressure=$19, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.Age, p.Gender, p.Contact, p.Address, p.Disease,
		p.Symptoms, p.Department, p.Room, p.AssignedDoctor, p.ReferenceDoctor,
		p.AdmissionType, p.AdmissionDate, p.DischargeDate, p.Status,
		p.Weight, p.Height, p.BloodPressure)
	return err
}

func (r *repoPG) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Patient, int, error) {
	where := ` WHERE 1=1`
	var args []interface{}
	idx := 1

	if filter.Archived != nil {
		where += fmt.Sprintf(` AND archived = $%d`, idx)
		args = append(args, *filter.Archived)
		idx++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(` AND status = $%d`, idx)
		args = append(args, filter.Status)
		idx++
	}
	if filter.AdmissionType != "" {
		where += fmt.Sprintf(` AND admission_type = $%d`, idx)
		args = append(args, filter.AdmissionType)
		idx++
	}
	if filter.Search != "" {
		where += fmt.Sprintf(` AND (name ILIKE $%d OR contact ILIKE $%d)`, idx, idx)
		args = append(args, "%"+filter.Search+"%")
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + patientCols + ` FROM patient` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

// DeleteCascade removes the patient's billing records, pulls the patient out
// of every nurse's assigned set, and deletes the patient row, all in one
// transaction.
func (r *repoPG) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return db.RunInTx(ctx, r.pool, func(ctx context.Context) error {
		conn := r.conn(ctx)
		if _, err := conn.Exec(ctx, `DELETE FROM billing_record WHERE patient_id = $1`, id); err != nil {
			return fmt.Errorf("delete billing records: %w", err)
		}
		if _, err := conn.Exec(ctx,
			`UPDATE nurse SET assigned_patients = array_remove(assigned_patients, $1), updated_at = NOW()
			 WHERE $1 = ANY(assigned_patients)`, id); err != nil {
			return fmt.Errorf("clear nurse assignments: %w", err)
		}
		if _, err := conn.Exec(ctx, `DELETE FROM patient WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete patient: %w", err)
		}
		return nil
	})
}

func (r *repoPG) NextUniqueID(ctx context.Context) (string, error) {
	var n int64
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO counter (name, sequence_value) VALUES ('patient_id', 1)
		ON CONFLICT (name) DO UPDATE SET sequence_value = counter.sequence_value + 1
		RETURNING sequence_value`).Scan(&n)
	if err != nil {
		return "", fmt.Errorf("advance patient counter: %w", err)
	}
	return fmt.Sprintf("PAT%06d", n), nil
}
