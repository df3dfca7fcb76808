package nurse

import (
	"context"
	"fmt"
	"time"

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

const nurseCols = `id, name, contact, email, shift, ward, assigned_patients,
	archived, archived_period, created_at, updated_at`

func scanNurse(row pgx.Row) (*Nurse, error) {
	var n Nurse
	err := row.Scan(&n.ID, &n.Name, &n.Contact, &n.Email, &n.Shift, &n.Ward,
		&n.AssignedPatients, &n.Archived, &n.ArchivedPeriod, &n.CreatedAt, &n.UpdatedAt)
	return &n, err
}

func (r *repoPG) Create(ctx context.Context, n *Nurse) error {
	n.ID = uuid.New()
	if n.AssignedPatients == nil {
		n.AssignedPatients = []uuid.UUID{}
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO nurse (id, name, contact, email, shift, ward, assigned_patients)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		n.ID, n.Name, n.Contact, n.Email, n.Shift, n.Ward, n.AssignedPatients)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Nurse, error) {
	return scanNurse(r.conn(ctx).QueryRow(ctx,
		`SELECT `+nurseCols+` FROM nurse WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, n *Nurse) error {
	if n.AssignedPatients == nil {
		n.AssignedPatients = []uuid.UUID{}
	}
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE nurse SET name=$2, contact=$3, email=$4, shift=$5, ward=$6,
			assigned_patients=$7, updated_at=NOW()
		WHERE id = $1`,
		n.ID, n.Name, n.Contact, n.Email, n.Shift, n.Ward, n.AssignedPatients)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM nurse WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Nurse, int, error) {
	where := ` WHERE 1=1`
	var args []interface{}
	idx := 1

	if filter.Archived != nil {
		where += fmt.Sprintf(` AND archived = $%d`, idx)
		args = append(args, *filter.Archived)
		idx++
	}
	if filter.Search != "" {
		where += fmt.Sprintf(` AND (name ILIKE $%d OR ward ILIKE $%d)`, idx, idx)
		args = append(args, "%"+filter.Search+"%")
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM nurse`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + nurseCols + ` FROM nurse` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Nurse
	for rows.Next() {
		n, err := scanNurse(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, n)
	}
	return items, total, rows.Err()
}

type chartRepoPG struct{ pool *pgxpool.Pool }

func NewChartRepoPG(pool *pgxpool.Pool) WorkChartRepository { return &chartRepoPG{pool: pool} }

func (r *chartRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const chartCols = `id, nurse_id, nurse_name, ward, shift, work_date, tasks,
	doctor_observations, archived, archived_period, created_at, updated_at`

func scanChart(row pgx.Row) (*WorkChart, error) {
	var w WorkChart
	err := row.Scan(&w.ID, &w.NurseID, &w.NurseName, &w.Ward, &w.Shift, &w.WorkDate,
		&w.Tasks, &w.DoctorObservations, &w.Archived, &w.ArchivedPeriod,
		&w.CreatedAt, &w.UpdatedAt)
	return &w, err
}

func (r *chartRepoPG) Create(ctx context.Context, w *WorkChart) error {
	w.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO work_chart (id, nurse_id, nurse_name, ward, shift, work_date, tasks, doctor_observations)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		w.ID, w.NurseID, w.NurseName, w.Ward, w.Shift, w.WorkDate, w.Tasks, w.DoctorObservations)
	return err
}

func (r *chartRepoPG) List(ctx context.Context, filter ChartFilter, limit, offset int) ([]*WorkChart, int, error) {
	where := ` WHERE 1=1`
	var args []interface{}
	idx := 1

	if filter.Archived != nil {
		where += fmt.Sprintf(` AND archived = $%d`, idx)
		args = append(args, *filter.Archived)
		idx++
	}
	if filter.NurseID != nil {
		where += fmt.Sprintf(` AND nurse_id = $%d`, idx)
		args = append(args, *filter.NurseID)
		idx++
	}
	if filter.Month != "" {
		start, end, err := monthRange(filter.Month)
		if err != nil {
			return nil, 0, err
		}
		where += fmt.Sprintf(` AND work_date >= $%d AND work_date < $%d`, idx, idx+1)
		args = append(args, start, end)
		idx += 2
	} else if filter.Date != nil {
		day := filter.Date.UTC().Truncate(24 * time.Hour)
		where += fmt.Sprintf(` AND work_date >= $%d AND work_date < $%d`, idx, idx+1)
		args = append(args, day, day.Add(24*time.Hour))
		idx += 2
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM work_chart`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + chartCols + ` FROM work_chart` + where +
		fmt.Sprintf(` ORDER BY work_date DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*WorkChart
	for rows.Next() {
		w, err := scanChart(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, w)
	}
	return items, total, rows.Err()
}

func monthRange(month string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01", month, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q: expected YYYY-MM", month)
	}
	return start, start.AddDate(0, 1, 0), nil
}
