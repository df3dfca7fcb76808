package dashboard

import (
	"context"
	"time"

	"github.com/hms/hms/internal/domain/patient"
)

type Repository interface {
	Stats(ctx context.Context, today time.Time) (*Stats, error)
	RecentPatients(ctx context.Context, limit int) ([]*patient.Patient, error)
	DailyReport(ctx context.Context, day time.Time) (*DailyReport, error)
}
