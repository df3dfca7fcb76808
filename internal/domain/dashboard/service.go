package dashboard

import (
	"context"
	"time"

	"github.com/hms/hms/internal/domain/patient"
)

const recentPatientLimit = 10

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx, s.now())
}

func (s *Service) RecentPatients(ctx context.Context) ([]*patient.Patient, error) {
	return s.repo.RecentPatients(ctx, recentPatientLimit)
}

// DailyReport summarises the given day, defaulting to today.
func (s *Service) DailyReport(ctx context.Context, day *time.Time) (*DailyReport, error) {
	d := s.now()
	if day != nil {
		d = *day
	}
	return s.repo.DailyReport(ctx, d)
}
