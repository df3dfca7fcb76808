package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Create(ctx context.Context, rec *Record) error {
	if rec.PatientID == uuid.Nil {
		return fmt.Errorf("patientId is required")
	}
	if rec.PatientName == "" {
		return fmt.Errorf("patientName is required")
	}
	if rec.AdmissionDate.IsZero() {
		return fmt.Errorf("admissionDate is required")
	}
	if rec.Status == "" {
		rec.Status = StatusPending
	}
	rec.CalculateTotals(s.now())
	return s.repo.Create(ctx, rec)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	return s.repo.GetByID(ctx, id)
}

// Update recalculates totals after applying changes so the stored amount
// always reflects the current charges and stay span.
func (s *Service) Update(ctx context.Context, rec *Record) error {
	rec.CalculateTotals(s.now())
	return s.repo.Update(ctx, rec)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Record, int, error) {
	return s.repo.List(ctx, filter, limit, offset)
}
