package nurse

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	repo   Repository
	charts WorkChartRepository
}

func NewService(repo Repository, charts WorkChartRepository) *Service {
	return &Service{repo: repo, charts: charts}
}

func (s *Service) Create(ctx context.Context, n *Nurse) error {
	if n.Name == "" {
		return fmt.Errorf("name is required")
	}
	if n.Ward == "" {
		return fmt.Errorf("ward is required")
	}
	if n.Shift == "" {
		return fmt.Errorf("shift is required")
	}
	return s.repo.Create(ctx, n)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Nurse, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, n *Nurse) error {
	return s.repo.Update(ctx, n)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Nurse, int, error) {
	return s.repo.List(ctx, filter, limit, offset)
}

// AddWorkChart records a duty entry. The nurse name and ward are resolved
// from the nurse record when the caller leaves them blank.
func (s *Service) AddWorkChart(ctx context.Context, w *WorkChart) error {
	if w.NurseID == uuid.Nil {
		return fmt.Errorf("nurseId is required")
	}
	if w.WorkDate.IsZero() {
		return fmt.Errorf("date is required")
	}
	if w.NurseName == "" || w.Ward == "" {
		n, err := s.repo.GetByID(ctx, w.NurseID)
		if err != nil {
			return fmt.Errorf("nurse not found")
		}
		if w.NurseName == "" {
			w.NurseName = n.Name
		}
		if w.Ward == "" {
			w.Ward = n.Ward
		}
		if w.Shift == "" {
			w.Shift = n.Shift
		}
	}
	return s.charts.Create(ctx, w)
}

func (s *Service) ListWorkCharts(ctx context.Context, filter ChartFilter, limit, offset int) ([]*WorkChart, int, error) {
	return s.charts.List(ctx, filter, limit, offset)
}
