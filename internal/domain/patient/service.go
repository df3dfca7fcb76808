package patient

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var validAdmissionTypes = map[string]bool{
	AdmissionOPD: true, AdmissionIPD: true, AdmissionICU: true,
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Age <= 0 {
		return fmt.Errorf("age must be positive")
	}
	if p.AdmissionType == "" || !validAdmissionTypes[p.AdmissionType] {
		return fmt.Errorf("admission_type must be one of OPD, IPD, ICU")
	}
	if p.AdmissionDate.IsZero() {
		return fmt.Errorf("admission_date is required")
	}
	if p.Status == "" {
		p.Status = "Admitted"
	}

	uid, err := s.repo.NextUniqueID(ctx)
	if err != nil {
		return err
	}
	p.UniqueID = uid

	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Patient) error {
	if p.AdmissionType != "" && !validAdmissionTypes[p.AdmissionType] {
		return fmt.Errorf("admission_type must be one of OPD, IPD, ICU")
	}
	return s.repo.Update(ctx, p)
}

// Discharge marks the patient discharged as of now.
func (s *Service) Discharge(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	p.Status = "Discharged"
	p.DischargeDate = &now
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCascade(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, filter, limit, offset)
}
