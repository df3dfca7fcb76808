package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Patient, int, error)
	// DeleteCascade removes the patient together with its billing records and
	// any nurse assignment referencing it, as one transactional unit.
	DeleteCascade(ctx context.Context, id uuid.UUID) error
	// NextUniqueID reserves the next sequential patient number.
	NextUniqueID(ctx context.Context) (string, error)
}
