package nurse

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, n *Nurse) error
	GetByID(ctx context.Context, id uuid.UUID) (*Nurse, error)
	Update(ctx context.Context, n *Nurse) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Nurse, int, error)
}

type WorkChartRepository interface {
	Create(ctx context.Context, w *WorkChart) error
	List(ctx context.Context, filter ChartFilter, limit, offset int) ([]*WorkChart, int, error)
}
