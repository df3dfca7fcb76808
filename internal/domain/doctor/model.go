package doctor

import (
	"time"

	"github.com/google/uuid"
)

// Doctor maps to the doctor table.
type Doctor struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Specialization string    `db:"specialization" json:"specialization"`
	Contact        string    `db:"contact" json:"contact"`
	Email          string    `db:"email" json:"email"`
	Department     string    `db:"department" json:"department"`
	Qualifications string    `db:"qualifications" json:"qualifications"`
	Availability   string    `db:"availability" json:"availability"`
	Archived       bool      `db:"archived" json:"isArchived"`
	ArchivedPeriod *string   `db:"archived_period" json:"archivedMonth,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// ListFilter narrows List queries. Nil/empty fields are ignored.
type ListFilter struct {
	Search   string
	Archived *bool
}
