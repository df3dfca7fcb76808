package nurse

import (
	"time"

	"github.com/google/uuid"
)

// Nurse maps to the nurse table.
type Nurse struct {
	ID               uuid.UUID   `db:"id" json:"id"`
	Name             string      `db:"name" json:"name"`
	Contact          string      `db:"contact" json:"contact"`
	Email            string      `db:"email" json:"email"`
	Shift            string      `db:"shift" json:"shift"`
	Ward             string      `db:"ward" json:"ward"`
	AssignedPatients []uuid.UUID `db:"assigned_patients" json:"assignedPatients"`
	Archived         bool        `db:"archived" json:"isArchived"`
	ArchivedPeriod   *string     `db:"archived_period" json:"archivedMonth,omitempty"`
	CreatedAt        time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time   `db:"updated_at" json:"updatedAt"`
}

// WorkChart maps to the work_chart table. One row records a nurse's duty
// entry for a single day.
type WorkChart struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	NurseID            uuid.UUID `db:"nurse_id" json:"nurseId"`
	NurseName          string    `db:"nurse_name" json:"nurseName"`
	Ward               string    `db:"ward" json:"ward"`
	Shift              string    `db:"shift" json:"shift"`
	WorkDate           time.Time `db:"work_date" json:"date"`
	Tasks              *string   `db:"tasks" json:"tasks,omitempty"`
	DoctorObservations *string   `db:"doctor_observations" json:"doctorObservations,omitempty"`
	Archived           bool      `db:"archived" json:"isArchived"`
	ArchivedPeriod     *string   `db:"archived_period" json:"archivedMonth,omitempty"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `db:"updated_at" json:"updatedAt"`
}

// ListFilter narrows nurse List queries.
type ListFilter struct {
	Search   string
	Archived *bool
}

// ChartFilter narrows work chart queries. Date and Month are mutually
// exclusive; Month wins when both are set.
type ChartFilter struct {
	Date     *time.Time
	Month    string
	NurseID  *uuid.UUID
	Archived *bool
}
