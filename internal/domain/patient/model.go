package patient

import (
	"time"

	"github.com/google/uuid"
)

// Admission types accepted for a patient record.
const (
	AdmissionOPD = "OPD"
	AdmissionIPD = "IPD"
	AdmissionICU = "ICU"
)

// Patient maps to the patient table.
type Patient struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	UniqueID        string     `db:"unique_id" json:"uniqueId"`
	Name            string     `db:"name" json:"name"`
	Age             int        `db:"age" json:"age"`
	Gender          string     `db:"gender" json:"gender"`
	Contact         string     `db:"contact" json:"contact"`
	Address         string     `db:"address" json:"address"`
	Disease         string     `db:"disease" json:"disease"`
	Symptoms        string     `db:"symptoms" json:"symptoms"`
	Department      string     `db:"department" json:"department"`
	Room            string     `db:"room" json:"room"`
	AssignedDoctor  *string    `db:"assigned_doctor" json:"assignedDoctor,omitempty"`
	ReferenceDoctor *string    `db:"reference_doctor" json:"referenceDoctor,omitempty"`
	AdmissionType   string     `db:"admission_type" json:"admissionType"`
	AdmissionDate   time.Time  `db:"admission_date" json:"admissionDate"`
	DischargeDate   *time.Time `db:"discharge_date" json:"dischargeDate,omitempty"`
	Status          string     `db:"status" json:"status"`
	Weight          *float64   `db:"weight" json:"weight,omitempty"`
	Height          *float64   `db:"height" json:"height,omitempty"`
	BloodPressure   *string    `db:"blood_pressure" json:"bloodPressure,omitempty"`
	Archived        bool       `db:"archived" json:"isArchived"`
	ArchivedPeriod  *string    `db:"archived_period" json:"archivedMonth,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updatedAt"`
}

// ListFilter narrows List queries. Nil/empty fields are ignored.
type ListFilter struct {
	Status        string
	AdmissionType string
	Search        string
	Archived      *bool
}
