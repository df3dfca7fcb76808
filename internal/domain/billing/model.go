package billing

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Record maps to the billing_record table. Monetary amounts are whole
// rupees stored as float64 to allow fractional charges.
type Record struct {
	ID                    uuid.UUID  `db:"id" json:"id"`
	PatientID             uuid.UUID  `db:"patient_id" json:"patientId"`
	PatientName           string     `db:"patient_name" json:"patientName"`
	AdmissionDate         time.Time  `db:"admission_date" json:"admissionDate"`
	DischargeDate         *time.Time `db:"discharge_date" json:"dischargeDate,omitempty"`
	NurseCharge           float64    `db:"nurse_charge" json:"nurseCharge"`
	HospitalCharge        float64    `db:"hospital_charge" json:"hospitalCharge"`
	ICUCharge             float64    `db:"icu_charge" json:"icuCharge"`
	RoomCharge            float64    `db:"room_charge" json:"roomCharge"`
	VisitCharge           float64    `db:"visit_charge" json:"visitCharge"`
	ReferenceDoctorCharge float64    `db:"reference_doctor_charge" json:"referenceDoctorCharge"`
	TotalDays             int        `db:"total_days" json:"totalDays"`
	TotalAmount           float64    `db:"total_amount" json:"totalAmount"`
	Status                string     `db:"status" json:"status"`
	Archived              bool       `db:"archived" json:"isArchived"`
	ArchivedPeriod        *string    `db:"archived_period" json:"archivedMonth,omitempty"`
	CreatedAt             time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt             time.Time  `db:"updated_at" json:"updatedAt"`
}

const (
	StatusPending = "Pending"
	StatusPaid    = "Paid"
)

// CalculateTotals derives TotalDays and TotalAmount from the stay span and
// the per-day charges. A stay always bills at least one day; the discharge
// date defaults to now while the patient is still admitted.
func (r *Record) CalculateTotals(now time.Time) {
	end := now
	if r.DischargeDate != nil {
		end = *r.DischargeDate
	}
	span := end.Sub(r.AdmissionDate)
	days := int(math.Ceil(span.Hours() / 24))
	if days < 1 {
		days = 1
	}
	r.TotalDays = days

	perDay := r.NurseCharge + r.HospitalCharge + r.ICUCharge + r.RoomCharge
	total := perDay*float64(days) + r.VisitCharge + r.ReferenceDoctorCharge
	if total < 0 {
		total = 0
	}
	r.TotalAmount = total
}

// ListFilter narrows billing List queries.
type ListFilter struct {
	PatientID *uuid.UUID
	Search    string
	Archived  *bool
}
