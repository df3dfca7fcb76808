package dashboard

// Stats is the aggregate view served to the admin landing page. Counts
// only consider live (unarchived) rows.
type Stats struct {
	TotalPatients   int     `json:"totalPatients"`
	OPDPatients     int     `json:"opdPatients"`
	IPDPatients     int     `json:"ipdPatients"`
	ICUPatients     int     `json:"icuPatients"`
	AdmittedToday   int     `json:"admittedToday"`
	DischargedToday int     `json:"dischargedToday"`
	TotalDoctors    int     `json:"totalDoctors"`
	TotalNurses     int     `json:"totalNurses"`
	TotalRevenue    float64 `json:"totalRevenue"`
	PendingBills    int     `json:"pendingBills"`
}

// DailyReport summarises one day's admissions, discharges and revenue.
type DailyReport struct {
	Date        string  `json:"date"`
	Admissions  int     `json:"admissions"`
	Discharges  int     `json:"discharges"`
	OPDVisits   int     `json:"opdVisits"`
	Revenue     float64 `json:"revenue"`
	BillsIssued int     `json:"billsIssued"`
}
