package models

// Doctor is a channeling doctor as served by the upstream API.
type Doctor struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Specialty      string     `json:"specialty"`
	Hospital       string     `json:"hospital"`
	Fee            float64    `json:"fee"`
	Rating         float64    `json:"rating"`
	AvailableSlots []TimeSlot `json:"availableSlots"`
}

// TimeSlot is one bookable slot on a doctor's schedule.
type TimeSlot struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// DailySlots is the fixed set of bookable times per day.
var DailySlots = []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00"}

// ConsultationFee is the flat channeling fee in rupees, used for estimates
// until the upstream confirms the real per-booking amount.
const ConsultationFee = 3000.0

// DefaultDoctors is the fallback list used when the upstream search errors
// or returns no doctors.
var DefaultDoctors = []Doctor{
	{ID: "doc-1", Name: "Dr. Saman Perera", Specialty: "Cardiology", Hospital: "City General Hospital", Fee: ConsultationFee, Rating: 4.8},
	{ID: "doc-2", Name: "Dr. Nimal Fernando", Specialty: "Neurology", Hospital: "St. Mary Medical Center", Fee: ConsultationFee, Rating: 4.6},
	{ID: "doc-3", Name: "Dr. Kamala Silva", Specialty: "Orthopedics", Hospital: "City General Hospital", Fee: ConsultationFee, Rating: 4.7},
	{ID: "doc-4", Name: "Dr. Rajesh Gupta", Specialty: "Cardiology", Hospital: "St. Mary Medical Center", Fee: ConsultationFee, Rating: 4.5},
}
