package entities

// Appointment is a consultation booked by a patient with a doctor. Both
// parties are referenced by email only; nothing checks that they exist.
type Appointment struct {
	ID           int64  `json:"id"`
	PatientEmail string `json:"patientEmail"`
	PatientName  string `json:"patientName"`
	DoctorEmail  string `json:"doctorEmail"`
	DoctorName   string `json:"doctorName"`
	Date         string `json:"date"`
	Time         string `json:"time"`
}
