package entities

// Prescription is an e-prescription for a patient. Doctor fields are set
// when a doctor issues it, PharmacistEmail when a pharmacist records it.
type Prescription struct {
	ID              int64  `json:"id"`
	PatientEmail    string `json:"patientEmail"`
	PatientName     string `json:"patientName,omitempty"`
	PatientGender   string `json:"patientGender,omitempty"`
	Medicine        string `json:"medicine"`
	Dosage          string `json:"dosage"`
	Notes           string `json:"notes"`
	Date            string `json:"date"`
	DoctorEmail     string `json:"doctorEmail,omitempty"`
	DoctorName      string `json:"doctorName,omitempty"`
	PharmacistEmail string `json:"pharmacistEmail,omitempty"`
}
