package entities

// MedicalHistoryEntry is a note on a patient's record.
type MedicalHistoryEntry struct {
	ID           int64  `json:"id"`
	PatientEmail string `json:"patientEmail"`
	Title        string `json:"title"`
	Notes        string `json:"notes"`
	Date         string `json:"date"`
	AuthorEmail  string `json:"authorEmail,omitempty"`
}
