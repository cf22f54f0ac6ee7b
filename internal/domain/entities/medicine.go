package entities

// MedicineInventoryItem is a stock line in the pharmacy inventory.
type MedicineInventoryItem struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
	Type  string `json:"type"`
}

// SampleInventory is written to an empty inventory the first time it is read.
func SampleInventory() []MedicineInventoryItem {
	return []MedicineInventoryItem{
		{ID: 1, Name: "Paracetamol 500mg", Stock: 120, Type: "Tablet"},
		{ID: 2, Name: "Amoxicillin 250mg", Stock: 80, Type: "Capsule"},
		{ID: 3, Name: "Cough Syrup", Stock: 45, Type: "Syrup"},
		{ID: 4, Name: "Insulin Glargine", Stock: 25, Type: "Injection"},
		{ID: 5, Name: "Cetirizine 10mg", Stock: 60, Type: "Tablet"},
	}
}
