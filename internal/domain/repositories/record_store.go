package repositories

import (
	"context"
)

// Collection keys. Each key names one slot holding a JSON array.
const (
	KeyUsers             = "medicare.users"
	KeyAppointments      = "medicare.appointments"
	KeyMedicalHistory    = "medicare.medicalHistory"
	KeyPrescriptions     = "medicare.prescriptions"
	KeyMedicineInventory = "medicare.medicineInventory"
)

// CollectionKeys lists every slot the portal owns.
var CollectionKeys = []string{
	KeyUsers,
	KeyAppointments,
	KeyMedicalHistory,
	KeyPrescriptions,
	KeyMedicineInventory,
}

// RecordStore persists raw collection slots.
type RecordStore interface {
	// Read returns the slot payload, or nil with no error when the slot is missing
	Read(ctx context.Context, key string) ([]byte, error)

	// Write replaces the slot payload wholesale
	Write(ctx context.Context, key string, payload []byte) error

	// Keys lists the slots currently present
	Keys(ctx context.Context) ([]string, error)
}

// CollectionRepository loads and saves a whole collection at once.
// Load never fails on a corrupt slot; it returns an empty collection instead.
type CollectionRepository[T any] interface {
	Load(ctx context.Context) ([]T, error)
	Save(ctx context.Context, records []T) error
}
