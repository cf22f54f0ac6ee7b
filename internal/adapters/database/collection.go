package database

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/Saranya396/projectt/internal/domain/entities"
	"github.com/Saranya396/projectt/internal/domain/repositories"
	apperrors "github.com/Saranya396/projectt/pkg/errors"
)

// Collection stores a whole collection as a JSON array in one slot
type Collection[T any] struct {
	store repositories.RecordStore
	key   string
}

// NewCollection creates a collection bound to the given slot key
func NewCollection[T any](store repositories.RecordStore, key string) *Collection[T] {
	return &Collection[T]{store: store, key: key}
}

// Key returns the slot key
func (c *Collection[T]) Key() string {
	return c.key
}

// Load decodes the slot. A missing, null or undecodable slot yields an
// empty collection; only backend failures are returned.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	payload, err := c.store.Read(ctx, c.key)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load "+c.key, err)
	}

	records := []T{}
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return records, nil
	}

	if err := json.Unmarshal(payload, &records); err != nil {
		log.Warn().Err(err).Str("key", c.key).Msg("corrupt collection slot, treating as empty")
		return []T{}, nil
	}
	return records, nil
}

// Save overwrites the slot with records
func (c *Collection[T]) Save(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return apperrors.NewInternalError("failed to encode "+c.key, err)
	}
	if err := c.store.Write(ctx, c.key, payload); err != nil {
		return apperrors.NewInternalError("failed to save "+c.key, err)
	}
	return nil
}

// NewUserRepository binds the users slot
func NewUserRepository(store repositories.RecordStore) repositories.UserRepository {
	return NewCollection[entities.User](store, repositories.KeyUsers)
}

// NewAppointmentRepository binds the appointments slot
func NewAppointmentRepository(store repositories.RecordStore) repositories.AppointmentRepository {
	return NewCollection[entities.Appointment](store, repositories.KeyAppointments)
}

// NewMedicalHistoryRepository binds the medical history slot
func NewMedicalHistoryRepository(store repositories.RecordStore) repositories.MedicalHistoryRepository {
	return NewCollection[entities.MedicalHistoryEntry](store, repositories.KeyMedicalHistory)
}

// NewPrescriptionRepository binds the prescriptions slot
func NewPrescriptionRepository(store repositories.RecordStore) repositories.PrescriptionRepository {
	return NewCollection[entities.Prescription](store, repositories.KeyPrescriptions)
}

// NewInventoryRepository binds the medicine inventory slot
func NewInventoryRepository(store repositories.RecordStore) repositories.InventoryRepository {
	return NewCollection[entities.MedicineInventoryItem](store, repositories.KeyMedicineInventory)
}
