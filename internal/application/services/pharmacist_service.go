package services

import (
	"context"
	"strings"

	"github.com/Saranya396/projectt/internal/domain/entities"
	"github.com/Saranya396/projectt/internal/domain/providers"
	"github.com/Saranya396/projectt/internal/domain/repositories"
	apperrors "github.com/Saranya396/projectt/pkg/errors"
)

// InventoryInput is the add-medicine form
type InventoryInput struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
	Type  string `json:"type"`
}

// PharmacistService backs the pharmacist dashboard. Pharmacists see the
// global prescription list.
type PharmacistService struct {
	prescriptions repositories.PrescriptionRepository
	inventory     repositories.InventoryRepository
	ids           *IDGenerator
	clock         Clock
	events        publisher
}

// NewPharmacistService creates a new pharmacist dashboard service
func NewPharmacistService(
	prescriptions repositories.PrescriptionRepository,
	inventory repositories.InventoryRepository,
	ids *IDGenerator,
	clock Clock,
	opts ...Option,
) *PharmacistService {
	return &PharmacistService{
		prescriptions: prescriptions,
		inventory:     inventory,
		ids:           ids,
		clock:         clock,
		events:        publisherFrom(opts),
	}
}

// Prescriptions lists every prescription
func (s *PharmacistService) Prescriptions(ctx context.Context) ([]entities.Prescription, error) {
	return s.prescriptions.Load(ctx)
}

// RecordPrescription stores a prescription handled by the pharmacist
func (s *PharmacistService) RecordPrescription(ctx context.Context, pharmacist entities.User, in PrescriptionInput) (*entities.Prescription, error) {
	if err := validatePrescription(in); err != nil {
		return nil, err
	}

	p := newPrescription(s.ids, s.clock, in)
	p.PharmacistEmail = pharmacist.Email

	if err := appendRecord[entities.Prescription](ctx, s.prescriptions, p); err != nil {
		return nil, err
	}

	s.events.publish(ctx,
		entities.NewPortalEvent(entities.PortalEventPrescriptionRecorded, p.ID, pharmacist.Email, p.Medicine, s.clock.Now()),
		providers.UserChannel(entities.RolePatient, p.PatientEmail),
		providers.RoleChannel(entities.RolePharmacist))
	return &p, nil
}

// Inventory lists medicine stock, writing the sample inventory first if
// the collection is empty
func (s *PharmacistService) Inventory(ctx context.Context) ([]entities.MedicineInventoryItem, error) {
	items, _, err := s.SeedInventory(ctx)
	return items, err
}

// SeedInventory writes the sample inventory when the collection is empty.
// It reports whether anything was written.
func (s *PharmacistService) SeedInventory(ctx context.Context) ([]entities.MedicineInventoryItem, bool, error) {
	items, err := s.inventory.Load(ctx)
	if err != nil {
		return nil, false, err
	}
	if len(items) > 0 {
		return items, false, nil
	}

	items = entities.SampleInventory()
	if err := s.inventory.Save(ctx, items); err != nil {
		return nil, false, err
	}
	return items, true, nil
}

// AddInventoryItem appends a stock line
func (s *PharmacistService) AddInventoryItem(ctx context.Context, in InventoryInput) (*entities.MedicineInventoryItem, error) {
	switch {
	case blank(in.Name):
		return nil, apperrors.NewValidationError("medicine name is required")
	case in.Stock < 0:
		return nil, apperrors.NewValidationError("stock cannot be negative")
	}

	items, _, err := s.SeedInventory(ctx)
	if err != nil {
		return nil, err
	}

	item := entities.MedicineInventoryItem{
		ID:    s.ids.Next(),
		Name:  strings.TrimSpace(in.Name),
		Stock: in.Stock,
		Type:  strings.TrimSpace(in.Type),
	}
	if err := s.inventory.Save(ctx, append(items, item)); err != nil {
		return nil, err
	}

	s.events.publish(ctx,
		entities.NewPortalEvent(entities.PortalEventInventoryUpdated, item.ID, "", item.Name, s.clock.Now()),
		providers.RoleChannel(entities.RolePharmacist))
	return &item, nil
}
