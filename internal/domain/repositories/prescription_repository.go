package repositories

import (
	"github.com/Saranya396/projectt/internal/domain/entities"
)

// PrescriptionRepository defines the interface for prescription persistence
type PrescriptionRepository interface {
	CollectionRepository[entities.Prescription]
}
