package repositories

import (
	"github.com/Saranya396/projectt/internal/domain/entities"
)

// MedicalHistoryRepository defines the interface for history entry persistence
type MedicalHistoryRepository interface {
	CollectionRepository[entities.MedicalHistoryEntry]
}
