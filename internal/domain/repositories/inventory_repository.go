package repositories

import (
	"github.com/Saranya396/projectt/internal/domain/entities"
)

// InventoryRepository defines the interface for medicine inventory persistence
type InventoryRepository interface {
	CollectionRepository[entities.MedicineInventoryItem]
}
