package repositories

import (
	"github.com/Saranya396/projectt/internal/domain/entities"
)

// UserRepository defines the interface for account persistence
type UserRepository interface {
	CollectionRepository[entities.User]
}
