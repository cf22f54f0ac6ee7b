package repositories

import (
	"github.com/Saranya396/projectt/internal/domain/entities"
)

// AppointmentRepository defines the interface for appointment persistence
type AppointmentRepository interface {
	CollectionRepository[entities.Appointment]
}
