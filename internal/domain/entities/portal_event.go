package entities

import (
	"time"

	"github.com/google/uuid"
)

// PortalEventType names what happened in the portal
type PortalEventType string

const (
	PortalEventAccountRegistered    PortalEventType = "account_registered"
	PortalEventAccountStatusChanged PortalEventType = "account_status_changed"
	PortalEventAppointmentBooked    PortalEventType = "appointment_booked"
	PortalEventHistoryAdded         PortalEventType = "history_added"
	PortalEventPrescriptionIssued   PortalEventType = "prescription_issued"
	PortalEventPrescriptionRecorded PortalEventType = "prescription_recorded"
	PortalEventInventoryUpdated     PortalEventType = "inventory_updated"
)

// PortalEvent is a change pushed to open dashboards. It carries the id of
// the affected record, not the record itself; dashboards reload the
// collection they show.
type PortalEvent struct {
	ID         string          `json:"id"`
	Type       PortalEventType `json:"type"`
	Timestamp  time.Time       `json:"timestamp"`
	RecordID   int64           `json:"recordId"`
	ActorEmail string          `json:"actorEmail,omitempty"`
	Summary    string          `json:"summary,omitempty"`
}

// NewPortalEvent creates a new event stamped with now
func NewPortalEvent(eventType PortalEventType, recordID int64, actorEmail, summary string, now time.Time) *PortalEvent {
	return &PortalEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		Timestamp:  now,
		RecordID:   recordID,
		ActorEmail: actorEmail,
		Summary:    summary,
	}
}
