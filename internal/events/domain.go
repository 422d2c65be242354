package events

import "time"

// Event is a scheduled delivery for a signed contract. The support
// assignee reference survives collaborator deletion as NULL.
type Event struct {
	ID                    int64
	ClientID              int64
	ContractID            int64
	Description           string
	DateStart             time.Time
	DateEnd               time.Time
	SupportCollaboratorID *int64
	Location              string
	Attendees             int
	Notes                 *string
}

// AssignedTo reports whether collaboratorID is the event's support
// assignee. Comparison is by collaborator id.
func (e *Event) AssignedTo(collaboratorID int64) bool {
	return e.SupportCollaboratorID != nil && *e.SupportCollaboratorID == collaboratorID
}

// ListFilter narrows event listings.
type ListFilter struct {
	// SupportID limits results to events assigned to this collaborator.
	SupportID *int64
	// Unassigned limits results to events with no support assignee.
	Unassigned bool
}
