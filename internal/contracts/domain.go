package contracts

import "time"

// Contract binds a client to a commercial collaborator for an amount.
// Signed is the lifecycle switch: events may only reference signed
// contracts. The commercial reference survives collaborator deletion as
// NULL.
type Contract struct {
	ID                       int64
	ClientID                 int64
	CommercialCollaboratorID *int64
	TotalAmount              float64
	AmountDue                float64
	CreationDate             time.Time
	Signed                   bool
}

// ListFilter narrows contract listings.
type ListFilter struct {
	Unpaid   bool
	Unsigned bool
}
