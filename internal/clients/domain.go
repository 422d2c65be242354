package clients

import "time"

// Client is a customer of the business, owned by the sales collaborator
// who registered it. The owner reference survives collaborator deletion
// as NULL, so it is a pointer here.
type Client struct {
	ID                       int64
	FullName                 string
	Email                    string
	Phone                    string
	CompanyName              string
	CreationDate             time.Time
	LastContact              *time.Time
	CommercialCollaboratorID *int64
}

// OwnedBy reports whether collaboratorID is the client's commercial owner.
// Comparison is by collaborator id, never by name.
func (c *Client) OwnedBy(collaboratorID int64) bool {
	return c.CommercialCollaboratorID != nil && *c.CommercialCollaboratorID == collaboratorID
}
