package complaintRepo

import (
	"context"
	"time"

	"smarthub/models"
)

// ComplaintRepository defines methods for complaint data access.
type ComplaintRepository interface {
	// Create assigns an id when c.ID is zero and inserts the complaint.
	Create(ctx context.Context, c *models.Complaint) error
	// ListAll returns every complaint, newest first.
	ListAll(ctx context.Context) ([]models.Complaint, error)
	// Resolve stores the admin response and marks the complaint RESOLVED.
	// Returns database.ErrNotFound for an unknown id.
	Resolve(ctx context.Context, id int64, response string, at time.Time) (*models.Complaint, error)
}
