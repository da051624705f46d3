package models

import "time"

type ComplaintStatus string

const (
	ComplaintOpen     ComplaintStatus = "OPEN"
	ComplaintResolved ComplaintStatus = "RESOLVED"
)

type Complaint struct {
	ID         int64           `bson:"complaintId" json:"complaintId"`
	UserID     int64           `bson:"userId" json:"userId"`
	ProviderID *int64          `bson:"providerId,omitempty" json:"providerId,omitempty"`
	Message    string          `bson:"message" json:"message"`
	Status     ComplaintStatus `bson:"status" json:"status"`
	Response   string          `bson:"response" json:"response"`
	CreatedAt  time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time       `bson:"updatedAt" json:"updatedAt"`
}

type ComplaintRequest struct {
	ProviderID *int64 `json:"providerId,omitempty"`
	Message    string `json:"message"`
}

type ComplaintResponse struct {
	Response string `json:"response"`
}
