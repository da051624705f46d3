package models

import "time"

type Provider struct {
	ID           int64     `bson:"providerId" json:"providerId"`
	FullName     string    `bson:"fullName" json:"fullName"`
	Email        string    `bson:"email" json:"email"`
	Mobile       string    `bson:"mobile" json:"mobile"`
	ServiceType  string    `bson:"serviceType" json:"serviceType"`
	Experience   int       `bson:"experience" json:"experience"`
	Price        float64   `bson:"price" json:"price"`
	Availability string    `bson:"availability" json:"availability"`
	Location     string    `bson:"location" json:"location"`
	FCMToken     string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProfileUpdate holds the editable provider profile fields.
type ProfileUpdate struct {
	FullName     string  `json:"fullName"`
	Email        string  `json:"email"`
	Mobile       string  `json:"mobile"`
	ServiceType  string  `json:"serviceType"`
	Experience   int     `json:"experience"`
	Price        float64 `json:"price"`
	Availability string  `json:"availability"`
	Location     string  `json:"location"`
}
