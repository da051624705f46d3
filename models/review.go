package models

import "time"

type Review struct {
	ID         int64     `bson:"reviewId" json:"reviewId"`
	BookingID  int64     `bson:"bookingId" json:"bookingId"`
	UserID     int64     `bson:"userId" json:"userId"`
	ProviderID int64     `bson:"providerId" json:"providerId"`
	Rating     int       `bson:"rating" json:"rating"`
	Comment    string    `bson:"comment" json:"comment"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

type ReviewRequest struct {
	BookingID int64  `json:"bookingId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}
