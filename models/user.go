package models

import "time"

type User struct {
	ID        int64     `bson:"userId" json:"userId"`
	FullName  string    `bson:"fullName" json:"fullName"`
	Email     string    `bson:"email" json:"email"`
	Mobile    string    `bson:"mobile" json:"mobile"`
	Role      Role      `bson:"role" json:"role"`
	FCMToken  string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
