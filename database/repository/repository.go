package repository

import (
	"smarthub/database"
	bookingRepo "smarthub/database/repository/booking"
	complaintRepo "smarthub/database/repository/complaint"
	notificationRepo "smarthub/database/repository/notification"
	providerRepo "smarthub/database/repository/provider"
	reviewRepo "smarthub/database/repository/review"
	sequenceRepo "smarthub/database/repository/sequence"
	userRepo "smarthub/database/repository/user"
)

// Re-export the repository interfaces.
type (
	SequenceRepository     = sequenceRepo.SequenceRepository
	UserRepository         = userRepo.UserRepository
	ProviderRepository     = providerRepo.ProviderRepository
	ProviderSearchCriteria = providerRepo.ProviderSearchCriteria
	BookingRepository      = bookingRepo.BookingRepository
	NotificationRepository = notificationRepo.NotificationRepository
	ReviewRepository       = reviewRepo.ReviewRepository
	ComplaintRepository    = complaintRepo.ComplaintRepository
)

// Re-export the MongoDB constructors.
var (
	NewMongoSequenceRepo     = sequenceRepo.NewMongoSequenceRepo
	NewMongoUserRepo         = userRepo.NewMongoUserRepo
	NewMongoProviderRepo     = providerRepo.NewMongoProviderRepo
	NewMongoBookingRepo      = bookingRepo.NewMongoBookingRepo
	NewMongoNotificationRepo = notificationRepo.NewMongoNotificationRepo
	NewMongoReviewRepo       = reviewRepo.NewMongoReviewRepo
	NewMongoComplaintRepo    = complaintRepo.NewMongoComplaintRepo
)

// Set bundles one store's repositories with the transaction runner that spans them.
type Set struct {
	Users         UserRepository
	Providers     ProviderRepository
	Bookings      BookingRepository
	Notifications NotificationRepository
	Reviews       ReviewRepository
	Complaints    ComplaintRepository
	Tx            database.TxRunner
}

// NewMongoSet builds every repository on database.MongoClient. InitDB must have succeeded.
func NewMongoSet() *Set {
	seq := NewMongoSequenceRepo()
	return &Set{
		Users:         NewMongoUserRepo(seq),
		Providers:     NewMongoProviderRepo(seq),
		Bookings:      NewMongoBookingRepo(seq),
		Notifications: NewMongoNotificationRepo(seq),
		Reviews:       NewMongoReviewRepo(seq),
		Complaints:    NewMongoComplaintRepo(seq),
		Tx:            database.NewMongoTxRunner(database.MongoClient),
	}
}
