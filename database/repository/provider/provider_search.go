package providerRepo

import (
	"context"
	"regexp"

	"smarthub/models"

	"go.mongodb.org/mongo-driver/bson"
)

// containsFold matches field values containing s, ignoring case. s is matched literally.
func containsFold(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}

func (r *MongoProviderRepo) Search(ctx context.Context, criteria ProviderSearchCriteria) ([]models.Provider, error) {
	filter := bson.M{}
	if criteria.ServiceType != "" {
		filter["serviceType"] = containsFold(criteria.ServiceType)
	}
	if criteria.Location != "" {
		filter["location"] = containsFold(criteria.Location)
	}
	return r.find(ctx, filter)
}
