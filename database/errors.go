package database

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned by repositories when no document matches.
	ErrNotFound = errors.New("record not found")
	// ErrStatusConflict is returned when a compare-and-set on a status field loses.
	ErrStatusConflict = errors.New("status changed concurrently")
	// ErrDuplicate is returned when a unique key already exists.
	ErrDuplicate = errors.New("record already exists")
)

// writeConflictCode is the server code for two transactions writing the same document.
const writeConflictCode = 112

// IsStatusConflict reports whether err means another writer changed the record
// first: either a lost compare-and-set or a MongoDB WriteConflict.
func IsStatusConflict(err error) bool {
	if errors.Is(err, ErrStatusConflict) {
		return true
	}
	var se mongo.ServerError
	return errors.As(err, &se) && se.HasErrorCode(writeConflictCode)
}
