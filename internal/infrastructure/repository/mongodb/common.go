// Package mongodb implements the user repository on top of the MongoDB driver.
package mongodb

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"accounthub/internal/domain/errs"
)

// HandleMongoError translates a MongoDB driver error into a domain error.
// Returns:
//   - nil when err is nil
//   - errs.ErrNotFound when no document matched
//   - errs.ErrAlreadyExists when a unique constraint was violated
//   - a wrapped error otherwise
func HandleMongoError(err error, resourceType string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return errs.ErrNotFound
	}

	if mongo.IsDuplicateKeyError(err) {
		return errs.ErrAlreadyExists
	}

	return fmt.Errorf("failed to operate on %s: %w", resourceType, err)
}
