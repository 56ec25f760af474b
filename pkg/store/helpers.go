package store

import (
	"context"

	"gorm.io/gorm"
)

// ============================================================================
// Generic GORM Helpers
// ============================================================================
//
// These helpers reduce repetitive CRUD boilerplate across store implementation
// files. They are unexported (package-internal) and operate on the raw *gorm.DB
// to avoid coupling to GORMStore. Each helper handles standard concerns like
// context propagation, not-found error conversion, and unique constraint
// detection.

// getByField retrieves a single record of type T by matching field=value.
// It converts gorm.ErrRecordNotFound to the provided notFoundErr for
// consistent domain error mapping.
//
// Example:
//
//	user, err := getByField[models.User](db, ctx, "uin", uin, models.ErrUserNotFound)
func getByField[T any](db *gorm.DB, ctx context.Context, field string, value any, notFoundErr error) (*T, error) {
	var result T
	if err := db.WithContext(ctx).Where(field+" = ?", value).First(&result).Error; err != nil {
		return nil, convertNotFoundError(err, notFoundErr)
	}
	return &result, nil
}

// listAll retrieves all records of type T.
// Returns an empty slice (not nil) on success with no records.
//
// Example:
//
//	users, err := listAll[models.User](db, ctx)
func listAll[T any](db *gorm.DB, ctx context.Context) ([]*T, error) {
	var results []*T
	if err := db.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// deleteByField deletes records of type T matching field=value.
// Returns notFoundErr if no rows were affected.
//
// Example:
//
//	err := deleteByField[models.User](db, ctx, "uin", uin, models.ErrUserNotFound)
func deleteByField[T any](db *gorm.DB, ctx context.Context, field string, value any, notFoundErr error) error {
	var zero T
	result := db.WithContext(ctx).Where(field+" = ?", value).Delete(&zero)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundErr
	}
	return nil
}
