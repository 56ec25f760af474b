package store

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"time"

	"github.com/marmos91/retrogg/pkg/models"
)

// ============================================
// USER OPERATIONS
// ============================================

// maxUINAttempts bounds the number of random draws when assigning a UIN.
const maxUINAttempts = 10

// randUIN draws a random UIN from the public pool [models.MinUIN, models.MaxUIN].
func randUIN() uint32 {
	var buf [8]byte
	_, _ = rand.Read(buf[:])
	span := uint64(models.MaxUIN-models.MinUIN) + 1
	return models.MinUIN + uint32(binary.LittleEndian.Uint64(buf[:])%span)
}

func (s *GORMStore) GetUser(ctx context.Context, uin uint32) (*models.User, error) {
	return getByField[models.User](s.db, ctx, "uin", uin, models.ErrUserNotFound)
}

func (s *GORMStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return getByField[models.User](s.db, ctx, "email", email, models.ErrUserNotFound)
}

func (s *GORMStore) GetUsersByUINs(ctx context.Context, uins []uint32) ([]*models.User, error) {
	if len(uins) == 0 {
		return []*models.User{}, nil
	}
	var users []*models.User
	if err := s.db.WithContext(ctx).Where("uin IN ?", uins).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *GORMStore) UserExists(ctx context.Context, uin uint32) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("uin = ?", uin).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GORMStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	return listAll[models.User](s.db, ctx)
}

func (s *GORMStore) CreateUser(ctx context.Context, user *models.User) (uint32, error) {
	if err := user.Validate(); err != nil {
		return 0, err
	}
	user.CreatedAt = time.Now()

	// Explicit UIN: create as-is and report collisions.
	if user.UIN != 0 {
		if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
			if isEmailConstraintError(err) {
				return 0, models.ErrDuplicateEmail
			}
			if isUniqueConstraintError(err) {
				return 0, models.ErrDuplicateUser
			}
			return 0, err
		}
		return user.UIN, nil
	}

	// Draw a random UIN and retry on collision. The pool holds millions of
	// numbers, so more than a couple of draws means something is wrong.
	for attempt := 0; attempt < maxUINAttempts; attempt++ {
		user.UIN = randUIN()
		err := s.db.WithContext(ctx).Create(user).Error
		if err == nil {
			return user.UIN, nil
		}
		if isEmailConstraintError(err) {
			return 0, models.ErrDuplicateEmail
		}
		if !isUniqueConstraintError(err) {
			return 0, err
		}
	}
	return 0, models.ErrNoFreeUIN
}

func (s *GORMStore) UpdatePassword(ctx context.Context, uin uint32, password string) error {
	result := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("uin = ?", uin).
		Update("password", password)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

func (s *GORMStore) DeleteUser(ctx context.Context, uin uint32) error {
	return deleteByField[models.User](s.db, ctx, "uin", uin, models.ErrUserNotFound)
}
