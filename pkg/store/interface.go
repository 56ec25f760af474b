// Package store provides the server persistence layer.
//
// This package implements the Store interface for managing accounts,
// offline messages, and registration tokens.
//
// Two backends are supported:
//   - SQLite (single-node, default)
//   - PostgreSQL
package store

import (
	"context"
	"time"

	"github.com/marmos91/retrogg/pkg/models"
)

// Store provides the server persistence interface.
//
// This interface defines all operations for managing accounts, offline
// messages, and registration tokens.
//
// Thread Safety: Implementations must be safe for concurrent use from multiple
// goroutines.
//
// The Store interface supports both SQLite (single-node) and PostgreSQL backends.
type Store interface {
	// ============================================
	// USER OPERATIONS
	// ============================================

	// GetUser returns a user by UIN.
	// Returns models.ErrUserNotFound if the user doesn't exist.
	GetUser(ctx context.Context, uin uint32) (*models.User, error)

	// GetUserByEmail returns a user by email address.
	// Returns models.ErrUserNotFound if no user has this email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUsersByUINs returns the users among uins that exist, in no
	// particular order. UINs without an account are silently dropped.
	// An empty input yields an empty result.
	GetUsersByUINs(ctx context.Context, uins []uint32) ([]*models.User, error)

	// UserExists reports whether a user with the given UIN exists.
	UserExists(ctx context.Context, uin uint32) (bool, error)

	// ListUsers returns all users.
	// Use with caution for large user counts.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// CreateUser creates a new user account. When user.UIN is zero a
	// random UIN from the public pool is drawn and assigned.
	// Returns the assigned UIN.
	// Returns models.ErrDuplicateUser if the UIN is already taken.
	// Returns models.ErrDuplicateEmail if the email is already registered.
	// Returns models.ErrNoFreeUIN if no free UIN could be drawn.
	CreateUser(ctx context.Context, user *models.User) (uint32, error)

	// UpdatePassword changes a user's password.
	// Returns models.ErrUserNotFound if the user doesn't exist.
	UpdatePassword(ctx context.Context, uin uint32, password string) error

	// DeleteUser deletes a user by UIN.
	// Returns models.ErrUserNotFound if the user doesn't exist.
	DeleteUser(ctx context.Context, uin uint32) error

	// ============================================
	// MESSAGE OPERATIONS
	// ============================================

	// StoreMessage persists a message for later delivery and returns its ID.
	// The message is stored undelivered regardless of msg.DeliveredAt.
	StoreMessage(ctx context.Context, msg *models.Message) (uint, error)

	// GetPendingMessages returns up to one batch of undelivered messages
	// for the recipient, oldest first. Returns an empty slice when the
	// queue is drained.
	GetPendingMessages(ctx context.Context, recipient uint32) ([]*models.Message, error)

	// GetPendingMessage returns a single message by ID, but only while it
	// is still undelivered.
	// Returns models.ErrMessageNotFound otherwise.
	GetPendingMessage(ctx context.Context, id uint) (*models.Message, error)

	// MarkDelivered stamps the given messages as delivered now.
	// Messages already delivered keep their original timestamp.
	MarkDelivered(ctx context.Context, ids []uint) error

	// MarkMessageDelivered stamps a single message as delivered now.
	MarkMessageDelivered(ctx context.Context, id uint) error

	// CleanupDelivered deletes delivered messages older than the given age
	// and returns how many rows were removed.
	CleanupDelivered(ctx context.Context, olderThan time.Duration) (int64, error)

	// ============================================
	// TOKEN OPERATIONS
	// ============================================

	// CreateToken creates a registration token with a fresh captcha code.
	CreateToken(ctx context.Context) (*models.Token, error)

	// GetToken returns a token by its public ID if it is unused and has
	// not expired.
	// Returns models.ErrTokenNotFound otherwise.
	GetToken(ctx context.Context, tokenID string) (*models.Token, error)

	// ValidateToken checks the captcha answer for a token and consumes it.
	// Tokens are single use: a wrong answer still burns the token.
	// Returns models.ErrTokenNotFound if the token is unknown, used, or expired.
	// Returns models.ErrInvalidCaptcha if the answer doesn't match.
	ValidateToken(ctx context.Context, tokenID, answer string) error

	// CleanupTokens deletes used and expired tokens and returns how many
	// rows were removed.
	CleanupTokens(ctx context.Context) (int64, error)

	// ============================================
	// HEALTH & LIFECYCLE
	// ============================================

	// Healthcheck verifies the store is operational.
	// Returns an error if the store is not healthy.
	Healthcheck(ctx context.Context) error

	// Close closes the store and releases resources.
	Close() error
}
