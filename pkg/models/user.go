package models

import (
	"fmt"
	"time"
)

// UIN bounds for accounts created by this server. The protocol caps
// identifiers at 24 bits; new numbers are drawn from the range the
// original GG 6.0 registration pool used.
const (
	MinUIN uint32 = 1_000_000
	MaxUIN uint32 = 6_699_999
)

// User is one messaging account.
//
// The password is stored as entered: the wire contract requires the
// server to recompute the seed-keyed login hash from the plaintext on
// every connection, so a one-way digest cannot satisfy it.
type User struct {
	UIN       uint32    `gorm:"column:uin;primaryKey" json:"uin"`
	Name      string    `gorm:"size:255" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName returns the table name for User.
func (User) TableName() string {
	return "users"
}

// Validate checks if the user has valid configuration.
func (u *User) Validate() error {
	if u.Email == "" {
		return fmt.Errorf("email is required")
	}
	if u.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}
