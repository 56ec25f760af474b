package models

import "time"

// TokenValidity is how long a registration token stays redeemable.
const TokenValidity = 5 * time.Minute

// Token is a single-use registration captcha issued by the HTTP
// service: the client fetches the captcha image by TokenID and must
// echo the code back within the validity window.
type Token struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TokenID     string    `gorm:"uniqueIndex;size:32;not null" json:"token_id"`
	CaptchaCode string    `gorm:"size:4;not null" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	Used        bool      `gorm:"default:false" json:"used"`
}

// TableName returns the table name for Token.
func (Token) TableName() string {
	return "tokens"
}

// Expired reports whether the token fell out of its validity window at
// the given instant.
func (t *Token) Expired(now time.Time) bool {
	return now.Sub(t.CreatedAt) > TokenValidity
}
