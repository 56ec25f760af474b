package models

import "time"

// Message is one relayed message, persisted before any delivery
// attempt. A NULL DeliveredAt marks it pending; the field transitions
// to a timestamp exactly once.
//
// Formatting holds the raw rich-text trailer from the wire, opaque to
// the store; nil means a plain message.
type Message struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipientUIN uint32     `gorm:"column:recipient_uin;index:idx_messages_pending,priority:1;not null" json:"recipient_uin"`
	SenderUIN    uint32     `gorm:"column:sender_uin;not null" json:"sender_uin"`
	Seq          uint32     `json:"seq"`
	Time         uint32     `json:"time"`
	Class        uint32     `json:"class"`
	Message      string     `json:"message"`
	Formatting   []byte     `json:"formatting,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	DeliveredAt  *time.Time `gorm:"index:idx_messages_pending,priority:2" json:"delivered_at,omitempty"`
}

// TableName returns the table name for Message.
func (Message) TableName() string {
	return "messages"
}

// Delivered reports whether the message has already reached its
// recipient.
func (m *Message) Delivered() bool {
	return m.DeliveredAt != nil
}
