package domain

import "time"

// Request is a user's ask for an item nobody has listed yet.
type Request struct {
	ID          int64     `gorm:"primaryKey"`
	Description string    `gorm:"type:text;not null"`
	RequesterID int64     `gorm:"not null;index"`
	Created     time.Time `gorm:"column:created;not null;index"`

	Requester *User `gorm:"foreignKey:RequesterID"`
}

func (Request) TableName() string { return "requests" }
