package domain

import "time"

type Comment struct {
	ID       int64     `gorm:"primaryKey"`
	Text     string    `gorm:"type:text;not null"`
	ItemID   int64     `gorm:"not null;index"`
	AuthorID int64     `gorm:"not null;index"`
	Created  time.Time `gorm:"column:created;not null"`

	Item   *Item `gorm:"foreignKey:ItemID"`
	Author *User `gorm:"foreignKey:AuthorID"`
}

func (Comment) TableName() string { return "comments" }
