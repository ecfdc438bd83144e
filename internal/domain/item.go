package domain

// Item is a shareable object listed by its owner, optionally in answer to a Request.
type Item struct {
	ID          int64  `gorm:"primaryKey"`
	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"type:text;not null"`
	Available   bool   `gorm:"not null"`
	OwnerID     int64  `gorm:"not null;index"`
	RequestID   *int64 `gorm:"index"`

	Owner   *User    `gorm:"foreignKey:OwnerID"`
	Request *Request `gorm:"foreignKey:RequestID"`
}

func (Item) TableName() string { return "items" }

func (i *Item) IsOwnedBy(userID int64) bool {
	return i.OwnerID == userID
}
