package assignment

import "time"

// Assignment links an item to a person for a custodianship span.
// A row with a null ReturnedAt is the item's active assignment; the
// schema enforces at most one such row per item.
type Assignment struct {
	ID          int64      `gorm:"primaryKey"`
	ItemID      string     `gorm:"column:item_id;not null;index"`
	PersonID    int64      `gorm:"column:person_id;not null;index"`
	AssignedAt  time.Time  `gorm:"column:assigned_at"`
	DueBackDate *string    `gorm:"column:due_back_date"`
	ReturnedAt  *time.Time `gorm:"column:returned_at"`
	Notes       *string    `gorm:"column:notes"`
}

func (Assignment) TableName() string {
	return "assignments"
}

func (a *Assignment) IsActive() bool {
	return a.ReturnedAt == nil
}
