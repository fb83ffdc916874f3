package item

import "time"

// Item is the persisted equipment record. ItemID is an operator-chosen
// identifier (asset tag), not a surrogate key.
type Item struct {
	ItemID       string    `gorm:"column:item_id;primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	Quantity     int       `gorm:"column:quantity;default:0"`
	SerialNo     *string   `gorm:"column:serial_no"`
	ModelNo      *string   `gorm:"column:model_no"`
	Department   *string   `gorm:"column:department"`
	Owner        *string   `gorm:"column:owner"`
	TransferFrom *string   `gorm:"column:transfer_from"`
	TransferTo   *string   `gorm:"column:transfer_to"`
	Notes        *string   `gorm:"column:notes"`
	Category     *string   `gorm:"column:category"`
	PhotoURL     *string   `gorm:"column:photo_url"`
	CreatedBy    *string   `gorm:"column:created_by"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (Item) TableName() string {
	return "items"
}

// Photo is one attachment row; the file itself lives in the upload store.
type Photo struct {
	ID       int64  `gorm:"primaryKey"`
	ItemID   string `gorm:"column:item_id;not null;index"`
	PhotoURL string `gorm:"column:photo_url;not null"`
}

func (Photo) TableName() string {
	return "item_photos"
}
