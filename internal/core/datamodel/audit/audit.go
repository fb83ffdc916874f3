package audit

import "time"

const (
	EventAssign   = "assign"
	EventReturn   = "return"
	EventTransfer = "transfer"
	EventService  = "service"
)

// StockHolder is the label used for the "to" side of a return event.
const StockHolder = "Stock"

// Entry is an append-only audit row. Rows are only ever inserted.
type Entry struct {
	ID         int64     `gorm:"primaryKey"`
	EventTime  time.Time `gorm:"column:event_time"`
	Event      string    `gorm:"column:event;not null"`
	ItemID     string    `gorm:"column:item_id;not null;index"`
	FromHolder *string   `gorm:"column:from_holder"`
	ToHolder   *string   `gorm:"column:to_holder"`
	ByUser     *string   `gorm:"column:by_user"`
	Notes      *string   `gorm:"column:notes"`
}

func (Entry) TableName() string {
	return "entries"
}
