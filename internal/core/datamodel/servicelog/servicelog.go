package servicelog

import "time"

// Record is one maintenance event. Serviced distinguishes completed
// service from an inspection note; only serviced rows move the due date.
type Record struct {
	ID          int64     `gorm:"primaryKey"`
	ItemID      string    `gorm:"column:item_id;not null;index"`
	ServiceDate string    `gorm:"column:service_date;not null"`
	Serviced    bool      `gorm:"column:serviced;default:false"`
	Location    *string   `gorm:"column:location"`
	Notes       *string   `gorm:"column:notes"`
	CreatedBy   *string   `gorm:"column:created_by"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (Record) TableName() string {
	return "service_records"
}
