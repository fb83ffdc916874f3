package postgres

import (
	"gorm.io/gorm"

	itemDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/item"
	servicelogDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/servicelog"
	"github.com/assetvault/asset-management/internal/servicelog"
)

// ServiceLogRepository implements the servicelog.Repository interface
// using GORM.
type ServiceLogRepository struct {
	db *gorm.DB
}

func NewServiceLogRepository(db *gorm.DB) servicelog.Repository {
	return &ServiceLogRepository{db: db}
}

func (r *ServiceLogRepository) ListForItem(itemID string) ([]*servicelogDatamodel.Record, error) {
	var rows []*servicelogDatamodel.Record
	err := r.db.Where("item_id = ?", itemID).
		Order("service_date DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *ServiceLogRepository) Insert(m *servicelogDatamodel.Record) error {
	return r.db.Create(m).Error
}

// LastServicedDate returns the newest completed service date, nil when
// the item has never been serviced.
func (r *ServiceLogRepository) LastServicedDate(itemID string) (*string, error) {
	var dates []string
	err := r.db.Model(&servicelogDatamodel.Record{}).
		Where("item_id = ? AND serviced = ?", itemID, true).
		Order("service_date DESC").
		Limit(1).
		Pluck("service_date", &dates).Error
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, nil
	}
	return &dates[0], nil
}

type overviewRow struct {
	ItemID          string
	Name            string
	SerialNo        *string
	Department      *string
	LastServiceDate *string
	RecordCount     int64
}

func (r *ServiceLogRepository) Overview() ([]servicelog.OverviewItem, error) {
	var rows []overviewRow
	err := r.db.Model(&itemDatamodel.Item{}).
		Select(`items.item_id, items.name, items.serial_no, items.department,
			(SELECT MAX(sr.service_date) FROM service_records sr
				WHERE sr.item_id = items.item_id AND sr.serviced) AS last_service_date,
			(SELECT COUNT(*) FROM service_records sr
				WHERE sr.item_id = items.item_id) AS record_count`).
		Order("items.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]servicelog.OverviewItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, servicelog.OverviewItem{
			ItemID:          row.ItemID,
			Name:            row.Name,
			SerialNo:        row.SerialNo,
			Department:      row.Department,
			LastServiceDate: row.LastServiceDate,
			RecordCount:     row.RecordCount,
		})
	}
	return out, nil
}
