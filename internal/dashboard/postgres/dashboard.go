package postgres

import (
	"gorm.io/gorm"

	itemDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/item"
	"github.com/assetvault/asset-management/internal/dashboard"
)

// DashboardRepository implements the dashboard.Repository interface
// using GORM.
type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) dashboard.Repository {
	return &DashboardRepository{db: db}
}

type itemRow struct {
	ItemID     string
	Name       string
	Category   *string
	Department *string
	InUse      bool
}

func (r *DashboardRepository) ItemRows() ([]dashboard.ItemUsage, error) {
	var rows []itemRow
	err := r.db.Model(&itemDatamodel.Item{}).
		Select(`items.item_id, items.name, items.category, items.department,
			EXISTS (SELECT 1 FROM assignments a
				WHERE a.item_id = items.item_id AND a.returned_at IS NULL) AS in_use`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]dashboard.ItemUsage, 0, len(rows))
	for _, row := range rows {
		out = append(out, dashboard.ItemUsage{
			ItemID:     row.ItemID,
			Name:       row.Name,
			Category:   row.Category,
			Department: row.Department,
			InUse:      row.InUse,
		})
	}
	return out, nil
}
