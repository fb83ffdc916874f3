package postgres

import (
	"gorm.io/gorm"

	itemDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/item"
	"github.com/assetvault/asset-management/internal/item"
)

// ItemRepository implements the item.Repository interface using GORM.
type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) item.Repository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) List() ([]*itemDatamodel.Item, error) {
	var rows []*itemDatamodel.Item
	err := r.db.Order("created_at DESC, name").Find(&rows).Error
	return rows, err
}

func (r *ItemRepository) Search(q string) ([]*itemDatamodel.Item, error) {
	like := "%" + q + "%"
	var rows []*itemDatamodel.Item
	err := r.db.
		Where("name LIKE ? OR item_id LIKE ? OR serial_no LIKE ? OR model_no LIKE ?", like, like, like, like).
		Order("created_at DESC, name").
		Find(&rows).Error
	return rows, err
}

func (r *ItemRepository) GetByID(itemID string) (*itemDatamodel.Item, error) {
	var m itemDatamodel.Item
	err := r.db.Where("item_id = ?", itemID).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ItemRepository) GetBySerial(serialNo string) (*itemDatamodel.Item, error) {
	var m itemDatamodel.Item
	err := r.db.Where("serial_no = ?", serialNo).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ItemRepository) Exists(itemID string) (bool, error) {
	var count int64
	err := r.db.Model(&itemDatamodel.Item{}).Where("item_id = ?", itemID).Count(&count).Error
	return count > 0, err
}

func (r *ItemRepository) Create(m *itemDatamodel.Item) error {
	return r.db.Create(m).Error
}

func (r *ItemRepository) Update(m *itemDatamodel.Item) error {
	return r.db.Save(m).Error
}

func (r *ItemRepository) Delete(itemID string) (int64, error) {
	res := r.db.Where("item_id = ?", itemID).Delete(&itemDatamodel.Item{})
	return res.RowsAffected, res.Error
}

func (r *ItemRepository) PhotosForItem(itemID string) ([]itemDatamodel.Photo, error) {
	var photos []itemDatamodel.Photo
	err := r.db.Where("item_id = ?", itemID).Order("id").Find(&photos).Error
	return photos, err
}
