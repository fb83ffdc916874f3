package postgres

import (
	"gorm.io/gorm"

	itemDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/item"
	"github.com/assetvault/asset-management/internal/photo"
)

// PhotoRepository implements the photo.Repository interface using GORM.
type PhotoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) photo.Repository {
	return &PhotoRepository{db: db}
}

func (r *PhotoRepository) Insert(p *itemDatamodel.Photo) error {
	return r.db.Create(p).Error
}

func (r *PhotoRepository) GetByID(id int64) (*itemDatamodel.Photo, error) {
	var m itemDatamodel.Photo
	err := r.db.Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PhotoRepository) ListForItem(itemID string) ([]itemDatamodel.Photo, error) {
	var rows []itemDatamodel.Photo
	err := r.db.Where("item_id = ?", itemID).Order("id").Find(&rows).Error
	return rows, err
}

func (r *PhotoRepository) CountForItem(itemID string) (int64, error) {
	var count int64
	err := r.db.Model(&itemDatamodel.Photo{}).Where("item_id = ?", itemID).Count(&count).Error
	return count, err
}

func (r *PhotoRepository) Delete(id int64) (int64, error) {
	res := r.db.Where("id = ?", id).Delete(&itemDatamodel.Photo{})
	return res.RowsAffected, res.Error
}
