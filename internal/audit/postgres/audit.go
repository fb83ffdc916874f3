package postgres

import (
	"gorm.io/gorm"

	"github.com/assetvault/asset-management/internal/audit"
	auditDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/audit"
)

// AuditRepository implements the audit.Repository interface using GORM.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) audit.Repository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Insert(e *auditDatamodel.Entry) error {
	return r.db.Create(e).Error
}

func (r *AuditRepository) List() ([]*auditDatamodel.Entry, error) {
	var rows []*auditDatamodel.Entry
	err := r.db.Order("event_time DESC, id DESC").Find(&rows).Error
	return rows, err
}
