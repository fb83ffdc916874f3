package servicelog

import (
	"log/slog"
	"time"

	"github.com/assetvault/asset-management/internal"
	"github.com/assetvault/asset-management/internal/assignment"
	auditDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/audit"
	itemDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/item"
	servicelogDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/servicelog"
)

// OverviewItem is one item with its latest completed service attached.
type OverviewItem struct {
	ItemID          string
	Name            string
	SerialNo        *string
	Department      *string
	LastServiceDate *string
	RecordCount     int64
}

// Repository defines the data access for service records.
type Repository interface {
	ListForItem(itemID string) ([]*servicelogDatamodel.Record, error)
	Insert(m *servicelogDatamodel.Record) error
	LastServicedDate(itemID string) (*string, error)
	Overview() ([]OverviewItem, error)
}

// ItemGetter verifies item existence.
type ItemGetter interface {
	GetByID(itemID string) (*itemDatamodel.Item, error)
}

// HolderGetter resolves the current custodian for audit labeling.
type HolderGetter interface {
	ActiveForItem(itemID string) (*assignment.Record, error)
}

// AuditWriter appends service events to the audit log.
type AuditWriter interface {
	Record(e *auditDatamodel.Entry) error
}

// Service handles maintenance records and due-date status.
type Service struct {
	repo         Repository
	items        ItemGetter
	holders      HolderGetter
	audit        AuditWriter
	intervalDays int
	logger       *slog.Logger
}

func NewService(repo Repository, items ItemGetter, holders HolderGetter, audit AuditWriter, intervalDays int, logger *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		items:        items,
		holders:      holders,
		audit:        audit,
		intervalDays: intervalDays,
		logger:       logger,
	}
}

func (s *Service) ListForItem(itemID string) ([]*Record, error) {
	if _, err := s.items.GetByID(itemID); err != nil {
		return nil, internal.ErrItemNotFound
	}

	rows, err := s.repo.ListForItem(itemID)
	if err != nil {
		s.logger.Error("failed to list service records", "error", err, "item_id", itemID)
		return nil, err
	}
	out := make([]*Record, 0, len(rows))
	for _, m := range rows {
		out = append(out, FromDataModel(m))
	}
	return out, nil
}

// Create logs a maintenance event and mirrors it into the audit log.
// The audit entry names the current holder (or stock) and the service
// location so the trail reads like the other custody events.
func (s *Service) Create(itemID string, dto CreateRecordDTO, byUser string) (*Record, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	if _, err := s.items.GetByID(itemID); err != nil {
		return nil, internal.ErrItemNotFound
	}

	now := time.Now()
	serviceDate := now.Format(DateLayout)
	if dto.ServiceDate != nil && *dto.ServiceDate != "" {
		serviceDate = *dto.ServiceDate
	}

	m := &servicelogDatamodel.Record{
		ItemID:      itemID,
		ServiceDate: serviceDate,
		Serviced:    dto.Serviced,
		Location:    dto.Location,
		Notes:       dto.Notes,
		CreatedBy:   &byUser,
		CreatedAt:   now,
	}
	if err := s.repo.Insert(m); err != nil {
		s.logger.Error("failed to insert service record", "error", err, "item_id", itemID)
		return nil, err
	}

	fromHolder := auditDatamodel.StockHolder
	if active, err := s.holders.ActiveForItem(itemID); err == nil && active != nil {
		fromHolder = active.PersonName
	}
	toHolder := "Service"
	if dto.Location != nil && *dto.Location != "" {
		toHolder = *dto.Location
	}
	entry := &auditDatamodel.Entry{
		EventTime:  now,
		Event:      auditDatamodel.EventService,
		ItemID:     itemID,
		FromHolder: &fromHolder,
		ToHolder:   &toHolder,
		ByUser:     &byUser,
		Notes:      dto.Notes,
	}
	if err := s.audit.Record(entry); err != nil {
		// The record itself is saved; the missing trail row is logged.
		s.logger.Warn("service audit entry not recorded", "error", err, "item_id", itemID)
	}

	s.logger.Info("service record created", "item_id", itemID, "service_date", serviceDate, "by", byUser)
	return FromDataModel(m), nil
}

// StatusForItem reports where the item stands against the interval.
// Only completed services move the due date.
func (s *Service) StatusForItem(itemID string) (*Status, error) {
	if _, err := s.items.GetByID(itemID); err != nil {
		return nil, internal.ErrItemNotFound
	}

	last, err := s.repo.LastServicedDate(itemID)
	if err != nil {
		s.logger.Error("failed to load last service date", "error", err, "item_id", itemID)
		return nil, err
	}

	status := ComputeStatus(last, s.intervalDays, time.Now())
	return &status, nil
}

// Overview returns the fleet table, one row per item.
func (s *Service) Overview() ([]OverviewRow, error) {
	items, err := s.repo.Overview()
	if err != nil {
		s.logger.Error("failed to build service overview", "error", err)
		return nil, err
	}

	now := time.Now()
	out := make([]OverviewRow, 0, len(items))
	for _, it := range items {
		status := ComputeStatus(it.LastServiceDate, s.intervalDays, now)
		out = append(out, OverviewRow{
			ItemID:          it.ItemID,
			Name:            it.Name,
			SerialNo:        it.SerialNo,
			Department:      it.Department,
			LastServiceDate: it.LastServiceDate,
			RecordCount:     it.RecordCount,
			Status:          status.Status,
		})
	}
	return out, nil
}
